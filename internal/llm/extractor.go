package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNoCandidates is returned when the model answers with an empty list
var ErrNoCandidates = errors.New("model found no identifiers")

// Chatter is the part of Client the extractor needs
type Chatter interface {
	ChatText(ctx context.Context, model, systemPrompt, userPrompt string) (string, error)
	ChatWithImage(ctx context.Context, model, systemPrompt, userPrompt string, imageData []byte, mimeType string) (string, error)
}

// Candidate is one identifier the model reports
type Candidate struct {
	Value string `json:"value"`
	Kind  string `json:"kind"`
	Label string `json:"label,omitempty"`
}

// Response is the JSON document the prompts ask for
type Response struct {
	Candidates []Candidate `json:"candidates"`
}

// Extractor asks a model for identifier candidates
type Extractor struct {
	chat        Chatter
	model       string
	visionModel string
}

// ExtractorOption configures the extractor
type ExtractorOption func(*Extractor)

// WithModel sets the model used for text
func WithModel(model string) ExtractorOption {
	return func(e *Extractor) {
		if model != "" {
			e.model = model
		}
	}
}

// WithVisionModel sets the model used for images
func WithVisionModel(model string) ExtractorOption {
	return func(e *Extractor) {
		if model != "" {
			e.visionModel = model
		}
	}
}

// NewExtractor creates an extractor. Empty models use the client default.
func NewExtractor(chat Chatter, opts ...ExtractorOption) *Extractor {
	e := &Extractor{chat: chat}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExtractFromText asks the model for candidates in free text
func (e *Extractor) ExtractFromText(ctx context.Context, text string) ([]Candidate, error) {
	resp, err := e.chat.ChatText(ctx, e.model, SystemPromptIdentifierExtractor, fmt.Sprintf(UserPromptTextExtraction, text))
	if err != nil {
		return nil, err
	}
	return ParseResponse(resp)
}

// ExtractFromImage asks the vision model for candidates in an image
func (e *Extractor) ExtractFromImage(ctx context.Context, data []byte, mimeType string) ([]Candidate, error) {
	model := e.visionModel
	if model == "" {
		model = e.model
	}

	resp, err := e.chat.ChatWithImage(ctx, model, SystemPromptIdentifierExtractor, UserPromptImageExtraction, data, mimeType)
	if err != nil {
		return nil, err
	}
	return ParseResponse(resp)
}

// ParseResponse decodes a model answer into candidates
func ParseResponse(resp string) ([]Candidate, error) {
	var parsed Response
	if err := json.Unmarshal([]byte(ExtractJSON(resp)), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse model response: %w", err)
	}

	out := parsed.Candidates[:0]
	for _, c := range parsed.Candidates {
		if c.Value != "" {
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		return nil, ErrNoCandidates
	}
	return out, nil
}
