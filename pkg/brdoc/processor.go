package brdoc

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/rezonia/brdoc/internal/llm"
	"github.com/rezonia/brdoc/internal/processor"
)

// ExtractionResult represents extraction result with metadata
type ExtractionResult struct {
	Findings    []Finding
	Confidence  float64
	Method      string
	Warnings    []string
	NeedsReview bool
}

// Valid returns the findings that passed validation
func (r *ExtractionResult) Valid() []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Valid {
			out = append(out, f)
		}
	}
	return out
}

// Options configures document extraction
type Options struct {
	// Below this confidence a result is flagged for review (default: 0.70)
	ReviewThreshold float64

	// LLM Configuration
	LLMAPIKey      string // API key (env: LLM_API_KEY)
	LLMBaseURL     string // Base URL (env: LLM_BASE_URL)
	LLMModel       string // Text extraction model (env: LLM_MODEL)
	LLMVisionModel string // Vision/image extraction model (env: LLM_VISION_MODEL)

	EnableLLM bool

	// Concurrent documents in ProcessBatch (default: 4)
	Workers int
}

// DefaultOptions returns default extraction options
func DefaultOptions() Options {
	return Options{
		ReviewThreshold: 0.70,
		EnableLLM:       true,
		Workers:         4,
		LLMBaseURL:      llm.DefaultBaseURL,
		LLMModel:        llm.ModelGPT4oMini,
		LLMVisionModel:  llm.ModelGPT4o,
	}
}

// Processor finds and validates identifiers in documents
type Processor struct {
	pipeline *processor.Pipeline
	options  Options
}

// NewProcessor creates a new processor with the given options
func NewProcessor(opts Options) *Processor {
	var pipelineOpts []processor.PipelineOption
	if opts.EnableLLM && opts.LLMAPIKey != "" {
		client := llm.NewClient(opts.LLMAPIKey,
			llm.WithBaseURL(opts.LLMBaseURL),
			llm.WithDefaultModel(opts.LLMModel),
		)
		pipelineOpts = append(pipelineOpts, processor.WithLLMExtractor(
			llm.NewExtractor(client,
				llm.WithModel(opts.LLMModel),
				llm.WithVisionModel(opts.LLMVisionModel),
			),
		))
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}

	return &Processor{
		pipeline: processor.NewPipeline(pipelineOpts...),
		options:  opts,
	}
}

// NewDefaultProcessor creates a processor with default options
func NewDefaultProcessor() *Processor {
	return NewProcessor(DefaultOptions())
}

// Process detects the input format (text, PDF or image) and extracts from it
func (p *Processor) Process(ctx context.Context, r io.Reader) (*ExtractionResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return p.result(p.pipeline.Process(ctx, data))
}

// ProcessText scans text directly
func (p *Processor) ProcessText(ctx context.Context, text string) (*ExtractionResult, error) {
	return p.result(p.pipeline.ProcessText(ctx, text))
}

// ProcessImage asks the vision model for identifiers
func (p *Processor) ProcessImage(ctx context.Context, imageData []byte, mimeType string) (*ExtractionResult, error) {
	return p.result(p.pipeline.ProcessImage(ctx, imageData, mimeType))
}

// ProcessBatch processes inputs concurrently. Results keep the input order;
// the first error is returned alongside every result that succeeded.
func (p *Processor) ProcessBatch(ctx context.Context, inputs []io.Reader) ([]*ExtractionResult, error) {
	results := make([]*ExtractionResult, len(inputs))
	errs := make([]error, len(inputs))

	sem := make(chan struct{}, p.options.Workers)
	var wg sync.WaitGroup
	for i, input := range inputs {
		wg.Add(1)
		go func(idx int, r io.Reader) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			results[idx], errs[idx] = p.Process(ctx, r)
		}(i, input)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return results, err
		}
	}
	return results, nil
}

func (p *Processor) result(r *processor.Result) (*ExtractionResult, error) {
	if r.Error != nil {
		return nil, r.Error
	}
	return &ExtractionResult{
		Findings:    r.Findings,
		Confidence:  r.Confidence,
		Method:      string(r.Method),
		Warnings:    r.Warnings,
		NeedsReview: r.Confidence < p.options.ReviewThreshold,
	}, nil
}
