// Package processor finds and validates CPF, CNPJ and boleto identifiers in
// text, PDF documents and images.
package processor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"
	"unicode/utf8"

	"github.com/rezonia/brdoc/internal/llm"
	"github.com/rezonia/brdoc/internal/logger"
	"github.com/rezonia/brdoc/internal/parser/pdf"
)

// Format is the detected input format
type Format int

const (
	FormatUnknown Format = iota
	FormatText
	FormatPDF
	FormatImage
)

// String returns string representation of format
func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatPDF:
		return "pdf"
	case FormatImage:
		return "image"
	default:
		return "unknown"
	}
}

// ExtractionMethod indicates how identifiers were found
type ExtractionMethod string

const (
	MethodScan      ExtractionMethod = "scan"
	MethodPDF       ExtractionMethod = "pdf"
	MethodLLMText   ExtractionMethod = "llm_text"
	MethodLLMVision ExtractionMethod = "llm_vision"
)

// Confidence of each method when every finding is valid
var methodConfidence = map[ExtractionMethod]float64{
	MethodScan:      1.0,
	MethodPDF:       1.0,
	MethodLLMText:   0.85,
	MethodLLMVision: 0.75,
}

// ErrNoLLM is returned when a step needs the model and none is configured
var ErrNoLLM = errors.New("LLM extractor not configured")

// ErrUnsupportedFormat is returned for inputs that are not text, PDF or image
var ErrUnsupportedFormat = errors.New("unsupported input format")

// Result contains processing result
type Result struct {
	Findings   []Finding        `json:"findings" yaml:"findings"`
	Method     ExtractionMethod `json:"method" yaml:"method"`
	Confidence float64          `json:"confidence" yaml:"confidence"`
	Warnings   []string         `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Error      error            `json:"-" yaml:"-"`
}

// ValidCount returns how many findings passed validation
func (r *Result) ValidCount() int {
	n := 0
	for _, f := range r.Findings {
		if f.Valid {
			n++
		}
	}
	return n
}

// LLMExtractor asks a model for identifier candidates
type LLMExtractor interface {
	ExtractFromText(ctx context.Context, text string) ([]llm.Candidate, error)
	ExtractFromImage(ctx context.Context, data []byte, mimeType string) ([]llm.Candidate, error)
}

// Pipeline orchestrates identifier extraction
type Pipeline struct {
	llmExtractor LLMExtractor
	pdfExtractor *pdf.Extractor
	timeout      time.Duration
	now          func() time.Time
	log          *slog.Logger
}

// PipelineOption configures the pipeline
type PipelineOption func(*Pipeline)

// WithLLMExtractor sets the model fallback
func WithLLMExtractor(e LLMExtractor) PipelineOption {
	return func(p *Pipeline) {
		p.llmExtractor = e
	}
}

// WithPDFExtractor replaces the PDF text extractor
func WithPDFExtractor(e *pdf.Extractor) PipelineOption {
	return func(p *Pipeline) {
		if e != nil {
			p.pdfExtractor = e
		}
	}
}

// WithTimeout bounds every model call
func WithTimeout(d time.Duration) PipelineOption {
	return func(p *Pipeline) {
		p.timeout = d
	}
}

// WithClock sets the reference time used to decode due dates
func WithClock(now func() time.Time) PipelineOption {
	return func(p *Pipeline) {
		if now != nil {
			p.now = now
		}
	}
}

// WithLogger sets the logger
func WithLogger(l *slog.Logger) PipelineOption {
	return func(p *Pipeline) {
		if l != nil {
			p.log = l
		}
	}
}

// NewPipeline creates a new processing pipeline
func NewPipeline(opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		pdfExtractor: pdf.NewExtractor(),
		timeout:      60 * time.Second,
		now:          time.Now,
		log:          logger.Discard(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// HasLLM reports whether a model fallback is configured
func (p *Pipeline) HasLLM() bool {
	return p.llmExtractor != nil
}

// DetectFormat detects the format of input data
func DetectFormat(data []byte) Format {
	if len(data) == 0 {
		return FormatUnknown
	}

	if bytes.HasPrefix(data, []byte("%PDF")) {
		return FormatPDF
	}

	if len(data) >= 4 {
		// PNG
		if data[0] == 0x89 && data[1] == 0x50 && data[2] == 0x4E && data[3] == 0x47 {
			return FormatImage
		}
		// JPEG
		if data[0] == 0xFF && data[1] == 0xD8 && data[2] == 0xFF {
			return FormatImage
		}
		// TIFF
		if (data[0] == 0x49 && data[1] == 0x49 && data[2] == 0x2A && data[3] == 0x00) ||
			(data[0] == 0x4D && data[1] == 0x4D && data[2] == 0x00 && data[3] == 0x2A) {
			return FormatImage
		}
		// GIF
		if bytes.HasPrefix(data, []byte("GIF8")) {
			return FormatImage
		}
		// WebP
		if len(data) >= 12 && bytes.HasPrefix(data, []byte("RIFF")) && string(data[8:12]) == "WEBP" {
			return FormatImage
		}
	}

	if utf8.Valid(data) && !bytes.ContainsRune(data, 0) {
		return FormatText
	}
	return FormatUnknown
}

// Process detects the format of data and extracts from it
func (p *Pipeline) Process(ctx context.Context, data []byte) *Result {
	switch format := DetectFormat(data); format {
	case FormatText:
		return p.ProcessText(ctx, string(data))
	case FormatPDF:
		return p.ProcessPDF(ctx, data)
	case FormatImage:
		return p.ProcessImage(ctx, data, imageMIME(data))
	default:
		return &Result{Error: ErrUnsupportedFormat}
	}
}

// ProcessFile reads path and processes its content
func (p *Pipeline) ProcessFile(ctx context.Context, path string) *Result {
	data, err := os.ReadFile(path)
	if err != nil {
		return &Result{Error: fmt.Errorf("failed to read file: %w", err)}
	}
	return p.Process(ctx, data)
}

// ProcessText scans text, falling back to the model when nothing is found
func (p *Pipeline) ProcessText(ctx context.Context, text string) *Result {
	return p.fromText(ctx, text, MethodScan)
}

// ProcessPDF extracts page text and scans it
func (p *Pipeline) ProcessPDF(ctx context.Context, data []byte) *Result {
	text, err := p.pdfExtractor.ExtractBytes(ctx, data)
	if err != nil {
		return &Result{Method: MethodPDF, Error: fmt.Errorf("PDF extraction failed: %w", err)}
	}
	p.log.DebugContext(ctx, "pdf text extracted", slog.Int("chars", len(text)))
	return p.fromText(ctx, text, MethodPDF)
}

// ProcessImage asks the vision model for identifiers
func (p *Pipeline) ProcessImage(ctx context.Context, data []byte, mimeType string) *Result {
	if p.llmExtractor == nil {
		return &Result{Method: MethodLLMVision, Error: ErrNoLLM}
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	candidates, err := p.llmExtractor.ExtractFromImage(ctx, data, mimeType)
	if err != nil {
		return &Result{Method: MethodLLMVision, Error: fmt.Errorf("LLM vision extraction failed: %w", err)}
	}
	return p.fromCandidates(candidates, MethodLLMVision, nil)
}

func (p *Pipeline) fromText(ctx context.Context, text string, method ExtractionMethod) *Result {
	values := Scan(text)
	if len(values) > 0 {
		ref := p.now()
		findings := make([]Finding, 0, len(values))
		for _, v := range values {
			findings = append(findings, Check(v, ref))
		}
		p.log.DebugContext(ctx, "identifiers scanned",
			slog.String("method", string(method)), slog.Int("count", len(findings)))
		return newResult(findings, method, nil)
	}

	warnings := []string{"no identifiers found by pattern scan"}
	if p.llmExtractor == nil {
		return &Result{Method: method, Findings: []Finding{}, Warnings: warnings}
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	candidates, err := p.llmExtractor.ExtractFromText(ctx, text)
	if errors.Is(err, llm.ErrNoCandidates) {
		return &Result{Method: MethodLLMText, Findings: []Finding{}, Warnings: warnings}
	}
	if err != nil {
		return &Result{Method: MethodLLMText, Warnings: warnings, Error: fmt.Errorf("LLM text extraction failed: %w", err)}
	}
	return p.fromCandidates(candidates, MethodLLMText, warnings)
}

func (p *Pipeline) fromCandidates(candidates []llm.Candidate, method ExtractionMethod, warnings []string) *Result {
	ref := p.now()
	seen := make(map[string]bool, len(candidates))
	findings := make([]Finding, 0, len(candidates))
	for _, c := range candidates {
		f := Check(c.Value, ref)
		if seen[f.Digits] {
			continue
		}
		seen[f.Digits] = true
		f.Label = c.Label
		findings = append(findings, f)
	}
	return newResult(findings, method, warnings)
}

func newResult(findings []Finding, method ExtractionMethod, warnings []string) *Result {
	r := &Result{
		Findings: findings,
		Method:   method,
		Warnings: warnings,
	}
	if len(findings) > 0 {
		r.Confidence = methodConfidence[method] * float64(r.ValidCount()) / float64(len(findings))
	}
	for _, f := range findings {
		if !f.Valid {
			r.Warnings = append(r.Warnings, fmt.Sprintf("%s %q: %s", f.Kind, f.Value, f.Message))
		}
	}
	return r
}

func imageMIME(data []byte) string {
	if bytes.HasPrefix(data, []byte("II*\x00")) || bytes.HasPrefix(data, []byte("MM\x00*")) {
		return "image/tiff"
	}
	return http.DetectContentType(data)
}
