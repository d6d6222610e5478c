// Package pdf extracts the text shown on the pages of a PDF document.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// DefaultMaxPages bounds the pages read from one document
const DefaultMaxPages = 20

func init() {
	api.DisableConfigDir()
}

// Extractor pulls page text out of PDF documents
type Extractor struct {
	conf     *model.Configuration
	maxPages int
}

// Option configures the extractor
type Option func(*Extractor)

// WithMaxPages limits how many pages are read; values below 1 mean all pages
func WithMaxPages(n int) Option {
	return func(e *Extractor) {
		e.maxPages = n
	}
}

// NewExtractor creates a PDF text extractor
func NewExtractor(opts ...Option) *Extractor {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	e := &Extractor{conf: conf, maxPages: DefaultMaxPages}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExtractFile reads the text of the PDF at path
func (e *Extractor) ExtractFile(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()
	return e.Extract(ctx, f)
}

// ExtractBytes reads the text of an in-memory PDF
func (e *Extractor) ExtractBytes(ctx context.Context, data []byte) (string, error) {
	return e.Extract(ctx, bytes.NewReader(data))
}

// Extract reads the text of every page, one page per paragraph
func (e *Extractor) Extract(ctx context.Context, rs io.ReadSeeker) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("PANIC: %+v", r)
		}
	}()

	pdfCtx, err := api.ReadValidateAndOptimize(rs, e.conf)
	if err != nil {
		return "", fmt.Errorf("failed to read PDF: %w", err)
	}

	pages := pdfCtx.PageCount
	if e.maxPages > 0 && pages > e.maxPages {
		pages = e.maxPages
	}

	var sb strings.Builder
	for nr := 1; nr <= pages; nr++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		r, err := pdfcpu.ExtractPageContent(pdfCtx, nr)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", nr, err)
		}
		if r == nil {
			continue
		}
		content, err := io.ReadAll(r)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", nr, err)
		}

		if page := ContentText(content); page != "" {
			if sb.Len() > 0 {
				sb.WriteString("\n\n")
			}
			sb.WriteString(page)
		}
	}
	return sb.String(), nil
}
