package server

import (
	"github.com/rezonia/brdoc/internal/processor"
)

// ValueRequest is the body of the single-value endpoints
type ValueRequest struct {
	Value string `json:"value"`
}

// ValidateRequest checks one value or a list of values
type ValidateRequest struct {
	Value  string   `json:"value"`
	Values []string `json:"values"`
}

// ValidateResponse is the response for validate endpoint
type ValidateResponse struct {
	Results []processor.Finding `json:"results"`
	Total   int                 `json:"total"`
	Valid   int                 `json:"valid"`
}

// IncrementalRequest judges a value that is still being typed. Kind is one
// of cpf, cnpj, cpfcnpj or boleto; empty picks from the value.
type IncrementalRequest struct {
	Value string `json:"value"`
	Kind  string `json:"kind"`
}

// IncrementalResponse is the response for the incremental validation endpoint
type IncrementalResponse struct {
	Kind       string `json:"kind"`
	State      string `json:"state"`
	StillValid bool   `json:"still_valid"`
	Complete   bool   `json:"complete"`
	Message    string `json:"message,omitempty"`
	Typed      int    `json:"typed"`
}

// FormatResponse is the response for the barcode to line endpoint
type FormatResponse struct {
	Barcode   string `json:"barcode"`
	Line      string `json:"line"`
	Formatted string `json:"formatted"`
}

// DeformatResponse is the response for the line to barcode endpoint
type DeformatResponse struct {
	Line    string `json:"line"`
	Barcode string `json:"barcode"`
}

// ExtractResponse is the response for the extraction endpoint
type ExtractResponse struct {
	Format     string              `json:"format"`
	Findings   []processor.Finding `json:"findings"`
	Method     string              `json:"method"`
	Confidence float64             `json:"confidence"`
	Warnings   []string            `json:"warnings,omitempty"`
}

// ErrorResponse is the standard error response
type ErrorResponse struct {
	Error    string   `json:"error"`
	Details  string   `json:"details,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}
