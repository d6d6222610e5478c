// Package brdoc provides a public API for validating Brazilian document
// identifiers: CPF, CNPJ and boleto digitable lines and barcodes.
//
// Example usage:
//
//	if brdoc.IsValid("529.982.247-25") {
//	    fmt.Println("valid CPF")
//	}
//
//	line, err := brdoc.FormatLine("23791987000000100003381260007591540500630620")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(line)
package brdoc

import (
	"github.com/rezonia/brdoc/internal/barcode"
	"github.com/rezonia/brdoc/internal/document"
	"github.com/rezonia/brdoc/internal/model"
	"github.com/rezonia/brdoc/internal/processor"
)

// Re-export core types for public API
type (
	Kind          = model.Kind
	State         = model.State
	PartialResult = model.PartialResult
	FieldError    = model.FieldError
	Validator     = document.Validator
	BoletoInfo    = barcode.Info
	Finding       = processor.Finding
)

// Re-export kinds
const (
	KindCPF     = model.KindCPF
	KindCNPJ    = model.KindCNPJ
	KindBoleto  = model.KindBoleto
	KindTax     = model.KindTax
	KindUnknown = model.KindUnknown
)

// Re-export incremental states
const (
	StateEmpty    = model.StateEmpty
	StateGrowing  = model.StateGrowing
	StateInvalid  = model.StateInvalid
	StateComplete = model.StateComplete
)

// Re-export error kinds
var (
	ErrInvalidArgument = model.ErrInvalidArgument
	ErrInvalidLength   = model.ErrInvalidLength
	ErrInvalidInput    = model.ErrInvalidInput
)

// Shared validators
var (
	CPF     = document.CPF
	CNPJ    = document.CNPJ
	CPFCNPJ = document.CPFCNPJ
	Boleto  = document.Boleto
)
