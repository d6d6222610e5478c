package brdoc

import (
	"time"

	"github.com/rezonia/brdoc/internal/barcode"
	"github.com/rezonia/brdoc/internal/document"
	"github.com/rezonia/brdoc/internal/linecodec"
	"github.com/rezonia/brdoc/internal/model"
	"github.com/rezonia/brdoc/internal/processor"
)

// Detect classifies a value by its digits
func Detect(value string) Kind {
	return document.Detect(value)
}

// IsValid reports whether value is a complete, checksum-correct CPF, CNPJ
// or digitable line
func IsValid(value string) bool {
	return document.IsValid(value)
}

// ValidateIncremental judges a value that may still be typed with a fresh
// result
func ValidateIncremental(v Validator, value string) (*PartialResult, error) {
	return v.ValidateIncremental(value, model.NewPartialResult())
}

// Check validates any supported value and decodes boletos
func Check(value string) Finding {
	return processor.Check(value, time.Now())
}

// FormatLine converts a 44-digit barcode to its digitable line
func FormatLine(barcode string) (string, error) {
	return linecodec.Format(barcode)
}

// DeformatLine converts a digitable line, with or without punctuation, to
// its 44-digit barcode
func DeformatLine(line string) (string, error) {
	return linecodec.Deformat(line)
}

// MaskLine punctuates a 47- or 48-digit digitable line
func MaskLine(line string) (string, error) {
	return linecodec.Mask(line)
}

// ParseBoleto decodes the fields of a barcode or digitable line. Due dates
// are resolved against the current time.
func ParseBoleto(code string) (*BoletoInfo, error) {
	return barcode.Parse(code, time.Now())
}

// FormatCPF punctuates an 11-digit CPF
func FormatCPF(cpf string) (string, error) {
	return document.CPFMask.Format(cpf)
}

// FormatCNPJ punctuates a 14-digit CNPJ
func FormatCNPJ(cnpj string) (string, error) {
	return document.CNPJMask.Format(cnpj)
}
