// Package document validates Brazilian document identifiers: CPF, CNPJ and
// boleto digitable lines, both finished and while they are being typed.
package document

import (
	"strings"

	"github.com/rezonia/brdoc/internal/model"
)

// Validator checks one kind of identifier
type Validator interface {
	// IsValid reports whether text, stripped of non-digits, is a complete
	// and checksum-correct identifier
	IsValid(text string) bool

	// ValidateIncremental judges text that may still be growing. carry is
	// reset and filled from the full text; it is also returned.
	ValidateIncremental(text string, carry *model.PartialResult) (*model.PartialResult, error)
}

// Shared validators; all of them are stateless.
var (
	CPF     Validator = CPFValidator{}
	CNPJ    Validator = CNPJValidator{}
	CPFCNPJ Validator = CPFCNPJValidator{}
	Boleto  Validator = BoletoValidator{}
)

// Detect classifies text by its cleaned length and leading digit
func Detect(text string) model.Kind {
	digits := DigitsOnly(text)
	switch {
	case digits == "":
		return model.KindUnknown
	case len(digits) == model.CPFLength:
		return model.KindCPF
	case len(digits) == model.CNPJLength:
		return model.KindCNPJ
	case digits[0] == model.TaxMarker:
		return model.KindTax
	default:
		return model.KindBoleto
	}
}

// For returns the validator of a kind, or nil for KindUnknown
func For(kind model.Kind) Validator {
	switch kind {
	case model.KindCPF:
		return CPF
	case model.KindCNPJ:
		return CNPJ
	case model.KindBoleto, model.KindTax:
		return Boleto
	default:
		return nil
	}
}

// IsValid dispatches text by cleaned length: 11 digits are a CPF, 14 a CNPJ,
// anything else a boleto or tax-collection line.
func IsValid(text string) bool {
	v := For(Detect(text))
	if v == nil {
		return false
	}
	return v.IsValid(text)
}

var named = map[string]Validator{
	"cpf":     CPF,
	"cnpj":    CNPJ,
	"cpfcnpj": CPFCNPJ,
	"boleto":  Boleto,
}

// Named returns the validator called cpf, cnpj, cpfcnpj or boleto
func Named(name string) (Validator, bool) {
	v, ok := named[strings.ToLower(name)]
	return v, ok
}

// Guess names the validator for text that may still be typed: "boleto" or
// "cpfcnpj". Exact CPF and CNPJ lengths and taxpayer punctuation win over a
// leading 8, which otherwise marks a tax-collection line.
func Guess(text string) string {
	digits := DigitsOnly(text)
	switch {
	case len(digits) > model.CNPJLength:
		return "boleto"
	case len(digits) == model.CPFLength, len(digits) == model.CNPJLength:
		return "cpfcnpj"
	case strings.ContainsAny(text, "-/"):
		return "cpfcnpj"
	case digits != "" && digits[0] == model.TaxMarker:
		return "boleto"
	default:
		return "cpfcnpj"
	}
}
