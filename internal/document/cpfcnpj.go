package document

import "github.com/rezonia/brdoc/internal/model"

// CPFCNPJValidator accepts either document, routing by cleaned length:
// up to 11 digits is a CPF, 12 or more a CNPJ.
type CPFCNPJValidator struct{}

// IsValid checks 11 digits as a CPF and 14 as a CNPJ
func (CPFCNPJValidator) IsValid(text string) bool {
	switch len(DigitsOnly(text)) {
	case model.CPFLength:
		return CPF.IsValid(text)
	case model.CNPJLength:
		return CNPJ.IsValid(text)
	default:
		return false
	}
}

// ValidateIncremental hands text to the CPF or CNPJ validator by length
func (CPFCNPJValidator) ValidateIncremental(text string, carry *model.PartialResult) (*model.PartialResult, error) {
	if isCPF(text) {
		return CPF.ValidateIncremental(text, carry)
	}
	return CNPJ.ValidateIncremental(text, carry)
}

func isCPF(text string) bool {
	return len(DigitsOnly(text)) <= model.CPFLength
}
