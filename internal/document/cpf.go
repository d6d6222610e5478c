package document

import (
	"github.com/rezonia/brdoc/internal/checksum"
	"github.com/rezonia/brdoc/internal/model"
)

var cpfBlocks = []block{
	{start: 0, end: 10, label: "first CPF check digit"},
	{start: 0, end: 11, label: "second CPF check digit"},
}

// CPFValidator validates individual taxpayer numbers (11 digits)
type CPFValidator struct{}

// IsValid reports whether text holds 11 digits with both check digits correct
func (CPFValidator) IsValid(text string) bool {
	digits := DigitsOnly(text)
	if len(digits) != model.CPFLength {
		return false
	}
	r, err := CPFValidator{}.ValidateIncremental(digits, model.NewPartialResult())
	return err == nil && r.Complete
}

// ValidateIncremental accepts digits, whitespace, '.' and '-'
func (CPFValidator) ValidateIncremental(text string, carry *model.PartialResult) (*model.PartialResult, error) {
	if err := prepare(carry); err != nil {
		return nil, err
	}

	value, err := clean("cpf", text, ".-")
	if err != nil {
		return nil, err
	}
	carry.Typed = len(value)

	if len(value) > model.CPFLength {
		return carry.Invalidate("CPF has more than 11 digits"), nil
	}

	ok, err := checkBlocks(value, cpfBlocks, checksum.CPFMod11, carry)
	if err != nil || !ok {
		return carry, err
	}

	if allSameDigit(value) {
		return carry.Invalidate("CPF made of a single repeated digit"), nil
	}
	return carry.Finish(), nil
}
