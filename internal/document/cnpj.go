package document

import (
	"github.com/rezonia/brdoc/internal/checksum"
	"github.com/rezonia/brdoc/internal/model"
)

var cnpjBlocks = []block{
	{start: 0, end: 13, label: "first CNPJ check digit"},
	{start: 0, end: 14, label: "second CNPJ check digit"},
}

// CNPJValidator validates company taxpayer numbers (14 digits)
type CNPJValidator struct{}

// IsValid reports whether text holds 14 digits with both check digits correct
func (CNPJValidator) IsValid(text string) bool {
	digits := DigitsOnly(text)
	if len(digits) != model.CNPJLength {
		return false
	}
	r, err := CNPJValidator{}.ValidateIncremental(digits, model.NewPartialResult())
	return err == nil && r.Complete
}

// ValidateIncremental accepts digits, whitespace, '.', '/' and '-'
func (CNPJValidator) ValidateIncremental(text string, carry *model.PartialResult) (*model.PartialResult, error) {
	if err := prepare(carry); err != nil {
		return nil, err
	}

	value, err := clean("cnpj", text, ".-/")
	if err != nil {
		return nil, err
	}
	carry.Typed = len(value)

	if len(value) > model.CNPJLength {
		return carry.Invalidate("CNPJ has more than 14 digits"), nil
	}

	ok, err := checkBlocks(value, cnpjBlocks, checksum.Mod11, carry)
	if err != nil || !ok {
		return carry, err
	}

	if allSameDigit(value) {
		return carry.Invalidate("CNPJ made of a single repeated digit"), nil
	}
	return carry.Finish(), nil
}
