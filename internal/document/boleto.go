package document

import (
	"fmt"

	"github.com/rezonia/brdoc/internal/checksum"
	"github.com/rezonia/brdoc/internal/model"
)

// standardBlocks protect the first three fields of a bank slip line;
// the fourth field carries no block digit.
var standardBlocks = []block{
	{start: 0, end: 10, label: "first block"},
	{start: 10, end: 21, label: "second block"},
	{start: 21, end: 32, label: "third block"},
}

// taxBlocks are the four 11+1 digit fields of a tax-collection line
var taxBlocks = []block{
	{start: 0, end: 12, label: "first block"},
	{start: 12, end: 24, label: "second block"},
	{start: 24, end: 36, label: "third block"},
	{start: 36, end: 48, label: "fourth block"},
}

// taxSchemeDigits is how many digits are needed before the checksum scheme
// of a tax-collection line is known
const taxSchemeDigits = 3

// BoletoValidator validates digitable lines of bank slips (47 digits) and
// tax-collection slips (48 digits, leading 8).
type BoletoValidator struct{}

// IsValid reports whether text is a complete line with every block digit correct
func (BoletoValidator) IsValid(text string) bool {
	digits := DigitsOnly(text)
	if digits == "" {
		return false
	}
	r, err := BoletoValidator{}.ValidateIncremental(digits, model.NewPartialResult())
	return err == nil && r.Complete
}

// ValidateIncremental accepts digits, whitespace and '.'
func (BoletoValidator) ValidateIncremental(text string, carry *model.PartialResult) (*model.PartialResult, error) {
	if err := prepare(carry); err != nil {
		return nil, err
	}

	value, err := clean("line", text, ".")
	if err != nil {
		return nil, err
	}
	carry.Typed = len(value)

	if value == "" {
		return carry, nil
	}

	if value[0] == model.TaxMarker {
		return validateTax(value, carry)
	}
	return validateStandard(value, carry)
}

func validateStandard(value string, r *model.PartialResult) (*model.PartialResult, error) {
	if len(value) > model.StandardLineLength {
		return r.Invalidate(fmt.Sprintf("line has more than %d digits", model.StandardLineLength)), nil
	}

	ok, err := checkBlocks(value, standardBlocks, checksum.Mod10, r)
	if err != nil || !ok {
		return r, err
	}

	if len(value) < model.StandardLineLength {
		r.StillValid = true
		return r, nil
	}
	return r.Finish(), nil
}

func validateTax(value string, r *model.PartialResult) (*model.PartialResult, error) {
	if len(value) > model.TaxLineLength {
		return r.Invalidate(fmt.Sprintf("tax-collection line has more than %d digits", model.TaxLineLength)), nil
	}

	if len(value) < taxSchemeDigits {
		r.StillValid = true
		return r, nil
	}

	ok, err := checkBlocks(value, taxBlocks, checksum.ForTaxValueKind(value[2]), r)
	if err != nil || !ok {
		return r, err
	}
	return r.Finish(), nil
}
