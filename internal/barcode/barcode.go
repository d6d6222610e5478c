// Package barcode decodes the fields of a 44-digit boleto barcode.
package barcode

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rezonia/brdoc/internal/checksum"
	money "github.com/rezonia/brdoc/internal/decimal"
	"github.com/rezonia/brdoc/internal/document"
	"github.com/rezonia/brdoc/internal/linecodec"
	"github.com/rezonia/brdoc/internal/model"
)

// Info is the decoded content of a barcode
type Info struct {
	Barcode    string           `json:"barcode" yaml:"barcode"`
	Line       string           `json:"line" yaml:"line"`
	Layout     string           `json:"layout" yaml:"layout"`
	DigitValid bool             `json:"digit_valid" yaml:"digit_valid"`
	Amount     *decimal.Decimal `json:"amount,omitempty" yaml:"amount,omitempty"`
	FreeField  string           `json:"free_field" yaml:"free_field"`

	// Bank slips
	Bank      string     `json:"bank,omitempty" yaml:"bank,omitempty"`
	Currency  string     `json:"currency,omitempty" yaml:"currency,omitempty"`
	DueFactor int        `json:"due_factor,omitempty" yaml:"due_factor,omitempty"`
	DueDate   *time.Time `json:"due_date,omitempty" yaml:"due_date,omitempty"`

	// Tax-collection slips
	Segment   string `json:"segment,omitempty" yaml:"segment,omitempty"`
	ValueKind string `json:"value_kind,omitempty" yaml:"value_kind,omitempty"`
	Company   string `json:"company,omitempty" yaml:"company,omitempty"`
}

// Parse decodes code, which may be a 44-digit barcode or a 47/48-digit
// digitable line with or without punctuation. ref picks the due factor cycle.
func Parse(code string, ref time.Time) (*Info, error) {
	bc, err := Normalize(code)
	if err != nil {
		return nil, err
	}

	line, err := linecodec.Format(bc)
	if err != nil {
		return nil, err
	}

	ok, err := VerifyDigit(bc)
	if err != nil {
		return nil, err
	}

	info := &Info{
		Barcode:    bc,
		Line:       line,
		Layout:     linecodec.LayoutOf(bc).String(),
		DigitValid: ok,
		FreeField:  bc[19:44],
	}

	if bc[0] == model.TaxMarker {
		err = parseTax(bc, info)
	} else {
		err = parseStandard(bc, ref, info)
	}
	if err != nil {
		return nil, err
	}
	return info, nil
}

// Normalize returns the 44-digit barcode of a barcode or digitable line
func Normalize(code string) (string, error) {
	digits := document.DigitsOnly(code)
	switch len(digits) {
	case 0:
		return "", model.NewFieldError(model.ErrInvalidArgument, "code", code, "value has no digits")
	case model.BarcodeLength:
		return digits, nil
	case model.StandardLineLength, model.TaxLineLength:
		return linecodec.Deformat(digits)
	default:
		return "", model.LengthError("code", digits,
			model.BarcodeLength, model.StandardLineLength, model.TaxLineLength)
	}
}

// VerifyDigit checks the general check digit of a 44-digit barcode. Bank
// slips keep it at position 5 (modulus 11, 10 and 11 become 1); tax slips
// at position 4, computed like their line blocks.
func VerifyDigit(bc string) (bool, error) {
	if len(bc) != model.BarcodeLength {
		return false, model.LengthError("barcode", bc, model.BarcodeLength)
	}

	pos := 4
	engine := checksum.BarcodeMod11
	if bc[0] == model.TaxMarker {
		pos = 3
		engine = checksum.ForTaxValueKind(bc[2])
	}

	digit, err := engine.Digit(bc[:pos] + bc[pos+1:])
	if err != nil {
		return false, err
	}
	return digit == bc[pos], nil
}

func parseStandard(bc string, ref time.Time, info *Info) error {
	info.Bank = bc[0:3]
	info.Currency = bc[3:4]

	factor := 0
	for i := 5; i < 9; i++ {
		factor = factor*10 + int(bc[i]-'0')
	}
	info.DueFactor = factor
	if due, ok := DueDate(factor, ref); ok {
		info.DueDate = &due
	}

	amount, err := money.FromCents(bc[9:19])
	if err != nil {
		return err
	}
	if money.IsPositive(amount) {
		info.Amount = &amount
	}
	return nil
}

func parseTax(bc string, info *Info) error {
	info.Segment = bc[1:2]
	info.ValueKind = bc[2:3]
	info.Company = bc[15:19]

	// 6 and 8 carry an effective amount, 7 and 9 a reference value
	if bc[2] != '6' && bc[2] != '8' {
		return nil
	}

	amount, err := money.FromCents(bc[4:15])
	if err != nil {
		return err
	}
	info.Amount = &amount
	return nil
}
