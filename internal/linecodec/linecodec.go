// Package linecodec converts boleto barcodes (44 digits) to digitable lines
// (47 or 48 digits) and back.
//
// A barcode starting with 8 is a tax-collection slip: four 11-digit blocks,
// each followed by its check digit. Any other barcode is a bank slip whose
// fields are reordered before three Mod10 check digits are inserted.
package linecodec

import (
	"fmt"
	"strings"

	"github.com/rezonia/brdoc/internal/checksum"
	"github.com/rezonia/brdoc/internal/document"
	"github.com/rezonia/brdoc/internal/model"
)

// Layout is the block arrangement of a boleto representation
type Layout int

const (
	// LayoutStandard is the bank slip layout: 44 barcode / 47 line digits
	LayoutStandard Layout = iota
	// LayoutTax is the tax-collection layout: 44 barcode / 48 line digits
	LayoutTax
)

func (l Layout) String() string {
	if l == LayoutTax {
		return "tax"
	}
	return "standard"
}

// LineLength returns the digitable line length of the layout
func (l Layout) LineLength() int {
	if l == LayoutTax {
		return model.TaxLineLength
	}
	return model.StandardLineLength
}

// LayoutOf picks the layout from the first digit of s
func LayoutOf(s string) Layout {
	digits := document.DigitsOnly(s)
	if digits != "" && digits[0] == model.TaxMarker {
		return LayoutTax
	}
	return LayoutStandard
}

// Barcode field boundaries of a bank slip: bank+currency, general digit +
// due factor + amount, then the 25-digit free field in three parts.
var barcodeCuts = []int{0, 4, 19, 24, 34, 44}

// Line field boundaries of a bank slip once the barcode fields are
// reordered to 1, 3, 4, 5, 2.
var lineCuts = []int{0, 9, 19, 29, 44}

const taxBlockLength = 11

// Format turns a 44-digit barcode into its digitable line. The input is
// sliced as is; callers strip separators first.
func Format(barcode string) (string, error) {
	if len(barcode) != model.BarcodeLength {
		return "", model.LengthError("barcode", barcode, model.BarcodeLength)
	}
	for i := 0; i < len(barcode); i++ {
		if barcode[i] < '0' || barcode[i] > '9' {
			return "", model.NewFieldError(model.ErrInvalidInput, "barcode", barcode,
				fmt.Sprintf("unexpected character %q at position %d", barcode[i], i))
		}
	}

	if barcode[0] == model.TaxMarker {
		return formatTax(barcode)
	}
	return formatStandard(barcode)
}

func formatTax(barcode string) (string, error) {
	// the third digit picks the block checksum: 6 and 7 use Mod10, 8 and 9 Mod11
	engine := checksum.ForTaxValueKind(barcode[2])

	var b strings.Builder
	b.Grow(model.TaxLineLength)
	for i := 0; i < model.BarcodeLength; i += taxBlockLength {
		block := barcode[i : i+taxBlockLength]
		digit, err := engine.Compute(block)
		if err != nil {
			return "", err
		}
		b.WriteString(block)
		b.WriteString(digit)
	}
	return b.String(), nil
}

func formatStandard(barcode string) (string, error) {
	f := split(barcode, barcodeCuts)
	ordered := f[0] + f[2] + f[3] + f[4] + f[1]

	blocks := split(ordered, lineCuts)

	var b strings.Builder
	b.Grow(model.StandardLineLength)
	for i, block := range blocks {
		b.WriteString(block)
		if i == len(blocks)-1 {
			break
		}
		digit, err := checksum.Mod10.Compute(block)
		if err != nil {
			return "", err
		}
		b.WriteString(digit)
	}
	return b.String(), nil
}

// Deformat turns a digitable line back into its 44-digit barcode. Non-digits
// are stripped first; the layout is taken from the first remaining digit.
// The embedded check digits are dropped, not verified.
func Deformat(line string) (string, error) {
	if line == "" {
		return "", model.NewFieldError(model.ErrInvalidArgument, "line", line, "value must not be empty")
	}

	digits := document.DigitsOnly(line)
	if digits == "" {
		return "", model.NewFieldError(model.ErrInvalidArgument, "line", line, "value has no digits")
	}

	if digits[0] == model.TaxMarker {
		if len(digits) != model.TaxLineLength {
			return "", model.LengthError("line", digits, model.TaxLineLength)
		}
		return digits[0:11] + digits[12:23] + digits[24:35] + digits[36:47], nil
	}

	if len(digits) != model.StandardLineLength {
		return "", model.LengthError("line", digits, model.StandardLineLength)
	}

	ordered := digits[0:9] + digits[10:20] + digits[21:31] + digits[32:47]
	f := split(ordered, []int{0, 4, 9, 19, 29, 44})
	// fields are 1, 3, 4, 5, 2 in line order
	return f[0] + f[4] + f[1] + f[2] + f[3], nil
}

// CanFormat reports whether s holds exactly 44 digits once separators are dropped
func CanFormat(s string) bool {
	return len(document.DigitsOnly(s)) == model.BarcodeLength
}

func split(s string, cuts []int) []string {
	parts := make([]string, 0, len(cuts)-1)
	for i := 1; i < len(cuts); i++ {
		parts = append(parts, s[cuts[i-1]:cuts[i]])
	}
	return parts
}
