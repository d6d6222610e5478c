package processor

import (
	"time"

	"github.com/rezonia/brdoc/internal/barcode"
	"github.com/rezonia/brdoc/internal/document"
	"github.com/rezonia/brdoc/internal/linecodec"
	"github.com/rezonia/brdoc/internal/model"
)

// Finding is the verdict on one identifier
type Finding struct {
	Value     string        `json:"value" yaml:"value"`
	Digits    string        `json:"digits" yaml:"digits"`
	Kind      model.Kind    `json:"kind" yaml:"kind"`
	Valid     bool          `json:"valid" yaml:"valid"`
	Message   string        `json:"message,omitempty" yaml:"message,omitempty"`
	Formatted string        `json:"formatted,omitempty" yaml:"formatted,omitempty"`
	Label     string        `json:"label,omitempty" yaml:"label,omitempty"`
	Barcode   *barcode.Info `json:"barcode,omitempty" yaml:"barcode,omitempty"`
}

// Check classifies value by its digits and validates it. A 44-digit value is
// treated as a barcode and checked through its general check digit; slips
// are decoded with ref choosing the due factor cycle.
func Check(value string, ref time.Time) Finding {
	digits := document.DigitsOnly(value)
	f := Finding{
		Value:  value,
		Digits: digits,
		Kind:   document.Detect(digits),
	}

	switch f.Kind {
	case model.KindUnknown:
		f.Message = "value has no digits"
	case model.KindCPF, model.KindCNPJ:
		checkTaxpayer(&f)
	default:
		if len(digits) == model.BarcodeLength {
			checkBarcode(&f, ref)
		} else {
			checkLine(&f, ref)
		}
	}
	return f
}

func checkTaxpayer(f *Finding) {
	r, err := document.For(f.Kind).ValidateIncremental(f.Digits, model.NewPartialResult())
	if err != nil {
		f.Message = err.Error()
		return
	}
	f.Valid = r.Complete
	f.Message = verdict(r)
	if !f.Valid {
		return
	}

	mask := document.CPFMask
	if f.Kind == model.KindCNPJ {
		mask = document.CNPJMask
	}
	f.Formatted, _ = mask.Format(f.Digits)
}

func checkBarcode(f *Finding, ref time.Time) {
	ok, err := barcode.VerifyDigit(f.Digits)
	if err != nil {
		f.Message = err.Error()
		return
	}
	f.Valid = ok
	if !ok {
		f.Message = "barcode check digit is invalid"
	}

	if info, err := barcode.Parse(f.Digits, ref); err == nil {
		f.Barcode = info
		f.Formatted, _ = linecodec.Mask(info.Line)
	}
}

func checkLine(f *Finding, ref time.Time) {
	r, err := document.Boleto.ValidateIncremental(f.Digits, model.NewPartialResult())
	if err != nil {
		f.Message = err.Error()
		return
	}
	f.Valid = r.Complete
	f.Message = verdict(r)
	if !f.Valid {
		return
	}

	f.Formatted, _ = linecodec.Mask(f.Digits)
	if info, err := barcode.Parse(f.Digits, ref); err == nil {
		f.Barcode = info
	}
}

func verdict(r *model.PartialResult) string {
	switch r.State() {
	case model.StateComplete:
		return ""
	case model.StateInvalid:
		return r.Message
	default:
		return "value is incomplete"
	}
}
