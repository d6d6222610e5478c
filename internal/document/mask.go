package document

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/rezonia/brdoc/internal/model"
)

// Mask renders a fixed-length identifier with its punctuation. In a layout
// every '#' stands for one digit.
type Mask struct {
	name      string
	layout    string
	length    int
	formatted *regexp.Regexp
	raw       *regexp.Regexp
}

// Masks for the taxpayer identifiers
var (
	CPFMask  = newMask("cpf", "###.###.###-##")
	CNPJMask = newMask("cnpj", "##.###.###/####-##")
)

func newMask(name, layout string) *Mask {
	length := strings.Count(layout, "#")
	pattern := regexp.QuoteMeta(layout)
	pattern = strings.ReplaceAll(pattern, "#", `\d`)
	return &Mask{
		name:      name,
		layout:    layout,
		length:    length,
		formatted: regexp.MustCompile(`^` + pattern + `$`),
		raw:       regexp.MustCompile(`^\d{` + strconv.Itoa(length) + `}$`),
	}
}

// IsFormatted reports whether s already carries the mask punctuation
func (m *Mask) IsFormatted(s string) bool {
	return m.formatted.MatchString(s)
}

// CanFormat reports whether s is the bare digit string the mask expects
func (m *Mask) CanFormat(s string) bool {
	return m.raw.MatchString(s)
}

// Format punctuates s; an already formatted value is returned unchanged
func (m *Mask) Format(s string) (string, error) {
	if m.IsFormatted(s) {
		return s, nil
	}
	if !m.CanFormat(s) {
		return "", m.reject(s)
	}

	var b strings.Builder
	b.Grow(len(m.layout))
	d := 0
	for i := 0; i < len(m.layout); i++ {
		if m.layout[i] == '#' {
			b.WriteByte(s[d])
			d++
			continue
		}
		b.WriteByte(m.layout[i])
	}
	return b.String(), nil
}

// Unformat strips the punctuation of a formatted value; bare digits of the
// right length are returned unchanged
func (m *Mask) Unformat(s string) (string, error) {
	if m.CanFormat(s) {
		return s, nil
	}
	if !m.IsFormatted(s) {
		return "", m.reject(s)
	}
	return DigitsOnly(s), nil
}

func (m *Mask) reject(s string) error {
	if s == "" {
		return model.NewFieldError(model.ErrInvalidArgument, m.name, s, "value must not be empty")
	}
	if DigitsOnly(s) == s {
		return model.LengthError(m.name, s, m.length)
	}
	return model.NewFieldError(model.ErrInvalidInput, m.name, s, "expected "+m.layout+" or bare digits")
}
