package document

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/rezonia/brdoc/internal/model"
)

// DigitsOnly drops every character that is not an ASCII digit
func DigitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// clean removes whitespace and the given separators, failing on any other
// non-digit character.
func clean(field, s, separators string) (string, error) {
	var b strings.Builder
	b.Grow(len(s))
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case unicode.IsSpace(r) || strings.ContainsRune(separators, r):
		default:
			return "", model.NewFieldError(model.ErrInvalidInput, field, s,
				fmt.Sprintf("unexpected character %q at position %d", r, i))
		}
	}
	return b.String(), nil
}

func allSameDigit(s string) bool {
	if s == "" {
		return false
	}
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return true
}
