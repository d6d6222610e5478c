package processor

import (
	"regexp"
	"strings"

	"github.com/rezonia/brdoc/internal/document"
)

// Longest layouts first: alternation prefers the earliest branch.
var identifierPattern = regexp.MustCompile(`\b(?:` + strings.Join([]string{
	// tax-collection line
	`8\d{10}-?\d[ \t]*\d{11}-?\d[ \t]*\d{11}-?\d[ \t]*\d{11}-?\d`,
	// bank slip line
	`\d{5}\.?\d{5}[ \t]*\d{5}\.?\d{6}[ \t]*\d{5}\.?\d{6}[ \t]*\d[ \t]*\d{14}`,
	// bare barcode
	`\d{44}`,
	// CNPJ
	`\d{2}\.?\d{3}\.?\d{3}/?\d{4}-?\d{2}`,
	// CPF
	`\d{3}\.?\d{3}\.?\d{3}-?\d{2}`,
}, "|") + `)\b`)

// Scan finds identifier-shaped substrings of text. Results keep their
// printed punctuation and come in order of appearance, without repeats.
func Scan(text string) []string {
	matches := identifierPattern.FindAllString(text, -1)

	seen := make(map[string]bool, len(matches))
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		key := document.DigitsOnly(m)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, strings.TrimSpace(m))
	}
	return out
}
