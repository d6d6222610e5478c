package linecodec

import (
	"regexp"

	"github.com/rezonia/brdoc/internal/document"
	"github.com/rezonia/brdoc/internal/model"
)

var (
	standardPattern = regexp.MustCompile(`^(\d{5})\.(\d{5}) (\d{5})\.(\d{6}) (\d{5})\.(\d{6}) (\d) (\d{14})$`)
	taxPattern      = regexp.MustCompile(`^(\d{11})-(\d) (\d{11})-(\d) (\d{11})-(\d) (\d{11})-(\d)$`)
)

// IsFormatted reports whether s is a punctuated digitable line, either
// 00000.00000 00000.000000 00000.000000 0 00000000000000 or
// 00000000000-0 00000000000-0 00000000000-0 00000000000-0.
func IsFormatted(s string) bool {
	return standardPattern.MatchString(s) || taxPattern.MatchString(s)
}

// Mask punctuates a digitable line the way it is printed on the slip.
// Separators in the input are ignored.
func Mask(line string) (string, error) {
	d := document.DigitsOnly(line)

	if d != "" && d[0] == model.TaxMarker {
		if len(d) != model.TaxLineLength {
			return "", model.LengthError("line", d, model.TaxLineLength)
		}
		return d[0:11] + "-" + d[11:12] + " " +
			d[12:23] + "-" + d[23:24] + " " +
			d[24:35] + "-" + d[35:36] + " " +
			d[36:47] + "-" + d[47:48], nil
	}

	if len(d) != model.StandardLineLength {
		return "", model.LengthError("line", d, model.StandardLineLength)
	}
	return d[0:5] + "." + d[5:10] + " " +
		d[10:15] + "." + d[15:21] + " " +
		d[21:26] + "." + d[26:32] + " " +
		d[32:33] + " " + d[33:47], nil
}
