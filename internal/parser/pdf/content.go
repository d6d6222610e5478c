package pdf

import "strings"

// ContentText returns the strings shown by a decoded content stream. Pieces of
// one TJ array are joined, every other show operation ends a line.
func ContentText(content []byte) string {
	var (
		lines   []string
		current strings.Builder
		inArray bool
	)

	flush := func() {
		if s := strings.TrimSpace(current.String()); s != "" {
			lines = append(lines, s)
		}
		current.Reset()
	}

	for i := 0; i < len(content); i++ {
		switch c := content[i]; c {
		case '%':
			for i < len(content) && content[i] != '\n' && content[i] != '\r' {
				i++
			}
		case '(':
			s, end := literal(content, i+1)
			current.WriteString(s)
			i = end
			if !inArray {
				flush()
			}
		case '<':
			if i+1 < len(content) && content[i+1] == '<' {
				i++
				continue
			}
			s, end := hexString(content, i+1)
			current.WriteString(s)
			i = end
			if !inArray {
				flush()
			}
		case '[':
			inArray = true
		case ']':
			inArray = false
			flush()
		}
	}
	flush()
	return strings.Join(lines, "\n")
}

// literal decodes a (string) starting after its opening parenthesis and
// returns the index of the closing one.
func literal(b []byte, i int) (string, int) {
	var sb strings.Builder
	depth := 1
	for ; i < len(b); i++ {
		c := b[i]
		switch c {
		case '\\':
			i++
			if i >= len(b) {
				return sb.String(), i
			}
			switch e := b[i]; e {
			case 'n':
				sb.WriteByte('\n')
			case 'r':
				sb.WriteByte('\r')
			case 't':
				sb.WriteByte('\t')
			case 'b', 'f':
			case '\r', '\n':
				// line continuation
			default:
				if e >= '0' && e <= '7' {
					v := 0
					n := 0
					for ; n < 3 && i < len(b) && b[i] >= '0' && b[i] <= '7'; n++ {
						v = v*8 + int(b[i]-'0')
						i++
					}
					i--
					sb.WriteByte(byte(v))
					continue
				}
				sb.WriteByte(e)
			}
		case '(':
			depth++
			sb.WriteByte(c)
		case ')':
			depth--
			if depth == 0 {
				return sb.String(), i
			}
			sb.WriteByte(c)
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String(), i
}

// hexString decodes a <hex> string starting after '<'.
func hexString(b []byte, i int) (string, int) {
	var (
		sb   strings.Builder
		hi   = -1
		nibs = func(c byte) int {
			switch {
			case c >= '0' && c <= '9':
				return int(c - '0')
			case c >= 'a' && c <= 'f':
				return int(c-'a') + 10
			case c >= 'A' && c <= 'F':
				return int(c-'A') + 10
			}
			return -1
		}
	)
	for ; i < len(b) && b[i] != '>'; i++ {
		v := nibs(b[i])
		if v < 0 {
			continue
		}
		if hi < 0 {
			hi = v
			continue
		}
		sb.WriteByte(byte(hi<<4 | v))
		hi = -1
	}
	if hi >= 0 {
		sb.WriteByte(byte(hi << 4))
	}
	return sb.String(), i
}
