package message

import "regexp"

// Replace substitutes every match of re in the decoded body and in
// every header line with repl (with the usual $1-style expansion) and
// returns the total number of replacements made. The body is decoded
// before matching and re-encoded through SetContent afterwards, so an
// undecodable body fails the whole call before anything is modified.
func (m *Message) Replace(re *regexp.Regexp, repl []byte) (int, error) {
	content, err := m.Content(true)
	if err != nil {
		return 0, err
	}
	count := 0
	if len(content) > 0 {
		count = len(re.FindAllIndex(content, -1))
		m.SetContent(re.ReplaceAll(content, repl))
	}
	count += m.Headers.Replace(re, repl)
	return count, nil
}

// Unescape interprets backslash escape sequences in s and returns the
// literal bytes they denote: \n, \r, \t, \a, \b, \f, \v, \\, \', \",
// \xHH and up to three octal digits. Unrecognized escapes and a
// trailing backslash pass through verbatim, so regex classes such as
// \d survive when the result is used as a pattern.
func Unescape(s string) []byte {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 == len(s) {
			out = append(out, c)
			continue
		}
		i++
		switch e := s[i]; e {
		case 'n':
			out = append(out, '\n')
		case 'r':
			out = append(out, '\r')
		case 't':
			out = append(out, '\t')
		case 'a':
			out = append(out, '\a')
		case 'b':
			out = append(out, '\b')
		case 'f':
			out = append(out, '\f')
		case 'v':
			out = append(out, '\v')
		case '\\':
			out = append(out, '\\')
		case '\'':
			out = append(out, '\'')
		case '"':
			out = append(out, '"')
		case 'x':
			if i+2 < len(s) && isHexDigit(s[i+1]) && isHexDigit(s[i+2]) {
				out = append(out, hexDigit(s[i+1])<<4|hexDigit(s[i+2]))
				i += 2
			} else {
				out = append(out, '\\', 'x')
			}
		case '0', '1', '2', '3', '4', '5', '6', '7':
			v := int(e - '0')
			for n := 1; n < 3 && i+1 < len(s) && '0' <= s[i+1] && s[i+1] <= '7'; n++ {
				v = v*8 + int(s[i+1]-'0')
				i++
			}
			out = append(out, byte(v))
		default:
			out = append(out, '\\', e)
		}
	}
	return out
}

func isHexDigit(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

func hexDigit(c byte) byte {
	switch {
	case c >= 'a':
		return c - 'a' + 10
	case c >= 'A':
		return c - 'A' + 10
	default:
		return c - '0'
	}
}
