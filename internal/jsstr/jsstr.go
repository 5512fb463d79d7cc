// Package jsstr quotes and unquotes JavaScript string literals.
package jsstr

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// ErrBadEscape is returned for malformed escape sequences.
var ErrBadEscape = errors.New("invalid escape sequence")

// Quote renders value as a string literal delimited by quote (' or ").
func Quote(value string, quote byte) string {
	var sb strings.Builder
	sb.WriteByte(quote)

	for _, r := range value {
		switch r {
		case rune(quote):
			sb.WriteByte('\\')
			sb.WriteByte(quote)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case '\b':
			sb.WriteString(`\b`)
		case '\f':
			sb.WriteString(`\f`)
		case '\v':
			sb.WriteString(`\v`)
		case '\u2028', '\u2029':
			fmt.Fprintf(&sb, `\u%04x`, r)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&sb, `\x%02x`, r)
				continue
			}
			sb.WriteRune(r)
		}
	}

	sb.WriteByte(quote)

	return sb.String()
}

// Unquote decodes a quoted string literal, including its delimiters.
func Unquote(raw string) (string, error) {
	if len(raw) < 2 || (raw[0] != '"' && raw[0] != '\'') || raw[len(raw)-1] != raw[0] {
		return "", fmt.Errorf("unquote %q: missing quotes", raw)
	}

	return Decode(raw[1 : len(raw)-1])
}

// Decode resolves the escape sequences of a string literal body.
func Decode(body string) (string, error) {
	if !strings.Contains(body, `\`) {
		return body, nil
	}

	var sb strings.Builder
	for idx := 0; idx < len(body); {
		ch := body[idx]
		if ch != '\\' {
			r, size := utf8.DecodeRuneInString(body[idx:])
			sb.WriteRune(r)
			idx += size
			continue
		}

		if idx+1 >= len(body) {
			return "", ErrBadEscape
		}

		idx++
		esc := body[idx]
		idx++
		switch esc {
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case 'b':
			sb.WriteByte('\b')
		case 'f':
			sb.WriteByte('\f')
		case 'v':
			sb.WriteByte('\v')
		case '0':
			if idx < len(body) && body[idx] >= '0' && body[idx] <= '9' {
				return "", ErrBadEscape
			}
			sb.WriteByte(0)
		case '\r':
			if idx < len(body) && body[idx] == '\n' {
				idx++
			}
		case '\n':
		case 'x':
			if idx+2 > len(body) {
				return "", ErrBadEscape
			}
			code, err := strconv.ParseUint(body[idx:idx+2], 16, 8)
			if err != nil {
				return "", ErrBadEscape
			}
			sb.WriteRune(rune(code))
			idx += 2
		case 'u':
			r, next, err := decodeUnicode(body, idx)
			if err != nil {
				return "", err
			}
			idx = next
			if utf16.IsSurrogate(r) && strings.HasPrefix(body[idx:], `\u`) {
				low, after, lowErr := decodeUnicode(body, idx+2)
				if lowErr == nil {
					if pair := utf16.DecodeRune(r, low); pair != utf8.RuneError {
						r, idx = pair, after
					}
				}
			}
			sb.WriteRune(r)
		default:
			r, size := utf8.DecodeRuneInString(body[idx-1:])
			sb.WriteRune(r)
			idx += size - 1
		}
	}

	return sb.String(), nil
}

func decodeUnicode(body string, idx int) (rune, int, error) {
	if idx < len(body) && body[idx] == '{' {
		end := strings.IndexByte(body[idx:], '}')
		if end < 0 {
			return 0, 0, ErrBadEscape
		}
		code, err := strconv.ParseUint(body[idx+1:idx+end], 16, 32)
		if err != nil || code > utf8.MaxRune {
			return 0, 0, ErrBadEscape
		}
		return rune(code), idx + end + 1, nil
	}

	if idx+4 > len(body) {
		return 0, 0, ErrBadEscape
	}
	code, err := strconv.ParseUint(body[idx:idx+4], 16, 16)
	if err != nil {
		return 0, 0, ErrBadEscape
	}

	return rune(code), idx + 4, nil
}
