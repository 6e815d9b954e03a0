package parser

import (
	"fmt"
	"strings"

	"github.com/raymyers/cparse/pkg/ast"
)

// decodeInteger splits an integer constant spelling into base, digits and
// suffix.
func decodeInteger(s string) (*ast.Integer, error) {
	n := &ast.Integer{Base: ast.BaseDecimal}
	body := s
	switch {
	case hasPrefixFold(s, "0x"):
		n.Base, body = ast.BaseHexadecimal, s[2:]
	case hasPrefixFold(s, "0b"):
		n.Base, body = ast.BaseBinary, s[2:]
	case len(s) > 1 && s[0] == '0' && isDecimalDigit(s[1]):
		n.Base, body = ast.BaseOctal, s[1:]
	}

	end := 0
	for end < len(body) && isDigitOf(body[end], n.Base) {
		end++
	}
	if end == 0 {
		return nil, fmt.Errorf("invalid integer constant %q", s)
	}
	n.Number = body[:end]

	suffix, err := decodeIntegerSuffix(body[end:])
	if err != nil {
		return nil, fmt.Errorf("integer constant %q: %w", s, err)
	}
	n.Suffix = suffix
	return n, nil
}

func decodeIntegerSuffix(s string) (ast.IntegerSuffix, error) {
	var suf ast.IntegerSuffix
	var seenSize bool
	for i := 0; i < len(s); {
		switch c := s[i]; c {
		case 'u', 'U':
			if suf.Unsigned {
				return suf, fmt.Errorf("invalid suffix %q", s)
			}
			suf.Unsigned = true
			i++
		case 'l', 'L':
			if seenSize {
				return suf, fmt.Errorf("invalid suffix %q", s)
			}
			seenSize = true
			if i+1 < len(s) && s[i+1] == c {
				suf.Size = ast.SizeLongLong
				i += 2
			} else {
				suf.Size = ast.SizeLong
				i++
			}
		case 'i', 'I', 'j', 'J':
			if suf.Imaginary {
				return suf, fmt.Errorf("invalid suffix %q", s)
			}
			suf.Imaginary = true
			i++
		default:
			return suf, fmt.Errorf("invalid suffix %q", s)
		}
	}
	return suf, nil
}

// decodeFloat splits a floating constant spelling into base, number and
// suffix. Hexadecimal constants must carry a binary exponent.
func decodeFloat(s string) (*ast.Float, error) {
	f := &ast.Float{Base: ast.FloatDecimal}
	body := s
	hex := hasPrefixFold(s, "0x")
	if hex {
		f.Base, body = ast.FloatHexadecimal, s[2:]
	}
	isMantissa := isDecimalDigit
	exponent := byte('e')
	if hex {
		isMantissa = isHexDigit
		exponent = 'p'
	}

	i, digits := 0, 0
	for i < len(body) && isMantissa(body[i]) {
		i++
		digits++
	}
	if i < len(body) && body[i] == '.' {
		i++
		for i < len(body) && isMantissa(body[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return nil, fmt.Errorf("invalid floating constant %q", s)
	}

	if i < len(body) && lower(body[i]) == exponent {
		i++
		if i < len(body) && (body[i] == '+' || body[i] == '-') {
			i++
		}
		start := i
		for i < len(body) && isDecimalDigit(body[i]) {
			i++
		}
		if i == start {
			return nil, fmt.Errorf("floating constant %q: missing exponent digits", s)
		}
	} else if hex {
		return nil, fmt.Errorf("hexadecimal floating constant %q requires an exponent", s)
	}
	f.Number = body[:i]

	suffix, err := decodeFloatSuffix(body[i:])
	if err != nil {
		return nil, fmt.Errorf("floating constant %q: %w", s, err)
	}
	f.Suffix = suffix
	return f, nil
}

func decodeFloatSuffix(s string) (ast.FloatSuffix, error) {
	var suf ast.FloatSuffix
	var seenFormat bool
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case 'f', 'F', 'l', 'L':
			if seenFormat {
				return suf, fmt.Errorf("invalid suffix %q", s)
			}
			seenFormat = true
			suf.Format = ast.FormatFloat
			if lower(s[i]) == 'l' {
				suf.Format = ast.FormatLongDouble
			}
		case 'i', 'I', 'j', 'J':
			if suf.Imaginary {
				return suf, fmt.Errorf("invalid suffix %q", s)
			}
			suf.Imaginary = true
		default:
			return suf, fmt.Errorf("invalid suffix %q", s)
		}
	}
	return suf, nil
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

func isDigitOf(c byte, base ast.IntegerBase) bool {
	switch base {
	case ast.BaseHexadecimal:
		return isHexDigit(c)
	case ast.BaseOctal:
		return c >= '0' && c <= '7'
	case ast.BaseBinary:
		return c == '0' || c == '1'
	}
	return isDecimalDigit(c)
}

func isDecimalDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHexDigit(c byte) bool {
	return isDecimalDigit(c) || (lower(c) >= 'a' && lower(c) <= 'f')
}

func lower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + 'a' - 'A'
	}
	return c
}
