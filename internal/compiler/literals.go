package compiler

import (
	"strconv"

	"tnac/internal/value"
)

func parseInt(lexeme string, base int) value.Value {
	s := lexeme
	switch base {
	case 2:
		s = trimPrefix(s, "0b", "0B")
	case 16:
		s = trimPrefix(s, "0x", "0X")
	case 8:
		if len(s) > 1 {
			s = s[1:]
		}
	}
	if base == 0 {
		base = 10
	}
	i, err := strconv.ParseInt(s, base, 64)
	if err != nil {
		return value.UndefV()
	}
	return value.Int(i)
}

func trimPrefix(s string, prefixes ...string) string {
	for _, p := range prefixes {
		if len(s) >= len(p) && s[:len(p)] == p {
			return s[len(p):]
		}
	}
	return s
}

func parseFloat(lexeme string) value.Value {
	f, err := strconv.ParseFloat(lexeme, 64)
	if err != nil {
		return value.UndefV()
	}
	return value.Float(f)
}
