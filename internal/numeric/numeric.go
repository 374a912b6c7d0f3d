// Package numeric implements the loose integer conventions used by registry
// payloads, where numeric fields arrive as JSON numbers, decimal strings,
// hexadecimal strings, or not at all.
package numeric

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// AutoBase selects base 10 unless the token carries a 0x prefix.
const AutoBase = 0

// ParseInt extracts an integer from v using AutoBase. The boolean result is
// false when no integer could be read; callers must branch on it.
func ParseInt(v any) (int64, bool) {
	return ParseIntBase(v, AutoBase)
}

// ParseIntBase extracts an integer from v in the supplied base (2..36, or
// AutoBase). Strings are read from their leading integer prefix after
// optional whitespace and sign; trailing characters are ignored. Numbers are
// rendered to their decimal form first and then read the same way, so 1.9
// yields 1 and base 2 applied to 10 yields 2.
func ParseIntBase(v any, base int) (int64, bool) {
	if base != AutoBase && (base < 2 || base > 36) {
		return 0, false
	}
	switch value := v.(type) {
	case string:
		return parsePrefix(value, base)
	case json.Number, float64, float32, int, int32, int64:
		text, ok := numberText(value)
		if !ok {
			return 0, false
		}
		return parsePrefix(text, base)
	default:
		return 0, false
	}
}

// Text renders v the way the registry tooling stringifies loose values:
// strings verbatim, numbers in shortest decimal form, booleans as words.
// Anything else (absent, null, objects) renders as the empty string.
func Text(v any) string {
	switch value := v.(type) {
	case string:
		return value
	case bool:
		return strconv.FormatBool(value)
	case json.Number, float64, float32, int, int32, int64:
		text, _ := numberText(value)
		return text
	default:
		return ""
	}
}

func numberText(v any) (string, bool) {
	switch value := v.(type) {
	case json.Number:
		if i, err := value.Int64(); err == nil {
			return strconv.FormatInt(i, 10), true
		}
		f, err := value.Float64()
		if err != nil {
			return "", false
		}
		return floatText(f)
	case float64:
		return floatText(value)
	case float32:
		return floatText(float64(value))
	case int:
		return strconv.Itoa(value), true
	case int32:
		return strconv.FormatInt(int64(value), 10), true
	case int64:
		return strconv.FormatInt(value, 10), true
	}
	return "", false
}

func floatText(f float64) (string, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", false
	}
	return strconv.FormatFloat(f, 'f', -1, 64), true
}

func parsePrefix(raw string, base int) (int64, bool) {
	s := strings.TrimLeftFunc(raw, unicode.IsSpace)
	negative := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		negative = s[0] == '-'
		s = s[1:]
	}

	if base == AutoBase || base == 16 {
		if len(s) > 1 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
			s = s[2:]
			base = 16
		} else if base == AutoBase {
			base = 10
		}
	}

	end := 0
	for end < len(s) && digitValue(s[end]) < base {
		end++
	}
	if end == 0 {
		return 0, false
	}

	n, err := strconv.ParseUint(s[:end], base, 64)
	if err != nil {
		return 0, false
	}
	if negative {
		if n > 1<<63 {
			return 0, false
		}
		return -int64(n), true
	}
	if n > math.MaxInt64 {
		return 0, false
	}
	return int64(n), true
}

func digitValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'z':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'Z':
		return int(c-'A') + 10
	default:
		return 36
	}
}
