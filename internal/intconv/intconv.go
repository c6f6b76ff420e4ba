// Package intconv tests and converts between elements and their canonical
// signed 64-bit decimal byte-string form (spec §3, "integer-valued element").
package intconv

import "strconv"

// ParseCanonical reports whether b is the canonical decimal representation
// of a signed 64-bit integer: no leading zeros (except "0" itself), no
// leading '+', an optional leading '-' only for a nonzero magnitude, and no
// representation of "-0". On success it returns the parsed value.
func ParseCanonical(b []byte) (int64, bool) {
	if len(b) == 0 {
		return 0, false
	}

	s := b
	neg := false
	if s[0] == '-' {
		neg = true
		s = s[1:]
	}
	if len(s) == 0 {
		return 0, false
	}
	// No leading zeros, except the literal digit "0".
	if s[0] == '0' && len(s) > 1 {
		return 0, false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	// Reject "-0": a negative sign requires a nonzero magnitude.
	if neg && len(s) == 1 && s[0] == '0' {
		return 0, false
	}

	v, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// IsCanonical reports whether b is integer-valued per spec §3.
func IsCanonical(b []byte) bool {
	_, ok := ParseCanonical(b)
	return ok
}

// FormatCanonical renders v as its canonical decimal byte string.
func FormatCanonical(v int64) []byte {
	return strconv.AppendInt(nil, v, 10)
}

// FormatCanonicalString renders v as its canonical decimal string.
func FormatCanonicalString(v int64) string {
	return strconv.FormatInt(v, 10)
}
