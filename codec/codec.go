package codec

import (
	"errors"
	"unicode/utf16"
	"unicode/utf8"
)

// Unit is the set of supported code-unit widths. uint8 units carry
// UTF-8, uint16 units carry UTF-16 (with surrogate pairs), and int32
// units carry one code point each.
type Unit interface {
	uint8 | uint16 | int32
}

// Errors returned by codec operations.
var (
	// ErrInvalidRune indicates a value that is not a Unicode scalar
	// value (a surrogate half, a negative value, or > U+10FFFF) and
	// therefore cannot be encoded at any width.
	ErrInvalidRune = errors.New("codec: not a valid Unicode scalar value")

	// ErrMalformed indicates a code-unit sequence that does not encode
	// any code point (truncated multi-unit sequence, unpaired
	// surrogate, or out-of-range 32-bit unit).
	ErrMalformed = errors.New("codec: malformed code unit sequence")
)

// Surrogate range boundaries and the first code point needing a pair.
const (
	surr1    = 0xD800
	surr3    = 0xE000
	surrSelf = 0x10000
)

// UnitSize returns the width of one code unit in bytes.
func UnitSize[U Unit]() int {
	switch any(*new(U)).(type) {
	case uint16:
		return 2
	case int32:
		return 4
	default:
		return 1
	}
}

// MaxUnits returns the longest encoding of one code point, in units.
func MaxUnits[U Unit]() int {
	switch any(*new(U)).(type) {
	case uint16:
		return 2
	case int32:
		return 1
	default:
		return utf8.UTFMax
	}
}

// RuneLen returns the number of units needed to encode r, or
// ErrInvalidRune if r is not a Unicode scalar value.
func RuneLen[U Unit](r rune) (int, error) {
	if !utf8.ValidRune(r) {
		return 0, ErrInvalidRune
	}
	switch any(*new(U)).(type) {
	case uint16:
		if r >= surrSelf {
			return 2, nil
		}
		return 1, nil
	case int32:
		return 1, nil
	default:
		return utf8.RuneLen(r), nil
	}
}

// EncodeRune writes r into dst as 1..4 code units and returns the
// number of units written. dst must have room for MaxUnits units.
// Values that are not Unicode scalar values are rejected with
// ErrInvalidRune; no replacement character is substituted.
func EncodeRune[U Unit](dst []U, r rune) (int, error) {
	if !utf8.ValidRune(r) {
		return 0, ErrInvalidRune
	}
	switch dst := any(dst).(type) {
	case []uint8:
		return utf8.EncodeRune(dst, r), nil
	case []uint16:
		if r < surrSelf {
			dst[0] = uint16(r)
			return 1, nil
		}
		hi, lo := utf16.EncodeRune(r)
		dst[0] = uint16(hi)
		dst[1] = uint16(lo)
		return 2, nil
	case []int32:
		dst[0] = r
		return 1, nil
	}
	panic("codec: unsupported unit width")
}

// DecodeRune decodes the first code point in s and returns it together
// with the number of units it occupies. This is the forward-only
// primitive: it never looks behind the start of s.
//
// On malformed input it returns (utf8.RuneError, 1, ErrMalformed) so
// that callers choosing the replacement-character convention can still
// make progress one unit at a time. An empty s yields size 0.
func DecodeRune[U Unit](s []U) (rune, int, error) {
	if len(s) == 0 {
		return utf8.RuneError, 0, ErrMalformed
	}
	switch s := any(s).(type) {
	case []uint8:
		r, size := utf8.DecodeRune(s)
		if r == utf8.RuneError && size <= 1 {
			return utf8.RuneError, 1, ErrMalformed
		}
		return r, size, nil
	case []uint16:
		u := rune(s[0])
		switch {
		case u < surr1 || u >= surr3:
			return u, 1, nil
		case utf16.IsSurrogate(u) && len(s) >= 2:
			r := utf16.DecodeRune(u, rune(s[1]))
			if r == utf8.RuneError {
				return utf8.RuneError, 1, ErrMalformed
			}
			return r, 2, nil
		default:
			return utf8.RuneError, 1, ErrMalformed
		}
	case []int32:
		if !utf8.ValidRune(s[0]) {
			return utf8.RuneError, 1, ErrMalformed
		}
		return s[0], 1, nil
	}
	panic("codec: unsupported unit width")
}
