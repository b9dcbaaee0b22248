package bignum

import (
	"fmt"
	"math"
	"strings"
)

const (
	// MinRadix and MaxRadix bound the radix accepted by ParseInt and Text.
	MinRadix = 2
	MaxRadix = 36
)

// digitValues maps an ASCII byte to its digit value, or -1.
// Built once at package initialisation and never written afterwards.
var digitValues = buildDigitValues()

func buildDigitValues() [256]int8 {
	var t [256]int8
	for i := range t {
		t[i] = -1
	}
	for d := range 10 {
		t['0'+d] = int8(d) //nolint:gosec // G115: d < 10.
	}
	for d := range 26 {
		t['A'+d] = int8(d + 10) //nolint:gosec // G115: d+10 < 36.
		t['a'+d] = int8(d + 10) //nolint:gosec // G115: d+10 < 36.
	}
	return t
}

func checkRadix(radix int) bool {
	return radix >= MinRadix && radix <= MaxRadix
}

// ParseInt parses an optionally signed integer written in the given radix.
//
// The grammar is ['+'|'-'] digit+, where a digit is 0-9, A-Z or a-z
// (case-insensitive) with a value below radix.
func ParseInt(s string, radix int) (BigInt, error) {
	if !checkRadix(radix) {
		return BigInt{}, fmt.Errorf("parse %q: %w %d", s, ErrInvalidRadix, radix)
	}
	if s == "" {
		return BigInt{}, fmt.Errorf("parse %q: %w", s, ErrEmptyInput)
	}

	neg := false
	digits := s
	switch s[0] {
	case '+':
		digits = s[1:]
	case '-':
		neg = true
		digits = s[1:]
	}
	if digits == "" {
		return BigInt{}, fmt.Errorf("parse %q: %w: no digits", s, ErrInvalidDigit)
	}

	for k := range len(digits) {
		if d := digitValues[digits[k]]; d < 0 || int(d) >= radix {
			return BigInt{}, fmt.Errorf("parse %q: %w %q for radix %d", s, ErrInvalidDigit, digits[k:k+1], radix)
		}
	}
	if tooManyDigits(digits, radix) {
		return BigInt{}, fmt.Errorf("parse %.32q (%d digits): %w", s, len(digits), ErrMaxLimbs)
	}

	r := uint32(radix) //nolint:gosec // G115: radix is in [2, 36].
	var limbs []uint32
	for k := range len(digits) {
		limbs = addSmall(mulSmall(limbs, r), uint32(digitValues[digits[k]]))
		if len(limbs) > MaxLimbs {
			return BigInt{}, fmt.Errorf("parse %.32q (%d digits): %w", s, len(digits), ErrMaxLimbs)
		}
	}
	return newInt(neg, limbs), nil
}

// tooManyDigits reports whether digits, read in radix, certainly need more
// than MaxLimbs limbs. Values near the bound are left to the limb check.
func tooManyDigits(digits string, radix int) bool {
	significant := len(strings.TrimLeft(digits, "0"))
	if significant < 2 {
		return false
	}
	return float64(significant-1)*math.Log10(float64(radix)) > float64(MaxLimbs*limbDigits)
}

// MustParseInt is like ParseInt but panics on error. It is meant for
// constants and tests.
func MustParseInt(s string, radix int) BigInt {
	v, err := ParseInt(s, radix)
	if err != nil {
		panic(err)
	}
	return v
}

// ParseFraction parses "n/d" or a bare integer "n" in the given radix.
// Either part may carry a sign.
func ParseFraction(s string, radix int) (Fraction, error) {
	numText, denText, hasDen := strings.Cut(s, "/")
	num, err := ParseInt(numText, radix)
	if err != nil {
		return Fraction{}, err
	}
	if !hasDen {
		return FracFromInt(num), nil
	}
	den, err := ParseInt(denText, radix)
	if err != nil {
		return Fraction{}, err
	}
	return NewFraction(num, den)
}
