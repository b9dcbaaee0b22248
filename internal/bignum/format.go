package bignum

import (
	"fmt"
	"slices"
)

// digitAlphabet maps a digit value to its upper-case character.
const digitAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Text formats the integer in the given radix using upper-case letters for
// digits of ten and above. Negative values get a leading '-'.
func (i BigInt) Text(radix int) (string, error) {
	if !checkRadix(radix) {
		return "", fmt.Errorf("format: %w %d", ErrInvalidRadix, radix)
	}
	if i.IsZero() {
		return "0", nil
	}

	r := uint32(radix) //nolint:gosec // G115: radix is in [2, 36].
	digits := make([]byte, 0, len(i.limbs)*7+1)
	cur := i.limbs
	for len(cur) > 0 {
		var d uint32
		cur, d = divModSmall(cur, r)
		digits = append(digits, digitAlphabet[d])
	}
	if i.neg {
		digits = append(digits, '-')
	}
	slices.Reverse(digits)
	return string(digits), nil
}

// String returns the decimal representation.
func (i BigInt) String() string {
	s, _ := i.Text(10) //nolint:errcheck // radix 10 is always valid.
	return s
}

// Text formats the fraction as "n/d" in the given radix, with a leading '-'
// for negative values.
func (f Fraction) Text(radix int) (string, error) {
	num, err := f.num.Text(radix)
	if err != nil {
		return "", err
	}
	den, err := f.denom().Text(radix)
	if err != nil {
		return "", err
	}
	if f.IsNegative() {
		return "-" + num + "/" + den, nil
	}
	return num + "/" + den, nil
}

// String returns the decimal "n/d" representation.
func (f Fraction) String() string {
	s, _ := f.Text(10) //nolint:errcheck // radix 10 is always valid.
	return s
}
