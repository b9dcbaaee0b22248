package bignum

import (
	"errors"
	"fmt"
	"math"

	"fortio.org/safecast"
)

var (
	// ErrMaxLimbs indicates the numeric size limit was exceeded.
	ErrMaxLimbs = errors.New("numeric size limit exceeded")
	// ErrDivByZero indicates an attempt to divide by zero.
	ErrDivByZero = errors.New("division by zero")
	// ErrNegativeExponent is returned by IntPow and IntPowMod for exp < 0.
	ErrNegativeExponent = errors.New("negative exponent")
	// ErrValueOutOfRange indicates a value does not fit the requested native type.
	ErrValueOutOfRange = errors.New("value out of range")
	// ErrInvalidRadix indicates a radix outside [MinRadix, MaxRadix].
	ErrInvalidRadix = errors.New("invalid radix")
	// ErrEmptyInput indicates an empty string was given to a parser.
	ErrEmptyInput = errors.New("empty input")
	// ErrInvalidDigit indicates a character that is not a digit in the radix.
	ErrInvalidDigit = errors.New("invalid digit")
)

// BigInt represents a big signed integer in sign-magnitude form.
//
// The magnitude is stored as base-10^7 limbs, least significant first.
// Canonical zero is neg=false with no limbs, so the zero value is ready to use.
// A BigInt is immutable: every operation returns a new value.
type BigInt struct {
	neg   bool
	limbs []uint32
}

func newInt(neg bool, limbs []uint32) BigInt {
	limbs = trimLimbs(limbs)
	if len(limbs) == 0 {
		return BigInt{}
	}
	return BigInt{neg: neg, limbs: limbs}
}

// IntZero returns a zero BigInt.
func IntZero() BigInt { return BigInt{} }

// IntOne returns the multiplicative identity.
func IntOne() BigInt { return BigInt{limbs: []uint32{1}} }

// IntFromInt64 creates a BigInt from an int64.
func IntFromInt64(v int64) BigInt {
	if v >= 0 {
		return IntFromUint64(uint64(v))
	}
	// Work on the negative value directly so math.MinInt64 needs no special case.
	limbs := make([]uint32, 0, 3)
	for v != 0 {
		limbs = append(limbs, uint32(-(v % Base))) //nolint:gosec // G115: -(v%Base) is in [0, Base).
		v /= Base
	}
	return BigInt{neg: true, limbs: limbs}
}

// IntFromUint64 creates a BigInt from a uint64.
func IntFromUint64(v uint64) BigInt {
	if v == 0 {
		return BigInt{}
	}
	limbs := make([]uint32, 0, 3)
	for v != 0 {
		limbs = append(limbs, uint32(v%Base)) //nolint:gosec // G115: remainder is below Base.
		v /= Base
	}
	return BigInt{limbs: limbs}
}

// Limbs returns a copy of the magnitude limbs. Zero is reported as [0].
func (i BigInt) Limbs() []uint32 {
	if len(i.limbs) == 0 {
		return []uint32{0}
	}
	out := make([]uint32, len(i.limbs))
	copy(out, i.limbs)
	return out
}

// IsZero reports whether the integer is zero.
func (i BigInt) IsZero() bool { return len(i.limbs) == 0 }

// IsNegative reports whether i < 0.
func (i BigInt) IsNegative() bool { return i.neg && !i.IsZero() }

// IsPositive reports whether i > 0.
func (i BigInt) IsPositive() bool { return !i.neg && !i.IsZero() }

// IsOdd reports whether the integer is odd. Base is even, so the parity of
// the lowest limb is the parity of the whole value.
func (i BigInt) IsOdd() bool { return len(i.limbs) > 0 && i.limbs[0]&1 == 1 }

// IsEven reports whether the integer is even.
func (i BigInt) IsEven() bool { return !i.IsOdd() }

// Sign returns -1, 0 or +1.
func (i BigInt) Sign() int {
	switch {
	case i.IsZero():
		return 0
	case i.neg:
		return -1
	default:
		return 1
	}
}

// Abs returns the absolute value.
func (i BigInt) Abs() BigInt { return BigInt{limbs: i.limbs} }

// Neg returns the negated value.
func (i BigInt) Neg() BigInt {
	if i.IsZero() {
		return BigInt{}
	}
	return BigInt{neg: !i.neg, limbs: i.limbs}
}

// Cmp compares two BigInt values and returns -1, 0 or +1.
func (i BigInt) Cmp(j BigInt) int {
	if i.neg != j.neg && !(i.IsZero() && j.IsZero()) {
		if i.neg {
			return -1
		}
		return 1
	}
	cmp := cmpLimbs(i.limbs, j.limbs)
	if i.neg {
		return -cmp
	}
	return cmp
}

// Equal reports whether i == j.
func (i BigInt) Equal(j BigInt) bool { return i.Cmp(j) == 0 }

// Uint64 converts the magnitude to uint64 if it fits and i is not negative.
func (i BigInt) Uint64() (uint64, error) {
	if i.IsNegative() {
		return 0, fmt.Errorf("uint64 %s: %w", i, ErrValueOutOfRange)
	}
	mag, ok := magnitudeUint64(i.limbs)
	if !ok {
		return 0, fmt.Errorf("uint64 %s: %w", i, ErrValueOutOfRange)
	}
	return mag, nil
}

// Int64 converts BigInt to int64 if possible.
func (i BigInt) Int64() (int64, error) {
	mag, ok := magnitudeUint64(i.limbs)
	if !ok {
		return 0, fmt.Errorf("int64 %s: %w", i, ErrValueOutOfRange)
	}
	if i.neg && mag == uint64(math.MaxInt64)+1 {
		return math.MinInt64, nil
	}
	v, err := safecast.Conv[int64](mag)
	if err != nil {
		return 0, fmt.Errorf("int64 %s: %w", i, ErrValueOutOfRange)
	}
	if i.neg {
		return -v, nil
	}
	return v, nil
}

func magnitudeUint64(limbs []uint32) (uint64, bool) {
	var v uint64
	for k := len(limbs) - 1; k >= 0; k-- {
		if v > (math.MaxUint64-uint64(limbs[k]))/Base {
			return 0, false
		}
		v = v*Base + uint64(limbs[k])
	}
	return v, true
}
