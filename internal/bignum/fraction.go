package bignum

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Fraction is an exact rational number.
//
// The numerator and denominator are stored as magnitudes with the sign kept
// separately, and they are always coprime. The zero value is 0/1.
type Fraction struct {
	neg bool
	num BigInt
	den BigInt
}

// FracFromInt returns v/1.
func FracFromInt(v BigInt) Fraction {
	return Fraction{neg: v.IsNegative(), num: v.Abs(), den: IntOne()}
}

// NewFraction returns num/den reduced to lowest terms. The result is negative
// when exactly one operand is negative.
func NewFraction(num, den BigInt) (Fraction, error) {
	if den.IsZero() {
		return Fraction{}, fmt.Errorf("fraction %s/0: %w", num, ErrDivByZero)
	}
	if num.IsZero() {
		return Fraction{den: IntOne()}, nil
	}
	g := gcdLimbs(num.limbs, den.limbs)
	n, _ := divModLimbs(num.limbs, g)
	d, _ := divModLimbs(den.limbs, g)
	return Fraction{
		neg: num.neg != den.neg,
		num: newInt(false, n),
		den: newInt(false, d),
	}, nil
}

// GCD returns the greatest common divisor of |a| and |b| by the Euclidean
// algorithm. GCD(0, 0) is zero.
func GCD(a, b BigInt) BigInt {
	return newInt(false, gcdLimbs(a.limbs, b.limbs))
}

func (f Fraction) denom() BigInt {
	if f.den.IsZero() {
		return IntOne()
	}
	return f.den
}

func (f Fraction) signedNum() BigInt {
	if f.neg {
		return f.num.Neg()
	}
	return f.num
}

// Num returns the numerator magnitude.
func (f Fraction) Num() BigInt { return f.num }

// Den returns the denominator, always positive.
func (f Fraction) Den() BigInt { return f.denom() }

// Sign returns -1, 0 or +1.
func (f Fraction) Sign() int {
	switch {
	case f.num.IsZero():
		return 0
	case f.neg:
		return -1
	default:
		return 1
	}
}

// IsZero reports whether f == 0.
func (f Fraction) IsZero() bool { return f.num.IsZero() }

// IsPositive reports whether f > 0.
func (f Fraction) IsPositive() bool { return !f.neg && !f.num.IsZero() }

// IsNegative reports whether f < 0.
func (f Fraction) IsNegative() bool { return f.neg && !f.num.IsZero() }

// IsInt reports whether the denominator is one.
func (f Fraction) IsInt() bool { return f.denom().Cmp(IntOne()) == 0 }

// Int returns the signed numerator when f is an integer.
func (f Fraction) Int() (BigInt, bool) {
	if !f.IsInt() {
		return BigInt{}, false
	}
	return f.signedNum(), true
}

// Abs returns |f|.
func (f Fraction) Abs() Fraction {
	return Fraction{num: f.num, den: f.denom()}
}

// Neg returns -f.
func (f Fraction) Neg() Fraction {
	if f.IsZero() {
		return Fraction{den: IntOne()}
	}
	return Fraction{neg: !f.neg, num: f.num, den: f.denom()}
}

// Inv returns 1/f.
func (f Fraction) Inv() (Fraction, error) {
	if f.IsZero() {
		return Fraction{}, fmt.Errorf("inverse of %s: %w", f, ErrDivByZero)
	}
	return Fraction{neg: f.neg, num: f.denom(), den: f.num}, nil
}

// Cmp compares two fractions and returns -1, 0 or +1.
func (f Fraction) Cmp(g Fraction) int {
	if f.neg != g.neg && !f.num.IsZero() && !g.num.IsZero() {
		if f.neg {
			return -1
		}
		return 1
	}
	return mulInt(f.signedNum(), g.denom()).Cmp(mulInt(f.denom(), g.signedNum()))
}

// Equal reports whether f == g.
func (f Fraction) Equal(g Fraction) bool { return f.Cmp(g) == 0 }

// floatDigits is how many leading decimal digits of each part feed Float64.
const floatDigits = 20

// Float64 returns a float64 approximation. It fails with ErrValueOutOfRange
// when the result is not finite.
//
// Both parts are cut to their leading digits and the dropped powers of ten
// are applied to the quotient, so huge but close operands still divide.
func (f Fraction) Float64() (float64, error) {
	numText, numExp := leadingDigits(f.num.String())
	denText, denExp := leadingDigits(f.denom().String())
	n, err := strconv.ParseFloat(numText, 64)
	if err != nil {
		return 0, err
	}
	d, err := strconv.ParseFloat(denText, 64)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, nil
	}

	mant, exp, _ := strings.Cut(strconv.FormatFloat(n/d, 'e', -1, 64), "e")
	e, err := strconv.Atoi(exp)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(mant+"e"+strconv.Itoa(e+numExp-denExp), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, err
	}
	if math.IsInf(v, 0) {
		return 0, fmt.Errorf("float64 %s: %w", f, ErrValueOutOfRange)
	}
	if f.neg {
		v = -v
	}
	return v, nil
}

// leadingDigits returns at most floatDigits leading digits of s and the
// number of digits cut off.
func leadingDigits(s string) (string, int) {
	if len(s) <= floatDigits {
		return s, 0
	}
	return s[:floatDigits], len(s) - floatDigits
}

// FracAdd returns x + y: a/b + c/d = (a*d + b*c) / (b*d).
func FracAdd(x, y Fraction) (Fraction, error) {
	ad, err := IntMul(x.signedNum(), y.denom())
	if err != nil {
		return Fraction{}, err
	}
	bc, err := IntMul(x.denom(), y.signedNum())
	if err != nil {
		return Fraction{}, err
	}
	num, err := IntAdd(ad, bc)
	if err != nil {
		return Fraction{}, err
	}
	den, err := IntMul(x.denom(), y.denom())
	if err != nil {
		return Fraction{}, err
	}
	return NewFraction(num, den)
}

// FracSub returns x - y: a/b - c/d = (a*d - b*c) / (b*d).
func FracSub(x, y Fraction) (Fraction, error) {
	return FracAdd(x, y.Neg())
}

// FracMul returns x * y: a/b * c/d = (a*c) / (b*d).
func FracMul(x, y Fraction) (Fraction, error) {
	num, err := IntMul(x.signedNum(), y.signedNum())
	if err != nil {
		return Fraction{}, err
	}
	den, err := IntMul(x.denom(), y.denom())
	if err != nil {
		return Fraction{}, err
	}
	return NewFraction(num, den)
}

// FracDiv returns x / y: a/b / c/d = (a*d) / (b*c).
func FracDiv(x, y Fraction) (Fraction, error) {
	if y.IsZero() {
		return Fraction{}, fmt.Errorf("divide %s by %s: %w", x, y, ErrDivByZero)
	}
	num, err := IntMul(x.signedNum(), y.denom())
	if err != nil {
		return Fraction{}, err
	}
	den, err := IntMul(x.denom(), y.signedNum())
	if err != nil {
		return Fraction{}, err
	}
	return NewFraction(num, den)
}
