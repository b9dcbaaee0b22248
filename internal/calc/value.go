package calc

import (
	"fmt"

	"numera/internal/bignum"
)

// Value is an entry on the calculator stack: an integer or a fraction.
type Value interface {
	fmt.Stringer
	Text(radix int) (string, error)
	// Frac returns the value as a fraction; integers get denominator 1.
	Frac() bignum.Fraction
}

// IntValue wraps a BigInt.
type IntValue struct{ bignum.BigInt }

// Frac returns n/1.
func (v IntValue) Frac() bignum.Fraction { return bignum.FracFromInt(v.BigInt) }

// FracValue wraps a Fraction.
type FracValue struct{ bignum.Fraction }

// Frac returns the wrapped fraction.
func (v FracValue) Frac() bignum.Fraction { return v.Fraction }

// Int wraps n.
func Int(n bignum.BigInt) Value { return IntValue{n} }

// Frac wraps f.
func Frac(f bignum.Fraction) Value { return FracValue{f} }

// asInt accepts integers and integral fractions.
func asInt(v Value) (bignum.BigInt, error) {
	switch v := v.(type) {
	case IntValue:
		return v.BigInt, nil
	case FracValue:
		if n, ok := v.Int(); ok {
			return n, nil
		}
		return bignum.BigInt{}, fmt.Errorf("%w: got %s", ErrIntegerRequired, v)
	default:
		return bignum.BigInt{}, fmt.Errorf("%w: got %T", ErrIntegerRequired, v)
	}
}

func bothInts(a, b Value) (bignum.BigInt, bignum.BigInt, bool) {
	x, okA := a.(IntValue)
	y, okB := b.(IntValue)
	return x.BigInt, y.BigInt, okA && okB
}
