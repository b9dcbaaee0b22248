package calc

import (
	"numera/internal/bignum"
)

// operator pops arity values (deepest first in args) and pushes its results.
type operator struct {
	arity int
	fn    func(m *Machine, args []Value) ([]Value, error)
}

var words map[string]operator

func init() {
	add := arith(bignum.IntAdd, bignum.FracAdd)
	sub := arith(bignum.IntSub, bignum.FracSub)
	mul := arith(bignum.IntMul, bignum.FracMul)
	div := arith(bignum.IntDiv, bignum.FracDiv)
	mod := intBinary(bignum.IntMod)
	pow := intBinary(bignum.IntPow)

	words = map[string]operator{
		// Arithmetic
		"+": add, "add": add,
		"-": sub, "sub": sub,
		"*": mul, "mul": mul,
		"/": div, "div": div,
		"%": mod, "mod": mod,
		"^": pow, "pow": pow,

		"powmod": {3, func(_ *Machine, args []Value) ([]Value, error) {
			ints, err := allInts(args)
			if err != nil {
				return nil, err
			}
			r, err := bignum.IntPowMod(ints[0], ints[1], ints[2])
			if err != nil {
				return nil, err
			}
			return []Value{Int(r)}, nil
		}},

		"gcd": {2, func(_ *Machine, args []Value) ([]Value, error) {
			ints, err := allInts(args)
			if err != nil {
				return nil, err
			}
			return []Value{Int(bignum.GCD(ints[0], ints[1]))}, nil
		}},

		"neg": {1, func(_ *Machine, args []Value) ([]Value, error) {
			switch v := args[0].(type) {
			case IntValue:
				return []Value{Int(v.Neg())}, nil
			default:
				return []Value{Frac(v.Frac().Neg())}, nil
			}
		}},

		"abs": {1, func(_ *Machine, args []Value) ([]Value, error) {
			switch v := args[0].(type) {
			case IntValue:
				return []Value{Int(v.Abs())}, nil
			default:
				return []Value{Frac(v.Frac().Abs())}, nil
			}
		}},

		"cmp": {2, func(_ *Machine, args []Value) ([]Value, error) {
			var c int
			if a, b, ok := bothInts(args[0], args[1]); ok {
				c = a.Cmp(b)
			} else {
				c = args[0].Frac().Cmp(args[1].Frac())
			}
			return []Value{Int(bignum.IntFromInt64(int64(c)))}, nil
		}},

		// Fractions
		"frac": {2, func(_ *Machine, args []Value) ([]Value, error) {
			ints, err := allInts(args)
			if err != nil {
				return nil, err
			}
			f, err := bignum.NewFraction(ints[0], ints[1])
			if err != nil {
				return nil, err
			}
			return []Value{Frac(f)}, nil
		}},

		"inv": {1, func(_ *Machine, args []Value) ([]Value, error) {
			f, err := args[0].Frac().Inv()
			if err != nil {
				return nil, err
			}
			return []Value{Frac(f)}, nil
		}},

		"num": {1, func(_ *Machine, args []Value) ([]Value, error) {
			if v, ok := args[0].(IntValue); ok {
				return []Value{v}, nil
			}
			f := args[0].Frac()
			n := f.Num()
			if f.IsNegative() {
				n = n.Neg()
			}
			return []Value{Int(n)}, nil
		}},

		"den": {1, func(_ *Machine, args []Value) ([]Value, error) {
			return []Value{Int(args[0].Frac().Den())}, nil
		}},

		// Stack control
		"dup": {1, func(_ *Machine, args []Value) ([]Value, error) {
			return []Value{args[0], args[0]}, nil
		}},
		"swap": {2, func(_ *Machine, args []Value) ([]Value, error) {
			return []Value{args[1], args[0]}, nil
		}},
		"drop": {1, func(*Machine, []Value) ([]Value, error) {
			return nil, nil
		}},
		"clear": {0, func(m *Machine, _ []Value) ([]Value, error) {
			m.stack.Clear()
			return nil, nil
		}},

		// Printing
		"p":     printTop,
		"print": printTop,
		"f":     printStack,
		"stack": printStack,
	}
}

var printTop = operator{1, func(m *Machine, args []Value) ([]Value, error) {
	if err := m.print(args[0]); err != nil {
		return nil, err
	}
	return []Value{args[0]}, nil
}}

// printStack prints every value, top first, like dc's f.
var printStack = operator{0, func(m *Machine, _ []Value) ([]Value, error) {
	items := m.stack.Items()
	for i := len(items) - 1; i >= 0; i-- {
		if err := m.print(items[i]); err != nil {
			return nil, err
		}
	}
	return nil, nil
}}

// arith dispatches to the integer operation when both operands are
// integers and to the fraction operation otherwise.
func arith(intOp func(a, b bignum.BigInt) (bignum.BigInt, error), fracOp func(x, y bignum.Fraction) (bignum.Fraction, error)) operator {
	return operator{2, func(_ *Machine, args []Value) ([]Value, error) {
		if a, b, ok := bothInts(args[0], args[1]); ok {
			r, err := intOp(a, b)
			if err != nil {
				return nil, err
			}
			return []Value{Int(r)}, nil
		}
		r, err := fracOp(args[0].Frac(), args[1].Frac())
		if err != nil {
			return nil, err
		}
		return []Value{Frac(r)}, nil
	}}
}

func intBinary(op func(a, b bignum.BigInt) (bignum.BigInt, error)) operator {
	return operator{2, func(_ *Machine, args []Value) ([]Value, error) {
		ints, err := allInts(args)
		if err != nil {
			return nil, err
		}
		r, err := op(ints[0], ints[1])
		if err != nil {
			return nil, err
		}
		return []Value{Int(r)}, nil
	}}
}

func allInts(args []Value) ([]bignum.BigInt, error) {
	out := make([]bignum.BigInt, len(args))
	for i, v := range args {
		n, err := asInt(v)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}
