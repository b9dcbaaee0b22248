package bignum

// IntAdd adds two BigInt values.
func IntAdd(a, b BigInt) (BigInt, error) {
	switch {
	case !a.neg && b.neg:
		return IntSub(a, b.Abs())
	case a.neg && !b.neg:
		return IntSub(b, a.Abs())
	}
	sum := addLimbs(a.limbs, b.limbs)
	if len(sum) > MaxLimbs {
		return BigInt{}, ErrMaxLimbs
	}
	return newInt(a.neg, sum), nil
}

// IntSub subtracts b from a.
func IntSub(a, b BigInt) (BigInt, error) {
	switch {
	case !a.neg && b.neg:
		return IntAdd(a, b.Abs())
	case a.neg && !b.neg:
		sum, err := IntAdd(a.Abs(), b)
		if err != nil {
			return BigInt{}, err
		}
		return sum.Neg(), nil
	case a.neg && b.neg:
		return IntSub(b.Abs(), a.Abs())
	}
	if cmpLimbs(a.limbs, b.limbs) < 0 {
		return newInt(true, subLimbs(b.limbs, a.limbs)), nil
	}
	return newInt(false, subLimbs(a.limbs, b.limbs)), nil
}

// IntMul multiplies two BigInt values.
func IntMul(a, b BigInt) (BigInt, error) {
	if a.IsZero() || b.IsZero() {
		return BigInt{}, nil
	}
	if len(a.limbs)+len(b.limbs) > MaxLimbs {
		return BigInt{}, ErrMaxLimbs
	}
	return mulInt(a, b), nil
}

// mulInt multiplies without the size guard. Operands that each respect
// MaxLimbs never overflow the accumulator.
func mulInt(a, b BigInt) BigInt {
	return newInt(a.neg != b.neg, mulLimbs(a.limbs, b.limbs))
}

// IntDivMod performs truncating division with remainder.
// The quotient sign is the XOR of the operand signs; the remainder takes the
// sign of the dividend.
func IntDivMod(a, b BigInt) (q, r BigInt, err error) {
	if b.IsZero() {
		return BigInt{}, BigInt{}, ErrDivByZero
	}
	if a.IsZero() {
		return BigInt{}, BigInt{}, nil
	}
	qMag, rMag := divModLimbs(a.limbs, b.limbs)
	return newInt(a.neg != b.neg, qMag), newInt(a.neg, rMag), nil
}

// IntDiv returns the truncated quotient a/b.
func IntDiv(a, b BigInt) (BigInt, error) {
	q, _, err := IntDivMod(a, b)
	return q, err
}

// IntMod returns the remainder of a/b, signed like a.
func IntMod(a, b BigInt) (BigInt, error) {
	_, r, err := IntDivMod(a, b)
	return r, err
}

var intTwo = BigInt{limbs: []uint32{2}}

// IntPow raises base to a non-negative exponent by repeated squaring.
// Any base to the power zero is one.
func IntPow(base, exp BigInt) (BigInt, error) {
	return intPow(base, exp, nil)
}

// IntPowMod computes base^exp, reducing modulo mod after every multiply.
// Exponent zero yields one without reduction.
func IntPowMod(base, exp, mod BigInt) (BigInt, error) {
	if mod.IsZero() {
		return BigInt{}, ErrDivByZero
	}
	return intPow(base, exp, &mod)
}

func intPow(base, exp BigInt, mod *BigInt) (BigInt, error) {
	if exp.IsNegative() {
		return BigInt{}, ErrNegativeExponent
	}
	reduce := func(v BigInt) (BigInt, error) {
		if mod == nil {
			return v, nil
		}
		return IntMod(v, *mod)
	}

	result := IntOne()
	for !exp.IsZero() {
		var err error
		if exp.IsOdd() {
			result, err = IntMul(result, base)
			if err != nil {
				return BigInt{}, err
			}
			result, err = reduce(result)
			if err != nil {
				return BigInt{}, err
			}
		}
		exp, err = IntDiv(exp, intTwo)
		if err != nil {
			return BigInt{}, err
		}
		if exp.IsZero() {
			break
		}
		base, err = IntMul(base, base)
		if err != nil {
			return BigInt{}, err
		}
		base, err = reduce(base)
		if err != nil {
			return BigInt{}, err
		}
	}
	return result, nil
}
