package bignum

// Base is the radix of a single limb.
const Base = 10_000_000

// limbDigits is the number of decimal digits held by one limb.
const limbDigits = 7

// MaxLimbs is the maximum number of limbs allowed.
//
// It also bounds the uncarried schoolbook accumulator: with both operands
// under MaxLimbs, a column sum stays below MaxLimbs*(Base-1)^2 < 2^64.
const MaxLimbs = 100_000

// Limb slices are little-endian (limbs[0] is least significant) and every
// helper returns a trimmed slice. Canonical zero is nil.

func trimLimbs(limbs []uint32) []uint32 {
	for len(limbs) > 0 && limbs[len(limbs)-1] == 0 {
		limbs = limbs[:len(limbs)-1]
	}
	if len(limbs) == 0 {
		return nil
	}
	return limbs
}

func cmpLimbs(a, b []uint32) int {
	a = trimLimbs(a)
	b = trimLimbs(b)
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	for i := len(a) - 1; i >= 0; i-- {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}
	return 0
}

func addLimbs(a, b []uint32) []uint32 {
	n := max(len(a), len(b))
	if n == 0 {
		return nil
	}
	out := make([]uint32, 0, n+1)
	var carry uint32
	for i := 0; i < n || carry != 0; i++ {
		sum := carry
		if i < len(a) {
			sum += a[i]
		}
		if i < len(b) {
			sum += b[i]
		}
		out = append(out, sum%Base)
		carry = sum / Base
	}
	return trimLimbs(out)
}

// subLimbs returns a-b. The caller guarantees a >= b.
func subLimbs(a, b []uint32) []uint32 {
	out := make([]uint32, len(a))
	var borrow int64
	for i := range a {
		diff := int64(a[i]) - borrow
		if i < len(b) {
			diff -= int64(b[i])
		}
		if diff < 0 {
			diff += Base
			borrow = 1
		} else {
			borrow = 0
		}
		out[i] = uint32(diff) //nolint:gosec // G115: diff is in [0, Base).
	}
	return trimLimbs(out)
}

func mulLimbs(a, b []uint32) []uint32 {
	a = trimLimbs(a)
	b = trimLimbs(b)
	if len(a) == 0 || len(b) == 0 {
		return nil
	}

	acc := make([]uint64, len(a)+len(b))
	for i, av := range a {
		if av == 0 {
			continue
		}
		for j, bv := range b {
			acc[i+j] += uint64(av) * uint64(bv)
		}
	}

	out := make([]uint32, len(acc))
	var carry uint64
	for k := range acc {
		cur := acc[k] + carry
		out[k] = uint32(cur % Base) //nolint:gosec // G115: remainder is below Base.
		carry = cur / Base
	}
	return trimLimbs(out)
}

// mulSmall multiplies by a single limb-sized factor (m < Base).
func mulSmall(a []uint32, m uint32) []uint32 {
	a = trimLimbs(a)
	if len(a) == 0 || m == 0 {
		return nil
	}
	if m == 1 {
		return a
	}
	out := make([]uint32, len(a)+1)
	var carry uint64
	for i, av := range a {
		prod := uint64(av)*uint64(m) + carry
		out[i] = uint32(prod % Base) //nolint:gosec // G115: remainder is below Base.
		carry = prod / Base
	}
	out[len(a)] = uint32(carry) //nolint:gosec // G115: carry is below Base.
	return trimLimbs(out)
}

func addSmall(a []uint32, v uint32) []uint32 {
	if v == 0 {
		return trimLimbs(a)
	}
	return addLimbs(a, []uint32{v % Base, v / Base})
}

// shiftLimb returns a*Base + limb.
func shiftLimb(a []uint32, limb uint32) []uint32 {
	a = trimLimbs(a)
	if len(a) == 0 {
		return trimLimbs([]uint32{limb})
	}
	out := make([]uint32, 0, len(a)+1)
	out = append(out, limb)
	return append(out, a...)
}

// divModLimbs performs long division one dividend limb at a time. Each
// quotient limb is the largest q in [0, Base-1] with b*q <= r, found by
// binary search. The caller guarantees b is non-zero.
func divModLimbs(a, b []uint32) (q, r []uint32) {
	a = trimLimbs(a)
	b = trimLimbs(b)
	if cmpLimbs(a, b) < 0 {
		return nil, a
	}

	q = make([]uint32, len(a))
	for i := len(a) - 1; i >= 0; i-- {
		r = shiftLimb(r, a[i])
		if cmpLimbs(r, b) < 0 {
			continue
		}
		lo, hi := uint32(1), uint32(Base-1)
		for lo < hi {
			mid := lo + (hi-lo+1)/2
			if cmpLimbs(mulSmall(b, mid), r) <= 0 {
				lo = mid
			} else {
				hi = mid - 1
			}
		}
		q[i] = lo
		r = subLimbs(r, mulSmall(b, lo))
	}
	return trimLimbs(q), trimLimbs(r)
}

// divModSmall divides by a single limb-sized divisor (0 < d < Base).
func divModSmall(a []uint32, d uint32) ([]uint32, uint32) {
	a = trimLimbs(a)
	if len(a) == 0 {
		return nil, 0
	}
	out := make([]uint32, len(a))
	var rem uint64
	for i := len(a) - 1; i >= 0; i-- {
		cur := rem*Base + uint64(a[i])
		out[i] = uint32(cur / uint64(d)) //nolint:gosec // G115: quotient limb is below Base.
		rem = cur % uint64(d)
	}
	return trimLimbs(out), uint32(rem) //nolint:gosec // G115: remainder is below d.
}

func gcdLimbs(a, b []uint32) []uint32 {
	a = trimLimbs(a)
	b = trimLimbs(b)
	for len(b) != 0 {
		_, r := divModLimbs(a, b)
		a, b = b, r
	}
	return a
}
