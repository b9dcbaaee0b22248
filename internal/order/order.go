// Package order provides generic ordering and hashing utilities over values
// that expose a three-way comparison and a hash.
//
// bignum.BigInt and bignum.Fraction satisfy both contracts.
package order

import "slices"

// Comparable is implemented by types with a total order.
// Cmp returns a negative number, zero or a positive number.
type Comparable[T any] interface {
	Cmp(other T) int
}

// Hashable is implemented by types with a stable hash.
// Values that compare equal must hash equally.
type Hashable interface {
	Hash() uint64
}

// Compare normalises a.Cmp(b) to -1, 0 or +1.
func Compare[T Comparable[T]](a, b T) int {
	switch c := a.Cmp(b); {
	case c < 0:
		return -1
	case c > 0:
		return 1
	default:
		return 0
	}
}

// Equal reports whether a and b compare equal.
func Equal[T Comparable[T]](a, b T) bool { return a.Cmp(b) == 0 }

// Less reports whether a orders before b.
func Less[T Comparable[T]](a, b T) bool { return a.Cmp(b) < 0 }

// Max returns the largest of the given values.
func Max[T Comparable[T]](first T, rest ...T) T {
	m := first
	for _, v := range rest {
		if v.Cmp(m) > 0 {
			m = v
		}
	}
	return m
}

// Min returns the smallest of the given values.
func Min[T Comparable[T]](first T, rest ...T) T {
	m := first
	for _, v := range rest {
		if v.Cmp(m) < 0 {
			m = v
		}
	}
	return m
}

// Sort sorts s in place, ascending. Equal elements keep their order.
func Sort[T Comparable[T]](s []T) {
	slices.SortStableFunc(s, func(a, b T) int { return a.Cmp(b) })
}

// SortDesc sorts s in place, descending. Equal elements keep their order.
func SortDesc[T Comparable[T]](s []T) {
	slices.SortStableFunc(s, func(a, b T) int { return b.Cmp(a) })
}

// IsSorted reports whether s is in ascending order.
func IsSorted[T Comparable[T]](s []T) bool {
	return slices.IsSortedFunc(s, func(a, b T) int { return a.Cmp(b) })
}
