package order

// Key is the constraint for Set elements.
type Key[T any] interface {
	Hashable
	Comparable[T]
}

// Set is a hash set keyed by Hash with Cmp resolving collisions.
// Items are reported in insertion order. The zero value is not usable; use NewSet.
type Set[T Key[T]] struct {
	buckets map[uint64][]int
	items   []T
}

// NewSet returns an empty set.
func NewSet[T Key[T]]() *Set[T] {
	return &Set[T]{buckets: make(map[uint64][]int)}
}

// Add inserts v and reports whether it was absent.
func (s *Set[T]) Add(v T) bool {
	h := v.Hash()
	for _, idx := range s.buckets[h] {
		if s.items[idx].Cmp(v) == 0 {
			return false
		}
	}
	s.buckets[h] = append(s.buckets[h], len(s.items))
	s.items = append(s.items, v)
	return true
}

// Has reports whether an element equal to v is present.
func (s *Set[T]) Has(v T) bool {
	for _, idx := range s.buckets[v.Hash()] {
		if s.items[idx].Cmp(v) == 0 {
			return true
		}
	}
	return false
}

// Len returns the number of distinct elements.
func (s *Set[T]) Len() int { return len(s.items) }

// Items returns the elements in insertion order.
func (s *Set[T]) Items() []T {
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

// Unique returns the distinct elements of in, keeping first occurrences.
func Unique[T Key[T]](in []T) []T {
	s := NewSet[T]()
	for _, v := range in {
		s.Add(v)
	}
	return s.items
}
