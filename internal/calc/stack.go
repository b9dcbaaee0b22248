package calc

// Stack is the operand stack of a Machine. The top is the last element.
type Stack struct {
	data []Value
}

// Push appends v on top.
func (s *Stack) Push(v Value) { s.data = append(s.data, v) }

// Pop removes and returns the top value.
func (s *Stack) Pop() (Value, error) {
	if len(s.data) == 0 {
		return nil, ErrStackUnderflow
	}
	v := s.data[len(s.data)-1]
	s.data = s.data[:len(s.data)-1]
	return v, nil
}

// Peek returns the top value without removing it.
func (s *Stack) Peek() (Value, error) {
	if len(s.data) == 0 {
		return nil, ErrStackUnderflow
	}
	return s.data[len(s.data)-1], nil
}

// Len returns the stack depth.
func (s *Stack) Len() int { return len(s.data) }

// Clear empties the stack.
func (s *Stack) Clear() { s.data = s.data[:0] }

// Items returns a copy of the stack, bottom first.
func (s *Stack) Items() []Value {
	out := make([]Value, len(s.data))
	copy(out, s.data)
	return out
}

// top returns the n topmost values, deepest first, without removing them.
func (s *Stack) top(n int) ([]Value, error) {
	if len(s.data) < n {
		return nil, ErrStackUnderflow
	}
	return s.data[len(s.data)-n:], nil
}

// replace drops the n topmost values and pushes vals.
func (s *Stack) replace(n int, vals ...Value) {
	s.data = append(s.data[:len(s.data)-n], vals...)
}
