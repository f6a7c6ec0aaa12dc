package vm

// StackOfStacks is a non-empty sequence of Stacks; the last one is
// always the active ("top") stack. It is laid out as an always-present
// initial Stack plus zero or more additional Stacks so Top never needs
// a nullable/last-of-empty check on hot paths.
type StackOfStacks struct {
	initial    *Stack
	additional []*Stack
}

func newStackOfStacks() *StackOfStacks {
	return &StackOfStacks{initial: newStack()}
}

// Top returns the currently active Stack. Never fails: count >= 1 is an
// invariant maintained by construction and by PopStack.
func (s *StackOfStacks) Top() *Stack {
	if n := len(s.additional); n > 0 {
		return s.additional[n-1]
	}
	return s.initial
}

func (s *StackOfStacks) Count() int {
	return 1 + len(s.additional)
}

// PushStack moves the last n elements of the current top Stack
// (preserving order) into a freshly created Stack pushed on top; the
// new Stack's register is empty. Fails with ErrStackUnderflow if
// n exceeds the current top's length.
func (s *StackOfStacks) PushStack(n int) error {
	top := s.Top()
	l := top.Len()
	if n > l {
		return ErrStackUnderflow
	}
	split := l - n
	moved := make([]Value, n)
	copy(moved, top.values[split:])
	top.values = top.values[:split]

	s.additional = append(s.additional, newStackFrom(moved))
	return nil
}

// PopStack removes the top Stack and appends its values (preserving
// order) onto the new top Stack; the popped Stack's register is
// discarded. If only the initial Stack exists, it is cleared instead
// of failing.
func (s *StackOfStacks) PopStack() {
	if len(s.additional) == 0 {
		s.initial.values = s.initial.values[:0]
		s.initial.register = Value{}
		s.initial.hasRegister = false
		return
	}

	last := len(s.additional) - 1
	popped := s.additional[last]
	s.additional = s.additional[:last]

	newTop := s.Top()
	newTop.values = append(newTop.values, popped.values...)
}
