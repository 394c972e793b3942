package cpu

// Stack is the operand stack: a LIFO of signed 64-bit integers with no
// fixed depth limit.
type Stack struct {
	Data []int64
}

func (s *Stack) Push(value int64) {
	s.Data = append(s.Data, value)
}

func (s *Stack) Pop() (value int64, ok bool) {
	value, ok = s.Peek()
	if ok {
		s.Data = s.Data[:len(s.Data)-1]
	}
	return
}

// Pop2 pops the top value as b and the next as a; a was pushed before b.
func (s *Stack) Pop2() (a, b int64, ok bool) {
	if len(s.Data) < 2 {
		return
	}
	b, _ = s.Pop()
	a, _ = s.Pop()
	ok = true
	return
}

func (s *Stack) Peek() (value int64, ok bool) {
	if s.Empty() {
		return
	}

	return s.Data[len(s.Data)-1], true
}

func (s *Stack) Empty() bool {
	return len(s.Data) == 0
}

func (s *Stack) Depth() int {
	return len(s.Data)
}

func (s *Stack) Reset() {
	if len(s.Data) > 0 {
		s.Data = s.Data[:0]
	}
}
