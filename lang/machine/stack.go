package machine

import (
	"github.com/nouzl0/ipp23/lang/errcode"
	"github.com/nouzl0/ipp23/lang/types"
)

// DataStack is the LIFO of values used by PUSHS and POPS. Values keep their
// type across the stack.
type DataStack struct {
	values []types.Value
}

// Push pushes v on top of the data stack.
func (s *DataStack) Push(v types.Value) {
	s.values = append(s.values, v)
}

// Pop pops the value on top of the data stack and returns it.
func (s *DataStack) Pop() (types.Value, error) {
	if len(s.values) == 0 {
		return nil, errcode.New(errcode.NoValue, "data stack is empty")
	}
	v := s.values[len(s.values)-1]
	s.values = s.values[:len(s.values)-1]
	return v, nil
}

// Len returns the number of stacked values.
func (s *DataStack) Len() int { return len(s.values) }

// CallStack is the LIFO of return addresses used by CALL and RETURN. CALL
// pushes the index of the CALL instruction itself; RETURN resumes at the
// popped index plus one.
type CallStack struct {
	indexes []int
}

// Push pushes the instruction index i on top of the call stack.
func (s *CallStack) Push(i int) {
	s.indexes = append(s.indexes, i)
}

// Pop pops the instruction index on top of the call stack and returns it.
func (s *CallStack) Pop() (int, error) {
	if len(s.indexes) == 0 {
		return 0, errcode.New(errcode.NoValue, "call stack is empty")
	}
	i := s.indexes[len(s.indexes)-1]
	s.indexes = s.indexes[:len(s.indexes)-1]
	return i, nil
}

// Len returns the number of stacked return addresses.
func (s *CallStack) Len() int { return len(s.indexes) }
