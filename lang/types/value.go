// Package types defines the runtime representation of IPPcode23 values: the
// arbitrary-precision integer, the boolean, the string, nil and the
// distinguished value of a declared-but-unassigned variable.
package types

// Value is the interface implemented by any value manipulated by the machine.
type Value interface {
	// String returns the string representation of the value, in the form
	// produced by the WRITE instruction.
	String() string

	// Type returns a short string describing the value's type, in the form
	// produced by the TYPE instruction.
	Type() string
}

// An Ordered type is a type whose values are ordered: if x and y are of the
// same Ordered type, then x must be less than y, greater than y, or equal to
// y.
type Ordered interface {
	Value

	// Cmp compares two values x and y of the same ordered type. It returns
	// negative if x < y, positive if x > y, and zero if the values are equal.
	// The argument must hold the same concrete type as the receiver; the
	// machine's operand typing rules guarantee it.
	Cmp(y Value) int
}

// Defined reports whether v holds an actual value, i.e. is any variant other
// than Uninit.
func Defined(v Value) bool {
	return v != Uninit
}

// Equal reports whether two defined values are equal. Values of different
// types are never equal (the machine admits mixed types only when one side is
// Nil).
func Equal(x, y Value) bool {
	if x.Type() != y.Type() {
		return false
	}
	if o, ok := x.(Ordered); ok {
		return o.Cmp(y) == 0
	}
	// Nil is the only non-ordered defined value and equals itself.
	return true
}
