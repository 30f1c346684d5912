package types

// NilType is the type of nil. Its only legal value is Nil. (We represent it
// as a number, not struct{}, so that Nil may be constant.)
type NilType byte

const Nil = NilType(0)

// Nil is a Value.
var _ Value = Nil

// String is empty: WRITE prints nil as the empty string.
func (NilType) String() string { return "" }
func (NilType) Type() string   { return "nil" }

// UninitType is the type of Uninit, the distinguished value of a variable
// that has been declared but not assigned. Its only legal value is Uninit.
type UninitType byte

const Uninit = UninitType(0)

// Uninit is a Value.
var _ Value = Uninit

func (UninitType) String() string { return "" }

// Type is empty: TYPE produces the empty string for an uninitialized
// variable.
func (UninitType) Type() string { return "" }
