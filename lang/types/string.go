package types

import "strings"

// String is the type of a text string: an immutable sequence of Unicode code
// points. The machine stores strings in decoded form; escape sequences exist
// only in the program document and are resolved on ingestion.
type String string

var (
	_ Value   = String("")
	_ Ordered = String("")
)

func (s String) String() string { return string(s) }
func (s String) Type() string   { return "string" }

// Cmp implements lexicographic comparison over code points. Byte-wise
// comparison of UTF-8 text orders identically to code-point order.
func (s String) Cmp(y Value) int {
	s2 := y.(String)
	return strings.Compare(string(s), string(s2))
}

// Runes returns the sequence of code points of s. String indexing and length
// are defined over code points, not bytes.
func (s String) Runes() []rune { return []rune(s) }
