package program

import "github.com/nouzl0/ipp23/lang/types"

// Scope identifies the frame a variable operand addresses.
type Scope uint8

const (
	// GlobalFrame is created once at machine start and never destroyed.
	GlobalFrame Scope = iota
	// LocalFrame is the top of the local-frame stack.
	LocalFrame
	// TempFrame is the single, optional temporary frame.
	TempFrame
)

var scopeNames = [...]string{
	GlobalFrame: "GF",
	LocalFrame:  "LF",
	TempFrame:   "TF",
}

func (sc Scope) String() string { return scopeNames[sc] }

// LookupScope returns the scope with the provided frame prefix.
func LookupScope(prefix string) (Scope, bool) {
	switch prefix {
	case "GF":
		return GlobalFrame, true
	case "LF":
		return LocalFrame, true
	case "TF":
		return TempFrame, true
	}
	return 0, false
}

// ArgKind is the syntactic class of a decoded instruction argument.
type ArgKind uint8

const (
	// ArgVar is a variable reference, Scope@Name.
	ArgVar ArgKind = iota
	// ArgLit is a decoded literal carrying its Value.
	ArgLit
	// ArgLabel is a label name.
	ArgLabel
	// ArgType is a type name (int, string or bool).
	ArgType
)

// Arg is one decoded instruction argument.
type Arg struct {
	Kind  ArgKind
	Scope Scope       // variable scope, when Kind is ArgVar
	Name  string      // variable, label or type name
	Lit   types.Value // decoded literal, when Kind is ArgLit
}

func (a Arg) String() string {
	switch a.Kind {
	case ArgVar:
		return a.Scope.String() + "@" + a.Name
	case ArgLit:
		return a.Lit.Type() + "@" + a.Lit.String()
	default:
		return a.Name
	}
}

// Instruction is one executable instruction. Order is the source-order key
// from the program document; the parser delivers instructions already sorted
// by it, so the machine addresses them by index only.
type Instruction struct {
	Op    Opcode
	Order int
	Args  []Arg
}
