package machine

import (
	"strings"

	"github.com/nouzl0/ipp23/lang/errcode"
	"github.com/nouzl0/ipp23/lang/program"
	"github.com/nouzl0/ipp23/lang/types"
)

// profile is the admissible value-type combination for an instruction's
// symbolic operands.
type profile uint8

const (
	profNone profile = iota
	profArith        // int, int
	profLogical      // bool, bool
	profNot          // bool
	profRelOrd       // both int, bool or string, same type
	profRelEq        // any types, equal or at least one nil
	profAny          // any defined value
	profInt          // int
	profStr          // string
	profStrInt       // string, int
	profIntStr       // int, string
	profStrStr       // string, string
)

var profiles = [...]profile{
	program.MOVE:      profAny,
	program.PUSHS:     profAny,
	program.ADD:       profArith,
	program.SUB:       profArith,
	program.MUL:       profArith,
	program.IDIV:      profArith,
	program.LT:        profRelOrd,
	program.GT:        profRelOrd,
	program.EQ:        profRelEq,
	program.AND:       profLogical,
	program.OR:        profLogical,
	program.NOT:       profNot,
	program.INT2CHAR:  profInt,
	program.STRI2INT:  profStrInt,
	program.WRITE:     profAny,
	program.CONCAT:    profStrStr,
	program.STRLEN:    profStr,
	program.GETCHAR:   profStrInt,
	program.SETCHAR:   profIntStr,
	program.JUMPIFEQ:  profRelEq,
	program.JUMPIFNEQ: profRelEq,
	program.EXIT:      profInt,
	program.DPRINT:    profAny,
	program.BREAK:     profNone,
}

// operand resolves a symbolic operand to a defined value. A variable operand
// goes through the frame stack, so frame existence and declaration errors
// take precedence; a declared-but-unassigned variable is a missing value.
func (m *Machine) operand(a program.Arg) (types.Value, error) {
	v, err := m.operandOrUninit(a)
	if err != nil {
		return nil, err
	}
	if !types.Defined(v) {
		return nil, errcode.Newf(errcode.NoValue, "variable %s@%s has no value", a.Scope, a.Name)
	}
	return v, nil
}

// operandOrUninit resolves a symbolic operand without requiring the value to
// be defined. Only TYPE inspects uninitialized variables.
func (m *Machine) operandOrUninit(a program.Arg) (types.Value, error) {
	switch a.Kind {
	case program.ArgLit:
		return a.Lit, nil
	case program.ArgVar:
		return m.frames.Read(a.Scope, a.Name)
	}
	return nil, errcode.Newf(errcode.Internal, "operand %s is not a symbol", a)
}

// resolveSyms resolves every symbolic operand of inst in argument order and
// verifies the values against the instruction's typing profile.
func (m *Machine) resolveSyms(inst *program.Instruction) ([]types.Value, error) {
	sig := inst.Op.Signature()
	vals := make([]types.Value, 0, len(sig))
	for i, kind := range sig {
		if kind != program.SlotSymb {
			continue
		}
		v, err := m.operand(inst.Args[i])
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
	}
	if err := checkProfile(inst.Op, vals); err != nil {
		return nil, err
	}
	return vals, nil
}

func checkProfile(op program.Opcode, vals []types.Value) error {
	ok := true
	switch profiles[op] {
	case profNone, profAny:
		// any defined value is admissible

	case profArith:
		_, ok0 := vals[0].(types.Int)
		_, ok1 := vals[1].(types.Int)
		ok = ok0 && ok1

	case profLogical:
		_, ok0 := vals[0].(types.Bool)
		_, ok1 := vals[1].(types.Bool)
		ok = ok0 && ok1

	case profNot:
		_, ok = vals[0].(types.Bool)

	case profRelOrd:
		_, ordered := vals[0].(types.Ordered)
		ok = ordered && vals[0].Type() == vals[1].Type()

	case profRelEq:
		ok = vals[0].Type() == vals[1].Type() || vals[0] == types.Nil || vals[1] == types.Nil

	case profInt:
		_, ok = vals[0].(types.Int)

	case profStr:
		_, ok = vals[0].(types.String)

	case profStrInt:
		_, ok0 := vals[0].(types.String)
		_, ok1 := vals[1].(types.Int)
		ok = ok0 && ok1

	case profIntStr:
		_, ok0 := vals[0].(types.Int)
		_, ok1 := vals[1].(types.String)
		ok = ok0 && ok1

	case profStrStr:
		_, ok0 := vals[0].(types.String)
		_, ok1 := vals[1].(types.String)
		ok = ok0 && ok1

	default:
		return errcode.Newf(errcode.Internal, "%s has no operand profile", op)
	}

	if !ok {
		return errcode.Newf(errcode.OperandType, "%s: invalid operand types (%s)", op, typeNames(vals))
	}
	return nil
}

func typeNames(vals []types.Value) string {
	names := make([]string, len(vals))
	for i, v := range vals {
		names[i] = v.Type()
	}
	return strings.Join(names, ", ")
}
