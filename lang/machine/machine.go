// Package machine implements the IPPcode23 virtual machine: the typed value
// frames, the data and call stacks, the label index and the instruction
// dispatch loop. All machine state is owned by the Machine and mutated only
// by its Run loop; execution is strictly sequential.
package machine

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/nouzl0/ipp23/lang/errcode"
	"github.com/nouzl0/ipp23/lang/program"
	"github.com/nouzl0/ipp23/lang/types"
)

// Tracer observes the machine as it executes. Trace is called once after
// each successfully executed instruction, with the number of initialized
// variables live across all frames at that point.
type Tracer interface {
	Trace(inst *program.Instruction, initialized int)
}

// Machine executes one IPPcode23 program.
type Machine struct {
	// Stdout, Stderr and Stdin are the standard I/O abstractions for the
	// machine. If nil, os.Stdout, os.Stderr and os.Stdin are used,
	// respectively. WRITE targets Stdout; DPRINT and BREAK target Stderr;
	// READ consumes lines from Stdin.
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader

	// Tracer is an optional observer of executed instructions.
	Tracer Tracer

	prog   []program.Instruction
	labels *LabelIndex
	frames *FrameStack
	data   *DataStack
	calls  *CallStack

	stdout io.Writer
	stderr io.Writer
	in     *bufio.Reader

	ip    int
	steps uint64
}

// New returns a machine ready to execute the provided instructions.
func New(prog []program.Instruction) *Machine {
	return &Machine{
		prog:   prog,
		frames: NewFrameStack(),
		data:   &DataStack{},
		calls:  &CallStack{},
	}
}

func (m *Machine) init() {
	if m.Stdout != nil {
		m.stdout = m.Stdout
	} else {
		m.stdout = os.Stdout
	}
	if m.Stderr != nil {
		m.stderr = m.Stderr
	} else {
		m.stderr = os.Stderr
	}
	if m.Stdin != nil {
		m.in = bufio.NewReader(m.Stdin)
	} else {
		m.in = bufio.NewReader(os.Stdin)
	}
}

// Run executes the program until EXIT or the end of the instruction
// sequence, and returns the process exit code. A fatal condition terminates
// execution with a zero code and an error carrying the corresponding
// errcode.Code. Cancelling ctx aborts execution between instructions; READ
// is the only operation that may block.
func (m *Machine) Run(ctx context.Context) (int, error) {
	m.init()

	labels, err := BuildLabelIndex(m.prog)
	if err != nil {
		return 0, err
	}
	m.labels = labels

	for m.ip = 0; m.ip < len(m.prog); {
		if err := ctx.Err(); err != nil {
			return 0, errcode.Newf(errcode.Internal, "execution cancelled: %s", err)
		}

		inst := &m.prog[m.ip]
		next := m.ip + 1

		switch inst.Op {
		case program.MOVE:
			vals, err := m.resolveSyms(inst)
			if err != nil {
				return 0, err
			}
			if err := m.assign(inst.Args[0], vals[0]); err != nil {
				return 0, err
			}

		case program.DEFVAR:
			a := inst.Args[0]
			if err := m.frames.Declare(a.Scope, a.Name); err != nil {
				return 0, err
			}

		case program.CREATEFRAME:
			m.frames.CreateTemp()

		case program.PUSHFRAME:
			if err := m.frames.PushFrame(); err != nil {
				return 0, err
			}

		case program.POPFRAME:
			if err := m.frames.PopFrame(); err != nil {
				return 0, err
			}

		case program.CALL:
			idx, err := m.labels.Lookup(inst.Args[0].Name)
			if err != nil {
				return 0, err
			}
			m.calls.Push(m.ip)
			next = idx

		case program.RETURN:
			idx, err := m.calls.Pop()
			if err != nil {
				return 0, err
			}
			next = idx + 1

		case program.PUSHS:
			vals, err := m.resolveSyms(inst)
			if err != nil {
				return 0, err
			}
			m.data.Push(vals[0])

		case program.POPS:
			v, err := m.data.Pop()
			if err != nil {
				return 0, err
			}
			if err := m.assign(inst.Args[0], v); err != nil {
				return 0, err
			}

		case program.ADD, program.SUB, program.MUL, program.IDIV:
			vals, err := m.resolveSyms(inst)
			if err != nil {
				return 0, err
			}
			x, y := vals[0].(types.Int), vals[1].(types.Int)
			var z types.Int
			switch inst.Op {
			case program.ADD:
				z = x.Add(y)
			case program.SUB:
				z = x.Sub(y)
			case program.MUL:
				z = x.Mul(y)
			case program.IDIV:
				if y.Sign() == 0 {
					return 0, errcode.New(errcode.OperandValue, "division by zero")
				}
				z = x.Div(y)
			}
			if err := m.assign(inst.Args[0], z); err != nil {
				return 0, err
			}

		case program.LT, program.GT:
			vals, err := m.resolveSyms(inst)
			if err != nil {
				return 0, err
			}
			c := vals[0].(types.Ordered).Cmp(vals[1])
			res := types.Bool(c < 0)
			if inst.Op == program.GT {
				res = types.Bool(c > 0)
			}
			if err := m.assign(inst.Args[0], res); err != nil {
				return 0, err
			}

		case program.EQ:
			vals, err := m.resolveSyms(inst)
			if err != nil {
				return 0, err
			}
			if err := m.assign(inst.Args[0], types.Bool(types.Equal(vals[0], vals[1]))); err != nil {
				return 0, err
			}

		case program.AND, program.OR:
			vals, err := m.resolveSyms(inst)
			if err != nil {
				return 0, err
			}
			x, y := vals[0].(types.Bool), vals[1].(types.Bool)
			z := x && y
			if inst.Op == program.OR {
				z = x || y
			}
			if err := m.assign(inst.Args[0], z); err != nil {
				return 0, err
			}

		case program.NOT:
			vals, err := m.resolveSyms(inst)
			if err != nil {
				return 0, err
			}
			if err := m.assign(inst.Args[0], !vals[0].(types.Bool)); err != nil {
				return 0, err
			}

		case program.INT2CHAR:
			vals, err := m.resolveSyms(inst)
			if err != nil {
				return 0, err
			}
			cp, ok := vals[0].(types.Int).Int64()
			if !ok || cp < 0 || cp > utf8.MaxRune || !utf8.ValidRune(rune(cp)) {
				return 0, errcode.Newf(errcode.StringOp, "invalid code point %s", vals[0])
			}
			if err := m.assign(inst.Args[0], types.String(rune(cp))); err != nil {
				return 0, err
			}

		case program.STRI2INT, program.GETCHAR:
			vals, err := m.resolveSyms(inst)
			if err != nil {
				return 0, err
			}
			runes := vals[0].(types.String).Runes()
			idx, ok := vals[1].(types.Int).Int64()
			if !ok || idx < 0 || idx >= int64(len(runes)) {
				return 0, errcode.Newf(errcode.StringOp, "string index %s out of range", vals[1])
			}
			var res types.Value
			if inst.Op == program.STRI2INT {
				res = types.MakeInt(int64(runes[idx]))
			} else {
				res = types.String(runes[idx])
			}
			if err := m.assign(inst.Args[0], res); err != nil {
				return 0, err
			}

		case program.SETCHAR:
			cur, err := m.operand(inst.Args[0])
			if err != nil {
				return 0, err
			}
			vals, err := m.resolveSyms(inst)
			if err != nil {
				return 0, err
			}
			dst, ok := cur.(types.String)
			if !ok {
				return 0, errcode.Newf(errcode.OperandType, "SETCHAR: destination holds %s, not string", cur.Type())
			}
			runes := dst.Runes()
			src := vals[1].(types.String).Runes()
			idx, fits := vals[0].(types.Int).Int64()
			if !fits || idx < 0 || idx >= int64(len(runes)) || len(src) == 0 {
				return 0, errcode.Newf(errcode.StringOp, "SETCHAR: no character to set at index %s", vals[0])
			}
			runes[idx] = src[0]
			if err := m.assign(inst.Args[0], types.String(runes)); err != nil {
				return 0, err
			}

		case program.READ:
			v, err := m.read(inst.Args[1].Name)
			if err != nil {
				return 0, err
			}
			if err := m.assign(inst.Args[0], v); err != nil {
				return 0, err
			}

		case program.WRITE, program.DPRINT:
			vals, err := m.resolveSyms(inst)
			if err != nil {
				return 0, err
			}
			w := m.stdout
			if inst.Op == program.DPRINT {
				w = m.stderr
			}
			fmt.Fprint(w, vals[0].String())

		case program.CONCAT:
			vals, err := m.resolveSyms(inst)
			if err != nil {
				return 0, err
			}
			x, y := vals[0].(types.String), vals[1].(types.String)
			if err := m.assign(inst.Args[0], x+y); err != nil {
				return 0, err
			}

		case program.STRLEN:
			vals, err := m.resolveSyms(inst)
			if err != nil {
				return 0, err
			}
			n := utf8.RuneCountInString(string(vals[0].(types.String)))
			if err := m.assign(inst.Args[0], types.MakeInt(int64(n))); err != nil {
				return 0, err
			}

		case program.TYPE:
			v, err := m.operandOrUninit(inst.Args[1])
			if err != nil {
				return 0, err
			}
			if err := m.assign(inst.Args[0], types.String(v.Type())); err != nil {
				return 0, err
			}

		case program.LABEL:
			// indexed in the pre-execution pass

		case program.JUMP:
			idx, err := m.labels.Lookup(inst.Args[0].Name)
			if err != nil {
				return 0, err
			}
			next = idx

		case program.JUMPIFEQ, program.JUMPIFNEQ:
			// the label must exist whether or not the jump is taken
			idx, err := m.labels.Lookup(inst.Args[0].Name)
			if err != nil {
				return 0, err
			}
			vals, err := m.resolveSyms(inst)
			if err != nil {
				return 0, err
			}
			if types.Equal(vals[0], vals[1]) == (inst.Op == program.JUMPIFEQ) {
				next = idx
			}

		case program.EXIT:
			vals, err := m.resolveSyms(inst)
			if err != nil {
				return 0, err
			}
			code, ok := vals[0].(types.Int).Int64()
			if !ok || code < 0 || code > 49 {
				return 0, errcode.Newf(errcode.OperandValue, "exit code %s out of range [0,49]", vals[0])
			}
			m.trace(inst)
			return int(code), nil

		case program.BREAK:
			m.dumpState(inst)

		default:
			return 0, errcode.Newf(errcode.Internal, "unimplemented opcode %s", inst.Op)
		}

		m.trace(inst)
		m.ip = next
	}
	return 0, nil
}

func (m *Machine) assign(dst program.Arg, v types.Value) error {
	return m.frames.Assign(dst.Scope, dst.Name, v)
}

func (m *Machine) trace(inst *program.Instruction) {
	m.steps++
	if m.Tracer != nil {
		m.Tracer.Trace(inst, m.frames.Initialized())
	}
}

// read consumes one line from the input stream, stripping the trailing
// newline, and converts it to the requested type. EOF and a type-invalid
// input both produce Nil, except that a bool read of anything but the token
// "true" (case-insensitive) produces false.
func (m *Machine) read(typeName string) (types.Value, error) {
	line, err := m.in.ReadString('\n')
	if line == "" && err != nil {
		return types.Nil, nil
	}
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")

	switch typeName {
	case "int":
		i, ok := types.ParseInt(line)
		if !ok {
			return types.Nil, nil
		}
		return i, nil
	case "bool":
		return types.Bool(strings.EqualFold(line, "true")), nil
	case "string":
		return types.String(line), nil
	}
	return nil, errcode.Newf(errcode.Internal, "unknown read type %q", typeName)
}

// dumpState writes the diagnostic state of the machine to the diagnostic
// stream: position, executed-instruction count, frames and stack depths.
func (m *Machine) dumpState(inst *program.Instruction) {
	fmt.Fprintf(m.stderr, "BREAK at instruction %d (order %d), %d instructions executed\n", m.ip, inst.Order, m.steps)
	m.dumpFrame("GF", m.frames.global)
	m.dumpFrame("TF", m.frames.temp)
	if n := m.frames.Depth(); n > 0 {
		m.dumpFrame("LF", m.frames.locals[n-1])
		fmt.Fprintf(m.stderr, "local frame stack depth: %d\n", n)
	} else {
		m.dumpFrame("LF", nil)
	}
	fmt.Fprintf(m.stderr, "data stack: %d value(s), call stack: %d address(es)\n", m.data.Len(), m.calls.Len())
}

func (m *Machine) dumpFrame(name string, f *Frame) {
	if f == nil {
		fmt.Fprintf(m.stderr, "%s: <none>\n", name)
		return
	}
	fmt.Fprintf(m.stderr, "%s:", name)
	f.Range(func(name string, v types.Value) bool {
		if types.Defined(v) {
			fmt.Fprintf(m.stderr, " %s=%s(%s)", name, v.Type(), v)
		} else {
			fmt.Fprintf(m.stderr, " %s=<uninit>", name)
		}
		return false
	})
	fmt.Fprintln(m.stderr)
}
