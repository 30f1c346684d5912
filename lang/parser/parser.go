// Package parser turns an IPPcode23 program document into the executable
// instruction image. The document is XML: a program root carrying the
// language tag, instruction elements carrying an opcode and a source-order
// key, and up to three typed argument sub-elements each.
//
// The parser is strict: a document that is not well-formed XML fails with
// code 31; any structural violation (wrong root or language tag, unknown
// opcode, bad arity, misnamed or duplicate argument elements, duplicate or
// non-positive order, malformed operand literal) fails with code 32.
package parser

import (
	"encoding/xml"
	"errors"
	"io"
	"strconv"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/nouzl0/ipp23/lang/errcode"
	"github.com/nouzl0/ipp23/lang/program"
)

const languageTag = "IPPcode23"

type xmlProgram struct {
	XMLName  xml.Name
	Language string    `xml:"language,attr"`
	Children []xmlNode `xml:",any"`
}

type xmlNode struct {
	XMLName xml.Name
	Order   string    `xml:"order,attr"`
	Opcode  string    `xml:"opcode,attr"`
	Args    []xmlNode `xml:",any"`
	Type    string    `xml:"type,attr"`
	Text    string    `xml:",chardata"`
}

// Parse reads the program document from r and returns the instructions
// sorted into execution order.
func Parse(r io.Reader) ([]program.Instruction, error) {
	var doc xmlProgram
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errcode.Newf(errcode.MalformedXML, "malformed program document: %s", err)
	}

	if doc.XMLName.Local != "program" {
		return nil, errcode.Newf(errcode.BadProgram, "unexpected root element %s", doc.XMLName.Local)
	}
	if !strings.EqualFold(strings.TrimSpace(doc.Language), languageTag) {
		return nil, errcode.Newf(errcode.BadProgram, "unexpected language %q", doc.Language)
	}

	insts := make([]program.Instruction, 0, len(doc.Children))
	orders := make(map[int]bool, len(doc.Children))
	for _, child := range doc.Children {
		if child.XMLName.Local != "instruction" {
			return nil, errcode.Newf(errcode.BadProgram, "unexpected element %s", child.XMLName.Local)
		}

		inst, err := parseInstruction(&child)
		if err != nil {
			return nil, err
		}
		if orders[inst.Order] {
			return nil, errcode.Newf(errcode.BadProgram, "duplicate instruction order %d", inst.Order)
		}
		orders[inst.Order] = true
		insts = append(insts, inst)
	}

	slices.SortFunc(insts, func(a, b program.Instruction) int {
		return a.Order - b.Order
	})
	return insts, nil
}

func parseInstruction(node *xmlNode) (program.Instruction, error) {
	var inst program.Instruction

	order, err := strconv.Atoi(strings.TrimSpace(node.Order))
	if err != nil || order <= 0 {
		return inst, errcode.Newf(errcode.BadProgram, "invalid instruction order %q", node.Order)
	}
	inst.Order = order

	op, ok := program.LookupOpcode(strings.TrimSpace(node.Opcode))
	if !ok {
		return inst, errcode.Newf(errcode.BadProgram, "unknown opcode %q (order %d)", node.Opcode, order)
	}
	inst.Op = op

	// argument elements may appear in any document order; slot them by name
	// and verify the result exactly matches the opcode's signature.
	var slots [3]*xmlNode
	for i := range node.Args {
		arg := &node.Args[i]
		n, err := argIndex(arg.XMLName.Local)
		if err != nil {
			return inst, errcode.Newf(errcode.BadProgram, "%s (order %d): %s", op, order, err)
		}
		if slots[n] != nil {
			return inst, errcode.Newf(errcode.BadProgram, "%s (order %d): duplicate argument element arg%d", op, order, n+1)
		}
		if len(arg.Args) > 0 {
			return inst, errcode.Newf(errcode.BadProgram, "%s (order %d): arg%d: unexpected child element", op, order, n+1)
		}
		slots[n] = arg
	}

	sig := op.Signature()
	for i, slot := range slots {
		switch {
		case i < len(sig) && slot == nil:
			return inst, errcode.Newf(errcode.BadProgram, "%s (order %d): missing argument arg%d", op, order, i+1)
		case i >= len(sig) && slot != nil:
			return inst, errcode.Newf(errcode.BadProgram, "%s (order %d): unexpected argument arg%d", op, order, i+1)
		}
	}

	inst.Args = make([]program.Arg, len(sig))
	for i, kind := range sig {
		a, err := decodeOperand(kind, slots[i].Type, slots[i].Text)
		if err != nil {
			return inst, wrapArg(err, op, order, i+1)
		}
		inst.Args[i] = a
	}
	return inst, nil
}

func argIndex(name string) (int, error) {
	switch name {
	case "arg1":
		return 0, nil
	case "arg2":
		return 1, nil
	case "arg3":
		return 2, nil
	}
	return 0, errors.New("unexpected argument element " + name)
}

func wrapArg(err error, op program.Opcode, order, n int) error {
	return errcode.Newf(errcode.CodeOf(err), "%s (order %d): arg%d: %s", op, order, n, err)
}
