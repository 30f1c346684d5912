// Package program defines the executable image of an IPPcode23 program: the
// opcode set with its operand signatures, and the instruction records the
// parser produces and the machine consumes.
package program

import "strings"

// Opcode identifies an IPPcode23 instruction.
type Opcode uint8

const (
	// frames and assignment
	MOVE Opcode = iota
	CREATEFRAME
	PUSHFRAME
	POPFRAME
	DEFVAR

	// function calls
	CALL
	RETURN

	// data stack
	PUSHS
	POPS

	// arithmetic, relational, boolean and conversion
	ADD
	SUB
	MUL
	IDIV
	LT
	GT
	EQ
	AND
	OR
	NOT
	INT2CHAR
	STRI2INT

	// input/output
	READ
	WRITE

	// strings
	CONCAT
	STRLEN
	GETCHAR
	SETCHAR

	// typing
	TYPE

	// control flow
	LABEL
	JUMP
	JUMPIFEQ
	JUMPIFNEQ
	EXIT

	// debugging
	DPRINT
	BREAK

	maxOpcode = BREAK
)

var opcodeNames = [...]string{
	MOVE:        "MOVE",
	CREATEFRAME: "CREATEFRAME",
	PUSHFRAME:   "PUSHFRAME",
	POPFRAME:    "POPFRAME",
	DEFVAR:      "DEFVAR",
	CALL:        "CALL",
	RETURN:      "RETURN",
	PUSHS:       "PUSHS",
	POPS:        "POPS",
	ADD:         "ADD",
	SUB:         "SUB",
	MUL:         "MUL",
	IDIV:        "IDIV",
	LT:          "LT",
	GT:          "GT",
	EQ:          "EQ",
	AND:         "AND",
	OR:          "OR",
	NOT:         "NOT",
	INT2CHAR:    "INT2CHAR",
	STRI2INT:    "STRI2INT",
	READ:        "READ",
	WRITE:       "WRITE",
	CONCAT:      "CONCAT",
	STRLEN:      "STRLEN",
	GETCHAR:     "GETCHAR",
	SETCHAR:     "SETCHAR",
	TYPE:        "TYPE",
	LABEL:       "LABEL",
	JUMP:        "JUMP",
	JUMPIFEQ:    "JUMPIFEQ",
	JUMPIFNEQ:   "JUMPIFNEQ",
	EXIT:        "EXIT",
	DPRINT:      "DPRINT",
	BREAK:       "BREAK",
}

func (op Opcode) String() string {
	if int(op) < len(opcodeNames) {
		return opcodeNames[op]
	}
	return "<invalid>"
}

var opcodeLookup = func() map[string]Opcode {
	m := make(map[string]Opcode, len(opcodeNames))
	for op, name := range opcodeNames {
		m[name] = Opcode(op)
	}
	return m
}()

// LookupOpcode returns the opcode with the provided name, case-insensitive.
func LookupOpcode(name string) (Opcode, bool) {
	op, ok := opcodeLookup[strings.ToUpper(name)]
	return op, ok
}

// SlotKind is the syntactic class an instruction requires of one of its
// operand slots.
type SlotKind uint8

const (
	// SlotVar admits only a variable operand.
	SlotVar SlotKind = iota
	// SlotSymb admits a variable or a literal operand.
	SlotSymb
	// SlotLabel admits only a label operand.
	SlotLabel
	// SlotType admits only a type-name operand.
	SlotType
)

var signatures = [...][]SlotKind{
	MOVE:        {SlotVar, SlotSymb},
	CREATEFRAME: {},
	PUSHFRAME:   {},
	POPFRAME:    {},
	DEFVAR:      {SlotVar},
	CALL:        {SlotLabel},
	RETURN:      {},
	PUSHS:       {SlotSymb},
	POPS:        {SlotVar},
	ADD:         {SlotVar, SlotSymb, SlotSymb},
	SUB:         {SlotVar, SlotSymb, SlotSymb},
	MUL:         {SlotVar, SlotSymb, SlotSymb},
	IDIV:        {SlotVar, SlotSymb, SlotSymb},
	LT:          {SlotVar, SlotSymb, SlotSymb},
	GT:          {SlotVar, SlotSymb, SlotSymb},
	EQ:          {SlotVar, SlotSymb, SlotSymb},
	AND:         {SlotVar, SlotSymb, SlotSymb},
	OR:          {SlotVar, SlotSymb, SlotSymb},
	NOT:         {SlotVar, SlotSymb},
	INT2CHAR:    {SlotVar, SlotSymb},
	STRI2INT:    {SlotVar, SlotSymb, SlotSymb},
	READ:        {SlotVar, SlotType},
	WRITE:       {SlotSymb},
	CONCAT:      {SlotVar, SlotSymb, SlotSymb},
	STRLEN:      {SlotVar, SlotSymb},
	GETCHAR:     {SlotVar, SlotSymb, SlotSymb},
	SETCHAR:     {SlotVar, SlotSymb, SlotSymb},
	TYPE:        {SlotVar, SlotSymb},
	LABEL:       {SlotLabel},
	JUMP:        {SlotLabel},
	JUMPIFEQ:    {SlotLabel, SlotSymb, SlotSymb},
	JUMPIFNEQ:   {SlotLabel, SlotSymb, SlotSymb},
	EXIT:        {SlotSymb},
	DPRINT:      {SlotSymb},
	BREAK:       {},
}

// Signature returns the operand slot kinds of op, in argument order. The
// caller must not modify the result.
func (op Opcode) Signature() []SlotKind {
	return signatures[op]
}
