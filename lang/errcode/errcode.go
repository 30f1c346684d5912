// Package errcode defines the fatal error taxonomy of the interpreter. Every
// fatal condition carries exactly one Code, and the process exits with that
// code's numeric value.
package errcode

import (
	"errors"
	"fmt"
)

// Code identifies a class of fatal error. The numeric value of a Code is the
// process exit code.
type Code int

const (
	// Usage is a missing or invalid command-line argument.
	Usage Code = 10
	// InputFile is a failure to open an input file.
	InputFile Code = 11
	// OutputFile is a failure to open an output file.
	OutputFile Code = 12

	// MalformedXML is a program document that is not well-formed XML.
	MalformedXML Code = 31
	// BadProgram is an ill-formed program structure, a malformed literal, an
	// unknown opcode or a wrong arity.
	BadProgram Code = 32

	// Semantic is a duplicate or undefined label, or a duplicate variable
	// declaration.
	Semantic Code = 52
	// OperandType is a type mismatch at an instruction's operands.
	OperandType Code = 53
	// UndefVar is a reference to a non-declared variable within an existing
	// frame.
	UndefVar Code = 54
	// NoFrame is an access to a frame that does not exist.
	NoFrame Code = 55
	// NoValue is a missing value: an empty stack or an uninitialized variable
	// read.
	NoValue Code = 56
	// OperandValue is a bad operand value, such as a division by zero or an
	// exit code out of range.
	OperandValue Code = 57
	// StringOp is a bad string operation: an index out of range or an invalid
	// code point.
	StringOp Code = 58

	// Internal is an internal invariant violation.
	Internal Code = 99
)

// Error is a fatal interpreter error tagged with its Code.
type Error struct {
	code Code
	msg  string
}

func (e *Error) Error() string { return e.msg }

// Code returns the error's code.
func (e *Error) Code() Code { return e.code }

// New returns a fatal error with the provided code and message.
func New(code Code, msg string) error {
	return &Error{code: code, msg: msg}
}

// Newf returns a fatal error with the provided code and formatted message.
func Newf(code Code, format string, args ...interface{}) error {
	return &Error{code: code, msg: fmt.Sprintf(format, args...)}
}

// CodeOf returns the Code carried by err, unwrapping as needed. An error that
// carries no Code reports Internal, as any such error escaping to the process
// boundary is an invariant violation.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.code
	}
	return Internal
}
