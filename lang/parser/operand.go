package parser

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/nouzl0/ipp23/lang/errcode"
	"github.com/nouzl0/ipp23/lang/program"
	"github.com/nouzl0/ipp23/lang/types"
)

var (
	rxVarName = regexp.MustCompile(`^[A-Za-z_$&%*!?\-][A-Za-z0-9_$&%*!?\-]*$`)
	rxName    = regexp.MustCompile(`^[^\s#]+$`)
)

// decodeOperand validates the syntactic form of one operand and produces the
// decoded argument. The slot kind comes from the opcode's signature; the type
// tag and text come from the document.
func decodeOperand(slot program.SlotKind, typeTag, text string) (program.Arg, error) {
	switch slot {
	case program.SlotVar:
		if typeTag != "var" {
			return program.Arg{}, errcode.Newf(errcode.BadProgram, "expected a variable, got type %q", typeTag)
		}
		return decodeVar(text)

	case program.SlotSymb:
		if typeTag == "var" {
			return decodeVar(text)
		}
		lit, err := decodeLiteral(typeTag, text)
		if err != nil {
			return program.Arg{}, err
		}
		return program.Arg{Kind: program.ArgLit, Lit: lit}, nil

	case program.SlotLabel:
		if typeTag != "label" || !rxName.MatchString(text) {
			return program.Arg{}, errcode.Newf(errcode.BadProgram, "invalid label (type %q, text %q)", typeTag, text)
		}
		return program.Arg{Kind: program.ArgLabel, Name: text}, nil

	case program.SlotType:
		if typeTag != "type" || (text != "int" && text != "string" && text != "bool") {
			return program.Arg{}, errcode.Newf(errcode.BadProgram, "invalid type name (type %q, text %q)", typeTag, text)
		}
		return program.Arg{Kind: program.ArgType, Name: text}, nil
	}
	return program.Arg{}, errcode.Newf(errcode.Internal, "unknown operand slot kind %d", slot)
}

func decodeVar(text string) (program.Arg, error) {
	prefix, name, ok := strings.Cut(text, "@")
	if !ok {
		return program.Arg{}, errcode.Newf(errcode.BadProgram, "invalid variable %q", text)
	}
	scope, ok := program.LookupScope(prefix)
	if !ok {
		return program.Arg{}, errcode.Newf(errcode.BadProgram, "invalid frame prefix %q", prefix)
	}
	if !rxVarName.MatchString(name) {
		return program.Arg{}, errcode.Newf(errcode.BadProgram, "invalid variable name %q", name)
	}
	return program.Arg{Kind: program.ArgVar, Scope: scope, Name: name}, nil
}

func decodeLiteral(typeTag, text string) (types.Value, error) {
	switch typeTag {
	case "int":
		i, ok := types.ParseInt(text)
		if !ok {
			return nil, errcode.Newf(errcode.BadProgram, "invalid int literal %q", text)
		}
		return i, nil

	case "bool":
		switch text {
		case "true":
			return types.True, nil
		case "false":
			return types.False, nil
		}
		return nil, errcode.Newf(errcode.BadProgram, "invalid bool literal %q", text)

	case "nil":
		if text != "nil" && text != "" {
			return nil, errcode.Newf(errcode.BadProgram, "invalid nil literal %q", text)
		}
		return types.Nil, nil

	case "string":
		s, err := decodeString(text)
		if err != nil {
			return nil, err
		}
		return types.String(s), nil
	}
	return nil, errcode.Newf(errcode.BadProgram, "unknown operand type %q", typeTag)
}

// decodeString resolves the \DDD escape sequences of a string literal, where
// DDD is three decimal digits naming a Unicode code point. The literal must
// not contain whitespace, # or a backslash outside an escape.
func decodeString(text string) (string, error) {
	var b strings.Builder
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case unicode.IsSpace(r) || r == '#':
			return "", errcode.Newf(errcode.BadProgram, "invalid character %q in string literal", r)

		case r == '\\':
			if i+3 >= len(runes) {
				return "", errcode.New(errcode.BadProgram, "truncated escape sequence in string literal")
			}
			cp := 0
			for _, d := range runes[i+1 : i+4] {
				if d < '0' || d > '9' {
					return "", errcode.Newf(errcode.BadProgram, "invalid escape sequence in string literal %q", text)
				}
				cp = cp*10 + int(d-'0')
			}
			b.WriteRune(rune(cp))
			i += 3

		default:
			b.WriteRune(r)
		}
	}
	return b.String(), nil
}
