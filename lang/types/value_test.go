package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValueStringType(t *testing.T) {
	cases := []struct {
		v        Value
		str, typ string
	}{
		{MakeInt(-42), "-42", "int"},
		{True, "true", "bool"},
		{False, "false", "bool"},
		{String("Hello World"), "Hello World", "string"},
		{Nil, "", "nil"},
		{Uninit, "", ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.str, c.v.String())
		assert.Equal(t, c.typ, c.v.Type())
	}
}

func TestDefined(t *testing.T) {
	for _, v := range []Value{MakeInt(0), False, String(""), Nil} {
		assert.True(t, Defined(v), "%T", v)
	}
	assert.False(t, Defined(Uninit))
}

func TestEqual(t *testing.T) {
	cases := []struct {
		x, y Value
		want bool
	}{
		{MakeInt(3), MakeInt(3), true},
		{MakeInt(3), MakeInt(4), false},
		{True, True, true},
		{True, False, false},
		{String("a"), String("a"), true},
		{String("a"), String("b"), false},
		{Nil, Nil, true},
		{Nil, MakeInt(0), false},
		{String(""), Nil, false},
		{MakeInt(1), True, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Equal(c.x, c.y), "%v == %v", c.x, c.y)
	}
}

func TestStringCmp(t *testing.T) {
	assert.Negative(t, String("abc").Cmp(String("abd")))
	assert.Negative(t, String("a").Cmp(String("ab")))
	assert.Positive(t, String("b").Cmp(String("a")))
	assert.Zero(t, String("čau").Cmp(String("čau")))
	// code-point order, not byte tricks: 'ž' (U+017E) > 'z' (U+007A)
	assert.Positive(t, String("ž").Cmp(String("z")))
}

func TestBoolCmp(t *testing.T) {
	assert.Negative(t, False.Cmp(True))
	assert.Positive(t, True.Cmp(False))
	assert.Zero(t, True.Cmp(True))
}
