package program

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpcodeString(t *testing.T) {
	for op := Opcode(0); op <= maxOpcode; op++ {
		if op.String() == "" || op.String() == "<invalid>" {
			t.Errorf("missing string representation of opcode %d", op)
		}
	}
}

func TestLookupOpcode(t *testing.T) {
	for op := Opcode(0); op <= maxOpcode; op++ {
		got, ok := LookupOpcode(op.String())
		require.True(t, ok, op.String())
		require.Equal(t, op, got)

		// lookup is case-insensitive, the document may use any case
		got, ok = LookupOpcode(strings.ToLower(op.String()))
		require.True(t, ok)
		require.Equal(t, op, got)
	}

	_, ok := LookupOpcode("NOPE")
	require.False(t, ok)
}

func TestSignatures(t *testing.T) {
	for op := Opcode(0); op <= maxOpcode; op++ {
		sig := op.Signature()
		require.LessOrEqual(t, len(sig), 3, op.String())
		for i, kind := range sig {
			// symbolic and type slots never precede a destination slot
			if kind == SlotVar {
				require.Zero(t, i, "%s: var slot must come first", op)
			}
		}
	}

	// spot-check a few arities
	require.Len(t, ADD.Signature(), 3)
	require.Len(t, READ.Signature(), 2)
	require.Empty(t, CREATEFRAME.Signature())
	require.Len(t, JUMPIFNEQ.Signature(), 3)
}

func TestLookupScope(t *testing.T) {
	for _, sc := range []Scope{GlobalFrame, LocalFrame, TempFrame} {
		got, ok := LookupScope(sc.String())
		require.True(t, ok)
		require.Equal(t, sc, got)
	}
	_, ok := LookupScope("gf")
	require.False(t, ok)
}
