package stats

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nouzl0/ipp23/lang/program"
)

func trace(c *Collector, op program.Opcode, order, vars int) {
	c.Trace(&program.Instruction{Op: op, Order: order}, vars)
}

func TestCollectorCounts(t *testing.T) {
	c := NewCollector([]string{Insts, Vars, Hot, Frequent})

	trace(c, program.DEFVAR, 1, 0)
	trace(c, program.MOVE, 2, 1)
	trace(c, program.LABEL, 3, 1)  // not counted
	trace(c, program.DPRINT, 4, 1) // not counted
	trace(c, program.BREAK, 5, 1)  // not counted
	trace(c, program.WRITE, 6, 1)
	trace(c, program.WRITE, 6, 1)

	var buf bytes.Buffer
	require.NoError(t, c.WriteTo(&buf))
	assert.Equal(t, "4\n1\n6\nWRITE\n", buf.String())
}

func TestCollectorHotTie(t *testing.T) {
	c := NewCollector([]string{Hot})
	trace(c, program.WRITE, 7, 0)
	trace(c, program.MOVE, 3, 0)
	trace(c, program.ADD, 9, 0)

	// all executed once, the smallest order wins
	var buf bytes.Buffer
	require.NoError(t, c.WriteTo(&buf))
	assert.Equal(t, "3\n", buf.String())
}

func TestCollectorFrequentTie(t *testing.T) {
	c := NewCollector([]string{Frequent})
	trace(c, program.WRITE, 1, 0)
	trace(c, program.ADD, 2, 0)
	trace(c, program.WRITE, 1, 0)
	trace(c, program.ADD, 2, 0)
	trace(c, program.MOVE, 3, 0)

	var buf bytes.Buffer
	require.NoError(t, c.WriteTo(&buf))
	assert.Equal(t, "ADD,WRITE\n", buf.String())
}

func TestCollectorOutputOrder(t *testing.T) {
	c := NewCollector([]string{Eol, Vars, Insts, Insts})
	trace(c, program.MOVE, 1, 2)

	var buf bytes.Buffer
	require.NoError(t, c.WriteTo(&buf))
	assert.Equal(t, "\n2\n1\n1\n", buf.String())
}

func TestCollectorEmpty(t *testing.T) {
	c := NewCollector([]string{Insts, Vars, Hot, Frequent, Eol})

	var buf bytes.Buffer
	require.NoError(t, c.WriteTo(&buf))
	assert.Equal(t, "0\n0\n0\n\n\n", buf.String())
}
