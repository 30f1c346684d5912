package machine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nouzl0/ipp23/lang/errcode"
	"github.com/nouzl0/ipp23/lang/program"
	"github.com/nouzl0/ipp23/lang/types"
)

func TestFrameDeclareAssignRead(t *testing.T) {
	f := NewFrame(program.GlobalFrame)

	require.NoError(t, f.Declare("x"))
	v, err := f.Read("x")
	require.NoError(t, err)
	assert.Equal(t, types.Uninit, v)

	require.NoError(t, f.Assign("x", types.MakeInt(1)))
	v, err = f.Read("x")
	require.NoError(t, err)
	assert.Equal(t, "1", v.String())

	err = f.Declare("x")
	assert.Equal(t, errcode.Semantic, errcode.CodeOf(err))

	err = f.Assign("y", types.Nil)
	assert.Equal(t, errcode.UndefVar, errcode.CodeOf(err))

	_, err = f.Read("y")
	assert.Equal(t, errcode.UndefVar, errcode.CodeOf(err))
}

func TestFrameStackLifecycle(t *testing.T) {
	fs := NewFrameStack()
	assert.False(t, fs.HasTemp())
	assert.Zero(t, fs.Depth())

	// pushing or popping without a frame is a frame error
	assert.Equal(t, errcode.NoFrame, errcode.CodeOf(fs.PushFrame()))
	assert.Equal(t, errcode.NoFrame, errcode.CodeOf(fs.PopFrame()))

	fs.CreateTemp()
	require.NoError(t, fs.Declare(program.TempFrame, "x"))
	require.NoError(t, fs.PushFrame())
	assert.False(t, fs.HasTemp())
	assert.Equal(t, 1, fs.Depth())

	// the pushed frame is now addressable as LF
	require.NoError(t, fs.Assign(program.LocalFrame, "x", types.True))

	// a new TF is independent of the frame on the local stack
	fs.CreateTemp()
	require.NoError(t, fs.Declare(program.TempFrame, "x"))
	assert.Equal(t, 1, fs.Depth())

	require.NoError(t, fs.PopFrame())
	assert.True(t, fs.HasTemp())
	assert.Zero(t, fs.Depth())

	// the popped frame replaced the temporary one and kept its value
	v, err := fs.Read(program.TempFrame, "x")
	require.NoError(t, err)
	assert.Equal(t, types.True, v)
}

func TestFrameStackInitialized(t *testing.T) {
	fs := NewFrameStack()
	require.NoError(t, fs.Declare(program.GlobalFrame, "a"))
	require.NoError(t, fs.Declare(program.GlobalFrame, "b"))
	assert.Zero(t, fs.Initialized())

	require.NoError(t, fs.Assign(program.GlobalFrame, "a", types.MakeInt(0)))
	assert.Equal(t, 1, fs.Initialized())

	fs.CreateTemp()
	require.NoError(t, fs.Declare(program.TempFrame, "c"))
	require.NoError(t, fs.Assign(program.TempFrame, "c", types.Nil))
	require.NoError(t, fs.PushFrame())
	assert.Equal(t, 2, fs.Initialized())
}

func TestDataStack(t *testing.T) {
	var s DataStack
	_, err := s.Pop()
	assert.Equal(t, errcode.NoValue, errcode.CodeOf(err))

	s.Push(types.MakeInt(1))
	s.Push(types.Nil)
	assert.Equal(t, 2, s.Len())

	v, err := s.Pop()
	require.NoError(t, err)
	assert.Equal(t, types.Nil, v)
	v, err = s.Pop()
	require.NoError(t, err)
	assert.Equal(t, "int", v.Type())
}

func TestCallStack(t *testing.T) {
	var s CallStack
	_, err := s.Pop()
	assert.Equal(t, errcode.NoValue, errcode.CodeOf(err))

	s.Push(3)
	s.Push(8)
	i, err := s.Pop()
	require.NoError(t, err)
	assert.Equal(t, 8, i)
	i, err = s.Pop()
	require.NoError(t, err)
	assert.Equal(t, 3, i)
}

func TestBuildLabelIndex(t *testing.T) {
	insts := []program.Instruction{
		{Op: program.LABEL, Order: 1, Args: []program.Arg{{Kind: program.ArgLabel, Name: "a"}}},
		{Op: program.BREAK, Order: 2},
		{Op: program.LABEL, Order: 3, Args: []program.Arg{{Kind: program.ArgLabel, Name: "b"}}},
	}
	x, err := BuildLabelIndex(insts)
	require.NoError(t, err)
	assert.Equal(t, 2, x.Len())

	i, err := x.Lookup("b")
	require.NoError(t, err)
	assert.Equal(t, 2, i)

	_, err = x.Lookup("c")
	assert.Equal(t, errcode.Semantic, errcode.CodeOf(err))

	insts = append(insts, program.Instruction{Op: program.LABEL, Order: 4, Args: []program.Arg{{Kind: program.ArgLabel, Name: "a"}}})
	_, err = BuildLabelIndex(insts)
	assert.Equal(t, errcode.Semantic, errcode.CodeOf(err))
}
