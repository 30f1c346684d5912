package machine

import (
	"github.com/nouzl0/ipp23/lang/errcode"
	"github.com/nouzl0/ipp23/lang/program"
	"github.com/nouzl0/ipp23/lang/types"
)

// FrameStack owns the three variable scopes: the global frame, always
// present; the optional temporary frame; and the stack of local frames, of
// which only the top is addressable.
type FrameStack struct {
	global *Frame
	temp   *Frame
	locals []*Frame
}

// NewFrameStack returns a frame stack holding an empty global frame, no
// temporary frame and no local frames.
func NewFrameStack() *FrameStack {
	return &FrameStack{global: NewFrame(program.GlobalFrame)}
}

// CreateTemp replaces the temporary frame with a fresh empty one, discarding
// any previous temporary frame.
func (fs *FrameStack) CreateTemp() {
	fs.temp = NewFrame(program.TempFrame)
}

// PushFrame moves the temporary frame to the top of the local-frame stack,
// where it becomes the new local frame. There must be a temporary frame.
func (fs *FrameStack) PushFrame() error {
	if fs.temp == nil {
		return errcode.New(errcode.NoFrame, "no temporary frame to push")
	}
	fs.temp.scope = program.LocalFrame
	fs.locals = append(fs.locals, fs.temp)
	fs.temp = nil
	return nil
}

// PopFrame removes the top local frame and rebinds it as the temporary
// frame, discarding any previous temporary frame. The local-frame stack must
// not be empty.
func (fs *FrameStack) PopFrame() error {
	if len(fs.locals) == 0 {
		return errcode.New(errcode.NoFrame, "no local frame to pop")
	}
	fs.temp = fs.locals[len(fs.locals)-1]
	fs.temp.scope = program.TempFrame
	fs.locals = fs.locals[:len(fs.locals)-1]
	return nil
}

// Depth returns the number of local frames on the stack.
func (fs *FrameStack) Depth() int { return len(fs.locals) }

// HasTemp reports whether a temporary frame exists.
func (fs *FrameStack) HasTemp() bool { return fs.temp != nil }

// Frame returns the frame addressed by scope. Addressing the temporary frame
// when absent, or the local frame when the stack is empty, is an error.
func (fs *FrameStack) Frame(scope program.Scope) (*Frame, error) {
	switch scope {
	case program.GlobalFrame:
		return fs.global, nil
	case program.TempFrame:
		if fs.temp == nil {
			return nil, errcode.New(errcode.NoFrame, "temporary frame does not exist")
		}
		return fs.temp, nil
	case program.LocalFrame:
		if len(fs.locals) == 0 {
			return nil, errcode.New(errcode.NoFrame, "local frame stack is empty")
		}
		return fs.locals[len(fs.locals)-1], nil
	}
	return nil, errcode.Newf(errcode.Internal, "unknown frame scope %d", scope)
}

// Declare declares name in the frame addressed by scope.
func (fs *FrameStack) Declare(scope program.Scope, name string) error {
	f, err := fs.Frame(scope)
	if err != nil {
		return err
	}
	return f.Declare(name)
}

// Assign assigns v to a declared name in the frame addressed by scope.
func (fs *FrameStack) Assign(scope program.Scope, name string, v types.Value) error {
	f, err := fs.Frame(scope)
	if err != nil {
		return err
	}
	return f.Assign(name, v)
}

// Read returns the value of a declared name in the frame addressed by scope.
// The value may be Uninit.
func (fs *FrameStack) Read(scope program.Scope, name string) (types.Value, error) {
	f, err := fs.Frame(scope)
	if err != nil {
		return nil, err
	}
	return f.Read(name)
}

// Initialized returns the number of variables holding a defined value across
// the global frame, the temporary frame and every local frame.
func (fs *FrameStack) Initialized() int {
	n := fs.global.initialized()
	if fs.temp != nil {
		n += fs.temp.initialized()
	}
	for _, f := range fs.locals {
		n += f.initialized()
	}
	return n
}
