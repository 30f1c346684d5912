package machine

import (
	"github.com/dolthub/swiss"

	"github.com/nouzl0/ipp23/lang/errcode"
	"github.com/nouzl0/ipp23/lang/program"
	"github.com/nouzl0/ipp23/lang/types"
)

// A Frame is one variable address space, mapping names to values. Declaring
// sets the name to Uninit; assignment requires a prior declaration.
type Frame struct {
	scope program.Scope
	vars  *swiss.Map[string, types.Value]
}

// NewFrame returns an empty frame addressed by the provided scope.
func NewFrame(scope program.Scope) *Frame {
	return &Frame{scope: scope, vars: swiss.NewMap[string, types.Value](8)}
}

// Declare inserts name with the value Uninit. The name must not already be
// declared in this frame.
func (f *Frame) Declare(name string) error {
	if f.vars.Has(name) {
		return errcode.Newf(errcode.Semantic, "variable %s@%s is already declared", f.scope, name)
	}
	f.vars.Put(name, types.Uninit)
	return nil
}

// Assign overwrites the value of a declared name.
func (f *Frame) Assign(name string, v types.Value) error {
	if !f.vars.Has(name) {
		return errcode.Newf(errcode.UndefVar, "variable %s@%s is not declared", f.scope, name)
	}
	f.vars.Put(name, v)
	return nil
}

// Read returns the value of a declared name. The value may be Uninit.
func (f *Frame) Read(name string) (types.Value, error) {
	v, ok := f.vars.Get(name)
	if !ok {
		return nil, errcode.Newf(errcode.UndefVar, "variable %s@%s is not declared", f.scope, name)
	}
	return v, nil
}

// Len returns the number of declared names.
func (f *Frame) Len() int { return f.vars.Count() }

// Range calls fn for each declared name until fn returns true.
func (f *Frame) Range(fn func(name string, v types.Value) (stop bool)) {
	f.vars.Iter(fn)
}

func (f *Frame) initialized() int {
	var n int
	f.vars.Iter(func(_ string, v types.Value) bool {
		if types.Defined(v) {
			n++
		}
		return false
	})
	return n
}
