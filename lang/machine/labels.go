package machine

import (
	"github.com/dolthub/swiss"

	"github.com/nouzl0/ipp23/lang/errcode"
	"github.com/nouzl0/ipp23/lang/program"
)

// LabelIndex maps label names to instruction indices. It is built in a
// single pre-execution pass over the instruction image, so that jumps and
// calls resolve in constant time and duplicate labels are rejected before
// the first instruction runs.
type LabelIndex struct {
	m *swiss.Map[string, int]
}

// BuildLabelIndex scans insts and records the index of each LABEL
// instruction under its name.
func BuildLabelIndex(insts []program.Instruction) (*LabelIndex, error) {
	x := &LabelIndex{m: swiss.NewMap[string, int](8)}
	for i := range insts {
		if insts[i].Op != program.LABEL {
			continue
		}
		name := insts[i].Args[0].Name
		if x.m.Has(name) {
			return nil, errcode.Newf(errcode.Semantic, "label %s is already defined", name)
		}
		x.m.Put(name, i)
	}
	return x, nil
}

// Lookup returns the instruction index of a defined label.
func (x *LabelIndex) Lookup(name string) (int, error) {
	i, ok := x.m.Get(name)
	if !ok {
		return 0, errcode.Newf(errcode.Semantic, "undefined label %s", name)
	}
	return i, nil
}

// Len returns the number of defined labels.
func (x *LabelIndex) Len() int { return x.m.Count() }
