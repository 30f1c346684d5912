// Package stats collects execution statistics on behalf of the --stati
// family of command-line options. The collector observes the machine through
// its Tracer hook and writes one line per requested statistic, in the order
// the options appeared on the command line.
package stats

import (
	"fmt"
	"io"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/nouzl0/ipp23/lang/program"
)

// Names of the supported statistics, matching their command-line options.
const (
	Insts    = "insts"
	Vars     = "vars"
	Hot      = "hot"
	Frequent = "frequent"
	Eol      = "eol"
)

// Collector accumulates statistics over one program execution. LABEL, DPRINT
// and BREAK do not count as executed instructions.
type Collector struct {
	outputs []string

	insts    uint64
	maxVars  int
	perOrder map[int]uint64
	perOp    map[string]uint64
}

// NewCollector returns a collector that will write the provided statistics,
// in order. Repeated names are written repeatedly.
func NewCollector(outputs []string) *Collector {
	return &Collector{
		outputs:  outputs,
		perOrder: make(map[int]uint64),
		perOp:    make(map[string]uint64),
	}
}

// Trace implements machine.Tracer.
func (c *Collector) Trace(inst *program.Instruction, initialized int) {
	if initialized > c.maxVars {
		c.maxVars = initialized
	}
	switch inst.Op {
	case program.LABEL, program.DPRINT, program.BREAK:
		return
	}
	c.insts++
	c.perOrder[inst.Order]++
	c.perOp[inst.Op.String()]++
}

// WriteTo writes the requested statistics to w, one per line.
func (c *Collector) WriteTo(w io.Writer) error {
	for _, out := range c.outputs {
		var err error
		switch out {
		case Insts:
			_, err = fmt.Fprintln(w, c.insts)
		case Vars:
			_, err = fmt.Fprintln(w, c.maxVars)
		case Hot:
			_, err = fmt.Fprintln(w, c.hot())
		case Frequent:
			_, err = fmt.Fprintln(w, c.frequent())
		case Eol:
			_, err = fmt.Fprintln(w)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// hot returns the order key of the most-executed counted instruction, with
// ties resolved to the smallest order. It is zero when nothing was counted.
func (c *Collector) hot() int {
	var best int
	var bestCount uint64
	for order, count := range c.perOrder {
		if count > bestCount || (count == bestCount && bestCount > 0 && order < best) {
			best, bestCount = order, count
		}
	}
	return best
}

// frequent returns the names of the most frequently executed opcodes, comma
// separated, in alphabetical order.
func (c *Collector) frequent() string {
	var max uint64
	for _, count := range c.perOp {
		if count > max {
			max = count
		}
	}
	names := maps.Keys(c.perOp)
	names = slices.DeleteFunc(names, func(name string) bool {
		return c.perOp[name] < max
	})
	slices.Sort(names)

	var out string
	for i, name := range names {
		if i > 0 {
			out += ","
		}
		out += name
	}
	return out
}
