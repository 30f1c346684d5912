// Package maincmd implements the command-line surface of the interpreter:
// option parsing and validation, acquisition of the program and input
// streams, execution, and the mapping of every outcome to its process exit
// code.
package maincmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mna/mainer"
	wraperr "github.com/pkg/errors"

	"github.com/nouzl0/ipp23/internal/stats"
	"github.com/nouzl0/ipp23/lang/errcode"
	"github.com/nouzl0/ipp23/lang/machine"
	"github.com/nouzl0/ipp23/lang/parser"
)

const binName = "ipp23"

var (
	shortUsage = fmt.Sprintf(`
usage: %s [<option>...]
Run '%[1]s --help' for details.
`, binName)

	longUsage = fmt.Sprintf(`usage: %s [<option>...]
       %[1]s -h|--help
       %[1]s -v|--version

Interpreter for the IPPcode23 intermediate language. The program is
provided as an XML document; at least one of --source and --input must
be given, the other defaults to the standard input.

Valid flag options are:
       -h --help                 Show this help and exit.
       -v --version              Print version and exit.
       --source <path>           Program XML document (default: stdin).
       --input <path>            Input consumed by READ (default: stdin).

Valid flag options for the statistics file are:
       --stati <path>            Write execution statistics to <path>. The
                                 following options select the statistics,
                                 one line each, in command-line order:
       --insts                   Number of executed instructions (LABEL,
                                 DPRINT and BREAK are not counted).
       --vars                    Maximum number of initialized variables
                                 live at once, across all frames.
       --hot                     Order attribute of the most executed
                                 instruction (smallest order wins ties).
       --frequent                Names of the most frequent opcodes.
       --eol                     An empty line.
`, binName)
)

type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help    bool `flag:"h,help"`
	Version bool `flag:"v,version"`

	Source string `flag:"source"`
	Input  string `flag:"input"`

	Stati    string `flag:"stati"`
	Insts    bool   `flag:"insts"`
	Vars     bool   `flag:"vars"`
	Hot      bool   `flag:"hot"`
	Frequent bool   `flag:"frequent"`
	Eol      bool   `flag:"eol"`

	args        []string
	flags       map[string]bool
	statOutputs []string
}

func (c *Cmd) SetArgs(args []string) {
	c.args = args
}

func (c *Cmd) SetFlags(flags map[string]bool) {
	c.flags = flags
}

func (c *Cmd) Validate() error {
	if c.Help || c.Version {
		return nil
	}

	if len(c.args) > 0 {
		return fmt.Errorf("unexpected argument: %s", c.args[0])
	}
	if !c.flags["source"] && !c.flags["input"] {
		return errors.New("at least one of --source and --input must be provided")
	}
	if len(c.statOutputs) > 0 && !c.flags["stati"] {
		return fmt.Errorf("--%s requires --stati", c.statOutputs[0])
	}
	return nil
}

func printError(stdio mainer.Stdio, err error) error {
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "%s\n", err)
	}
	return err
}

func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	// the order of the statistics options on the command line is the order
	// of the lines in the statistics file, which the parsed flag set cannot
	// preserve.
	c.statOutputs = scanStatOutputs(args)

	p := mainer.Parser{
		EnvVars:   false, // the interpreter consumes no environment variables
		EnvPrefix: binName + "_",
	}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return mainer.ExitCode(errcode.Usage)
	}

	switch {
	case c.Help:
		fmt.Fprint(stdio.Stdout, longUsage)
		return mainer.Success

	case c.Version:
		fmt.Fprintf(stdio.Stdout, "%s %s %s\n", binName, c.BuildVersion, c.BuildDate)
		return mainer.Success
	}

	ctx := mainer.CancelOnSignal(context.Background(), os.Interrupt)
	return c.run(ctx, stdio)
}

func scanStatOutputs(args []string) []string {
	var outputs []string
	for _, arg := range args[1:] {
		if arg == "--" {
			break
		}
		name := strings.TrimLeft(arg, "-")
		name, _, _ = strings.Cut(name, "=")
		switch name {
		case stats.Insts, stats.Vars, stats.Hot, stats.Frequent, stats.Eol:
			outputs = append(outputs, name)
		}
	}
	return outputs
}

func (c *Cmd) run(ctx context.Context, stdio mainer.Stdio) mainer.ExitCode {
	source := stdio.Stdin
	if c.flags["source"] {
		f, err := os.Open(c.Source)
		if err != nil {
			printError(stdio, wraperr.Wrap(err, "cannot open source file"))
			return mainer.ExitCode(errcode.InputFile)
		}
		defer f.Close()
		source = f
	}

	input := stdio.Stdin
	if c.flags["input"] {
		f, err := os.Open(c.Input)
		if err != nil {
			printError(stdio, wraperr.Wrap(err, "cannot open input file"))
			return mainer.ExitCode(errcode.InputFile)
		}
		defer f.Close()
		input = f
	}

	insts, err := parser.Parse(source)
	if err != nil {
		printError(stdio, err)
		return mainer.ExitCode(errcode.CodeOf(err))
	}

	m := machine.New(insts)
	m.Stdin = input
	m.Stdout = stdio.Stdout
	m.Stderr = stdio.Stderr

	var col *stats.Collector
	if c.flags["stati"] {
		col = stats.NewCollector(c.statOutputs)
		m.Tracer = col
	}

	code, err := m.Run(ctx)
	if err != nil {
		printError(stdio, err)
		return mainer.ExitCode(errcode.CodeOf(err))
	}

	if col != nil {
		if err := c.writeStats(col); err != nil {
			printError(stdio, err)
			return mainer.ExitCode(errcode.OutputFile)
		}
	}
	return mainer.ExitCode(code)
}

func (c *Cmd) writeStats(col *stats.Collector) error {
	f, err := os.Create(c.Stati)
	if err != nil {
		return wraperr.Wrap(err, "cannot open statistics file")
	}
	if err := col.WriteTo(f); err != nil {
		f.Close()
		return wraperr.Wrap(err, "cannot write statistics file")
	}
	return f.Close()
}
