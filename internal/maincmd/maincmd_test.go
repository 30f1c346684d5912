package maincmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/mna/mainer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanStatOutputs(t *testing.T) {
	got := scanStatOutputs([]string{"ipp23", "--source", "p.xml", "--stati", "s.txt", "--insts", "--eol", "--vars", "--insts"})
	assert.Equal(t, []string{"insts", "eol", "vars", "insts"}, got)

	got = scanStatOutputs([]string{"ipp23", "--stati=s.txt", "--hot", "--frequent"})
	assert.Equal(t, []string{"hot", "frequent"}, got)

	assert.Empty(t, scanStatOutputs([]string{"ipp23", "--source", "p.xml"}))
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name  string
		cmd   Cmd
		flags map[string]bool
		args  []string
		stats []string
		ok    bool
	}{
		{name: "source only", flags: map[string]bool{"source": true}, ok: true},
		{name: "input only", flags: map[string]bool{"input": true}, ok: true},
		{name: "neither source nor input", flags: map[string]bool{}, ok: false},
		{name: "positional argument", flags: map[string]bool{"source": true}, args: []string{"x"}, ok: false},
		{name: "stats without stati", flags: map[string]bool{"source": true}, stats: []string{"insts"}, ok: false},
		{name: "stats with stati", flags: map[string]bool{"source": true, "stati": true}, stats: []string{"insts"}, ok: true},
		{name: "help", cmd: Cmd{Help: true}, ok: true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cmd := c.cmd
			cmd.SetArgs(c.args)
			cmd.SetFlags(c.flags)
			cmd.statOutputs = c.stats
			err := cmd.Validate()
			if c.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestMainRun(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "prog.xml")
	require.NoError(t, os.WriteFile(src, []byte(`<?xml version="1.0"?>
<program language="IPPcode23">
  <instruction order="1" opcode="WRITE"><arg1 type="string">ok</arg1></instruction>
  <instruction order="2" opcode="EXIT"><arg1 type="int">7</arg1></instruction>
</program>`), 0600))

	stati := filepath.Join(dir, "stats.txt")
	var stdout, stderr bytes.Buffer
	var c Cmd
	code := c.Main(
		[]string{"ipp23", "--source", src, "--stati", stati, "--insts", "--hot"},
		mainer.Stdio{Stdin: bytes.NewReader(nil), Stdout: &stdout, Stderr: &stderr},
	)
	assert.Equal(t, mainer.ExitCode(7), code, "stderr: %s", stderr.String())
	assert.Equal(t, "ok", stdout.String())

	b, err := os.ReadFile(stati)
	require.NoError(t, err)
	assert.Equal(t, "2\n1\n", string(b))
}

func TestMainMissingSource(t *testing.T) {
	var stdout, stderr bytes.Buffer
	var c Cmd
	code := c.Main(
		[]string{"ipp23", "--source", filepath.Join(t.TempDir(), "nope.xml")},
		mainer.Stdio{Stdin: bytes.NewReader(nil), Stdout: &stdout, Stderr: &stderr},
	)
	assert.Equal(t, mainer.ExitCode(11), code)
	assert.NotEmpty(t, stderr.String())
}

func TestMainInvalidArgs(t *testing.T) {
	var stdout, stderr bytes.Buffer
	var c Cmd
	code := c.Main(
		[]string{"ipp23"},
		mainer.Stdio{Stdin: bytes.NewReader(nil), Stdout: &stdout, Stderr: &stderr},
	)
	assert.Equal(t, mainer.ExitCode(10), code)
}
