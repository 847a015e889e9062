// Package functionality does basic end-end verification
// of the assembler by running what it produces on the
// Hack CPU emulator.
package functionality

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/jmchacon/hack/assembler"
	"github.com/jmchacon/hack/cpu"
	"github.com/jmchacon/hack/hackfile"
	"github.com/jmchacon/hack/memory"
	"github.com/jmchacon/hack/parser"
)

const (
	testDir = "testdata"
	// Far more than any of the test programs need.
	maxInstructions = 100000
)

// load assembles the named test program and returns a CPU ready to run it.
func load(t *testing.T, fn string, opts assembler.Options) (*cpu.Processor, *memory.RAM, *assembler.Result) {
	t.Helper()
	var out bytes.Buffer
	res, err := assembler.Assemble(context.Background(), parser.File(filepath.Join(testDir, fn)), &out, opts)
	if err != nil {
		t.Fatalf("%s: Assemble: %v", fn, err)
	}
	words, err := hackfile.Read(&out)
	if err != nil {
		t.Fatalf("%s: can't read assembled output: %v", fn, err)
	}
	ram := &memory.RAM{}
	c, err := cpu.Init(memory.NewROM(words), ram)
	if err != nil {
		t.Fatalf("%s: Can't initialize cpu - %v", fn, err)
	}
	return c, ram, res
}

func run(t *testing.T, name string, c *cpu.Processor) {
	t.Helper()
	if _, err := c.Run(maxInstructions); err != nil {
		t.Fatalf("%s: Run: %v\nstate: %s", name, err, spew.Sdump(c))
	}
	if !c.Idle() {
		t.Fatalf("%s: didn't finish in %d instructions\nstate: %s", name, maxInstructions, spew.Sdump(c))
	}
}

func TestAdd(t *testing.T) {
	c, ram, _ := load(t, "Add.asm", assembler.Options{})
	run(t, "Add", c)
	if got, want := ram.Read(0), uint16(5); got != want {
		t.Errorf("RAM[0] got %d want %d", got, want)
	}
}

func TestMax(t *testing.T) {
	tests := []struct {
		r0, r1 uint16
		want   uint16
	}{
		{3, 9, 9},
		{12, 4, 12},
		{7, 7, 7},
		{0, 0xFFFF, 0}, // -1
	}
	for _, test := range tests {
		c, ram, _ := load(t, "Max.asm", assembler.Options{})
		ram.Write(0, test.r0)
		ram.Write(1, test.r1)
		run(t, "Max", c)
		if got := ram.Read(2); got != test.want {
			t.Errorf("max(%d, %d) got %d want %d", test.r0, test.r1, got, test.want)
		}
	}
}

func TestSum(t *testing.T) {
	tests := []struct {
		n    uint16
		want uint16
	}{
		{0, 0},
		{1, 1},
		{10, 55},
		{100, 5050},
	}
	for _, test := range tests {
		c, ram, res := load(t, "Sum.asm", assembler.Options{})
		if got, want := res.Variables, 2; got != want {
			t.Fatalf("got %d variables want %d", got, want)
		}
		ram.Write(0, test.n)
		run(t, "Sum", c)
		if got := ram.Read(1); got != test.want {
			t.Errorf("sum(1..%d) got %d want %d", test.n, got, test.want)
		}
		// i and sum are the first two variables.
		if got, want := ram.Read(17), test.want; got != want {
			t.Errorf("sum variable at RAM[17] got %d want %d", got, want)
		}
	}
}

func TestFill(t *testing.T) {
	c, ram, _ := load(t, "Fill.asm", assembler.Options{})
	ram.Write(0, 3)
	run(t, "Fill", c)
	for i := uint16(0); i < 4; i++ {
		want := uint16(0xFFFF)
		if i == 3 {
			want = 0
		}
		if got := ram.Read(memory.SCREEN + i); got != want {
			t.Errorf("SCREEN+%d got %.4X want %.4X", i, got, want)
		}
	}
}

// The legacy variable handling drops an output line for every new variable
// so the program no longer lines up with its labels.
func TestSumLegacy(t *testing.T) {
	_, _, res := load(t, "Sum.asm", assembler.Options{Legacy: true})
	if got, want := res.Instructions-res.Emitted, 2; got != want {
		t.Errorf("legacy mode dropped %d lines want %d: %s", got, want, spew.Sdump(res))
	}
}
