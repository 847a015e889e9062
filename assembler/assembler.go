// Package assembler implements the two pass Hack assembler.
//
// The first pass walks the source only to find labels and bind each one to
// the ROM address of the instruction following it. The second pass walks
// the source again, allocating variables in RAM as they're first seen and
// writing one 16 bit binary line per A or C instruction.
package assembler

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/golang/glog"
	"github.com/jmchacon/hack/code"
	"github.com/jmchacon/hack/parser"
	"github.com/jmchacon/hack/symbols"
)

const (
	// RAM_BASE is the first RAM address handed out to variables. Everything
	// below is R0-R15.
	RAM_BASE = 16
	// ROM_SIZE is the number of instruction words the Hack ROM holds.
	ROM_SIZE = 32768
)

var (
	// ErrSourceUnavailable is returned (wrapped) when the input can't be opened or read.
	ErrSourceUnavailable = errors.New("source unavailable")
	// ErrOutputUnwritable is returned (wrapped) when the output can't be created or written.
	ErrOutputUnwritable = errors.New("output unwritable")
)

// Options control assembly.
type Options struct {
	// Legacy reproduces the reference assembler's variable handling. The first
	// time an unbound @name is seen in the second pass it's bound to the next
	// RAM address but nothing is emitted for that instruction and the RAM
	// address isn't advanced, so every new variable lands on the same address.
	// Normally the instruction is emitted and each variable gets its own address.
	Legacy bool
	// RAMBase overrides RAM_BASE if non-zero.
	RAMBase int
}

// Result describes a completed assembly.
type Result struct {
	Instructions int // A and C commands in the source.
	Emitted      int // Binary lines written. Only differs from Instructions in Legacy mode.
	Labels       int // Labels bound in the first pass.
	Variables    int // Variables bound in the second pass.
}

// Assembler holds the state threaded through both passes.
type Assembler struct {
	opts    Options
	Symbols *symbols.Table
}

// New returns an Assembler with a fresh symbol table seeded with the
// predefined Hack symbols.
func New(opts Options) *Assembler {
	if opts.RAMBase == 0 {
		opts.RAMBase = RAM_BASE
	}
	return &Assembler{
		opts:    opts,
		Symbols: symbols.New(symbols.Predefined),
	}
}

// FirstPass binds every label to the ROM address of the instruction that
// follows it. Nothing is emitted. It returns the number of instructions
// (A and C commands) seen. The parser is consumed to the end.
func (a *Assembler) FirstPass(ctx context.Context, p *parser.Parser) (int, error) {
	romAddress := 0
	for p.Advance() {
		if err := ctx.Err(); err != nil {
			p.Close()
			return romAddress, err
		}
		switch p.CommandType() {
		case parser.L_COMMAND:
			if a.Symbols.AddEntry(p.Symbol(), romAddress, p.LineNumber()) {
				glog.V(2).Infof("line %d: label %q = %d", p.LineNumber(), p.Symbol(), romAddress)
			} else {
				e, _ := a.Symbols.Lookup(p.Symbol())
				glog.Warningf("line %d: label %q already bound to %d at line %d, ignoring", p.LineNumber(), p.Symbol(), e.Address, e.Line)
			}
		case parser.A_COMMAND, parser.C_COMMAND:
			romAddress++
		}
	}
	if err := p.Err(); err != nil {
		return romAddress, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	if romAddress > ROM_SIZE {
		glog.Warningf("program has %d instructions which won't fit in a %d word ROM", romAddress, ROM_SIZE)
	}
	return romAddress, nil
}

// SecondPass writes the binary form of every A and C command to w, one per
// line. Any @name which isn't bound yet becomes a variable.
func (a *Assembler) SecondPass(ctx context.Context, p *parser.Parser, w io.Writer) (*Result, error) {
	res := &Result{}
	bw := bufio.NewWriter(w)
	emit := func(s string) error {
		if _, err := bw.WriteString(s + "\n"); err != nil {
			return fmt.Errorf("%w: %v", ErrOutputUnwritable, err)
		}
		res.Emitted++
		return nil
	}

	romAddress, ramAddress := 0, a.opts.RAMBase
	for p.Advance() {
		if err := ctx.Err(); err != nil {
			p.Close()
			return res, err
		}
		switch p.CommandType() {
		case parser.C_COMMAND:
			if err := emit("111" + p.Comp() + p.Dest() + p.Jump()); err != nil {
				p.Close()
				return res, err
			}
			romAddress++
		case parser.A_COMMAND:
			sym := p.Symbol()
			val, isLiteral := literal(sym)
			switch {
			case isLiteral:
				if val > code.MaxValue {
					glog.Warningf("line %d: %d doesn't fit in %d bits, truncating", p.LineNumber(), val, code.ValueBits)
				}
			case a.Symbols.Contains(sym):
				val = a.Symbols.GetAddress(sym)
			case a.opts.Legacy:
				a.Symbols.AddEntry(sym, ramAddress, p.LineNumber())
				res.Variables++
				glog.V(2).Infof("line %d: variable %q = %d (not emitted)", p.LineNumber(), sym, ramAddress)
				romAddress++
				continue
			default:
				a.Symbols.AddEntry(sym, ramAddress, p.LineNumber())
				res.Variables++
				glog.V(2).Infof("line %d: variable %q = %d", p.LineNumber(), sym, ramAddress)
				val = ramAddress
				ramAddress++
			}
			if err := emit("0" + code.DecimalToBinary(val)); err != nil {
				p.Close()
				return res, err
			}
			romAddress++
		}
	}
	res.Instructions = romAddress
	if err := p.Err(); err != nil {
		return res, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	if err := bw.Flush(); err != nil {
		return res, fmt.Errorf("%w: %v", ErrOutputUnwritable, err)
	}
	if res.Emitted != res.Instructions {
		glog.Warningf("emitted %d lines for %d instructions", res.Emitted, res.Instructions)
	}
	return res, nil
}

// literal reports whether sym is a non-negative decimal integer and its value.
func literal(sym string) (int, bool) {
	v, err := strconv.ParseUint(sym, 10, 31)
	if err != nil {
		return 0, false
	}
	return int(v), true
}

// Assemble runs both passes over src writing the binary program to w.
// The source is opened before anything is written and reopened for the
// second pass.
func (a *Assembler) Assemble(ctx context.Context, src parser.Source, w io.Writer) (*Result, error) {
	p, err := parser.New(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer p.Close()

	labelsBefore := a.Symbols.Len()
	n, err := a.FirstPass(ctx, p)
	if err != nil {
		return nil, err
	}
	labels := a.Symbols.Len() - labelsBefore
	glog.V(1).Infof("first pass: %d instructions, %d labels", n, labels)

	if err := p.Reset(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	res, err := a.SecondPass(ctx, p, w)
	if err != nil {
		return nil, err
	}
	res.Labels = labels
	glog.V(1).Infof("second pass: %d lines emitted, %d variables", res.Emitted, res.Variables)
	return res, nil
}

// Assemble is a convenience wrapper which assembles src into w with a new Assembler.
func Assemble(ctx context.Context, src parser.Source, w io.Writer, opts Options) (*Result, error) {
	return New(opts).Assemble(ctx, src, w)
}

// AssembleFile assembles the file at in and writes the result to out. The
// input is opened before out is created so a missing input never leaves an
// empty output file behind. The returned Assembler gives access to the
// final symbol table.
func AssembleFile(ctx context.Context, in, out string, opts Options) (*Assembler, *Result, error) {
	src := parser.File(in)
	// Probe the input up front.
	rc, err := src.Open()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	rc.Close()

	f, err := os.Create(out)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrOutputUnwritable, err)
	}
	a := New(opts)
	res, err := a.Assemble(ctx, src, f)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("%w: %v", ErrOutputUnwritable, cerr)
	}
	if err != nil {
		return nil, nil, err
	}
	return a, res, nil
}
