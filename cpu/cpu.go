// Package cpu defines the Hack architecture and provides
// the methods needed to run the CPU and interface with it
// for emulation. It's primarily used to check that assembled
// programs actually do what their source says.
package cpu

import (
	"fmt"

	"github.com/jmchacon/hack/io"
	"github.com/jmchacon/hack/memory"
)

const (
	// C instruction bits.
	I_C    = uint16(0x8000) // Set for a C instruction, clear for an A instruction.
	I_ONES = uint16(0x6000) // Must be set on a C instruction.
	I_A    = uint16(0x1000) // ALU y input is M instead of A.
	I_ZX   = uint16(0x0800)
	I_NX   = uint16(0x0400)
	I_ZY   = uint16(0x0200)
	I_NY   = uint16(0x0100)
	I_F    = uint16(0x0080) // x+y instead of x&y
	I_NO   = uint16(0x0040)
	I_DA   = uint16(0x0020) // dest A
	I_DD   = uint16(0x0010) // dest D
	I_DM   = uint16(0x0008) // dest M
	I_JLT  = uint16(0x0004)
	I_JEQ  = uint16(0x0002)
	I_JGT  = uint16(0x0001)

	// IDLE is 0;JMP which programs use to park the CPU at the end.
	IDLE = uint16(0xEA87)
)

type Processor struct {
	A     uint16 // Address register
	D     uint16 // Data register
	PC    uint16 // Program counter
	Rom   memory.Bank
	Ram   memory.Bank
	Ticks int // Instructions executed since Reset.

	// Keyboard is sampled into RAM[KBD] before each instruction if set.
	Keyboard io.Port16
}

// A few custom error types to distinguish why the CPU stopped

// InvalidInstruction represents a C instruction with its two unused bits clear.
type InvalidInstruction struct {
	PC     uint16
	Opcode uint16
}

// Error implements the interface for error types.
func (e InvalidInstruction) Error() string {
	return fmt.Sprintf("0x%.4X at PC 0x%.4X is not a valid instruction", e.Opcode, e.PC)
}

// InvalidAddress represents an access outside of ROM or RAM.
type InvalidAddress struct {
	PC   uint16
	Addr uint16
	ROM  bool
}

// Error implements the interface for error types.
func (e InvalidAddress) Error() string {
	bank := "RAM"
	if e.ROM {
		bank = "ROM"
	}
	return fmt.Sprintf("PC 0x%.4X: address 0x%.4X outside %s", e.PC, e.Addr, bank)
}

// Init will create a new CPU and return it in powered on state.
// The memories passed in will also be powered on.
func Init(rom memory.Bank, ram memory.Bank) (*Processor, error) {
	if rom == nil || ram == nil {
		return nil, fmt.Errorf("both ROM and RAM must be supplied")
	}
	p := &Processor{
		Rom: rom,
		Ram: ram,
	}
	p.Rom.PowerOn()
	p.Ram.PowerOn()
	p.PowerOn()
	return p, nil
}

// PowerOn will reset the CPU to specific power on state. Registers are zero.
func (p *Processor) PowerOn() {
	p.A = 0
	p.D = 0
	p.Reset()
}

// Reset restarts execution at address 0. Registers aren't touched.
func (p *Processor) Reset() {
	p.PC = 0
	p.Ticks = 0
}

// Idle reports whether the CPU is parked in the canonical end of program loop:
//
//	(END)
//	@END
//	0;JMP
//
// i.e. the next instruction is 0;JMP and the one before it loads its own address.
func (p *Processor) Idle() bool {
	if p.PC == 0 || p.Rom.Read(p.PC) != IDLE {
		return false
	}
	return p.Rom.Read(p.PC-1) == p.PC-1
}

// ALU computes the Hack ALU output for inputs x and y and the instruction's
// six control bits.
func ALU(x, y uint16, op uint16) uint16 {
	if op&I_ZX != 0 {
		x = 0
	}
	if op&I_NX != 0 {
		x = ^x
	}
	if op&I_ZY != 0 {
		y = 0
	}
	if op&I_NY != 0 {
		y = ^y
	}
	var out uint16
	if op&I_F != 0 {
		out = x + y
	} else {
		out = x & y
	}
	if op&I_NO != 0 {
		out = ^out
	}
	return out
}

// Step executes the instruction at PC. An error is returned (and no registers
// change) if the instruction is invalid or touches memory that doesn't exist.
func (p *Processor) Step() error {
	if int(p.PC) >= p.Rom.Size() {
		return InvalidAddress{PC: p.PC, Addr: p.PC, ROM: true}
	}
	if p.Keyboard != nil {
		p.Ram.Write(memory.KBD, p.Keyboard.Input())
	}
	op := p.Rom.Read(p.PC)
	if op&I_C == 0 {
		p.A = op
		p.PC++
		p.Ticks++
		return nil
	}
	if op&I_ONES != I_ONES {
		return InvalidInstruction{PC: p.PC, Opcode: op}
	}

	// Only check the address when M is actually used.
	usesM := op&I_A != 0 || op&I_DM != 0
	if usesM && int(p.A) >= p.Ram.Size() {
		return InvalidAddress{PC: p.PC, Addr: p.A}
	}

	y := p.A
	if op&I_A != 0 {
		y = p.Ram.Read(p.A)
	}
	out := ALU(p.D, y, op)

	// Everything below sees the register values from before this instruction.
	addr := p.A
	if op&I_DM != 0 {
		p.Ram.Write(addr, out)
	}
	if op&I_DA != 0 {
		p.A = out
	}
	if op&I_DD != 0 {
		p.D = out
	}

	neg := int16(out) < 0
	zero := out == 0
	if (op&I_JLT != 0 && neg) || (op&I_JEQ != 0 && zero) || (op&I_JGT != 0 && !neg && !zero) {
		p.PC = addr
	} else {
		p.PC++
	}
	p.Ticks++
	return nil
}

// Run steps the CPU until it goes idle (see Idle), an error happens or max
// instructions have executed. It returns the number of instructions executed.
// Hitting max isn't an error, callers should check Idle if it matters.
func (p *Processor) Run(max int) (int, error) {
	n := 0
	for n < max && !p.Idle() {
		if err := p.Step(); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}
