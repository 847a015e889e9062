// Package disassemble implements a disassembler for Hack instruction words
package disassemble

import (
	"fmt"

	"github.com/jmchacon/hack/code"
	"github.com/jmchacon/hack/memory"
)

// Decode returns the assembly text for a single instruction word. A
// instructions come back as @value (labels and variables aren't recoverable).
// C instructions come back as dest=comp;jump with the absent parts left
// out. The bool is false if the word isn't a valid instruction, in which
// case the text is "UNIMPLEMENTED".
func Decode(w uint16) (string, bool) {
	if w&0x8000 == 0 {
		return fmt.Sprintf("@%d", w), true
	}
	if w&0x6000 != 0x6000 {
		return "UNIMPLEMENTED", false
	}
	bits := fmt.Sprintf("%016b", w)
	comp, ok := code.CompMnemonic(bits[3:10])
	if !ok {
		return "UNIMPLEMENTED", false
	}
	// These two can't fail, every 3 bit value is in the tables.
	dest, _ := code.DestMnemonic(bits[10:13])
	jump, _ := code.JumpMnemonic(bits[13:16])

	out := comp
	if dest != "" {
		out = dest + "=" + out
	}
	if jump != "" {
		out += ";" + jump
	}
	return out, true
}

// Step will take the given PC value and disassemble the instruction at that location
// returning a string for the disassembly and the words forward the PC should move to get to
// the next instruction. Every Hack instruction is one word so this is always 1 but it keeps
// the same shape as other disassemblers. This does not interpret the instructions so jumps
// aren't followed.
func Step(pc uint16, r memory.Bank) (string, int) {
	w := r.Read(pc)
	dis, _ := Decode(w)
	return fmt.Sprintf("%.4X %.4X  %s", pc, w, dis), 1
}
