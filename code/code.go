// Package code holds the Hack instruction field tables. Each table maps
// an assembly mnemonic to the fixed width bit string used in the binary
// encoding of a C instruction and back again.
//
// A C instruction is laid out as:
//
//	111a cccc ccdd djjj
//
// where a+c1..c6 is the computation, d1..d3 the destination and j1..j3
// the jump condition. An A instruction is a leading 0 followed by a 15 bit
// value.
package code

import (
	"fmt"
)

const (
	// ValueBits is the width of the value field of an A instruction.
	ValueBits = 15
	// MaxValue is the largest value an A instruction can load.
	MaxValue = 1<<ValueBits - 1

	// Zero codes used for absent (or unknown) fields.
	NoDest = "000"
	NoJump = "000"
	NoComp = "0000000"
)

var dest = map[string]string{
	"":    "000",
	"M":   "001",
	"D":   "010",
	"MD":  "011",
	"A":   "100",
	"AM":  "101",
	"AD":  "110",
	"AMD": "111",
}

var comp = map[string]string{
	// a == 0
	"0":   "0101010",
	"1":   "0111111",
	"-1":  "0111010",
	"D":   "0001100",
	"A":   "0110000",
	"!D":  "0001101",
	"!A":  "0110001",
	"-D":  "0001111",
	"-A":  "0110011",
	"D+1": "0011111",
	"A+1": "0110111",
	"D-1": "0001110",
	"A-1": "0110010",
	"D+A": "0000010",
	"D-A": "0010011",
	"A-D": "0000111",
	"D&A": "0000000",
	"D|A": "0010101",
	// a == 1
	"M":   "1110000",
	"!M":  "1110001",
	"-M":  "1110011",
	"M+1": "1110111",
	"M-1": "1110010",
	"D+M": "1000010",
	"D-M": "1010011",
	"M-D": "1000111",
	"D&M": "1000000",
	"D|M": "1010101",
}

var jump = map[string]string{
	"":    "000",
	"JGT": "001",
	"JEQ": "010",
	"JGE": "011",
	"JLT": "100",
	"JNE": "101",
	"JLE": "110",
	"JMP": "111",
}

// Reverse tables, filled in from the forward ones at init.
var (
	destMnemonic = invert(dest)
	compMnemonic = invert(comp)
	jumpMnemonic = invert(jump)
)

func invert(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		if o, ok := out[v]; ok {
			panic(fmt.Sprintf("duplicate code %s for %q and %q", v, o, k))
		}
		out[v] = k
	}
	return out
}

// Dest returns the 3 bit destination code for the given register combination.
// An empty mnemonic is the absent destination and encodes as 000. Registers must
// be written in canonical order (A, then D, then M). The bool is false if the
// mnemonic isn't a known destination, in which case NoDest is returned.
func Dest(m string) (string, bool) {
	c, ok := dest[m]
	if !ok {
		return NoDest, false
	}
	return c, true
}

// Comp returns the 7 bit computation code (a bit followed by c1..c6) for the
// given expression. The bool is false if the expression isn't one the ALU
// implements, in which case NoComp is returned.
func Comp(m string) (string, bool) {
	c, ok := comp[m]
	if !ok {
		return NoComp, false
	}
	return c, true
}

// Jump returns the 3 bit jump code for the given condition. An empty mnemonic
// means no jump and encodes as 000.
func Jump(m string) (string, bool) {
	c, ok := jump[m]
	if !ok {
		return NoJump, false
	}
	return c, true
}

// DecimalToBinary returns v as a zero padded 15 character binary string.
// Values which don't fit in 15 bits are masked down to the low 15 bits.
func DecimalToBinary(v int) string {
	return fmt.Sprintf("%0*b", ValueBits, v&MaxValue)
}

// DestMnemonic is the inverse of Dest. The absent destination is returned as "".
func DestMnemonic(c string) (string, bool) {
	m, ok := destMnemonic[c]
	return m, ok
}

// CompMnemonic is the inverse of Comp.
func CompMnemonic(c string) (string, bool) {
	m, ok := compMnemonic[c]
	return m, ok
}

// JumpMnemonic is the inverse of Jump. No jump is returned as "".
func JumpMnemonic(c string) (string, bool) {
	m, ok := jumpMnemonic[c]
	return m, ok
}
