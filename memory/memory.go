// Package memory defines the basic interfaces for working
// with the Hack memory map. The Hack machine is a Harvard design
// with separate instruction (ROM) and data (RAM) memories, both
// addressed in 16 bit words.
package memory

// Sizes of the Hack address spaces in words.
const (
	ROM_SIZE = 32768
	RAM_SIZE = 24577 // 16K data, 8K screen, 1 keyboard word.

	SCREEN = uint16(0x4000)
	KBD    = uint16(0x6000)
)

type Bank interface {
	// Read returns the word stored at addr. Addresses outside the bank read as 0.
	Read(addr uint16) uint16
	// Write updates addr with the new value. For ROM and addresses outside the
	// bank this is simply a no-op without any error.
	Write(addr uint16, val uint16)
	// PowerOn performs power on reset of the memory. This is implementation specific as to
	// whether it's preset to all zeros or left as loaded.
	PowerOn()
	// Size returns the number of addressable words.
	Size() int
}

// ROM is the instruction memory. It's loaded once and then read only.
type ROM struct {
	words [ROM_SIZE]uint16
	len   int
}

// NewROM returns a ROM holding prog starting at address 0. Anything past
// ROM_SIZE words is dropped.
func NewROM(prog []uint16) *ROM {
	r := &ROM{}
	r.len = copy(r.words[:], prog)
	return r
}

// Read implements Bank.
func (r *ROM) Read(addr uint16) uint16 {
	if int(addr) >= ROM_SIZE {
		return 0
	}
	return r.words[addr]
}

// Write implements Bank. ROM can't be written.
func (r *ROM) Write(addr uint16, val uint16) {}

// PowerOn implements Bank. The program survives a power cycle.
func (r *ROM) PowerOn() {}

// Size implements Bank.
func (r *ROM) Size() int {
	return ROM_SIZE
}

// Len returns the number of words actually loaded.
func (r *ROM) Len() int {
	return r.len
}

// RAM is the data memory including the screen and keyboard maps.
type RAM struct {
	words [RAM_SIZE]uint16
}

// Read implements Bank.
func (r *RAM) Read(addr uint16) uint16 {
	if int(addr) >= RAM_SIZE {
		return 0
	}
	return r.words[addr]
}

// Write implements Bank.
func (r *RAM) Write(addr uint16, val uint16) {
	if int(addr) >= RAM_SIZE {
		return
	}
	r.words[addr] = val
}

// PowerOn implements Bank and zeroes all of RAM.
func (r *RAM) PowerOn() {
	for i := range r.words {
		r.words[i] = 0
	}
}

// Size implements Bank.
func (r *RAM) Size() int {
	return RAM_SIZE
}
