// Package io defines the basic interfaces for working
// with a Hack input device. The only one the architecture
// defines is the keyboard, which the CPU samples into its
// memory mapped register before every instruction.
package io

// Port16 defines a 16 bit input port
type Port16 interface {
	// Input will return the current value being set on the given input port.
	Input() uint16
}

// Keys is a Port16 which plays back a fixed sequence of key codes, one per
// call to Input, and then reports no key (0) forever.
type Keys struct {
	codes []uint16
}

// NewKeys returns a Port16 that plays back codes.
func NewKeys(codes ...uint16) *Keys {
	return &Keys{codes: codes}
}

// Input implements Port16.
func (k *Keys) Input() uint16 {
	if len(k.codes) == 0 {
		return 0
	}
	c := k.codes[0]
	k.codes = k.codes[1:]
	return c
}
