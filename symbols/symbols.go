// Package symbols implements the assembler symbol table. It maps label and
// variable names onto addresses. Labels live in the instruction (ROM)
// address space and variables in the data (RAM) address space but both
// share the one table.
//
// Bindings are first-come: once a name is in the table it's never
// rebound. The assembler depends on this to tell labels found in the first
// pass apart from variables discovered in the second.
package symbols

import (
	"sort"
)

const (
	SCREEN = 16384 // Base of the memory mapped screen.
	KBD    = 24576 // Memory mapped keyboard.
)

// Predefined holds the symbols reserved by the Hack architecture. It must not
// be modified, New copies it into each table.
var Predefined = map[string]int{
	"SP":     0,
	"LCL":    1,
	"ARG":    2,
	"THIS":   3,
	"THAT":   4,
	"R0":     0,
	"R1":     1,
	"R2":     2,
	"R3":     3,
	"R4":     4,
	"R5":     5,
	"R6":     6,
	"R7":     7,
	"R8":     8,
	"R9":     9,
	"R10":    10,
	"R11":    11,
	"R12":    12,
	"R13":    13,
	"R14":    14,
	"R15":    15,
	"SCREEN": SCREEN,
	"KBD":    KBD,
}

// Entry is a single binding.
type Entry struct {
	Name    string
	Address int
	Line    int // Source line which created the binding. 0 for predefined symbols.
}

// Table maps names to addresses. It isn't safe for concurrent use.
type Table struct {
	entries map[string]Entry
}

// New returns a table seeded with the given predefined symbols.
// Normally this is called with Predefined.
func New(predefined map[string]int) *Table {
	t := &Table{
		entries: make(map[string]Entry, len(predefined)),
	}
	for n, a := range predefined {
		t.entries[n] = Entry{Name: n, Address: a}
	}
	return t
}

// AddEntry binds name to address only if name isn't already bound. It
// returns true if the binding was made and false if this was a no-op.
func (t *Table) AddEntry(name string, address int, line int) bool {
	if _, ok := t.entries[name]; ok {
		return false
	}
	t.entries[name] = Entry{Name: name, Address: address, Line: line}
	return true
}

// Contains reports whether name is bound.
func (t *Table) Contains(name string) bool {
	_, ok := t.entries[name]
	return ok
}

// GetAddress returns the address bound to name. Callers must check Contains
// first, an unbound name returns 0.
func (t *Table) GetAddress(name string) int {
	return t.entries[name].Address
}

// Lookup returns the full entry for name.
func (t *Table) Lookup(name string) (Entry, bool) {
	e, ok := t.entries[name]
	return e, ok
}

// Len returns the number of bound names including predefined ones.
func (t *Table) Len() int {
	return len(t.entries)
}

// Entries returns every binding sorted by address and then name.
func (t *Table) Entries() []Entry {
	out := make([]Entry, 0, len(t.entries))
	for _, e := range t.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Address != out[j].Address {
			return out[i].Address < out[j].Address
		}
		return out[i].Name < out[j].Name
	})
	return out
}
