package symbols

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/go-test/deep"
)

func TestPredefined(t *testing.T) {
	tbl := New(Predefined)
	if got, want := tbl.Len(), 23; got != want {
		t.Fatalf("got %d predefined symbols want %d", got, want)
	}
	tests := []struct {
		name string
		addr int
	}{
		{"SP", 0},
		{"LCL", 1},
		{"ARG", 2},
		{"THIS", 3},
		{"THAT", 4},
		{"R0", 0},
		{"R5", 5},
		{"R15", 15},
		{"SCREEN", 16384},
		{"KBD", 24576},
	}
	for _, test := range tests {
		if !tbl.Contains(test.name) {
			t.Errorf("%s: missing", test.name)
			continue
		}
		if got, want := tbl.GetAddress(test.name), test.addr; got != want {
			t.Errorf("%s: got %d want %d", test.name, got, want)
		}
	}
	// Predefined entries can't be rebound.
	if tbl.AddEntry("KBD", 99, 7) {
		t.Errorf("AddEntry rebound KBD")
	}
	if got, want := tbl.GetAddress("KBD"), KBD; got != want {
		t.Errorf("KBD changed. got %d want %d", got, want)
	}
}

func TestAddEntryFirstWins(t *testing.T) {
	tbl := New(Predefined)
	if tbl.Contains("LOOP") {
		t.Fatalf("LOOP bound before being added: %s", spew.Sdump(tbl))
	}
	if !tbl.AddEntry("LOOP", 4, 10) {
		t.Fatalf("first AddEntry of LOOP was a no-op")
	}
	if tbl.AddEntry("LOOP", 12, 30) {
		t.Errorf("second AddEntry of LOOP rebound it")
	}
	e, ok := tbl.Lookup("LOOP")
	if !ok {
		t.Fatalf("LOOP missing after AddEntry")
	}
	if diff := deep.Equal(e, Entry{Name: "LOOP", Address: 4, Line: 10}); diff != nil {
		t.Errorf("LOOP entry: %v", diff)
	}
}

func TestUnbound(t *testing.T) {
	tbl := New(nil)
	if tbl.Contains("x") {
		t.Errorf("empty table contains x")
	}
	if got := tbl.GetAddress("x"); got != 0 {
		t.Errorf("unbound GetAddress got %d want 0", got)
	}
	if _, ok := tbl.Lookup("x"); ok {
		t.Errorf("unbound Lookup reported ok")
	}
}

func TestNewCopiesPredefined(t *testing.T) {
	pre := map[string]int{"R0": 0}
	tbl := New(pre)
	tbl.AddEntry("i", 16, 1)
	if _, ok := pre["i"]; ok {
		t.Errorf("AddEntry leaked into the predefined map")
	}
}

func TestEntries(t *testing.T) {
	tbl := New(map[string]int{"SP": 0, "R0": 0, "R1": 1})
	tbl.AddEntry("sum", 16, 3)
	tbl.AddEntry("END", 2, 9)
	want := []Entry{
		{Name: "R0", Address: 0},
		{Name: "SP", Address: 0},
		{Name: "R1", Address: 1},
		{Name: "END", Address: 2, Line: 9},
		{Name: "sum", Address: 16, Line: 3},
	}
	if diff := deep.Equal(tbl.Entries(), want); diff != nil {
		t.Errorf("Entries: %v", diff)
	}
}
