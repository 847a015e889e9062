package main

import (
	"testing"
)

func TestOutputName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Max.asm", "Max.hack"},
		{"dir/Pong.asm", "dir/Pong.hack"},
		{"prog.v2.asm", "prog.v2.hack"},
		{"noext", "noext.hack"},
	}
	for _, test := range tests {
		if got := outputName(test.in); got != test.want {
			t.Errorf("%q: got %q want %q", test.in, got, test.want)
		}
	}
}
