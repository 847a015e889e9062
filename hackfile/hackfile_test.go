package hackfile

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-test/deep"
)

const testDir = "../testdata"

func TestReadMax(t *testing.T) {
	f, err := os.Open(filepath.Join(testDir, "Max.hack"))
	if err != nil {
		t.Fatalf("Can't open Max.hack: %v", err)
	}
	defer f.Close()
	got, err := Read(f)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got, want := len(got), 16; got != want {
		t.Fatalf("got %d words want %d", got, want)
	}
	// Spot check a few.
	if got, want := got[1], uint16(0xFC10); got != want {
		t.Errorf("word 1 got %.4X want %.4X", got, want)
	}
	if got, want := got[15], uint16(0xEA87); got != want {
		t.Errorf("word 15 got %.4X want %.4X", got, want)
	}
}

func TestTextRoundTrip(t *testing.T) {
	in := "0000000000000010\n\n  1110110000010000 \n"
	words, err := Read(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if diff := deep.Equal(words, []uint16{0x0002, 0xEC10}); diff != nil {
		t.Fatalf("Read: %v", diff)
	}
	var b bytes.Buffer
	if err := Write(&b, words); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got, want := b.String(), "0000000000000010\n1110110000010000\n"; got != want {
		t.Errorf("Write got %q want %q", got, want)
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		line int
	}{
		{"short", "0101\n", 1},
		{"not binary", "0000000000000000\n000000000000002X\n", 2},
	}
	for _, test := range tests {
		_, err := Read(strings.NewReader(test.in))
		var fe FormatError
		if !errors.As(err, &fe) {
			t.Errorf("%s: got %v want FormatError", test.name, err)
			continue
		}
		if got, want := fe.Line, test.line; got != want {
			t.Errorf("%s: error on line %d want %d", test.name, got, want)
		}
	}
}

func TestBinary(t *testing.T) {
	words := []uint16{0x0002, 0xEC10, 0xEA87}
	var b bytes.Buffer
	if err := WriteBinary(&b, words); err != nil {
		t.Fatalf("WriteBinary: %v", err)
	}
	if diff := deep.Equal(b.Bytes(), []byte{0x00, 0x02, 0xEC, 0x10, 0xEA, 0x87}); diff != nil {
		t.Errorf("WriteBinary: %v", diff)
	}
	got, err := ReadBinary(&b)
	if err != nil {
		t.Fatalf("ReadBinary: %v", err)
	}
	if diff := deep.Equal(got, words); diff != nil {
		t.Errorf("ReadBinary: %v", diff)
	}
	if _, err := ReadBinary(bytes.NewReader([]byte{1, 2, 3})); err == nil {
		t.Errorf("ReadBinary accepted an odd length image")
	}
}
