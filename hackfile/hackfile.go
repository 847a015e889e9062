// Package hackfile reads and writes Hack machine code. The text form is
// what the assembler emits: one 16 character line of 0s and 1s per
// instruction. The binary form is a flat big endian image of the ROM.
package hackfile

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// WORD_BITS is the width of one instruction.
const WORD_BITS = 16

// FormatError describes a line which isn't a valid instruction word.
type FormatError struct {
	Line int
	Text string
}

// Error implements the interface for error types.
func (e FormatError) Error() string {
	return fmt.Sprintf("line %d: %q is not a %d bit binary word", e.Line, e.Text, WORD_BITS)
}

// Read parses text machine code. Blank lines are skipped and surrounding
// whitespace is ignored.
func Read(r io.Reader) ([]uint16, error) {
	var out []uint16
	s := bufio.NewScanner(r)
	l := 0
	for s.Scan() {
		l++
		t := strings.TrimSpace(s.Text())
		if t == "" {
			continue
		}
		if len(t) != WORD_BITS {
			return nil, FormatError{l, t}
		}
		v, err := strconv.ParseUint(t, 2, WORD_BITS)
		if err != nil {
			return nil, FormatError{l, t}
		}
		out = append(out, uint16(v))
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Write emits words in text form, one per line.
func Write(w io.Writer, words []uint16) error {
	bw := bufio.NewWriter(w)
	for _, v := range words {
		if _, err := fmt.Fprintf(bw, "%016b\n", v); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteBinary emits words as a big endian image, 2 bytes per word.
func WriteBinary(w io.Writer, words []uint16) error {
	return binary.Write(w, binary.BigEndian, words)
}

// ReadBinary is the inverse of WriteBinary. A trailing odd byte is an error.
func ReadBinary(r io.Reader) ([]uint16, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(b)%2 != 0 {
		return nil, fmt.Errorf("binary image has odd length %d", len(b))
	}
	out := make([]uint16, len(b)/2)
	for i := range out {
		out[i] = binary.BigEndian.Uint16(b[2*i:])
	}
	return out, nil
}
