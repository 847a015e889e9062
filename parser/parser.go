// Package parser reads Hack assembly source one line at a time. Each line
// is stripped of whitespace and comments, classified and broken into its
// fields. C instruction fields are translated into their binary codes as
// they're parsed so callers only ever see bit strings for them.
//
// A Parser is restartable. It is built over a Source which can be reopened
// from the beginning, so an assembler can make as many passes over the
// same program as it needs.
package parser

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"strings"
	"unicode"

	"github.com/golang/glog"
	"github.com/jmchacon/hack/code"
)

// CommandType is an enumeration of the kinds of source line.
type CommandType int

const (
	NO_COMMAND CommandType = iota // Blank or comment only line.
	A_COMMAND                     // @value or @symbol
	C_COMMAND                     // dest=comp;jump
	L_COMMAND                     // (LABEL)
)

func (c CommandType) String() string {
	switch c {
	case NO_COMMAND:
		return "NO_COMMAND"
	case A_COMMAND:
		return "A_COMMAND"
	case C_COMMAND:
		return "C_COMMAND"
	case L_COMMAND:
		return "L_COMMAND"
	}
	return fmt.Sprintf("CommandType(%d)", int(c))
}

// Command is a single parsed line. Only the fields relevant to Type are set,
// the rest are left empty.
type Command struct {
	Type   CommandType
	Symbol string // A and L commands.
	Dest   string // 3 bit destination code (C commands).
	Comp   string // 7 bit computation code (C commands).
	Jump   string // 3 bit jump code (C commands).
}

// Source is anything that can produce the program text from the start.
// Every call to Open must return a fresh reader positioned at the first line.
type Source interface {
	Open() (io.ReadCloser, error)
}

// File is a Source backed by a path on disk which is reopened each time.
type File string

// Open implements Source.
func (f File) Open() (io.ReadCloser, error) {
	return os.Open(string(f))
}

// Bytes is a Source held in memory.
type Bytes []byte

// Open implements Source.
func (b Bytes) Open() (io.ReadCloser, error) {
	return ioutil.NopCloser(bytes.NewReader(b)), nil
}

// String returns a Source for the given program text.
func String(s string) Source {
	return Bytes(s)
}

// Parser walks a Source line by line. It isn't safe for concurrent use.
type Parser struct {
	src     Source
	rc      io.ReadCloser
	scanner *bufio.Scanner
	done    bool
	err     error

	lineNumber int
	rawLine    string
	cleanLine  string
	cmd        Command
}

// New opens the source and returns a Parser positioned before the first line.
// If the source can't be opened an error is returned and no Parser is created.
func New(src Source) (*Parser, error) {
	p := &Parser{src: src}
	if err := p.Reset(); err != nil {
		return nil, err
	}
	return p, nil
}

// Reset closes the current reader (if any) and reopens the source from the
// beginning. All per line state including the line counter is cleared.
func (p *Parser) Reset() error {
	if p.rc != nil {
		p.rc.Close()
		p.rc = nil
	}
	rc, err := p.src.Open()
	if err != nil {
		p.done = true
		return fmt.Errorf("can't open source: %w", err)
	}
	p.rc = rc
	p.scanner = bufio.NewScanner(rc)
	p.done = false
	p.err = nil
	p.lineNumber = 0
	p.rawLine = ""
	p.cleanLine = ""
	p.cmd = Command{}
	return nil
}

// Advance reads the next line and makes it the current command. It returns
// false once the source is exhausted (or a read error happens, see Err) at
// which point the underlying reader is closed. Every physical line counts,
// blank and comment lines come back as NO_COMMAND.
func (p *Parser) Advance() bool {
	if p.done {
		return false
	}
	if !p.scanner.Scan() {
		p.err = p.scanner.Err()
		p.Close()
		return false
	}
	p.lineNumber++
	p.rawLine = p.scanner.Text()
	p.cleanLine = Clean(p.rawLine)
	var unknown []string
	p.cmd, unknown = parse(p.cleanLine)
	for _, u := range unknown {
		glog.Warningf("line %d: %s in %q", p.lineNumber, u, p.rawLine)
	}
	return true
}

// Err returns the first read error encountered, if any.
func (p *Parser) Err() error {
	return p.err
}

// Close releases the underlying reader. Advance will return false afterwards
// until Reset is called.
func (p *Parser) Close() error {
	p.done = true
	if p.rc == nil {
		return nil
	}
	err := p.rc.Close()
	p.rc = nil
	return err
}

// Command returns the whole parsed form of the current line.
func (p *Parser) Command() Command {
	return p.cmd
}

// CommandType returns the classification of the current line.
func (p *Parser) CommandType() CommandType {
	return p.cmd.Type
}

// Symbol returns the label name of an L command or the value/name of an A command.
func (p *Parser) Symbol() string {
	return p.cmd.Symbol
}

// Dest returns the destination code of a C command.
func (p *Parser) Dest() string {
	return p.cmd.Dest
}

// Comp returns the computation code of a C command.
func (p *Parser) Comp() string {
	return p.cmd.Comp
}

// Jump returns the jump code of a C command.
func (p *Parser) Jump() string {
	return p.cmd.Jump
}

// RawLine returns the current line exactly as read.
func (p *Parser) RawLine() string {
	return p.rawLine
}

// CleanLine returns the current line with whitespace and comments removed.
func (p *Parser) CleanLine() string {
	return p.cleanLine
}

// LineNumber returns the 1 based index of the current line.
func (p *Parser) LineNumber() int {
	return p.lineNumber
}

// Clean removes every whitespace character from the line and then truncates
// it at the first slash. Nothing in the grammar legitimately contains a slash
// so the first one found always starts a // comment.
func Clean(raw string) string {
	s := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)
	if i := strings.IndexByte(s, '/'); i != -1 {
		s = s[:i]
	}
	return s
}

// ParseLine classifies an already cleaned line and breaks it into fields.
// Unknown mnemonics are encoded as all zero fields.
func ParseLine(clean string) Command {
	c, _ := parse(clean)
	return c
}

// parse does the work for ParseLine and also returns a description of any
// field it couldn't translate.
func parse(clean string) (Command, []string) {
	if len(clean) == 0 {
		return Command{Type: NO_COMMAND}, nil
	}
	switch clean[0] {
	case '(':
		sym := clean[1:]
		// Missing the closing paren is malformed, just take the rest.
		if end := strings.IndexByte(sym, ')'); end != -1 {
			sym = sym[:end]
		}
		return Command{Type: L_COMMAND, Symbol: sym}, nil
	case '@':
		return Command{Type: A_COMMAND, Symbol: clean[1:]}, nil
	}

	var dest, comp, jump string
	eq := strings.IndexByte(clean, '=')
	semi := strings.IndexByte(clean, ';')
	// An = after the ; can't be a destination so ignore it.
	if semi != -1 && eq > semi {
		eq = -1
	}
	switch {
	case eq != -1 && semi == -1:
		dest = clean[:eq]
		comp = clean[eq+1:]
	case eq != -1 && semi != -1:
		dest = clean[:eq]
		comp = clean[eq+1 : semi]
		jump = clean[semi+1:]
	case eq == -1 && semi != -1:
		comp = clean[:semi]
		jump = clean[semi+1:]
	default:
		comp = clean
	}

	var unknown []string
	c := Command{Type: C_COMMAND}
	var ok bool
	if c.Dest, ok = code.Dest(dest); !ok {
		unknown = append(unknown, fmt.Sprintf("unknown dest %q", dest))
	}
	if c.Comp, ok = code.Comp(comp); !ok {
		unknown = append(unknown, fmt.Sprintf("unknown comp %q", comp))
	}
	if c.Jump, ok = code.Jump(jump); !ok {
		unknown = append(unknown, fmt.Sprintf("unknown jump %q", jump))
	}
	return c, unknown
}
