// hackasm takes a Hack assembly file and produces a .hack file
// of binary machine code, one 16 character line per instruction.
//
// The output is written next to the input with the extension
// replaced by .hack unless -o is given. If no input is named on
// the command line it's prompted for on stdin.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/glog"
	"github.com/jmchacon/hack/assembler"
	"github.com/k0kubun/pp/v3"
)

var (
	output      = flag.String("o", "", "Output file. Defaults to the input with its extension replaced by .hack")
	legacy      = flag.Bool("legacy", false, "Reproduce the reference assembler's variable handling (new variables all share one address and their first reference emits nothing)")
	ramBase     = flag.Int("ram_base", assembler.RAM_BASE, "First RAM address handed out to variables")
	dumpSymbols = flag.Bool("dump_symbols", false, "If set, print the final symbol table to stderr")
)

// outputName replaces the last extension of fn with .hack.
func outputName(fn string) string {
	return strings.TrimSuffix(fn, filepath.Ext(fn)) + ".hack"
}

func prompt() (string, error) {
	fmt.Println("Please enter the assembly file name you would like to translate")
	fmt.Println("Don't forget the .asm extension: ")
	s := bufio.NewScanner(os.Stdin)
	if !s.Scan() {
		if err := s.Err(); err != nil {
			return "", err
		}
		return "", fmt.Errorf("no file name given")
	}
	return strings.TrimSpace(s.Text()), nil
}

func main() {
	flag.Parse()
	defer glog.Flush()

	var fn string
	switch len(flag.Args()) {
	case 0:
		var err error
		if fn, err = prompt(); err != nil {
			glog.Exitf("Can't read file name: %v", err)
		}
	case 1:
		fn = flag.Args()[0]
	default:
		glog.Exitf("Invalid command: %s [-o <output>] [-legacy] [-dump_symbols] [<input>]", os.Args[0])
	}
	out := *output
	if out == "" {
		out = outputName(fn)
	}

	a, res, err := assembler.AssembleFile(context.Background(), fn, out, assembler.Options{
		Legacy:  *legacy,
		RAMBase: *ramBase,
	})
	if err != nil {
		glog.Exitf("Can't assemble %q into %q - %v", fn, out, err)
	}
	if *dumpSymbols {
		pp.Fprintln(os.Stderr, a.Symbols.Entries())
	}
	glog.Infof("Finished assembling %q into %q: %d instructions, %d labels, %d variables", fn, out, res.Emitted, res.Labels, res.Variables)
}
