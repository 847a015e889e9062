// disassembler takes a filename and load's it into ROM and then
// disassembles it to stdout starting at the first instruction.
// If the filename ends in .bin (case insensitive) it's assumed to be
// a big endian binary ROM image, otherwise it's read as the text
// .hack format the assembler produces.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/glog"
	"github.com/jmchacon/hack/disassemble"
	"github.com/jmchacon/hack/hackfile"
	"github.com/jmchacon/hack/memory"
)

var (
	startPC = flag.Int("start_pc", 0x0000, "PC value to start disassembling")
)

func main() {
	flag.Parse()
	defer glog.Flush()
	if len(flag.Args()) != 1 {
		glog.Exitf("Invalid command: %s [-start_pc <PC>] <filename>", os.Args[0])
	}
	fn := flag.Args()[0]

	f, err := os.Open(fn)
	if err != nil {
		glog.Exitf("Can't open %s - %v", fn, err)
	}
	var words []uint16
	if strings.ToLower(filepath.Ext(fn)) == ".bin" {
		words, err = hackfile.ReadBinary(f)
	} else {
		words, err = hackfile.Read(f)
	}
	f.Close()
	if err != nil {
		glog.Exitf("Can't load %s - %v", fn, err)
	}
	if l := len(words); l > memory.ROM_SIZE {
		glog.Warningf("Length %d too long, truncating to %d words", l, memory.ROM_SIZE)
		words = words[:memory.ROM_SIZE]
	}
	if *startPC < 0 || *startPC >= len(words) {
		glog.Exitf("-start_pc %d out of range. Program is %d words", *startPC, len(words))
	}

	r := memory.NewROM(words)
	fmt.Printf("0x%.4X words at pc: %.4X\n", r.Len(), *startPC)
	for pc := *startPC; pc < r.Len(); {
		dis, off := disassemble.Step(uint16(pc), r)
		pc += off
		fmt.Println(dis)
	}
}
