// convertbin takes a .hack text file and converts it into
// a big endian binary ROM image (2 bytes per instruction)
// suitable for loading into a hardware or emulated Hack ROM.
//
// The output file is named after the input with .bin
// appended onto the end.
package main

import (
	"bytes"
	"flag"
	"io/ioutil"
	"os"

	"github.com/golang/glog"
	"github.com/jmchacon/hack/cpu"
	"github.com/jmchacon/hack/hackfile"
	"github.com/jmchacon/hack/memory"
)

var (
	pad  = flag.Bool("pad", false, "If set, zero fill the image out to the full 32K word ROM")
	idle = flag.Bool("idle", false, "If set along with -pad, park the CPU in an idle loop at the end of the ROM instead of leaving zeros")
)

func main() {
	flag.Parse()
	defer glog.Flush()
	if len(flag.Args()) != 1 {
		glog.Exitf("Invalid command: %s [-pad] [-idle] <filename>", os.Args[0])
	}
	fn := flag.Args()[0]
	f, err := os.Open(fn)
	if err != nil {
		glog.Exitf("Can't open %s - %v", fn, err)
	}
	words, err := hackfile.Read(f)
	f.Close()
	if err != nil {
		glog.Exitf("Can't parse %s - %v", fn, err)
	}
	if l := len(words); l > memory.ROM_SIZE {
		glog.Warningf("Length %d too long, truncating to %d words", l, memory.ROM_SIZE)
		words = words[:memory.ROM_SIZE]
	}

	if *pad {
		out := make([]uint16, memory.ROM_SIZE)
		copy(out, words)
		if *idle {
			// (END) @END 0;JMP in the last two words.
			end := uint16(memory.ROM_SIZE - 2)
			if len(words) > int(end) {
				glog.Exitf("Program is %d words, no room for the idle loop", len(words))
			}
			out[end] = end
			out[end+1] = cpu.IDLE
		}
		words = out
	}

	var b bytes.Buffer
	if err := hackfile.WriteBinary(&b, words); err != nil {
		glog.Exitf("Can't encode %s - %v", fn, err)
	}
	outfn := fn + ".bin"
	if err := ioutil.WriteFile(outfn, b.Bytes(), 0644); err != nil {
		glog.Exitf("Can't write %q: %v", outfn, err)
	}
	glog.Infof("Wrote 0x%.4X words to %s", len(words), outfn)
}
