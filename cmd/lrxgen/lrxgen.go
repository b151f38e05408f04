/*
lrxgen is a console utility compiling a grammar definition to a table blob.
Usage is

	lrxgen [-z] [-o <name>] <file>

-z flag instructs lrxgen to compress the blob with zstd;

-o <name> defines output file name, default is the name of input file with .lrx suffix;

<file> defines grammar definition file parsable by tablegen.Parse().
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vkarel/lrx/grammar"
	"github.com/vkarel/lrx/tablegen"
)

var (
	compress                bool
	inFileName, outFileName string
)

func main() {
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "Usage is  lrxgen [-z] [-o <name>] <file>")
		flag.PrintDefaults()
		fmt.Fprintln(flag.CommandLine.Output(), "  <file>")
		fmt.Fprintln(flag.CommandLine.Output(), "\tgrammar definition file name")
	}

	flag.BoolVar(&compress, "z", false, "compress the blob with zstd")
	flag.StringVar(&outFileName, "o", "", "output file name, default is the name of input file with .lrx suffix")
	flag.Parse()
	inFileName = flag.Arg(0)
	if inFileName == "" {
		flag.Usage()
		os.Exit(2)
	}

	if outFileName == "" {
		ext := filepath.Ext(inFileName)
		outFileName = inFileName[:len(inFileName)-len(ext)] + ".lrx"
	}

	var gr *grammar.Grammar
	src, e := os.ReadFile(inFileName)
	if e == nil {
		gr, e = tablegen.ParseBytes(inFileName, src)
	}
	var blob []byte
	if e == nil {
		if compress {
			blob, e = grammar.EncodeCompressed(gr)
		} else {
			blob, e = grammar.Encode(gr)
		}
	}
	if e == nil {
		e = os.WriteFile(outFileName, blob, 0o666)
	}

	if e != nil {
		fmt.Println(e.Error())
		os.Exit(3)
	}
}
