package asm_test

import (
	"os"
	"testing"

	"accumula/asm"
	"accumula/internal/pipeline"
)

// corpusFiles lists every bundled program, so the round-trip property is
// checked against vm.Programs the translator actually produces, not just
// hand-built ones.
var corpusFiles = []string{
	"../testdata/bitstring.acc",
	"../testdata/sieve.acc",
	"../testdata/prime_decomposition.acc",
	"../testdata/divmod_signs.acc",
	"../testdata/factorial.acc",
}

func TestPrintRoundTripFromTranslator(t *testing.T) {
	for _, path := range corpusFiles {
		path := path
		t.Run(path, func(t *testing.T) {
			src, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("reading %s: %v", path, err)
			}
			prog, err := pipeline.Compile(string(src))
			if err != nil {
				t.Fatalf("compiling %s: %v", path, err)
			}

			parsed, err := asm.Parse(asm.Print(prog))
			if err != nil {
				t.Fatalf("Parse(Print(...)) for %s: %v", path, err)
			}

			if len(parsed.Instructions) != len(prog.Instructions) {
				t.Fatalf("%s: round-trip produced %d instructions, want %d", path, len(parsed.Instructions), len(prog.Instructions))
			}
			for i, instr := range prog.Instructions {
				if parsed.Instructions[i] != instr {
					t.Errorf("%s: instruction %d = %+v, want %+v", path, i, parsed.Instructions[i], instr)
				}
			}
		})
	}
}
