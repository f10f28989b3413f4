package main

import (
	"os"
	"testing"

	"accumula/internal/pipeline"
	"accumula/vm"
)

// runCorpusFile compiles the named testdata program and runs it to
// completion, returning every value it Put.
func runCorpusFile(t *testing.T, path string, inputs []int64) []int64 {
	t.Helper()
	src, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	prog, err := pipeline.Compile(string(src))
	if err != nil {
		t.Fatalf("compiling %s: %v", path, err)
	}
	world := vm.NewMemoryWorld(inputs)
	if _, err := vm.New(world, prog).Run(); err != nil {
		t.Fatalf("running %s: %v", path, err)
	}
	return world.Output()
}

func assertOutput(t *testing.T, got, want []int64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("output[%d] = %d, want %d (full: got %v, want %v)", i, got[i], want[i], got, want)
		}
	}
}

func TestCorpusBitstring(t *testing.T) {
	assertOutput(t, runCorpusFile(t, "testdata/bitstring.acc", []int64{10}), []int64{0, 1, 0, 1})
	assertOutput(t, runCorpusFile(t, "testdata/bitstring.acc", []int64{1345601}),
		[]int64{1, 0, 1, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 1})
}

func TestCorpusSieve(t *testing.T) {
	want := []int64{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47, 53, 59, 61, 67, 71, 73, 79, 83, 89, 97}
	assertOutput(t, runCorpusFile(t, "testdata/sieve.acc", nil), want)
}

func TestCorpusPrimeDecomposition(t *testing.T) {
	assertOutput(t, runCorpusFile(t, "testdata/prime_decomposition.acc", []int64{64}), []int64{2, 6})
	assertOutput(t, runCorpusFile(t, "testdata/prime_decomposition.acc", []int64{15}), []int64{3, 1, 5, 1})
	assertOutput(t, runCorpusFile(t, "testdata/prime_decomposition.acc", []int64{1}), nil)
}

func TestCorpusDivModSigns(t *testing.T) {
	want := []int64{4, 5, -5, -2, 4, -5, -5, 2}
	assertOutput(t, runCorpusFile(t, "testdata/divmod_signs.acc", []int64{33, 7}), want)
}

func TestCorpusFactorial(t *testing.T) {
	assertOutput(t, runCorpusFile(t, "testdata/factorial.acc", []int64{20}), []int64{2432902008176640000})
}
