package codegen

import (
	"sort"
)

// simpleConstants are pre-registered before layout so that shift and
// increment/decrement idioms used by the arithmetic peepholes always have
// a materialized cell to reference, even if the source program never
// mentions these literals itself.
var simpleConstants = []int64{0, 1, -1, 2, -2}

func (g *Generator) constantLocation(value int64) memoryLocation {
	idx := g.context.GetOrRegisterConstant(value)
	return g.memory.locationOf(idx)
}

// generateConstants materializes every registered constant's value, and
// every array's base value, into its memory cell. It runs after layout, so
// every constant and array bookkeeping cell already has an address; it emits the construction code in ascending |value| order so
// that small constants (used by binary-expansion of larger ones) are
// already in memory before they're needed, then re-zeros the accumulator
// once up front since the first construction assumes acc starts at zero.
func (g *Generator) generateConstants() {
	type constant struct {
		location memoryLocation
		value    int64
	}
	var toGenerate []constant
	for value, idx := range g.context.Constants() {
		toGenerate = append(toGenerate, constant{location: g.memory.locationOf(idx), value: value})
	}
	for idx, base := range g.memory.value {
		toGenerate = append(toGenerate, constant{location: g.memory.locationOf(idx), value: base})
	}
	sort.Slice(toGenerate, func(i, j int) bool {
		ai, aj := abs64(toGenerate[i].value), abs64(toGenerate[j].value)
		if ai != aj {
			return ai < aj
		}
		return toGenerate[i].value < toGenerate[j].value
	})

	g.instr.sub(0)

	for _, c := range toGenerate {
		g.generateConstant(c.value, c.location)
	}
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

// generateConstant builds value into the accumulator and stores it at
// location, leaving the accumulator re-zeroed afterward. Small magnitudes
// (<10) are built by repeated Inc/Dec; larger ones by binary expansion
// from the top set bit downward, doubling via Shift against the
// already-materialized constant 1.
func (g *Generator) generateConstant(value int64, location memoryLocation) {
	abs := abs64(value)
	if abs < 10 {
		grow, shrink := g.instr.inc, g.instr.dec
		if value < 0 {
			grow, shrink = g.instr.dec, g.instr.inc
		}
		for i := int64(0); i < abs; i++ {
			grow()
		}
		g.instr.store(location)
		for i := int64(0); i < abs; i++ {
			shrink()
		}
		return
	}

	grow := g.instr.inc
	if value < 0 {
		grow = g.instr.dec
	}

	bits := bitsHighToLow(abs)
	oneConst := g.constantLocation(1)

	for i, bit := range bits {
		if bit {
			grow()
		}
		if i != len(bits)-1 {
			g.instr.shift(oneConst)
		}
	}

	g.instr.store(location)
	g.instr.sub(0)
}

// bitsHighToLow returns every bit of abs, set or not, from the highest set
// bit down to bit 0, most significant first (e.g. 13 -> [true,true,false,true]).
func bitsHighToLow(abs int64) []bool {
	if abs == 0 {
		return []bool{false}
	}
	highest := 0
	for b := abs; b != 0; b >>= 1 {
		highest++
	}
	bits := make([]bool, highest)
	for i := 0; i < highest; i++ {
		bits[highest-1-i] = (abs>>uint(i))&1 == 1
	}
	return bits
}
