package index

import (
	"math/bits"

	"github.com/clausecker/puzzledb/tileset"
)

// maprankRow describes one maprank's equivalence-class structure: the
// offset of this maprank's rows within a flattened (maprank, eqidx)
// table, the number of equivalence classes, a per-grid-position class id
// (UnreachedEqclass inside the map), and the canonical representative
// grid position for each class (its lowest member).
type maprankRow struct {
	offset     int
	nEqclass   int
	eqclasses  [tileset.NumSlots]int8
	eqclassRep [tileset.NumSlots]uint8
}

// maprankTable is the lookup table indexed by maprank for a given tile
// count k: one maprankRow per k-subset of the 25 grid positions, built
// once and shared by every IndexAux tracking k non-blank tiles plus the
// blank.
type maprankTable struct {
	rows []maprankRow
}

// buildMaprankTable constructs the table for tile count k by enumerating
// every k-subset of the 25 grid positions in rank order and running the
// equivalence-class flood fill over each one.
func buildMaprankTable(k int) *maprankTable {
	n := tileset.CombinationCount(k)
	rows := make([]maprankRow, n)

	offset := 0
	m := tileset.Least(k)
	for i := 0; i < n; i++ {
		eqclasses, nEqclass := tileset.PopulateEqclasses(m)

		row := &rows[i]
		row.offset = offset
		row.nEqclass = nEqclass
		row.eqclasses = eqclasses

		// Representative positions: ids are assigned by PopulateEqclasses
		// while scanning positions 0..24 in order, so the first position
		// carrying a given id is that id's lowest member.
		seen := make([]bool, nEqclass)
		for p := 0; p < tileset.NumSlots; p++ {
			id := eqclasses[p]
			if id == tileset.UnreachedEqclass || seen[id] {
				continue
			}
			seen[id] = true
			row.eqclassRep[id] = uint8(p)
		}

		offset += nEqclass
		m = nextCombination(m)
	}

	return &maprankTable{rows: rows}
}

// nextCombination returns the next k-element tileset after m in
// numeric (equivalently, colexicographic) order, via the standard
// Gosper's-hack bit trick.
func nextCombination(m tileset.Tileset) tileset.Tileset {
	v := uint32(m)
	t := v | (v - 1)
	w := (t + 1) | (((^t & -^t) - 1) >> uint(bits.TrailingZeros32(v)+1))
	return tileset.Tileset(w)
}
