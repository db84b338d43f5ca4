// Package index implements the perfect-hash index scheme that maps a
// puzzle configuration, restricted to a chosen tileset, to a dense
// (maprank, pidx, eqidx) triple and back.
package index

import (
	"fmt"

	"github.com/clausecker/puzzledb/puzzle"
	"github.com/clausecker/puzzledb/tileset"
	"github.com/clausecker/puzzledb/tilesimd"
)

// EqidxUntracked is the sentinel Eqidx value used when the blank is not
// part of the tracked tileset.
const EqidxUntracked = -1

// Index is a structured address into a pattern database: which k-subset
// of grid positions holds the pattern (Maprank), which assignment of
// pattern tiles to those positions (Pidx), and, when the blank is
// tracked, which connected region of the complement it occupies
// (Eqidx, else EqidxUntracked).
type Index struct {
	Maprank int
	Pidx    int
	Eqidx   int
}

// IndexAux is the immutable per-tileset descriptor needed to compute and
// invert indices. It is safe to share between goroutines once built.
type IndexAux struct {
	Ts           tileset.Tileset // the full tracked tileset, possibly including the blank
	Tsnz         tileset.Tileset // Ts with the blank removed
	NTile        int             // |Tsnz|
	NMaprank     int             // C(25, NTile)
	NPerm        int             // NTile!
	SolvedParity int             // Parity of the tile map at the solved configuration

	idxt *maprankTable // nil unless Ts tracks the blank
}

// factorials holds n! for n in 0..tileset.MaxTiles, precomputed once like
// the original implementation's static factorials table.
var factorials [tileset.MaxTiles + 1]int

func init() {
	factorials[0] = 1
	for i := 1; i <= tileset.MaxTiles; i++ {
		factorials[i] = factorials[i-1] * i
	}
}

// MakeIndexAux builds the index descriptor for ts. It returns an error if
// ts tracks more than tileset.MaxTiles non-blank tiles.
func MakeIndexAux(ts tileset.Tileset) (*IndexAux, error) {
	tsnz := ts.Remove(tileset.ZeroTile)
	nTile := tsnz.Count()
	if nTile > tileset.MaxTiles {
		return nil, fmt.Errorf("index: tileset tracks %d tiles, more than the %d tile bound", nTile, tileset.MaxTiles)
	}

	aux := &IndexAux{
		Ts:       ts,
		Tsnz:     tsnz,
		NTile:    nTile,
		NMaprank: tileset.CombinationCount(nTile),
		NPerm:    factorials[nTile],
	}

	aux.SolvedParity = tilesimd.TileMap(tsnz, &puzzle.Solved).Parity()

	if ts.Has(tileset.ZeroTile) {
		aux.idxt = getMaprankTable(nTile)
	}

	return aux, nil
}

// TracksZero reports whether aux's tileset includes the blank.
func (aux *IndexAux) TracksZero() bool {
	return aux.Ts.Has(tileset.ZeroTile)
}

// NEqclass returns the number of equivalence classes for maprank r, or 1
// when the blank is not tracked (a single, trivial class).
func (aux *IndexAux) NEqclass(maprank int) int {
	if aux.idxt == nil {
		return 1
	}

	return aux.idxt.rows[maprank].nEqclass
}

// indexPermutation computes the Lehmer-code permutation index of the
// tiles in ts, which occupy the grid positions listed in m, following p.
// It mirrors index_permutation from the original C implementation:
// tiles are visited from smallest to largest identity, each contributing
// the count of still-available positions below its own position, scaled
// by a falling factorial.
func indexPermutation(ts, m tileset.Tileset, p *puzzle.Puzzle) int {
	if ts.IsEmpty() {
		return 0
	}

	nTiles := ts.Count()
	least := p.Tiles[ts.GetLeast()]
	pidx := m.Intersect(tileset.Least(int(least))).Count()
	m = m.Remove(int(least))
	ts = ts.RemoveLeast()

	factor := 1
	for !ts.IsEmpty() {
		leastIdx := ts.GetLeast()
		factor *= nTiles
		nTiles--
		least = p.Tiles[leastIdx]
		pidx += factor * m.Intersect(tileset.Least(int(least))).Count()
		m = m.Remove(int(least))
		ts = ts.RemoveLeast()
	}

	return pidx
}

// ComputeIndex computes the structured index of p's equivalence class
// under the tiles selected by aux.
func ComputeIndex(aux *IndexAux, p *puzzle.Puzzle) Index {
	m := tilesimd.TileMap(aux.Tsnz, p)

	idx := Index{
		Maprank: tileset.Rank(m),
		Eqidx:   EqidxUntracked,
	}
	idx.Pidx = indexPermutation(aux.Tsnz, m, p)

	if aux.Ts.Has(tileset.ZeroTile) {
		idx.Eqidx = int(aux.idxt.rows[idx.Maprank].eqclasses[p.ZeroLocation()])
	}

	return idx
}

// unindexPermutation fills p.Tiles/p.Grid for tile identities in ts,
// assigning them to the positions in m according to pidx, and filling
// the remaining (non-pattern) tile identities into the complement of m
// in ascending order -- the canonical representative for those "don't
// care" tiles.
func unindexPermutation(p *puzzle.Puzzle, ts, m tileset.Tileset, pidx int) {
	nTiles := ts.Count()
	cmap := m.Complement()

	for i := 0; i < puzzle.TileCount; i++ {
		if ts.Has(i) {
			cmp := pidx % nTiles
			pidx /= nTiles
			nTiles--

			tile := m.RankSelect(cmp)
			m = m.Difference(tile)
			p.Tiles[i] = uint8(tile.GetLeast())
		} else {
			p.Tiles[i] = uint8(cmap.GetLeast())
			cmap = cmap.RemoveLeast()
		}

		p.Grid[p.Tiles[i]] = uint8(i)
	}
}

// canonicalZeroLocation returns the grid position decoding chooses for
// the blank: the lowest-numbered member of idx's equivalence class.
func canonicalZeroLocation(aux *IndexAux, idx Index) uint8 {
	return aux.idxt.rows[idx.Maprank].eqclassRep[idx.Eqidx]
}

// InvertIndex decodes idx back into a representative puzzle
// configuration. ComputeIndex(aux, InvertIndex(aux, idx)) == idx for
// every valid idx.
func InvertIndex(aux *IndexAux, idx Index) puzzle.Puzzle {
	m := tileset.Unrank(aux.NTile, idx.Maprank)

	var p puzzle.Puzzle
	unindexPermutation(&p, aux.Tsnz, m, idx.Pidx)

	if aux.Ts.Has(tileset.ZeroTile) {
		p.Move(canonicalZeroLocation(aux, idx))
	}

	return p
}
