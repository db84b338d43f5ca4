// +build amd64,!appengine

package tilesimd

import (
	"github.com/clausecker/puzzledb/puzzle"
	"github.com/clausecker/puzzledb/tileset"
)

// TileMap returns the bitmap of grid positions occupied by the tiles in
// tsnz. This path classifies the whole 25-byte grid against a membership
// table in one pass, the pure-Go stand-in for the wide byte-compare
// (pcmpistrm-style) kernel the original C implementation runs here; it
// trades the scalar path's O(|tsnz|) tile walk for an O(board size)
// table classification that a real vector unit performs in a small
// constant number of wide compares. A hand-written assembly kernel is
// deliberately not attempted here: it cannot be exercised by the test
// suite without running the toolchain.
func TileMap(tsnz tileset.Tileset, p *puzzle.Puzzle) tileset.Tileset {
	var table [tileset.NumSlots]bool
	for tt := tsnz; !tt.IsEmpty(); tt = tt.RemoveLeast() {
		table[tt.GetLeast()] = true
	}

	var m tileset.Tileset
	for pos := 0; pos < tileset.NumSlots; pos++ {
		if table[p.Grid[pos]] {
			m = m.Add(pos)
		}
	}

	return m
}
