// +build !amd64 appengine

package tilesimd

import (
	"github.com/clausecker/puzzledb/puzzle"
	"github.com/clausecker/puzzledb/tileset"
)

// TileMap returns the bitmap of grid positions occupied by the tiles in
// tsnz. This is the scalar O(|tsnz|) path: walk the tracked tiles in
// ascending order and look each one's position up directly.
func TileMap(tsnz tileset.Tileset, p *puzzle.Puzzle) tileset.Tileset {
	var m tileset.Tileset

	for tt := tsnz; !tt.IsEmpty(); tt = tt.RemoveLeast() {
		t := tt.GetLeast()
		m = m.Add(int(p.Tiles[t]))
	}

	return m
}
