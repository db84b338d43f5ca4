package tilesimd_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/clausecker/puzzledb/puzzle"
	"github.com/clausecker/puzzledb/tileset"
	"github.com/clausecker/puzzledb/tilesimd"
)

// randomTileset returns a tileset of k distinct non-blank tile identities.
func randomTileset(rng *rand.Rand, k int) tileset.Tileset {
	var t tileset.Tileset
	for t.Count() < k {
		tile := 1 + rng.Intn(puzzle.TileCount-1)
		t = t.Add(tile)
	}

	return t
}

func TestTileMapMatchesScalarDefinition(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for _, k := range []int{1, 3, 6, 12} {
		tsnz := randomTileset(rng, k)

		for i := 0; i < 2000; i++ {
			p := puzzle.Solved
			for m := 0; m < 30; m++ {
				moves := p.Moves()
				p.Move(moves[rng.Intn(len(moves))])
			}

			got := tilesimd.TileMap(tsnz, &p)

			var want tileset.Tileset
			for tt := tsnz; !tt.IsEmpty(); tt = tt.RemoveLeast() {
				tile := tt.GetLeast()
				want = want.Add(int(p.Tiles[tile]))
			}

			assert.Equal(t, want, got, "tile map mismatch for tileset %x", uint32(tsnz))
		}
	}
}
