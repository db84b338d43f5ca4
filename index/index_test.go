package index

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clausecker/puzzledb/puzzle"
	"github.com/clausecker/puzzledb/tileset"
)

// randomWalk returns the puzzle reached by taking n random legal moves
// from solved.
func randomWalk(rng *rand.Rand, n int) puzzle.Puzzle {
	p := puzzle.Solved
	for i := 0; i < n; i++ {
		moves := p.Moves()
		p.Move(moves[rng.Intn(len(moves))])
	}

	return p
}

func TestComputeIndexInvertIndexRoundTripUntracked(t *testing.T) {
	ts := tileset.Empty.Add(1).Add(2).Add(3).Add(6).Add(7).Add(8)
	aux, err := MakeIndexAux(ts)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		p := randomWalk(rng, 40)
		idx := ComputeIndex(aux, &p)
		assert.Equal(t, -1, idx.Eqidx)

		reconstructed := InvertIndex(aux, idx)
		idx2 := ComputeIndex(aux, &reconstructed)
		assert.Equal(t, idx, idx2)
	}
}

func TestComputeIndexInvertIndexRoundTripTracked(t *testing.T) {
	ts := tileset.Empty.Add(0).Add(1).Add(2).Add(6).Add(7)
	aux, err := MakeIndexAux(ts)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 500; i++ {
		p := randomWalk(rng, 40)
		idx := ComputeIndex(aux, &p)
		assert.NotEqual(t, -1, idx.Eqidx)

		reconstructed := InvertIndex(aux, idx)
		idx2 := ComputeIndex(aux, &reconstructed)
		assert.Equal(t, idx, idx2)
	}
}

func TestComputeIndexSolvedIsZero(t *testing.T) {
	ts := tileset.Empty.Add(1).Add(2).Add(3).Add(6).Add(7).Add(8)
	aux, err := MakeIndexAux(ts)
	require.NoError(t, err)

	idx := ComputeIndex(aux, &puzzle.Solved)
	assert.Equal(t, 0, idx.Pidx)
	assert.Equal(t, tileset.Rank(ts), idx.Maprank)
}

func TestExhaustiveRoundTripSmallTileset(t *testing.T) {
	ts := tileset.Empty.Add(0).Add(3).Add(4)
	aux, err := MakeIndexAux(ts)
	require.NoError(t, err)

	for maprank := 0; maprank < aux.NMaprank; maprank++ {
		for pidx := 0; pidx < aux.NPerm; pidx++ {
			for eqidx := 0; eqidx < aux.NEqclass(maprank); eqidx++ {
				idx := Index{Maprank: maprank, Pidx: pidx, Eqidx: eqidx}
				p := InvertIndex(aux, idx)
				got := ComputeIndex(aux, &p)
				assert.Equal(t, idx, got)
			}
		}
	}
}

func TestMakeIndexAuxRejectsOversizedTileset(t *testing.T) {
	var ts tileset.Tileset
	for i := 1; i <= tileset.MaxTiles+1; i++ {
		ts = ts.Add(i)
	}

	_, err := MakeIndexAux(ts)
	assert.Error(t, err)
}
