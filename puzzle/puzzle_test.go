package puzzle

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSolvedInvariant(t *testing.T) {
	p := Solved
	for i := 0; i < TileCount; i++ {
		assert.EqualValues(t, i, p.Grid[p.Tiles[i]])
	}
}

func TestMoveRoundTrip(t *testing.T) {
	p := Solved
	moves := p.Moves()
	assert.NotEmpty(t, moves)

	dst := moves[0]
	src := p.ZeroLocation()
	p.Move(dst)
	assert.EqualValues(t, dst, p.ZeroLocation())

	// moving back restores the solved configuration
	p.Move(src)
	assert.Equal(t, Solved, p)
}

func TestGridInvariantAfterMoves(t *testing.T) {
	p := Solved
	for i := 0; i < 50; i++ {
		moves := p.Moves()
		p.Move(moves[i%len(moves)])
		for tile := 0; tile < TileCount; tile++ {
			assert.EqualValues(t, tile, p.Grid[p.Tiles[tile]])
		}
	}
}

func TestParitySingleMoveFlips(t *testing.T) {
	p := Solved
	before := p.Parity()
	p.Move(p.Moves()[0])
	after := p.Parity()
	assert.NotEqual(t, before, after)
}

func TestStringParseRoundTrip(t *testing.T) {
	p := Solved
	p.Move(p.Moves()[0])

	fields := strings.Fields(strings.ReplaceAll(p.String(), "..", "0"))
	q, err := Parse(fields)
	assert.NoError(t, err)
	assert.Equal(t, p, q)
}

func TestParseRejectsDuplicateTile(t *testing.T) {
	fields := make([]string, TileCount)
	for i := range fields {
		fields[i] = "1"
	}

	_, err := Parse(fields)
	assert.Error(t, err)
}
