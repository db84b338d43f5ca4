// Package puzzle represents a 24-puzzle (5x5 sliding tile) configuration
// and its legal moves. It is the concrete collaborator the rest of this
// module's packages (tileset, index, pdbstore, pdbgen) operate against.
package puzzle

import "fmt"

// TileCount is the number of tiles on the board, including the blank.
const TileCount = 25

// width is the side length of the square board.
const width = 5

// ZeroTile is the tile identity of the blank.
const ZeroTile = 0

// Puzzle holds a 24-puzzle configuration as two redundant arrays: Tiles[i]
// is the grid position of tile i, and Grid[p] is the tile occupying
// position p. The invariant Grid[Tiles[i]] == i must hold at all times.
type Puzzle struct {
	Tiles [TileCount]uint8
	Grid  [TileCount]uint8
}

// Solved is the goal configuration: tile i sits at position i for every i,
// the blank at position 0.
var Solved = Puzzle{
	Tiles: [TileCount]uint8{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24},
	Grid:  [TileCount]uint8{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24},
}

// ZeroLocation returns the grid position currently occupied by the blank.
func (p *Puzzle) ZeroLocation() uint8 {
	return p.Tiles[ZeroTile]
}

// neighbours returns the up-to-4 grid positions orthogonally adjacent to
// p on the 5x5 board.
func neighbours(pos int) []int {
	row, col := pos/width, pos%width
	out := make([]int, 0, 4)

	if row > 0 {
		out = append(out, pos-width)
	}
	if row < width-1 {
		out = append(out, pos+width)
	}
	if col > 0 {
		out = append(out, pos-1)
	}
	if col < width-1 {
		out = append(out, pos+1)
	}

	return out
}

// Moves returns the grid positions the blank may legally slide to from
// its current location: the up-to-4 orthogonal neighbours.
func (p *Puzzle) Moves() []uint8 {
	zero := int(p.ZeroLocation())
	nbs := neighbours(zero)
	out := make([]uint8, len(nbs))
	for i, n := range nbs {
		out[i] = uint8(n)
	}

	return out
}

// Move slides the blank to grid position dst. It does not check that dst
// is orthogonally adjacent to the blank's current position, so it also
// places the blank on an arbitrary cell (index.InvertIndex uses it that
// way). It updates both Tiles and Grid so the class invariant holds.
func (p *Puzzle) Move(dst uint8) {
	p.Swap(p.ZeroLocation(), dst)
}

// Swap exchanges the tiles occupying grid positions a and b, whether or
// not either holds the blank. It updates both Tiles and Grid so the
// class invariant holds.
func (p *Puzzle) Swap(a, b uint8) {
	ta, tb := p.Grid[a], p.Grid[b]
	p.Tiles[ta], p.Tiles[tb] = b, a
	p.Grid[a], p.Grid[b] = tb, ta
}

// Parity returns the parity (0 even, 1 odd) of the permutation Tiles
// represents relative to the solved configuration: the number of
// transpositions required to sort Tiles back to identity, mod 2.
func (p *Puzzle) Parity() int {
	var seen [TileCount]bool
	parity := 0

	for i := 0; i < TileCount; i++ {
		if seen[i] {
			continue
		}

		cycleLen := 0
		for j := i; !seen[j]; j = int(p.Tiles[j]) {
			seen[j] = true
			cycleLen++
		}

		if cycleLen > 0 {
			parity ^= (cycleLen - 1) & 1
		}
	}

	return parity
}

// String renders p as a width x width grid of two-digit tile numbers, the
// blank shown as "..".
func (p *Puzzle) String() string {
	s := ""
	for row := 0; row < width; row++ {
		for col := 0; col < width; col++ {
			tile := p.Grid[row*width+col]
			if tile == ZeroTile {
				s += " .."
			} else {
				s += fmt.Sprintf(" %2d", tile)
			}
		}
		s += "\n"
	}

	return s
}

// Parse reads a Puzzle from width*width whitespace-separated fields, each
// either a tile number 0..24 (0 denoting the blank) or ".." for the blank.
// It is the inverse of String for well-formed input.
func Parse(fields []string) (Puzzle, error) {
	if len(fields) != TileCount {
		return Puzzle{}, fmt.Errorf("puzzle: expected %d fields, got %d", TileCount, len(fields))
	}

	var p Puzzle
	var seen [TileCount]bool

	for pos, f := range fields {
		var tile int
		if f == ".." {
			tile = ZeroTile
		} else if _, err := fmt.Sscanf(f, "%d", &tile); err != nil {
			return Puzzle{}, fmt.Errorf("puzzle: invalid field %q: %w", f, err)
		}

		if tile < 0 || tile >= TileCount {
			return Puzzle{}, fmt.Errorf("puzzle: tile %d out of range", tile)
		}
		if seen[tile] {
			return Puzzle{}, fmt.Errorf("puzzle: tile %d listed twice", tile)
		}

		seen[tile] = true
		p.Tiles[tile] = uint8(pos)
		p.Grid[pos] = uint8(tile)
	}

	return p, nil
}
