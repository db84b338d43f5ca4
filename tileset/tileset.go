// Package tileset implements bit-set algebra over the 25 grid positions
// (equivalently, the 25 tile identities) of the 24-puzzle. A Tileset is
// used both to describe which tiles a pattern database tracks and, during
// index computation, which grid positions those tiles currently occupy.
package tileset

import "math/bits"

// Tileset is a bit-set over slots 0..24. Bit i set means slot i (a grid
// position or a tile identity, depending on context) is a member.
type Tileset uint32

// NumSlots is the number of grid positions (and tile identities) on the
// 24-puzzle board, including the blank.
const NumSlots = 25

// MaxTiles bounds the number of non-blank tiles an IndexAux can track; it
// is the largest k for which the index tables stay of a manageable size.
const MaxTiles = 12

// ZeroTile is the tile identity of the blank.
const ZeroTile = 0

// Empty is the tileset containing no members.
const Empty Tileset = 0

// Has reports whether slot i is a member of t.
func (t Tileset) Has(i int) bool {
	return t&(1<<uint(i)) != 0
}

// Add returns t with slot i added.
func (t Tileset) Add(i int) Tileset {
	return t | 1<<uint(i)
}

// Remove returns t with slot i removed.
func (t Tileset) Remove(i int) Tileset {
	return t &^ (1 << uint(i))
}

// IsEmpty reports whether t has no members.
func (t Tileset) IsEmpty() bool {
	return t == 0
}

// Count returns the number of members of t (popcount).
func (t Tileset) Count() int {
	return bits.OnesCount32(uint32(t))
}

// GetLeast returns the lowest-numbered member of t. The result is
// unspecified if t is empty.
func (t Tileset) GetLeast() int {
	return bits.TrailingZeros32(uint32(t))
}

// RemoveLeast returns t with its lowest-numbered member removed.
func (t Tileset) RemoveLeast() Tileset {
	return t & (t - 1)
}

// leastBit isolates the lowest set bit of t, or 0 if t is empty.
func (t Tileset) leastBit() Tileset {
	return t & -t
}

// Intersect returns the members common to t and u.
func (t Tileset) Intersect(u Tileset) Tileset {
	return t & u
}

// Union returns the members of either t or u.
func (t Tileset) Union(u Tileset) Tileset {
	return t | u
}

// Difference returns the members of t that are not members of u.
func (t Tileset) Difference(u Tileset) Tileset {
	return t &^ u
}

// Complement returns the members of the universe 0..24 that are not
// members of t.
func (t Tileset) Complement() Tileset {
	return ^t & (1<<NumSlots - 1)
}

// Least returns the tileset {0, 1, ..., k-1}.
func Least(k int) Tileset {
	return Tileset(1<<uint(k) - 1)
}

// RankSelect returns the singleton tileset containing the i-th
// lowest-numbered member of t (0-indexed).
func (t Tileset) RankSelect(i int) Tileset {
	for ; i > 0; i-- {
		t = t.RemoveLeast()
	}
	return t.leastBit()
}

// Parity returns the checkerboard colour (0 or 1) of t: the XOR, over all
// members of t treated as grid positions, of (row+col) mod 2. IndexAux
// records it for the solved tile map as SolvedParity, which no index
// computation reads; it carries no meaning when t is used as a plain
// tile identity set rather than a grid map.
func (t Tileset) Parity() int {
	p := 0
	for tt := t; !tt.IsEmpty(); tt = tt.RemoveLeast() {
		q := tt.GetLeast()
		p ^= (q/5 + q%5) & 1
	}
	return p
}
