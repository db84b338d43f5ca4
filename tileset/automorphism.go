package tileset

// The 24-puzzle board has the symmetries of a square: the dihedral group
// of order 8. automorphisms[g] maps each grid position to the position it
// is carried to by symmetry g; automorphisms[0] is the identity.
var automorphisms [8][NumSlots]int

func init() {
	for p := 0; p < NumSlots; p++ {
		row, col := p/5, p%5

		automorphisms[0][p] = row*5 + col         // identity
		automorphisms[1][p] = col*5 + (4 - row)    // rotate 90
		automorphisms[2][p] = (4-row)*5 + (4 - col) // rotate 180
		automorphisms[3][p] = (4-col)*5 + row      // rotate 270
		automorphisms[4][p] = row*5 + (4 - col)    // flip columns
		automorphisms[5][p] = (4-row)*5 + col      // flip rows
		automorphisms[6][p] = col*5 + row          // transpose
		automorphisms[7][p] = (4-col)*5 + (4 - row) // anti-transpose
	}
}

// NumAutomorphisms is the size of the puzzle's symmetry group.
const NumAutomorphisms = 8

// Morph applies automorphism g (0..NumAutomorphisms-1) to every grid
// position that is a member of t, returning the image tileset.
func Morph(t Tileset, g int) Tileset {
	table := &automorphisms[g]
	var out Tileset

	for tt := t; !tt.IsEmpty(); tt = tt.RemoveLeast() {
		out = out.Add(table[tt.GetLeast()])
	}

	return out
}

// CanonicalAutomorphism returns the symmetry g that carries t to the
// lexicographically (numerically) smallest image among all 8 symmetries.
// Applying Morph(t, CanonicalAutomorphism(t)) yields the canonical
// representative tileset that a PDB keyed on t's orbit is stored under.
func CanonicalAutomorphism(t Tileset) int {
	best, bestImage := 0, Morph(t, 0)

	for g := 1; g < NumAutomorphisms; g++ {
		image := Morph(t, g)
		if image < bestImage {
			best, bestImage = g, image
		}
	}

	return best
}
