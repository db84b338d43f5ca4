package tileset

// UnreachedEqclass marks a grid position that is a member of the pattern
// map itself -- the blank can never stand there, so the slot must never
// be dereferenced as an equivalence class id.
const UnreachedEqclass int8 = -1

// neighbours returns the up-to-4 grid positions orthogonally adjacent to
// p on the 5x5 board.
func neighbours(p int) []int {
	row, col := p/5, p%5
	out := make([]int, 0, 4)

	if row > 0 {
		out = append(out, p-5)
	}
	if row < 4 {
		out = append(out, p+5)
	}
	if col > 0 {
		out = append(out, p-1)
	}
	if col < 4 {
		out = append(out, p+1)
	}

	return out
}

// PopulateEqclasses performs a flood fill over the complement of m (the
// region the blank can occupy without disturbing a pattern tile) and
// assigns each connected component a distinct id starting at 0. Slots
// belonging to m are set to UnreachedEqclass. The result is deterministic
// and does not depend on iteration or scheduling order.
func PopulateEqclasses(m Tileset) (eqclasses [NumSlots]int8, n int) {
	for i := range eqclasses {
		eqclasses[i] = UnreachedEqclass
	}

	id := int8(0)
	var queue [NumSlots]int

	for p := 0; p < NumSlots; p++ {
		if m.Has(p) || eqclasses[p] != UnreachedEqclass {
			continue
		}

		head, tail := 0, 0
		queue[tail] = p
		tail++
		eqclasses[p] = id

		for head < tail {
			cur := queue[head]
			head++

			for _, nb := range neighbours(cur) {
				if m.Has(nb) || eqclasses[nb] != UnreachedEqclass {
					continue
				}

				eqclasses[nb] = id
				queue[tail] = nb
				tail++
			}
		}

		id++
	}

	return eqclasses, int(id)
}
