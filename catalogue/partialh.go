package catalogue

import (
	"github.com/clausecker/puzzledb/index"
	"github.com/clausecker/puzzledb/pdbstore"
	"github.com/clausecker/puzzledb/puzzle"
)

// PartialHvals is the per-PDB evaluation state for one puzzle
// configuration: the distance each PDB in a Catalogue reports, plus
// enough of the index each was computed from to update it incrementally
// after a single move (DiffHvals).
type PartialHvals struct {
	Hvals   []byte
	indices []index.Index
}

// newPartialHvals allocates a PartialHvals sized for cat.
func newPartialHvals(cat *Catalogue) PartialHvals {
	return PartialHvals{
		Hvals:   make([]byte, len(cat.PDBs)),
		indices: make([]index.Index, len(cat.PDBs)),
	}
}

// groupMaxSum returns the maximum, over every group, of the sum of
// Hvals for the PDBs belonging to that group; PDBs reporting
// pdbstore.UNREACHED (the configuration is impossible under that PDB's
// own invariant, which cannot happen for a reachable puzzle but is
// handled defensively) are treated as contributing 0 to any group sum,
// since an additive heuristic must never overestimate.
func groupMaxSum(cat *Catalogue, ph PartialHvals) int {
	best := 0
	for g := 0; g < MaxGroups; g++ {
		bits := cat.Parts[g]
		if bits == 0 {
			continue
		}

		sum := 0
		for i := 0; bits != 0; i, bits = i+1, bits>>1 {
			if bits&1 == 0 {
				continue
			}

			h := ph.Hvals[i]
			if h == pdbstore.UNREACHED {
				continue
			}

			sum += int(h)
		}

		if sum > best {
			best = sum
		}
	}

	return best
}

// EvalPartialHvals computes every PDB's distance for p from scratch and
// returns the group-max-sum heuristic value alongside the per-PDB state
// needed to update it incrementally via DiffHvals.
func EvalPartialHvals(cat *Catalogue, p *puzzle.Puzzle) (PartialHvals, int) {
	ph := newPartialHvals(cat)
	for i, pdb := range cat.PDBs {
		idx, h := pdb.Lookup(p)
		ph.indices[i] = idx
		ph.Hvals[i] = h
	}

	return ph, groupMaxSum(cat, ph)
}

// DiffHvals updates ph in place after p (already moved from the
// configuration ph was last evaluated against) moved movedTile into the
// blank's previous position, and returns the new group-max-sum value.
// Only PDBs whose tileset contains movedTile, or that track the blank
// (whose equivalence class changes on every move), are recomputed;
// every other PDB's entry in ph is provably unaffected, since none of
// its pattern tiles changed position.
func DiffHvals(cat *Catalogue, ph *PartialHvals, p *puzzle.Puzzle, movedTile int) int {
	for i, pdb := range cat.PDBs {
		if !pdb.Aux.Ts.Has(movedTile) && !pdb.Aux.TracksZero() {
			continue
		}

		oldIdx := ph.indices[i]
		oldH := ph.Hvals[i]

		if pdb.Ident != nil && !pdb.Aux.Ts.Has(movedTile) {
			// Only the blank moved; maprank and pidx are unchanged, so
			// the new distance can be recovered from the old one and the
			// diff-table entries at the old and new equivalence class.
			newIdx := index.ComputeIndex(pdb.Aux, p)
			newH := pdb.Ident.DiffLookup(oldH, oldIdx, newIdx)
			ph.indices[i] = newIdx
			ph.Hvals[i] = newH
			continue
		}

		newIdx, newH := pdb.Lookup(p)
		ph.indices[i] = newIdx
		ph.Hvals[i] = newH
	}

	return groupMaxSum(cat, ph)
}
