// Package pdbident implements the post-generation PDB identification
// pass: every cell is rewritten as its distance minus the minimum
// distance across its (maprank, pidx) group, with the subtracted minima
// kept in a side table. When only the blank moves between two puzzle
// configurations, the new heuristic value can be recovered from the old
// one and the diff-table entries for the old and new equivalence class,
// without reading the side table of minima.
package pdbident

import (
	"github.com/clausecker/puzzledb/index"
	"github.com/clausecker/puzzledb/pdbstore"
)

// IdentifiedDB is the diff-encoded form of a PatternDB: Diffs holds, per
// maprank, c - min for every cell c (UNREACHED cells stay UNREACHED);
// Mins holds, per maprank, the subtracted minimum for every pidx.
type IdentifiedDB struct {
	Aux   *index.IndexAux
	Diffs [][]byte
	Mins  [][]byte
}

// offset mirrors pdbstore's cell addressing: eqidx*NPerm+pidx, or plain
// pidx when the blank is not tracked.
func offset(aux *index.IndexAux, maprank, pidx, eqidx int) int {
	if eqidx == index.EqidxUntracked {
		return pidx
	}

	return eqidx*aux.NPerm + pidx
}

// Identify builds the diff-encoded form of pdb. pdb is read, not
// modified.
func Identify(pdb *pdbstore.PatternDB) *IdentifiedDB {
	aux := pdb.Aux
	idb := &IdentifiedDB{
		Aux:   aux,
		Diffs: make([][]byte, aux.NMaprank),
		Mins:  make([][]byte, aux.NMaprank),
	}

	for r := 0; r < aux.NMaprank; r++ {
		nEq := aux.NEqclass(r)
		nPerm := aux.NPerm
		tab := pdb.Tables[r]

		mins := make([]byte, nPerm)
		for i := range mins {
			mins[i] = pdbstore.UNREACHED
		}

		for eq := 0; eq < nEq; eq++ {
			for p := 0; p < nPerm; p++ {
				v := tab.Load(eq*nPerm + p)
				if v != pdbstore.UNREACHED && (mins[p] == pdbstore.UNREACHED || v < mins[p]) {
					mins[p] = v
				}
			}
		}

		diffs := make([]byte, tab.Len())
		for eq := 0; eq < nEq; eq++ {
			for p := 0; p < nPerm; p++ {
				off := eq*nPerm + p
				v := tab.Load(off)
				if v == pdbstore.UNREACHED {
					diffs[off] = pdbstore.UNREACHED
					continue
				}

				diffs[off] = v - mins[p]
			}
		}

		idb.Diffs[r] = diffs
		idb.Mins[r] = mins
	}

	return idb
}

// Lookup returns the distance stored for idx, reconstructed from the
// diff table and the side table of minima.
func (idb *IdentifiedDB) Lookup(idx index.Index) byte {
	off := offset(idb.Aux, idx.Maprank, idx.Pidx, idx.Eqidx)
	d := idb.Diffs[idx.Maprank][off]
	if d == pdbstore.UNREACHED {
		return pdbstore.UNREACHED
	}

	return idb.Mins[idx.Maprank][idx.Pidx] + d
}

// DiffLookup recovers the heuristic value after a move that only changes
// the blank's equivalence class, leaving maprank and pidx unchanged:
// oldIdx and newIdx must share Maprank and Pidx and differ only in
// Eqidx. It reads the diff table twice and never touches Mins, so it
// costs the same regardless of how large the underlying PDB is.
func (idb *IdentifiedDB) DiffLookup(oldH byte, oldIdx, newIdx index.Index) byte {
	oldOff := offset(idb.Aux, oldIdx.Maprank, oldIdx.Pidx, oldIdx.Eqidx)
	newOff := offset(idb.Aux, newIdx.Maprank, newIdx.Pidx, newIdx.Eqidx)

	oldDiff := idb.Diffs[oldIdx.Maprank][oldOff]
	newDiff := idb.Diffs[newIdx.Maprank][newOff]
	if oldDiff == pdbstore.UNREACHED || newDiff == pdbstore.UNREACHED {
		return pdbstore.UNREACHED
	}

	return byte(int(oldH) - int(oldDiff) + int(newDiff))
}
