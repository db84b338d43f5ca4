package pdbgen

import (
	"fmt"

	"github.com/clausecker/puzzledb/index"
	"github.com/clausecker/puzzledb/pdbstore"
	"github.com/clausecker/puzzledb/tileset"
)

// Verify checks a generated PatternDB for local consistency: every
// reachable non-solved cell must have at least one pattern-tile-moving
// neighbour at exactly one less than its own distance (the edge BFS
// would have discovered it through), and no neighbour may differ by
// more than one step. It does not recompute the whole BFS; it spot-checks
// the invariant BFS guarantees by construction, catching a corrupted or
// truncated PDB file.
func Verify(aux *index.IndexAux, pdb *pdbstore.PatternDB) error {
	for maprank, tab := range pdb.Tables {
		n := tab.Len()
		m := tileset.Unrank(aux.NTile, maprank)

		var eqclasses [tileset.NumSlots]int8
		if aux.TracksZero() {
			eqclasses, _ = tileset.PopulateEqclasses(m)
		}

		for i := 0; i < n; i++ {
			d := tab.Load(i)
			if d == pdbstore.UNREACHED {
				continue
			}

			idx := cellIndex(aux, maprank, i)
			p := index.InvertIndex(aux, idx)

			hasPredecessor := d == 0
			for _, q := range moves(aux, m, eqclasses, idx, p) {
				nIdx := index.ComputeIndex(aux, &q)
				nd := pdb.Lookup(nIdx)
				if nd == pdbstore.UNREACHED {
					continue
				}

				diff := int(d) - int(nd)
				if diff < -1 || diff > 1 {
					return fmt.Errorf("pdbgen: verify: cell (maprank %d, offset %d) has distance %d, neighbour has %d", maprank, i, d, nd)
				}
				if diff == 1 {
					hasPredecessor = true
				}
			}

			if !hasPredecessor {
				return fmt.Errorf("pdbgen: verify: cell (maprank %d, offset %d) at distance %d has no predecessor neighbour", maprank, i, d)
			}
		}
	}

	return nil
}
