package pdbgen

import (
	"github.com/clausecker/puzzledb/pdbstore"
)

// Histogram counts, for each distance 0..254, how many cells of pdb hold
// that distance; index 255 counts cells still at pdbstore.UNREACHED
// (unreachable under the puzzle's permutation-parity invariant).
func Histogram(pdb *pdbstore.PatternDB) [256]int64 {
	var counts [256]int64

	for _, tab := range pdb.Tables {
		n := tab.Len()
		for i := 0; i < n; i++ {
			counts[tab.Load(i)]++
		}
	}

	return counts
}

// Diameter returns the largest distance present in pdb, i.e. the
// diameter of the abstraction's state graph.
func Diameter(pdb *pdbstore.PatternDB) int {
	counts := Histogram(pdb)
	d := -1
	for i := 0; i < 255; i++ {
		if counts[i] > 0 {
			d = i
		}
	}

	return d
}
