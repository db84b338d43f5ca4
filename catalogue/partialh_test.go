package catalogue

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/clausecker/puzzledb/pdbstore"
)

func TestGroupMaxSumPicksBestGroup(t *testing.T) {
	cat := &Catalogue{}
	cat.Parts[0] = 0b011 // pdbs 0,1
	cat.Parts[1] = 0b100 // pdb 2

	ph := PartialHvals{Hvals: []byte{5, 7, 20}}

	// group 0 sums to 12, group 1 sums to 20: best is group 1.
	assert.Equal(t, 20, groupMaxSum(cat, ph))
}

func TestGroupMaxSumIgnoresUnreachedEntries(t *testing.T) {
	cat := &Catalogue{}
	cat.Parts[0] = 0b011

	ph := PartialHvals{Hvals: []byte{pdbstore.UNREACHED, 9}}

	assert.Equal(t, 9, groupMaxSum(cat, ph))
}

func TestGroupMaxSumEmptyCatalogueIsZero(t *testing.T) {
	cat := &Catalogue{}
	ph := PartialHvals{}

	assert.Equal(t, 0, groupMaxSum(cat, ph))
}
