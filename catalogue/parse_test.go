package catalogue

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clausecker/puzzledb/tileset"
)

func TestParseCatalogueTextBasic(t *testing.T) {
	text := `
# a comment
1,2,3
=0
6,7,8.pdb
=0
=1
`
	entries, err := parseCatalogueText(strings.NewReader(text))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, tileset.Empty.Add(1).Add(2).Add(3), entries[0].Tileset)
	assert.Equal(t, []int{0}, entries[0].Groups)

	assert.Equal(t, tileset.Empty.Add(6).Add(7).Add(8), entries[1].Tileset)
	assert.Equal(t, SuffixPDB, entries[1].Suffix)
	assert.Equal(t, []int{0, 1}, entries[1].Groups)
}

func TestParseCatalogueTextZeroTracked(t *testing.T) {
	entries, err := parseCatalogueText(strings.NewReader("0,1,2\n=0\n"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].ZeroTracked)
	assert.True(t, entries[0].Tileset.Has(tileset.ZeroTile))
}

func TestParseCatalogueTextRejectsOrphanGroupMarker(t *testing.T) {
	_, err := parseCatalogueText(strings.NewReader("=0\n"))
	assert.Error(t, err)
}

func TestParseCatalogueTextRejectsBadGroupID(t *testing.T) {
	_, err := parseCatalogueText(strings.NewReader("1,2,3\n=32\n"))
	assert.Error(t, err)

	_, err = parseCatalogueText(strings.NewReader("1,2,3\n=-1\n"))
	assert.Error(t, err)
}

func TestParseCatalogueTextRejectsTooManyPDBs(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < MaxPDBs+1; i++ {
		sb.WriteString("1,2,3\n")
	}

	_, err := parseCatalogueText(strings.NewReader(sb.String()))
	assert.Error(t, err)
}

func TestParseCatalogueTextIgnoresBlankAndComments(t *testing.T) {
	entries, err := parseCatalogueText(strings.NewReader("\n\n# comment only\n\n1,2\n"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
}
