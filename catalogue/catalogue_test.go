package catalogue

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/grailbio/testutil"

	"github.com/clausecker/puzzledb/index"
	"github.com/clausecker/puzzledb/pdbgen"
	"github.com/clausecker/puzzledb/pdbstore"
	"github.com/clausecker/puzzledb/puzzle"
	"github.com/clausecker/puzzledb/tileset"
)

// writePDBFile generates a PDB for ts and stores it under dir in the
// catalogue filename convention, returning the *index.IndexAux it was
// generated for.
func writePDBFile(t *testing.T, dir string, ts tileset.Tileset, zeroTracked bool) *index.IndexAux {
	t.Helper()

	aux, err := index.MakeIndexAux(ts)
	require.NoError(t, err)

	pdb, err := pdbgen.Generate(aux, pdbgen.Options{Jobs: 2})
	require.NoError(t, err)

	path := filepath.Join(dir, FormatFilename(ts, zeroTracked, SuffixPDB))
	require.NoError(t, pdbstore.StoreChecksum(path, pdb))

	return aux
}

func TestLoadDedupsSharedPDBAcrossGroups(t *testing.T) {
	dir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()

	writePDBFile(t, dir, tileset.Empty.Add(1).Add(2), false)

	text := "1,2\n=0\n1,2\n=1\n"
	cat, err := Load(dir, strings.NewReader(text), OpenOptions{}, false)
	require.NoError(t, err)

	require.Len(t, cat.PDBs, 1)
	assert.Equal(t, uint64(1), cat.Parts[0])
	assert.Equal(t, uint64(1), cat.Parts[1])
}

func TestLoadDistinctTilesetsAreSeparatePDBs(t *testing.T) {
	dir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()

	writePDBFile(t, dir, tileset.Empty.Add(1).Add(2), false)
	writePDBFile(t, dir, tileset.Empty.Add(3).Add(4), false)

	text := "1,2\n=0\n3,4\n=0\n"
	cat, err := Load(dir, strings.NewReader(text), OpenOptions{}, false)
	require.NoError(t, err)

	require.Len(t, cat.PDBs, 2)
	assert.Equal(t, uint64(0b11), cat.Parts[0])
}

func TestLoadMissingPDBWithoutCreateFails(t *testing.T) {
	dir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()

	_, err := Load(dir, strings.NewReader("1,2\n=0\n"), OpenOptions{}, false)
	assert.Error(t, err)
}

func TestLoadMissingPDBWithCreateGenerates(t *testing.T) {
	dir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()

	cat, err := Load(dir, strings.NewReader("1,2\n=0\n"), OpenOptions{Create: true, Jobs: 2}, false)
	require.NoError(t, err)
	require.Len(t, cat.PDBs, 1)
}

func TestEvalPartialHvalsSolvedIsZero(t *testing.T) {
	dir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()

	writePDBFile(t, dir, tileset.Empty.Add(1).Add(2), false)

	cat, err := Load(dir, strings.NewReader("1,2\n=0\n"), OpenOptions{}, false)
	require.NoError(t, err)

	_, h := EvalPartialHvals(cat, &puzzle.Solved)
	assert.Equal(t, 0, h)
}

func TestDiffHvalsMatchesFullEvalAfterMove(t *testing.T) {
	dir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()

	writePDBFile(t, dir, tileset.Empty.Add(tileset.ZeroTile).Add(1).Add(2), true)

	cat, err := Load(dir, strings.NewReader("0,1,2\n=0\n"), OpenOptions{}, true)
	require.NoError(t, err)
	require.NotNil(t, cat.PDBs[0].Ident)

	p := puzzle.Solved
	ph, _ := EvalPartialHvals(cat, &p)

	moves := p.Moves()
	require.NotEmpty(t, moves)
	dst := moves[0]
	movedTile := int(p.Grid[dst])
	p.Move(dst)

	gotDiff := DiffHvals(cat, &ph, &p, movedTile)

	wantPh, wantH := EvalPartialHvals(cat, &p)
	assert.Equal(t, wantH, gotDiff)
	assert.Equal(t, wantPh.Hvals, ph.Hvals)
}

func TestIndependentlyGeneratedPDBsFingerprintEqual(t *testing.T) {
	ts := tileset.Empty.Add(1).Add(2)

	aux, err := index.MakeIndexAux(ts)
	require.NoError(t, err)

	pdb1, err := pdbgen.Generate(aux, pdbgen.Options{Jobs: 1})
	require.NoError(t, err)
	pdb2, err := pdbgen.Generate(aux, pdbgen.Options{Jobs: 4})
	require.NoError(t, err)

	assert.Equal(t, computeFingerprint(pdb1), computeFingerprint(pdb2))
}
