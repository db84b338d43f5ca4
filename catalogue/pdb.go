package catalogue

import (
	"github.com/minio/highwayhash"

	"github.com/clausecker/puzzledb/index"
	"github.com/clausecker/puzzledb/pdbident"
	"github.com/clausecker/puzzledb/pdbstore"
	"github.com/clausecker/puzzledb/puzzle"
	"github.com/clausecker/puzzledb/tileset"
)

// fingerprintKey is the all-zero key highwayhash is seeded with; PDB
// fingerprints only need to be stable within one process's dedup table,
// not cryptographically keyed, so the zero key matches how
// fusion/postprocess.go seeds its own hashGeneIDs helper.
var fingerprintKey [highwayhash.Size]byte

// Fingerprint is a content fingerprint of a loaded PDB's table bytes.
// Load does not consult it: PDBs named more than once across a catalogue
// are deduplicated by tileset and suffix alone (see dedupKey).
type Fingerprint [highwayhash.Size]byte

// PDB is one entry of a loaded Catalogue: the decoded pattern table plus
// enough metadata to compute and update indices against it.
type PDB struct {
	Aux         *index.IndexAux
	Store       *pdbstore.PatternDB
	Ident       *pdbident.IdentifiedDB // non-nil once Identify has been run
	Tileset     tileset.Tileset
	Suffix      Suffix
	Fingerprint Fingerprint
}

// computeFingerprint hashes pdb's table bytes in maprank-ascending
// order, the same order Store/Load use on disk, mirroring how
// fusion/postprocess.go feeds a flat byte buffer to highwayhash.Sum
// rather than using a streaming hash.Hash.
func computeFingerprint(store *pdbstore.PatternDB) Fingerprint {
	var size int
	for _, t := range store.Tables {
		size += t.Len()
	}

	buf := make([]byte, 0, size)
	for _, t := range store.Tables {
		buf = append(buf, t.Bytes()...)
	}

	return Fingerprint(highwayhash.Sum(buf, fingerprintKey[:]))
}

// Lookup returns the distance for p under pdb's tileset, via the
// identified (diff-encoded) table when available, else the plain table.
func (pdb *PDB) Lookup(p *puzzle.Puzzle) (index.Index, byte) {
	idx := index.ComputeIndex(pdb.Aux, p)
	if pdb.Ident != nil {
		return idx, pdb.Ident.Lookup(idx)
	}

	return idx, pdb.Store.Lookup(idx)
}
