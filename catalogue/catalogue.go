// Package catalogue implements the text catalogue file format that
// groups pattern databases into additive disjoint heuristics: parsing,
// deduplicated loading, and the partial/diff heuristic-value engine that
// evaluates a puzzle against every group in one pass.
package catalogue

import (
	"context"
	"io"

	"github.com/grailbio/base/file"
	"github.com/pkg/errors"

	"github.com/clausecker/puzzledb/pdbident"
)

// Catalogue is a loaded, deduplicated set of PDBs grouped into additive
// disjoint heuristics.
type Catalogue struct {
	PDBs []*PDB

	// Parts holds, for each group 0..MaxGroups-1, a bitmask over PDBs
	// indices belonging to that group (bit i set means PDBs[i] is a
	// member), mirroring the original's "parts[g] bits".
	Parts [MaxGroups]uint64
}

// dedupKey identifies a PDB by tileset and suffix: the spec's
// deduplication criterion ("tileset + type"), independent of the
// fingerprint computed after loading.
type dedupKey struct {
	ts     uint32
	suffix Suffix
}

// Load parses a catalogue description from r, opening (and, if
// opts.Create is set, generating) each named PDB from dir via Open. PDB
// lines naming the same tileset+suffix are deduplicated to a single
// *PDB shared across every group that references them. If identify is
// set, every loaded PDB is additionally passed through
// pdbident.Identify so DiffHvals can use the cheaper diff-lookup path.
func Load(dir string, r io.Reader, opts OpenOptions, identify bool) (*Catalogue, error) {
	entries, err := parseCatalogueText(r)
	if err != nil {
		return nil, err
	}

	cat := &Catalogue{}
	seen := map[dedupKey]int{}

	for _, e := range entries {
		key := dedupKey{ts: uint32(e.Tileset), suffix: e.Suffix}

		idx, ok := seen[key]
		if !ok {
			pdb, err := Open(dir, e.Tileset, e.ZeroTracked, e.Suffix, opts)
			if err != nil {
				return nil, errors.Wrapf(err, "catalogue: line %d", e.line)
			}

			if identify {
				pdb.Ident = pdbident.Identify(pdb.Store)
			}

			idx = len(cat.PDBs)
			cat.PDBs = append(cat.PDBs, pdb)
			seen[key] = idx

			if len(cat.PDBs) > MaxPDBs {
				return nil, errors.Errorf("catalogue: %d distinct PDBs exceeds the %d PDB limit", len(cat.PDBs), MaxPDBs)
			}
		}

		for _, g := range e.Groups {
			cat.Parts[g] |= 1 << uint(idx)
		}
	}

	return cat, nil
}

// LoadFile opens path (via grailbio/base/file, so s3:// catalogue paths
// work the same way cmd/bio-fusion's inputs do) and parses it with
// Load, resolving relative PDB filenames against baseDir.
func LoadFile(ctx context.Context, path, baseDir string, opts OpenOptions, identify bool) (*Catalogue, error) {
	f, err := file.Open(ctx, path)
	if err != nil {
		return nil, errors.Wrapf(err, "catalogue: opening %s", path)
	}
	defer f.Close(ctx)

	return Load(baseDir, f.Reader(ctx), opts, identify)
}
