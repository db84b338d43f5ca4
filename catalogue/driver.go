package catalogue

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/clausecker/puzzledb/index"
	"github.com/clausecker/puzzledb/pdbgen"
	"github.com/clausecker/puzzledb/pdbstore"
	"github.com/clausecker/puzzledb/tileset"
)

// fallbackOrder is the suffix search order Open tries once the exact
// requested suffix has missed, mirroring heu_open's HEU_SIMILAR pass:
// prefer an uncompressed full-precision table, then the identified
// (diff-encoded) variant, then the packed bitpdb forms.
var fallbackOrder = []Suffix{SuffixPDB, SuffixIPDB, SuffixBPDB, SuffixBPDBZst}

// OpenOptions configures Open's behaviour when no on-disk PDB satisfies
// a requested tileset.
type OpenOptions struct {
	// Create generates a fresh PDB (the CAT_IDENTIFY-equivalent flag)
	// when no matching file, exact or similar, is found on disk.
	Create bool

	// Jobs is forwarded to pdbgen.Generate when Create triggers
	// generation. Zero selects pdbgen.DefaultJobs.
	Jobs int
}

// Open locates a PDB for ts in dir, trying, in order: the exact
// requested suffix; every other known suffix (the "similar" pass); and,
// if opts.Create is set, generating a fresh one from scratch. This is
// the same three-pass driver search heu_open runs over its drivers[]
// table, expressed as an explicit ordered suffix list instead of a flag
// bitmask.
//
// bpdb/bpdb.zst files are recognised by name but not decoded: the
// packed-entry format is out of scope (spec.md Non-goals), so a bitpdb
// candidate is treated as absent rather than attempted.
func Open(dir string, ts tileset.Tileset, zeroTracked bool, requested Suffix, opts OpenOptions) (*PDB, error) {
	aux, err := index.MakeIndexAux(ts)
	if err != nil {
		return nil, err
	}

	if pdb, ok, err := tryLoad(dir, ts, zeroTracked, requested, aux); err != nil {
		return nil, err
	} else if ok {
		return pdb, nil
	}

	for _, s := range fallbackOrder {
		if s == requested {
			continue
		}

		if pdb, ok, err := tryLoad(dir, ts, zeroTracked, s, aux); err != nil {
			return nil, err
		} else if ok {
			return pdb, nil
		}
	}

	if !opts.Create {
		return nil, errors.Errorf("catalogue: no PDB file for tileset %d found in %s", uint32(ts), dir)
	}

	store, err := pdbgen.Generate(aux, pdbgen.Options{Jobs: opts.Jobs})
	if err != nil {
		return nil, errors.Wrap(err, "catalogue: generating")
	}

	return &PDB{
		Aux:         aux,
		Store:       store,
		Tileset:     ts,
		Suffix:      requested,
		Fingerprint: computeFingerprint(store),
	}, nil
}

// tryLoad attempts to load dir/<filename for ts,suffix>, reporting
// ok=false (not an error) when the file simply does not exist. Every
// suffix other than the bitpdb ones is read as a plain distance table of
// exactly pdbstore's expected size; an ipdb file in the layout genpdb
// writes (diff table followed by the minima) is longer than that, so
// loading one fails with a length error.
func tryLoad(dir string, ts tileset.Tileset, zeroTracked bool, suffix Suffix, aux *index.IndexAux) (*PDB, bool, error) {
	if suffix == SuffixBPDB || suffix == SuffixBPDBZst {
		return nil, false, nil
	}

	path := filepath.Join(dir, FormatFilename(ts, zeroTracked, suffix))
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, errors.Wrapf(err, "catalogue: stat %s", path)
	}

	store := pdbstore.New(aux)
	if err := pdbstore.LoadChecksum(path, store); err != nil {
		return nil, false, errors.Wrapf(err, "catalogue: loading %s", path)
	}

	return &PDB{
		Aux:         aux,
		Store:       store,
		Tileset:     ts,
		Suffix:      suffix,
		Fingerprint: computeFingerprint(store),
	}, true, nil
}
