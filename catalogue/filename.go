package catalogue

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/clausecker/puzzledb/tileset"
)

// Suffix identifies a PDB file's on-disk encoding.
type Suffix string

const (
	SuffixPDB     Suffix = "pdb"
	SuffixIPDB    Suffix = "ipdb"
	SuffixBPDB    Suffix = "bpdb"
	SuffixBPDBZst Suffix = "bpdb.zst"
)

// validSuffixes lists every suffix FormatFilename/ParseFilename accept,
// in the fallback search order heu_open tries them in (exact match is
// tried by the caller first; this order only matters for the "similar"
// fallback pass, see driver.go).
var validSuffixes = []Suffix{SuffixPDB, SuffixIPDB, SuffixBPDB, SuffixBPDBZst}

func (s Suffix) valid() bool {
	for _, v := range validSuffixes {
		if s == v {
			return true
		}
	}
	return false
}

// FormatFilename renders ts/suffix as "<tileset-list>.<suffix>", the
// comma-sorted decimal listing of tile ids; when zeroTracked is set, a
// leading "z" is prepended to suffix and the blank is not listed among
// the tile ids a second time (it is implied).
func FormatFilename(ts tileset.Tileset, zeroTracked bool, suffix Suffix) string {
	nz := ts.Remove(tileset.ZeroTile)
	ids := make([]int, 0, nz.Count())
	for t := nz; !t.IsEmpty(); t = t.RemoveLeast() {
		ids = append(ids, t.GetLeast())
	}
	sort.Ints(ids)

	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}

	prefix := ""
	if zeroTracked {
		prefix = "z"
	}

	return fmt.Sprintf("%s.%s%s", strings.Join(parts, ","), prefix, suffix)
}

// ParseFilename parses a filename in FormatFilename's convention, back
// into the tileset it names (blank included when the "z" prefix or
// variant is present), whether it is a blank-tracking variant, and its
// suffix.
func ParseFilename(name string) (ts tileset.Tileset, zeroTracked bool, suffix Suffix, err error) {
	dot := strings.IndexByte(name, '.')
	if dot < 0 {
		return 0, false, "", fmt.Errorf("catalogue: filename %q has no suffix", name)
	}

	tileList, rawSuffix := name[:dot], name[dot+1:]

	zeroTracked = strings.HasPrefix(rawSuffix, "z")
	if zeroTracked {
		rawSuffix = rawSuffix[1:]
	}

	suffix = Suffix(rawSuffix)
	if !suffix.valid() {
		return 0, false, "", fmt.Errorf("catalogue: filename %q has unrecognised suffix %q", name, rawSuffix)
	}

	if tileList == "" {
		return 0, false, "", fmt.Errorf("catalogue: filename %q names no tiles", name)
	}

	for _, field := range strings.Split(tileList, ",") {
		id, convErr := strconv.Atoi(field)
		if convErr != nil || id < 0 || id > 24 {
			return 0, false, "", fmt.Errorf("catalogue: filename %q: invalid tile id %q", name, field)
		}
		ts = ts.Add(id)
	}

	if zeroTracked {
		ts = ts.Add(tileset.ZeroTile)
	}

	return ts, zeroTracked, suffix, nil
}
