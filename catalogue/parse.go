package catalogue

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/clausecker/puzzledb/tileset"
)

// MaxPDBs and MaxGroups are the catalogue file's hard limits (spec
// "n_pdbs <= 64, n_heuristics <= 32").
const (
	MaxPDBs       = 64
	MaxGroups     = 32
	MaxLineLength = 4096
)

// fileEntry is one PDB line from a catalogue file, with the groups it
// was assigned to by the "=group-id" lines that follow it.
type fileEntry struct {
	Tileset     tileset.Tileset
	ZeroTracked bool
	Suffix      Suffix
	Groups      []int
	line        int
}

// parseCatalogueText reads a catalogue file's textual format: blank
// lines and "#" comments are ignored; a PDB line names a tileset
// (optionally with a suffix, "<tileset-list>.<suffix>"); any following
// "=N" lines assign the preceding PDB to group N (0..MaxGroups-1). A PDB
// line may be followed by any number of "=N" lines, so the same PDB can
// belong to multiple groups.
func parseCatalogueText(r io.Reader) ([]fileEntry, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, MaxLineLength), MaxLineLength)

	var entries []fileEntry
	var current *fileEntry
	lineNo := 0

	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if len(line) > MaxLineLength {
			return nil, errors.Errorf("catalogue: line %d: line exceeds %d bytes", lineNo, MaxLineLength)
		}

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if strings.HasPrefix(line, "=") {
			if current == nil {
				return nil, errors.Errorf("catalogue: line %d: group marker %q with no preceding PDB line", lineNo, line)
			}

			g, err := strconv.Atoi(line[1:])
			if err != nil || g < 0 || g >= MaxGroups {
				return nil, errors.Errorf("catalogue: line %d: invalid group id %q", lineNo, line[1:])
			}

			current.Groups = append(current.Groups, g)
			continue
		}

		ts, zeroTracked, suffix, err := parsePDBLine(line)
		if err != nil {
			return nil, errors.Wrapf(err, "catalogue: line %d", lineNo)
		}

		entries = append(entries, fileEntry{Tileset: ts, ZeroTracked: zeroTracked, Suffix: suffix, line: lineNo})
		current = &entries[len(entries)-1]
	}

	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "catalogue: reading")
	}

	if len(entries) > MaxPDBs {
		return nil, errors.Errorf("catalogue: %d PDB lines exceeds the %d PDB limit", len(entries), MaxPDBs)
	}

	return entries, nil
}

// parsePDBLine parses a PDB line, defaulting the suffix to SuffixPDB
// when the line carries no "." separator.
func parsePDBLine(line string) (tileset.Tileset, bool, Suffix, error) {
	if strings.ContainsRune(line, '.') {
		return ParseFilename(line)
	}

	var ts tileset.Tileset
	if line == "" {
		return 0, false, "", errors.Errorf("PDB line names no tiles")
	}

	for _, field := range strings.Split(line, ",") {
		id, err := strconv.Atoi(field)
		if err != nil || id < 0 || id > 24 {
			return 0, false, "", errors.Errorf("invalid tile id %q", field)
		}
		ts = ts.Add(id)
	}

	// Without an explicit suffix, blank-tracking is expressed simply by
	// listing tile id 0 (tileset.ZeroTile) among the tile ids, same as
	// any other tracked tile.
	return ts, ts.Has(tileset.ZeroTile), SuffixPDB, nil
}
