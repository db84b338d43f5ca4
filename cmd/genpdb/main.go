// Command genpdb generates (and optionally identifies) a pattern
// database file for a tileset, mirroring the informative CLI front-end
// spec.md describes: a thin wrapper over pdbgen.Generate,
// pdbident.Identify and pdbstore.StoreChecksum.
package main

import (
	"bufio"
	"flag"
	"os"
	"strconv"
	"strings"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"

	"github.com/clausecker/puzzledb/catalogue"
	"github.com/clausecker/puzzledb/index"
	"github.com/clausecker/puzzledb/pdbgen"
	"github.com/clausecker/puzzledb/pdbident"
	"github.com/clausecker/puzzledb/pdbstore"
	"github.com/clausecker/puzzledb/tileset"
)

func main() {
	tilesFlag := flag.String("tiles", "", "comma-separated list of tile ids to track (0 denotes the blank)")
	jobs := flag.Int("jobs", pdbgen.DefaultJobs, "number of BFS worker goroutines (1..256)")
	identify := flag.Bool("identify", false, "also write the diff-encoded (identified) PDB variant")
	out := flag.String("out", "", "output PDB file path (default: derived from -tiles)")

	cleanup := grail.Init()
	defer cleanup()

	if *tilesFlag == "" {
		log.Fatal("genpdb: -tiles is required")
	}

	var ts tileset.Tileset
	for _, f := range strings.Split(*tilesFlag, ",") {
		id, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil || id < 0 || id > 24 {
			log.Fatalf("genpdb: invalid tile id %q", f)
		}
		ts = ts.Add(id)
	}

	aux, err := index.MakeIndexAux(ts)
	if err != nil {
		log.Fatalf("genpdb: %v", err)
	}

	log.Printf("genpdb: generating PDB for tileset %d (n_tile=%d, n_maprank=%d) with %d jobs", uint32(ts), aux.NTile, aux.NMaprank, *jobs)

	pdb, err := pdbgen.Generate(aux, pdbgen.Options{Jobs: *jobs})
	if err != nil {
		log.Fatalf("genpdb: generation failed: %v", err)
	}

	if err := pdbgen.Verify(aux, pdb); err != nil {
		log.Fatalf("genpdb: verification failed: %v", err)
	}

	diameter := pdbgen.Diameter(pdb)
	log.Printf("genpdb: generation complete, diameter %d", diameter)

	path := *out
	if path == "" {
		path = catalogue.FormatFilename(ts, ts.Has(tileset.ZeroTile), catalogue.SuffixPDB)
	}

	if err := pdbstore.StoreChecksum(path, pdb); err != nil {
		log.Fatalf("genpdb: writing %s: %v", path, err)
	}
	log.Printf("genpdb: wrote %s", path)

	if *identify {
		idb := pdbident.Identify(pdb)
		ipath := catalogue.FormatFilename(ts, ts.Has(tileset.ZeroTile), catalogue.SuffixIPDB)
		if err := writeIdentified(ipath, idb); err != nil {
			log.Fatalf("genpdb: writing %s: %v", ipath, err)
		}
		log.Printf("genpdb: wrote %s", ipath)
	}
}

// writeIdentified writes an ipdb file: the diff table in maprank-
// ascending order, followed by the side table of per-(maprank,pidx)
// minima in the same order, the "side table kept ... appended to the
// PDB" layout spec.md describes for the identification pass.
func writeIdentified(path string, idb *pdbident.IdentifiedDB) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, d := range idb.Diffs {
		if _, err := w.Write(d); err != nil {
			return err
		}
	}
	for _, m := range idb.Mins {
		if _, err := w.Write(m); err != nil {
			return err
		}
	}

	return w.Flush()
}
