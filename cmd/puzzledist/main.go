// Command puzzledist runs a plain breadth-first search over a tileset's
// abstraction and reports the per-depth frontier size (the "BFS shell
// histogram"), gzip-compressed when writing to a file.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/klauspost/compress/gzip"

	"github.com/clausecker/puzzledb/index"
	"github.com/clausecker/puzzledb/pdbgen"
	"github.com/clausecker/puzzledb/tileset"
)

func main() {
	tilesFlag := flag.String("tiles", "", "comma-separated list of tile ids to track (0 denotes the blank)")
	jobs := flag.Int("jobs", pdbgen.DefaultJobs, "number of BFS worker goroutines (1..256)")
	out := flag.String("out", "", "gzip-compressed shell histogram output path (default: stdout, uncompressed)")

	cleanup := grail.Init()
	defer cleanup()

	if *tilesFlag == "" {
		log.Fatal("puzzledist: -tiles is required")
	}

	var ts tileset.Tileset
	for _, f := range strings.Split(*tilesFlag, ",") {
		id, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil || id < 0 || id > 24 {
			log.Fatalf("puzzledist: invalid tile id %q", f)
		}
		ts = ts.Add(id)
	}

	aux, err := index.MakeIndexAux(ts)
	if err != nil {
		log.Fatalf("puzzledist: %v", err)
	}

	pdb, err := pdbgen.Generate(aux, pdbgen.Options{Jobs: *jobs})
	if err != nil {
		log.Fatalf("puzzledist: generation failed: %v", err)
	}

	hist := pdbgen.Histogram(pdb)

	if *out == "" {
		printHistogram(os.Stdout, hist)
		return
	}

	f, err := os.Create(*out)
	if err != nil {
		log.Fatalf("puzzledist: creating %s: %v", *out, err)
	}
	defer f.Close()

	gw := gzip.NewWriter(f)
	printHistogram(gw, hist)
	if err := gw.Close(); err != nil {
		log.Fatalf("puzzledist: writing %s: %v", *out, err)
	}

	log.Printf("puzzledist: wrote %s", *out)
}

func printHistogram(w io.Writer, hist [256]int64) {
	for d := 0; d < 255; d++ {
		if hist[d] == 0 {
			continue
		}
		fmt.Fprintf(w, "%d %d\n", d, hist[d])
	}
	if hist[255] != 0 {
		fmt.Fprintf(w, "unreached %d\n", hist[255])
	}
}
