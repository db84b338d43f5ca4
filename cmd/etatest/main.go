// Command etatest samples puzzle configurations by 200-move random walks
// from the solved configuration, evaluates the catalogue heuristic on
// each, and reports the mean and maximum heuristic value as a rough
// estimate of search-tree pruning power. It does not read pdbgen's
// frontier log and does not compare samples against their true
// distance.
package main

import (
	"flag"
	"fmt"
	"math/rand"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"

	"github.com/clausecker/puzzledb/catalogue"
	"github.com/clausecker/puzzledb/puzzle"
)

func main() {
	cataloguePath := flag.String("catalogue", "", "path to the catalogue file to evaluate")
	dir := flag.String("dir", ".", "directory PDB filenames in the catalogue are resolved against")
	samples := flag.Int("samples", 10000, "number of random puzzle configurations to sample")

	cleanup := grail.Init()
	defer cleanup()
	ctx := vcontext.Background()

	if *cataloguePath == "" {
		log.Fatal("etatest: -catalogue is required")
	}

	cat, err := catalogue.LoadFile(ctx, *cataloguePath, *dir, catalogue.OpenOptions{}, true)
	if err != nil {
		log.Fatalf("etatest: %v", err)
	}

	rng := rand.New(rand.NewSource(1))
	var total, maxSeen int
	for i := 0; i < *samples; i++ {
		p := randomWalk(rng, 200)
		_, h := catalogue.EvalPartialHvals(cat, &p)
		total += h
		if h > maxSeen {
			maxSeen = h
		}
	}

	mean := float64(total) / float64(*samples)
	log.Printf("etatest: %d samples, mean h=%.3f, max h=%d", *samples, mean, maxSeen)
	fmt.Printf("samples=%d mean_h=%.3f max_h=%d\n", *samples, mean, maxSeen)
}

// randomWalk returns a puzzle reached from the solved configuration by
// steps random legal moves.
func randomWalk(rng *rand.Rand, steps int) puzzle.Puzzle {
	p := puzzle.Solved
	for i := 0; i < steps; i++ {
		moves := p.Moves()
		p.Move(moves[rng.Intn(len(moves))])
	}
	return p
}
