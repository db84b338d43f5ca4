// Package pdbgen implements the parallel level-synchronous breadth-first
// construction of a pattern database: starting from the solved
// configuration, it floods outward one depth at a time, using relaxed
// atomic compare-UNREACHED-then-store cell updates so concurrent workers
// never need a lock.
package pdbgen

import (
	"io"
	"sync"

	"github.com/golang/snappy"
	"v.io/x/lib/vlog"

	"github.com/clausecker/puzzledb/index"
	"github.com/clausecker/puzzledb/pdbstore"
	"github.com/clausecker/puzzledb/puzzle"
	"github.com/clausecker/puzzledb/tileset"
)

// DefaultJobs is the worker count used when Options.Jobs is unset,
// mirroring the default of the original pdb_jobs tunable.
const DefaultJobs = 1

// maxJobs bounds the worker pool size, matching PDB_MAX_JOBS.
const maxJobs = 256

// Options configures a generation run.
type Options struct {
	// Jobs is the number of worker goroutines used per BFS depth, in
	// 1..256. Zero selects DefaultJobs.
	Jobs int

	// FrontierLog, if non-nil, receives a snappy-framed text log of
	// "depth count\n" lines, one per BFS depth. None of the commands in
	// cmd/ sets or reads it.
	FrontierLog io.Writer
}

func (o Options) jobs() int {
	switch {
	case o.Jobs <= 0:
		return DefaultJobs
	case o.Jobs > maxJobs:
		return maxJobs
	default:
		return o.Jobs
	}
}

// cellIndex recovers the structured Index addressed by offset i within
// maprank's table -- the inverse of the offset pdbstore computes
// internally.
func cellIndex(aux *index.IndexAux, maprank, i int) index.Index {
	if !aux.TracksZero() {
		return index.Index{Maprank: maprank, Pidx: i, Eqidx: index.EqidxUntracked}
	}

	return index.Index{Maprank: maprank, Pidx: i % aux.NPerm, Eqidx: i / aux.NPerm}
}

// neighbours returns the up-to-4 grid positions orthogonally adjacent
// to p on the 5x5 board.
func neighbours(p int) []int {
	row, col := p/5, p%5
	out := make([]int, 0, 4)

	if row > 0 {
		out = append(out, p-5)
	}
	if row < 4 {
		out = append(out, p+5)
	}
	if col > 0 {
		out = append(out, p-1)
	}
	if col < 4 {
		out = append(out, p+1)
	}

	return out
}

// expand appends to out every configuration reachable from p by sliding
// a single pattern tile from w into v, for every w orthogonally
// adjacent to v that is a member of m (a pattern position). The caller
// selects which non-pattern position v is eligible: every one of them,
// when the blank is untracked, or only those in the blank's current
// equivalence-class region, when it is tracked (see moves).
func expand(p puzzle.Puzzle, m tileset.Tileset, v int, out []puzzle.Puzzle) []puzzle.Puzzle {
	for _, w := range neighbours(v) {
		if !m.Has(w) {
			continue
		}

		// Put the blank on v first, so that after the slide it stands on
		// w, the cell the pattern tile left.
		q := p
		q.Swap(q.ZeroLocation(), uint8(v))
		q.Swap(uint8(v), uint8(w))
		out = append(out, q)
	}

	return out
}

// moves enumerates every configuration reachable from p, decoded at
// idx, by sliding a single pattern tile into an adjacent non-pattern
// cell. When the blank is untracked, a pattern tile may slide into any
// cell outside m (spec 4.4.b: the don't-care tiles filling those cells
// are free to rearrange). When the blank is tracked, a pattern tile may
// only slide into a cell the blank can reach by walking freely within
// its current equivalence-class region, so that region is enumerated
// first using the eqclasses computed for maprank idx.Maprank.
func moves(aux *index.IndexAux, m tileset.Tileset, eqclasses [tileset.NumSlots]int8, idx index.Index, p puzzle.Puzzle) []puzzle.Puzzle {
	var out []puzzle.Puzzle

	if !aux.TracksZero() {
		for v := 0; v < tileset.NumSlots; v++ {
			if m.Has(v) {
				continue
			}
			out = expand(p, m, v, out)
		}

		return out
	}

	class := int8(idx.Eqidx)
	for v := 0; v < tileset.NumSlots; v++ {
		if eqclasses[v] == class {
			out = expand(p, m, v, out)
		}
	}

	return out
}

// expandTable scans maprank's table for cells at exactly depth, and for
// each, enumerates every transition that moves a pattern tile per
// moves. It returns the number of neighbour cells newly set to depth+1.
func expandTable(aux *index.IndexAux, pdb *pdbstore.PatternDB, maprank int, depth byte) int {
	tab := pdb.Tables[maprank]
	n := tab.Len()
	newCells := 0

	m := tileset.Unrank(aux.NTile, maprank)

	var eqclasses [tileset.NumSlots]int8
	if aux.TracksZero() {
		eqclasses, _ = tileset.PopulateEqclasses(m)
	}

	for i := 0; i < n; i++ {
		if tab.Load(i) != depth {
			continue
		}

		idx := cellIndex(aux, maprank, i)
		p := index.InvertIndex(aux, idx)

		for _, q := range moves(aux, m, eqclasses, idx, p) {
			newIdx := index.ComputeIndex(aux, &q)
			if pdb.ConditionalUpdate(newIdx, pdbstore.UNREACHED, depth+1) {
				newCells++
			}
		}
	}

	return newCells
}

// expandDepth runs one BFS depth across every maprank table, partitioned
// into opts.jobs() roughly equal contiguous maprank ranges scanned
// concurrently, and returns the total number of newly discovered cells.
func expandDepth(aux *index.IndexAux, pdb *pdbstore.PatternDB, depth byte, jobs int) int {
	n := len(pdb.Tables)
	if jobs > n {
		jobs = n
	}
	if jobs < 1 {
		jobs = 1
	}

	chunk := (n + jobs - 1) / jobs
	counts := make([]int, jobs)

	var wg sync.WaitGroup
	for w := 0; w < jobs; w++ {
		lo := w * chunk
		hi := lo + chunk
		if lo >= n {
			break
		}
		if hi > n {
			hi = n
		}

		wg.Add(1)
		go func(w, lo, hi int) {
			defer wg.Done()
			total := 0
			for r := lo; r < hi; r++ {
				total += expandTable(aux, pdb, r, depth)
			}
			counts[w] = total
		}(w, lo, hi)
	}
	wg.Wait()

	total := 0
	for _, c := range counts {
		total += c
	}

	return total
}

// Generate builds a complete pattern database for aux: every reachable
// cell is filled with its exact distance from the solved configuration;
// cells unreachable under the puzzle's permutation-parity invariant are
// left at pdbstore.UNREACHED. Running Generate twice on independently
// allocated PatternDBs for the same aux produces byte-identical tables
// regardless of opts.Jobs.
func Generate(aux *index.IndexAux, opts Options) (*pdbstore.PatternDB, error) {
	pdb := pdbstore.New(aux)
	jobs := opts.jobs()

	solved := index.ComputeIndex(aux, &puzzle.Solved)
	pdb.Update(solved, 0)

	var sw *snappy.Writer
	if opts.FrontierLog != nil {
		sw = snappy.NewBufferedWriter(opts.FrontierLog)
		defer sw.Close()
	}

	logFrontier := func(depth int, count int) {
		if sw == nil {
			return
		}
		line := []byte{}
		line = appendUint(line, uint64(depth))
		line = append(line, ' ')
		line = appendUint(line, uint64(count))
		line = append(line, '\n')
		_, _ = sw.Write(line)
	}

	logFrontier(0, 1)

	frontier := 1
	for depth := byte(0); frontier > 0; depth++ {
		if depth >= 254 {
			vlog.Fatalf("pdbgen: BFS exceeded the maximum representable distance (254); this indicates a corrupt tileset or index bug")
		}

		frontier = expandDepth(aux, pdb, depth, jobs)
		logFrontier(int(depth)+1, frontier)
	}

	return pdb, nil
}

// appendUint appends the decimal representation of v to dst.
func appendUint(dst []byte, v uint64) []byte {
	if v == 0 {
		return append(dst, '0')
	}

	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}

	return append(dst, buf[i:]...)
}
