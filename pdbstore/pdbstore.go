// Package pdbstore implements the on-disk and in-memory storage of
// pattern databases: one atomic byte table per maprank, addressed by
// (eqidx, pidx), with relaxed atomic cell access suitable for the
// pattern database generator's lock-free level-synchronous BFS.
package pdbstore

import (
	"github.com/clausecker/puzzledb/index"
)

// Table is the dense byte table for a single maprank. Entries are
// addressed by eqidx*NPerm+pidx (or plain pidx when the blank is not
// tracked), and are always accessed through atomic load/store helpers so
// the generator's workers can race on UNREACHED cells safely.
//
// data is shared backing storage that may hold several tables packed
// back to back with no padding between them (the mmap-backed case); this
// table's cells live at data[base:base+n]. Atomic access always computes
// its word alignment relative to data's own start (see cell.go), which
// is the only address this package relies on being 4-byte aligned, so
// packing tables tightly never misaligns a word access even when a
// table's own base offset isn't itself a multiple of 4.
type Table struct {
	data []byte
	base int
	n    int // logical length
}

// newTable allocates a standalone Table of n logical cells, initialised
// to zero; the caller is responsible for clearing it to UNREACHED before
// use. Its backing array reserves paddedLen(n) bytes of capacity beyond
// the n exposed by Bytes/Len, so cell.go's word-aligned access never
// reads or writes past the allocation even when n isn't a multiple of 4;
// none of that padding is ever part of Bytes() or the on-disk format.
func newTable(n int) *Table {
	return &Table{data: make([]byte, n, paddedLen(n)), base: 0, n: n}
}

// Len returns the number of logical cells in the table.
func (t *Table) Len() int {
	return t.n
}

// Bytes returns the table's logical bytes, exactly Len() of them with
// no padding -- this is the on-disk representation Store/Load/Mmap use.
// The returned slice aliases the table's storage; callers must not
// retain it across concurrent modification of the table, and must use
// Load/Store/ConditionalStore rather than indexing into it during
// generation.
func (t *Table) Bytes() []byte {
	return t.data[t.base : t.base+t.n]
}

// paddedLen returns n rounded up to a multiple of 4.
func paddedLen(n int) int {
	return (n + 3) &^ 3
}

// Clear resets every cell of t to UNREACHED.
func (t *Table) Clear() {
	b := t.Bytes()
	for i := range b {
		b[i] = UNREACHED
	}
}

// Load atomically reads cell i.
func (t *Table) Load(i int) byte {
	return loadCell(t.data, t.base+i)
}

// Store atomically writes v into cell i with a relaxed store.
func (t *Table) Store(i int, v byte) {
	storeCell(t.data, t.base+i, v)
}

// ConditionalStore atomically writes v into cell i only if it currently
// holds want, and reports whether the store happened.
func (t *Table) ConditionalStore(i int, want, v byte) bool {
	return conditionalStoreCell(t.data, t.base+i, want, v)
}

// PatternDB is a generated or loaded pattern database: one Table per
// maprank of aux's tileset.
type PatternDB struct {
	Aux    *index.IndexAux
	Tables []*Table

	// mmapped holds the full memory-mapped region backing Tables, set
	// only when the PatternDB was opened via Mmap/CreateMmap; Close
	// unmaps it. nil for in-memory or plain-file-backed PatternDBs.
	mmapped []byte
}

// entryOffset returns the offset of idx's eqidx,pidx pair within its
// maprank's table.
func entryOffset(aux *index.IndexAux, idx index.Index) int {
	if idx.Eqidx == index.EqidxUntracked {
		return idx.Pidx
	}

	return idx.Eqidx*aux.NPerm + idx.Pidx
}

// New allocates a PatternDB for aux, with every cell set to UNREACHED.
func New(aux *index.IndexAux) *PatternDB {
	tables := make([]*Table, aux.NMaprank)
	for r := range tables {
		n := aux.NEqclass(r) * aux.NPerm
		tables[r] = newTable(n)
		tables[r].Clear()
	}

	return &PatternDB{Aux: aux, Tables: tables}
}

// Lookup returns the distance stored for idx.
func (pdb *PatternDB) Lookup(idx index.Index) byte {
	return pdb.Tables[idx.Maprank].Load(entryOffset(pdb.Aux, idx))
}

// Update stores v for idx with a relaxed atomic store.
func (pdb *PatternDB) Update(idx index.Index, v byte) {
	pdb.Tables[idx.Maprank].Store(entryOffset(pdb.Aux, idx), v)
}

// ConditionalUpdate stores v for idx only if its current value is want,
// and reports whether the store happened.
func (pdb *PatternDB) ConditionalUpdate(idx index.Index, want, v byte) bool {
	return pdb.Tables[idx.Maprank].ConditionalStore(entryOffset(pdb.Aux, idx), want, v)
}

// TableSize returns the total number of cells across every maprank
// table, the size in bytes of pdb's on-disk representation.
func (pdb *PatternDB) TableSize() int64 {
	var total int64
	for _, t := range pdb.Tables {
		total += int64(t.Len())
	}

	return total
}
