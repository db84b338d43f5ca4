package pdbstore

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/blainsmith/seahash"
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"

	"github.com/clausecker/puzzledb/index"
)

// MapMode selects the protection/sharing flags a mmap-backed PatternDB
// is opened with.
type MapMode int

const (
	// MapRDONLY maps the file read-only; writes through the table panic.
	MapRDONLY MapMode = iota
	// MapRDWRShared maps the file read-write, with writes visible to
	// other mappers and persisted back to the file -- the mode used
	// while a PDB is being generated.
	MapRDWRShared
)

// sumSuffix is the filename suffix of a PatternDB's companion checksum
// file.
const sumSuffix = ".sum"

// Store writes pdb's tables to w in maprank-ascending order, packed
// byte-exact with no padding inside or between maprank runs: w's total
// length equals pdb.TableSize(), matching the reference .pdb format
// exactly. It does not write a checksum; callers that also want one
// should use StoreChecksum.
func Store(w io.Writer, pdb *PatternDB) error {
	bw := bufio.NewWriter(w)
	for r, t := range pdb.Tables {
		if _, err := bw.Write(t.Bytes()); err != nil {
			return errors.Wrapf(err, "pdbstore: writing maprank %d", r)
		}
	}

	return bw.Flush()
}

// Load reads pdb's tables from r in maprank-ascending order. pdb must
// already be allocated (via New) for the tileset the data was generated
// for; Load only fills in the bytes.
func Load(r io.Reader, pdb *PatternDB) error {
	br := bufio.NewReader(r)
	for rank, t := range pdb.Tables {
		if _, err := io.ReadFull(br, t.Bytes()); err != nil {
			return errors.Wrapf(err, "pdbstore: reading maprank %d", rank)
		}
	}

	// A well-formed PDB file contains exactly the expected number of
	// bytes; any trailing data indicates a length mismatch.
	var extra [1]byte
	if n, err := br.Read(extra[:]); n != 0 || err != io.EOF {
		return fmt.Errorf("pdbstore: format: file longer than expected table size")
	}

	return nil
}

// checksum computes the seahash checksum of pdb's tables, in the same
// maprank-ascending order Store writes them.
func checksum(pdb *PatternDB) uint64 {
	h := seahash.New()
	for _, t := range pdb.Tables {
		_, _ = h.Write(t.Bytes())
	}

	return h.Sum64()
}

// StoreChecksum writes pdb to path and a companion path+".sum" file
// holding its seahash checksum, so a later Load can detect silent
// corruption that a pure length check would miss.
func StoreChecksum(path string, pdb *PatternDB) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "pdbstore: create")
	}
	defer f.Close()

	if err := Store(f, pdb); err != nil {
		return err
	}

	sum := checksum(pdb)
	return os.WriteFile(path+sumSuffix, []byte(fmt.Sprintf("%016x\n", sum)), 0644)
}

// LoadChecksum reads pdb from path and verifies it against the companion
// path+".sum" file written by StoreChecksum. If the companion file does
// not exist, the checksum step is skipped.
func LoadChecksum(path string, pdb *PatternDB) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "pdbstore: open")
	}
	defer f.Close()

	if err := Load(f, pdb); err != nil {
		return err
	}

	want, err := os.ReadFile(path + sumSuffix)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrap(err, "pdbstore: reading checksum file")
	}

	got := fmt.Sprintf("%016x\n", checksum(pdb))
	if string(want) != got {
		return fmt.Errorf("pdbstore: format: checksum mismatch for %s", path)
	}

	return nil
}

// Mmap opens path as a memory-mapped PatternDB for aux, in the given
// mode. The caller must call Close when done to unmap the file. A cell
// access whose word straddles the very end of the mapping (when
// expectedSize() isn't a multiple of 4) reads into the zero-filled
// remainder of the file's final page; per mmap(2) that slack is never
// written back, so it never grows path's on-disk length. expectedSize()
// not being a multiple of 4 also means it cannot be a multiple of the
// page size either, so that slack always exists within the same final
// page and never runs off the end of the mapping.
func Mmap(path string, aux *index.IndexAux, mode MapMode) (*PatternDB, error) {
	flag := os.O_RDONLY
	prot := unix.PROT_READ
	mapFlags := unix.MAP_SHARED
	if mode == MapRDWRShared {
		flag = os.O_RDWR
		prot |= unix.PROT_WRITE
	}

	f, err := os.OpenFile(path, flag, 0644)
	if err != nil {
		return nil, errors.Wrap(err, "pdbstore: open")
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, errors.Wrap(err, "pdbstore: stat")
	}

	pdb := &PatternDB{Aux: aux, Tables: make([]*Table, aux.NMaprank)}
	size := pdb.expectedSize()
	if fi.Size() != size {
		return nil, fmt.Errorf("pdbstore: format: %s has length %d, expected %d", path, fi.Size(), size)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), prot, mapFlags)
	if err != nil {
		return nil, errors.Wrap(err, "pdbstore: mmap")
	}

	_ = unix.Madvise(data, unix.MADV_RANDOM)

	pdb.mmapped = data
	mmapTables(pdb, data)

	return pdb, nil
}

// CreateMmap creates (or truncates) path to the exact byte-packed size
// required for aux, fills it with UNREACHED, and maps it RDWR|SHARED --
// the entry point the generator uses to back a fresh PatternDB with a
// file instead of anonymous memory.
func CreateMmap(path string, aux *index.IndexAux) (*PatternDB, error) {
	pdb := &PatternDB{Aux: aux, Tables: make([]*Table, aux.NMaprank)}
	size := pdb.expectedSize()

	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrap(err, "pdbstore: create")
	}
	defer f.Close()

	if err := f.Truncate(size); err != nil {
		return nil, errors.Wrap(err, "pdbstore: truncate")
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, errors.Wrap(err, "pdbstore: mmap")
	}

	for i := range data {
		data[i] = UNREACHED
	}

	pdb.mmapped = data
	mmapTables(pdb, data)

	return pdb, nil
}

// mmapTables slices pdb's tables out of the shared mmap'd region data,
// packed back to back with no padding between them, matching the exact
// byte-packed on-disk layout expectedSize describes.
func mmapTables(pdb *PatternDB, data []byte) {
	offset := 0
	for r := range pdb.Tables {
		n := pdb.Aux.NEqclass(r) * pdb.Aux.NPerm
		pdb.Tables[r] = &Table{data: data, base: offset, n: n}
		offset += n
	}
}

// Close unmaps pdb's backing file, if it was opened via Mmap or
// CreateMmap. It is a no-op otherwise.
func Close(pdb *PatternDB) error {
	if pdb.mmapped == nil {
		return nil
	}

	err := unix.Munmap(pdb.mmapped)
	pdb.mmapped = nil
	return err
}

// expectedSize computes the total exact, byte-packed length a
// PatternDB's backing file must have -- the same layout Store/Load and
// Mmap agree on, with no padding inside or between maprank runs.
func (pdb *PatternDB) expectedSize() int64 {
	var total int64
	for r := range pdb.Tables {
		total += int64(pdb.Aux.NEqclass(r) * pdb.Aux.NPerm)
	}

	return total
}
