package pdbstore

import (
	"sync/atomic"
	"unsafe"
)

// UNREACHED marks a cell that the generator has not yet discovered.
const UNREACHED byte = 255

// wordAndShift returns a pointer to the 4-byte-aligned machine word
// containing data[pos], and the bit shift of that byte within the word.
// pos is always an offset into data itself, never into some smaller
// per-table view of it: data's own start is the only address this
// module ever relies on being 4-byte aligned (true for any Go-allocated
// slice and for an mmap'd region, both of which start on a much
// coarser boundary), so neighbouring tables may sit in the same word
// without breaking alignment -- the masked CAS below already tolerates
// two goroutines racing on different bytes of one word, which is
// exactly what a table boundary falling mid-word produces. This assumes
// a little-endian host, true of every platform this module targets; Go
// lacks a native atomic byte type, so cells are emulated by masked
// compare-and-swap over the containing 32-bit word, the approach spec
// Design Note (c) permits for languages without atomic bytes.
func wordAndShift(data []byte, pos int) (*uint32, uint) {
	base := pos &^ 3
	shift := uint(pos&3) * 8
	return (*uint32)(unsafe.Pointer(&data[base])), shift
}

// loadCell atomically reads raw[i].
func loadCell(raw []byte, i int) byte {
	word, shift := wordAndShift(raw, i)
	return byte(atomic.LoadUint32(word) >> shift)
}

// storeCell atomically writes v to raw[i] with a relaxed store. The loop
// ends once the CAS succeeds or the cell already holds v (the case when
// another goroutine wrote the same value first); it retries whenever
// another goroutine changed any byte of the same word in between.
func storeCell(raw []byte, i int, v byte) {
	word, shift := wordAndShift(raw, i)
	mask := uint32(0xff) << shift
	set := uint32(v) << shift

	for {
		old := atomic.LoadUint32(word)
		next := old&^mask | set
		if old == next || atomic.CompareAndSwapUint32(word, old, next) {
			return
		}
	}
}

// conditionalStoreCell atomically stores v into raw[i] if and only if the
// current value is want, returning whether the store happened. This is
// the BFS generator's compare-UNREACHED-then-store primitive.
func conditionalStoreCell(raw []byte, i int, want, v byte) bool {
	word, shift := wordAndShift(raw, i)
	mask := uint32(0xff) << shift
	set := uint32(v) << shift

	for {
		old := atomic.LoadUint32(word)
		if byte(old>>shift) != want {
			return false
		}

		next := old&^mask | set
		if atomic.CompareAndSwapUint32(word, old, next) {
			return true
		}
	}
}
