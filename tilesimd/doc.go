// Package tilesimd computes the tile-map bitmap -- which grid positions
// are occupied by a chosen set of tracked tiles -- the one per-lookup hot
// path of index computation that benefits from a wide, vectorisable scan.
// tilesimd_generic.go is the mandatory scalar fallback; tilesimd_amd64.go
// is a build-tag gated faster path, mirroring the split in
// github.com/grailbio/bio/biosimd between an assembly-backed amd64
// implementation and a portable generic one.
package tilesimd
