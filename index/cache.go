package index

import (
	"sync"

	farm "github.com/dgryski/go-farm"
)

// numCacheShards mirrors the sharded-map design fusion/kmer_index.go uses
// for its singleton kmer table: the key space here (tile counts 0..12) is
// tiny, but the same sharding shape keeps every process-wide cache in
// this module built the same way, and costs nothing at this size.
const numCacheShards = 16

type tableCacheShard struct {
	mu   sync.Mutex
	once map[int]*sync.Once
	data map[int]*maprankTable
}

var tableCache [numCacheShards]tableCacheShard

func init() {
	for i := range tableCache {
		tableCache[i].once = make(map[int]*sync.Once)
		tableCache[i].data = make(map[int]*maprankTable)
	}
}

func shardFor(k int) *tableCacheShard {
	h := farm.Hash64WithSeed(nil, uint64(k))
	return &tableCache[h%numCacheShards]
}

// getMaprankTable returns the maprankTable for tile count k, building it
// on first request and caching it for every later caller. The cache is
// write-once per key and safe to share across goroutines without further
// synchronisation once obtained.
func getMaprankTable(k int) *maprankTable {
	shard := shardFor(k)

	shard.mu.Lock()
	once, ok := shard.once[k]
	if !ok {
		once = &sync.Once{}
		shard.once[k] = once
	}
	shard.mu.Unlock()

	once.Do(func() {
		t := buildMaprankTable(k)

		shard.mu.Lock()
		shard.data[k] = t
		shard.mu.Unlock()
	})

	shard.mu.Lock()
	t := shard.data[k]
	shard.mu.Unlock()

	return t
}
