package dataset

import (
	"fmt"
	"hash/fnv"
)

// Hasher is implemented by keys that provide their own 64-bit hash.
// HashPartitioner prefers it over formatting the key.
type Hasher interface {
	Hash64() uint64
}

// HashPartitioner spreads keys over n partitions by hash modulo n.
type HashPartitioner[K comparable] struct {
	n int
}

// NewHashPartitioner returns a HashPartitioner over n partitions.
// n below 1 is raised to 1.
func NewHashPartitioner[K comparable](n int) *HashPartitioner[K] {
	if n < 1 {
		n = 1
	}

	return &HashPartitioner[K]{n: n}
}

// NumPartitions returns the partition count.
func (p *HashPartitioner[K]) NumPartitions() int { return p.n }

// Partition returns hash(key) mod NumPartitions.
func (p *HashPartitioner[K]) Partition(key K) int {
	return int(HashKey(key) % uint64(p.n))
}

// HashKey returns key.Hash64() when key is a Hasher, otherwise the
// FNV-1a hash of its %v formatting.
func HashKey[K comparable](key K) uint64 {
	if h, ok := any(key).(Hasher); ok {
		return h.Hash64()
	}
	f := fnv.New64a()
	_, _ = fmt.Fprintf(f, "%v", key)

	return f.Sum64()
}
