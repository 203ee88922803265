package dataset

import (
	"errors"
	"sync"
	"sync/atomic"
)

// ErrPartitionRange indicates a partitioner returned an out-of-range index.
var ErrPartitionRange = errors.New("dataset: partition index out of range")

// Pair is one key-value record.
type Pair[K comparable, V any] struct {
	Key   K
	Value V
}

// KV is shorthand for building a Pair.
func KV[K comparable, V any](k K, v V) Pair[K, V] {
	return Pair[K, V]{Key: k, Value: v}
}

// Partitioner deterministically assigns keys to NumPartitions buckets.
// Partition must return a value in [0, NumPartitions()).
type Partitioner[K comparable] interface {
	NumPartitions() int
	Partition(key K) int
}

// Option configures a collection created by Parallelize or PartitionBy.
// Derived collections inherit the configuration of their input.
type Option func(*env)

// WithCodec routes every shuffle block through c.
func WithCodec(c Codec) Option {
	return func(e *env) { e.codec = c }
}

// WithStats accumulates shuffle statistics into s.
func WithStats(s *ShuffleStats) Option {
	return func(e *env) { e.stats = s }
}

// env is the execution configuration shared along a lineage of collections.
// A nil codec hands shuffle blocks over in memory.
type env struct {
	codec Codec
	stats *ShuffleStats
}

func newEnv(opts []Option) *env {
	e := &env{stats: &ShuffleStats{}}
	for _, opt := range opts {
		opt(e)
	}
	if e.stats == nil {
		e.stats = &ShuffleStats{}
	}

	return e
}

// ShuffleStats counts the work done by GroupByKey. Safe for concurrent use.
type ShuffleStats struct {
	shuffles atomic.Int64
	records  atomic.Int64
	blocks   atomic.Int64
	bytes    atomic.Int64
}

// Shuffles returns the number of GroupByKey calls.
func (s *ShuffleStats) Shuffles() int64 { return s.shuffles.Load() }

// Records returns the number of records moved through shuffles.
func (s *ShuffleStats) Records() int64 { return s.records.Load() }

// Blocks returns the number of non-empty (source, target) blocks transferred.
func (s *ShuffleStats) Blocks() int64 { return s.blocks.Load() }

// Bytes returns the encoded size of all transferred blocks.
// It stays zero when the collection uses no serializing codec.
func (s *ShuffleStats) Bytes() int64 { return s.bytes.Load() }

// Collection is an immutable, partitioned set of records.
type Collection[K comparable, V any] struct {
	parts       [][]Pair[K, V]
	partitioner Partitioner[K]
	env         *env
}

// NumPartitions returns the number of partitions.
func (c *Collection[K, V]) NumPartitions() int { return len(c.parts) }

// Partitioner returns the partitioner that placed the records, or nil when unknown.
func (c *Collection[K, V]) Partitioner() Partitioner[K] { return c.partitioner }

// Partition returns the records of partition i. The slice must not be modified.
func (c *Collection[K, V]) Partition(i int) []Pair[K, V] { return c.parts[i] }

// Stats returns the shuffle statistics shared by this collection's lineage.
func (c *Collection[K, V]) Stats() *ShuffleStats { return c.env.stats }

// Count returns the total number of records.
func (c *Collection[K, V]) Count() int {
	n := 0
	for _, p := range c.parts {
		n += len(p)
	}

	return n
}

// Collect returns all records, partition by partition.
func (c *Collection[K, V]) Collect() []Pair[K, V] {
	out := make([]Pair[K, V], 0, c.Count())
	for _, p := range c.parts {
		out = append(out, p...)
	}

	return out
}

// CollectMap returns the records as a map. With duplicate keys the last record wins.
func (c *Collection[K, V]) CollectMap() map[K]V {
	out := make(map[K]V, c.Count())
	for _, p := range c.parts {
		for _, kv := range p {
			out[kv.Key] = kv.Value
		}
	}

	return out
}

// eachPartition runs fn(i) for every partition index concurrently and waits.
func eachPartition(n int, fn func(i int)) {
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			fn(i)
		}(i)
	}
	wg.Wait()
}
