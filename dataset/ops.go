package dataset

import (
	"errors"
	"fmt"
)

// Parallelize splits records into n contiguous partitions of near-equal size.
// The result has no partitioner. n below 1 is raised to 1.
// Complexity: O(len(records)).
func Parallelize[K comparable, V any](records []Pair[K, V], n int, opts ...Option) *Collection[K, V] {
	if n < 1 {
		n = 1
	}
	parts := make([][]Pair[K, V], n)
	size, rem := len(records)/n, len(records)%n
	start := 0
	for i := 0; i < n; i++ {
		end := start + size
		if i < rem {
			end++
		}
		parts[i] = append([]Pair[K, V](nil), records[start:end]...)
		start = end
	}

	return &Collection[K, V]{parts: parts, env: newEnv(opts)}
}

// PartitionBy places records according to p and records p as the partitioner.
// Returns ErrPartitionRange if p yields an index outside [0, p.NumPartitions()).
// Complexity: O(len(records)).
func PartitionBy[K comparable, V any](records []Pair[K, V], p Partitioner[K], opts ...Option) (*Collection[K, V], error) {
	n := p.NumPartitions()
	parts := make([][]Pair[K, V], n)
	for _, kv := range records {
		i := p.Partition(kv.Key)
		if i < 0 || i >= n {
			return nil, fmt.Errorf("%w: key %v -> %d of %d", ErrPartitionRange, kv.Key, i, n)
		}
		parts[i] = append(parts[i], kv)
	}

	return &Collection[K, V]{parts: parts, partitioner: p, env: newEnv(opts)}, nil
}

// FlatMap calls fn for every record; fn emits zero or more output records.
// Output stays in the source partition, so the result has no partitioner.
// fn runs concurrently across partitions and must not share mutable state.
func FlatMap[K comparable, V any, K2 comparable, V2 any](
	c *Collection[K, V],
	fn func(key K, value V, emit func(K2, V2)),
) *Collection[K2, V2] {
	parts := make([][]Pair[K2, V2], len(c.parts))
	eachPartition(len(c.parts), func(i int) {
		var out []Pair[K2, V2]
		emit := func(k K2, v V2) { out = append(out, Pair[K2, V2]{Key: k, Value: v}) }
		for _, kv := range c.parts[i] {
			fn(kv.Key, kv.Value, emit)
		}
		parts[i] = out
	})

	return &Collection[K2, V2]{parts: parts, env: c.env}
}

// Filter keeps the records for which pred returns true.
// Partitioning and partitioner are preserved.
func Filter[K comparable, V any](c *Collection[K, V], pred func(key K, value V) bool) *Collection[K, V] {
	parts := make([][]Pair[K, V], len(c.parts))
	eachPartition(len(c.parts), func(i int) {
		var out []Pair[K, V]
		for _, kv := range c.parts[i] {
			if pred(kv.Key, kv.Value) {
				out = append(out, kv)
			}
		}
		parts[i] = out
	})

	return &Collection[K, V]{parts: parts, partitioner: c.partitioner, env: c.env}
}

// MapValues transforms every value, keeping keys, partitioning and partitioner.
func MapValues[K comparable, V any, V2 any](c *Collection[K, V], fn func(value V) V2) *Collection[K, V2] {
	parts := make([][]Pair[K, V2], len(c.parts))
	eachPartition(len(c.parts), func(i int) {
		out := make([]Pair[K, V2], len(c.parts[i]))
		for j, kv := range c.parts[i] {
			out[j] = Pair[K, V2]{Key: kv.Key, Value: fn(kv.Value)}
		}
		parts[i] = out
	})

	return &Collection[K, V2]{parts: parts, partitioner: c.partitioner, env: c.env}
}

// GroupByKey shuffles records so that all values of a key meet in one
// partition, chosen by p. When p is nil a HashPartitioner with the input's
// partition count is used. The result's partitioner is the one used.
//
// Keys appear in first-seen order; values in arrival order (source partition
// index, then record order within it).
//
// Errors: ErrPartitionRange, or a wrapped Codec failure.
// Complexity: O(N) records moved, plus codec cost per non-empty block.
func GroupByKey[K comparable, V any](c *Collection[K, V], p Partitioner[K]) (*Collection[K, []V], error) {
	if p == nil {
		p = NewHashPartitioner[K](c.NumPartitions())
	}
	n, src := p.NumPartitions(), len(c.parts)
	codec := c.env.codec

	// Map side: bucket each source partition by target, then serialize.
	blocks := make([][][]Pair[K, V], src)
	wire := make([][][]byte, src)
	errs := make([]error, src)
	eachPartition(src, func(s int) {
		out := make([][]Pair[K, V], n)
		for _, kv := range c.parts[s] {
			t := p.Partition(kv.Key)
			if t < 0 || t >= n {
				errs[s] = fmt.Errorf("%w: key %v -> %d of %d", ErrPartitionRange, kv.Key, t, n)
				return
			}
			out[t] = append(out[t], kv)
		}
		if codec == nil {
			blocks[s] = out
			return
		}
		enc := make([][]byte, n)
		for t, b := range out {
			if len(b) == 0 {
				continue
			}
			data, err := codec.Marshal(b)
			if err != nil {
				errs[s] = fmt.Errorf("shuffle block %d->%d: %w", s, t, err)
				return
			}
			enc[t] = data
		}
		wire[s] = enc
		blocks[s] = out
	})
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	stats := c.env.stats
	stats.shuffles.Add(1)
	for s := range blocks {
		for t, b := range blocks[s] {
			if len(b) == 0 {
				continue
			}
			stats.records.Add(int64(len(b)))
			stats.blocks.Add(1)
			if codec != nil {
				stats.bytes.Add(int64(len(wire[s][t])))
			}
		}
	}

	// Reduce side: receive blocks in source order and group.
	parts := make([][]Pair[K, []V], n)
	errs = make([]error, n)
	eachPartition(n, func(t int) {
		index := make(map[K]int)
		var groups []Pair[K, []V]
		for s := 0; s < src; s++ {
			block := blocks[s][t]
			if codec != nil && wire[s][t] != nil {
				block = nil
				if err := codec.Unmarshal(wire[s][t], &block); err != nil {
					errs[t] = fmt.Errorf("shuffle block %d->%d: %w", s, t, err)
					return
				}
			}
			for _, kv := range block {
				if i, ok := index[kv.Key]; ok {
					groups[i].Value = append(groups[i].Value, kv.Value)
					continue
				}
				index[kv.Key] = len(groups)
				groups = append(groups, Pair[K, []V]{Key: kv.Key, Value: []V{kv.Value}})
			}
		}
		parts[t] = groups
	})
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	return &Collection[K, []V]{parts: parts, partitioner: p, env: c.env}, nil
}
