package dataset_test

import (
	"errors"
	"testing"

	"github.com/katalvlaran/halo/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedPartitioner routes every key through a lookup table; unknown keys go to partition 0.
type fixedPartitioner struct {
	n     int
	table map[string]int
}

func (p *fixedPartitioner) NumPartitions() int { return p.n }
func (p *fixedPartitioner) Partition(k string) int {
	return p.table[k]
}

func words() []dataset.Pair[string, int] {
	return []dataset.Pair[string, int]{
		dataset.KV("a", 1), dataset.KV("b", 2), dataset.KV("a", 3),
		dataset.KV("c", 4), dataset.KV("b", 5), dataset.KV("a", 6), dataset.KV("d", 7),
	}
}

// TestParallelize_Split checks contiguous, near-equal partitions and no partitioner.
func TestParallelize_Split(t *testing.T) {
	c := dataset.Parallelize(words(), 3)
	require.Equal(t, 3, c.NumPartitions())
	assert.Len(t, c.Partition(0), 3)
	assert.Len(t, c.Partition(1), 2)
	assert.Len(t, c.Partition(2), 2)
	assert.Nil(t, c.Partitioner())
	assert.Equal(t, words(), c.Collect())
	assert.Equal(t, 7, c.Count())

	empty := dataset.Parallelize[string, int](nil, 0)
	assert.Equal(t, 1, empty.NumPartitions())
	assert.Equal(t, 0, empty.Count())
}

// TestPartitionBy_Range rejects partitioners that escape their range.
func TestPartitionBy_Range(t *testing.T) {
	p := &fixedPartitioner{n: 2, table: map[string]int{"a": 1, "b": 0, "c": 5}}
	_, err := dataset.PartitionBy(words(), p)
	require.Error(t, err)
	assert.True(t, errors.Is(err, dataset.ErrPartitionRange))

	p.table["c"] = 1
	c, err := dataset.PartitionBy(words(), p)
	require.NoError(t, err)
	assert.Same(t, p, c.Partitioner())
	for _, kv := range c.Partition(1) {
		assert.Contains(t, []string{"a", "c"}, kv.Key)
	}
}

// TestFlatMap_FanOut emits several records per input and drops the partitioner.
func TestFlatMap_FanOut(t *testing.T) {
	hp := dataset.NewHashPartitioner[string](4)
	in, err := dataset.PartitionBy(words(), hp)
	require.NoError(t, err)

	out := dataset.FlatMap(in, func(k string, v int, emit func(int, string)) {
		for i := 0; i < v%3; i++ {
			emit(v, k)
		}
	})
	assert.Nil(t, out.Partitioner())
	assert.Equal(t, in.NumPartitions(), out.NumPartitions())
	// v%3 over 1..7 = 1,2,0,1,2,0,1
	assert.Equal(t, 7, out.Count())
}

// TestGroupByKey_Order verifies grouping, first-seen key order and arrival-order values.
func TestGroupByKey_Order(t *testing.T) {
	in := dataset.Parallelize(words(), 3)
	p := &fixedPartitioner{n: 1, table: map[string]int{}}
	g, err := dataset.GroupByKey(in, p)
	require.NoError(t, err)

	require.Equal(t, 1, g.NumPartitions())
	assert.Same(t, p, g.Partitioner())
	got := g.Partition(0)
	require.Len(t, got, 4)
	assert.Equal(t, "a", got[0].Key)
	assert.Equal(t, []int{1, 3, 6}, got[0].Value)
	assert.Equal(t, "b", got[1].Key)
	assert.Equal(t, []int{2, 5}, got[1].Value)
	assert.Equal(t, []int{4}, got[2].Value)
	assert.Equal(t, []int{7}, got[3].Value)
	assert.EqualValues(t, 1, in.Stats().Shuffles())
	assert.EqualValues(t, 7, in.Stats().Records())
	assert.Zero(t, in.Stats().Bytes())
}

// TestGroupByKey_DefaultPartitioner falls back to hashing with the input's partition count.
func TestGroupByKey_DefaultPartitioner(t *testing.T) {
	in := dataset.Parallelize(words(), 5)
	g, err := dataset.GroupByKey(in, nil)
	require.NoError(t, err)
	require.NotNil(t, g.Partitioner())
	assert.Equal(t, 5, g.Partitioner().NumPartitions())

	m := g.CollectMap()
	require.Len(t, m, 4)
	for k := range m {
		assert.Equal(t, g.Partitioner().Partition(k), partitionOf(g, k))
	}
	assert.ElementsMatch(t, []int{1, 3, 6}, m["a"])
}

func partitionOf[V any](c *dataset.Collection[string, V], key string) int {
	for i := 0; i < c.NumPartitions(); i++ {
		for _, kv := range c.Partition(i) {
			if kv.Key == key {
				return i
			}
		}
	}

	return -1
}

// TestGroupByKey_Range surfaces ErrPartitionRange from the map side.
func TestGroupByKey_Range(t *testing.T) {
	in := dataset.Parallelize(words(), 2)
	_, err := dataset.GroupByKey(in, &fixedPartitioner{n: 1, table: map[string]int{"d": -1}})
	assert.ErrorIs(t, err, dataset.ErrPartitionRange)
}

// TestFilterMapValues_KeepPartitioner checks narrow operations keep the layout.
func TestFilterMapValues_KeepPartitioner(t *testing.T) {
	hp := dataset.NewHashPartitioner[string](3)
	in, err := dataset.PartitionBy(words(), hp)
	require.NoError(t, err)

	f := dataset.Filter(in, func(_ string, v int) bool { return v%2 == 0 })
	assert.Same(t, hp, f.Partitioner())
	assert.Equal(t, 3, f.Count())

	m := dataset.MapValues(f, func(v int) string { return string(rune('A' + v)) })
	assert.Same(t, hp, m.Partitioner())
	for i := 0; i < in.NumPartitions(); i++ {
		for _, kv := range m.Partition(i) {
			assert.Equal(t, i, hp.Partition(kv.Key))
		}
	}
	assert.ElementsMatch(t, []string{"C", "E", "G"}, values(m.Collect()))
}

func values[K comparable, V any](ps []dataset.Pair[K, V]) []V {
	out := make([]V, len(ps))
	for i, p := range ps {
		out[i] = p.Value
	}

	return out
}
