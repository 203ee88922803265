package grid

// BlockPartitioner assigns spatial keys to partitions by square blocks of
// BlockSize×BlockSize tiles, so that most of a tile's neighbors share its partition.
// Keys in the same block always land in the same partition.
//
// It satisfies dataset.Partitioner for any SpatialKey type.
type BlockPartitioner[K SpatialKey[K]] struct {
	n         int
	blockSize int
}

// NewBlockPartitioner returns a partitioner over n partitions with the given block size.
// Values below 1 are raised to 1.
func NewBlockPartitioner[K SpatialKey[K]](n, blockSize int) *BlockPartitioner[K] {
	if n < 1 {
		n = 1
	}
	if blockSize < 1 {
		blockSize = 1
	}

	return &BlockPartitioner[K]{n: n, blockSize: blockSize}
}

// NumPartitions returns the partition count.
func (p *BlockPartitioner[K]) NumPartitions() int { return p.n }

// BlockSize returns the edge length of a block in tiles.
func (p *BlockPartitioner[K]) BlockSize() int { return p.blockSize }

// Block returns the block coordinate containing key.
func (p *BlockPartitioner[K]) Block(key K) Coord {
	c := key.Coordinate()

	return Coord{Col: floorDiv(c.Col, p.blockSize), Row: floorDiv(c.Row, p.blockSize)}
}

// Partition returns the partition index of key in [0, NumPartitions).
func (p *BlockPartitioner[K]) Partition(key K) int {
	return int(p.Block(key).Hash64() % uint64(p.n))
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}

	return q
}
