package neighbors

import (
	"fmt"

	"github.com/katalvlaran/halo/dataset"
	"github.com/katalvlaran/halo/grid"
)

// route addresses one fan-out message: the destination lies at (dCol, dRow)
// from the source, and tag is where the source sits as seen from there.
type route struct {
	tag        grid.Direction
	dCol, dRow int
}

// routes is the fan-out table, with Col growing east and Row growing south.
// The tile at (c,r) is the Right neighbor of (c-1,r), the Top neighbor of
// (c,r+1), and so on.
var routes = [...]route{
	{grid.Center, 0, 0},
	{grid.Right, -1, 0},
	{grid.Left, 1, 0},
	{grid.Bottom, 0, -1},
	{grid.Top, 0, 1},
	{grid.BottomRight, -1, -1},
	{grid.BottomLeft, 1, -1},
	{grid.TopRight, -1, 1},
	{grid.TopLeft, 1, 1},
}

// emitMessages sends the nine messages of one tile.
func emitMessages[K grid.SpatialKey[K], V any](key K, value V, emit func(K, Message[K, V])) {
	src := Tile[K, V]{Key: key, Value: value}
	c := key.Coordinate()
	for _, r := range routes {
		dst := key
		if r.tag != grid.Center {
			dst = key.WithCoordinate(c.Add(r.dCol, r.dRow))
		}
		emit(dst, Message[K, V]{Direction: r.tag, Tile: src})
	}
}

// hasCenter reports whether a destination group holds an actual tile.
func hasCenter[K comparable, V any](msgs []Message[K, V]) bool {
	for _, m := range msgs {
		if m.Direction == grid.Center {
			return true
		}
	}

	return false
}

// toNeighborMap materializes a group. When two messages share a direction
// (duplicate input keys) the later one in arrival order wins.
func toNeighborMap[K comparable, V any](msgs []Message[K, V]) NeighborMap[K, V] {
	m := make(NeighborMap[K, V], len(msgs))
	for _, msg := range msgs {
		m[msg.Direction] = msg.Tile
	}

	return m
}

// CollectNeighbors returns, for every tile of in, a NeighborMap of the tile
// itself and each of its up-to-eight existing neighbors.
//
// Grouping reuses in.Partitioner() when set, so the output carries the very
// same partitioner; otherwise a hash partitioner over in's partition count is used.
// The only errors are shuffle failures reported by the dataset layer.
//
// Complexity: O(9·N) messages and one shuffle.
func CollectNeighbors[K grid.SpatialKey[K], V any](
	in *dataset.Collection[K, V],
) (*dataset.Collection[K, NeighborMap[K, V]], error) {
	msgs := dataset.FlatMap(in, emitMessages[K, V])

	grouped, err := dataset.GroupByKey(msgs, in.Partitioner())
	if err != nil {
		return nil, fmt.Errorf("neighbors: group messages: %w", err)
	}

	present := dataset.Filter(grouped, func(_ K, ms []Message[K, V]) bool {
		return hasCenter(ms)
	})

	return dataset.MapValues(present, toNeighborMap[K, V]), nil
}
