package neighbors

import "github.com/katalvlaran/halo/grid"

// Tile is a keyed tile value as it travels between neighbors.
type Tile[K comparable, V any] struct {
	Key   K
	Value V
}

// Message is one fan-out record: a source tile tagged with its position
// relative to the destination the message is addressed to.
type Message[K comparable, V any] struct {
	Direction grid.Direction
	Tile      Tile[K, V]
}

// NeighborMap holds a tile and its existing neighbors, keyed by direction
// relative to that tile. It has at most nine entries and, in collector
// output, always a Center entry.
type NeighborMap[K comparable, V any] map[grid.Direction]Tile[K, V]

// Center returns the tile the map belongs to.
func (m NeighborMap[K, V]) Center() (Tile[K, V], bool) {
	return m.Get(grid.Center)
}

// Get returns the neighbor at d, if one exists.
func (m NeighborMap[K, V]) Get(d grid.Direction) (Tile[K, V], bool) {
	t, ok := m[d]

	return t, ok
}

// Directions lists the present directions in grid.Directions order.
func (m NeighborMap[K, V]) Directions() []grid.Direction {
	out := make([]grid.Direction, 0, len(m))
	for _, d := range grid.Directions() {
		if _, ok := m[d]; ok {
			out = append(out, d)
		}
	}

	return out
}
