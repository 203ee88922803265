package tilestore

import (
	"fmt"

	"github.com/katalvlaran/halo/grid"
)

// MaxZoom is the deepest zoom level accepted by the store.
const MaxZoom = 30

// Key addresses a tile at a zoom level. Zoom is carried unchanged by
// WithCoordinate, so keys of different zoom levels never become neighbors.
type Key struct {
	Zoom int
	grid.Coord
}

// WithCoordinate implements grid.SpatialKey.
func (k Key) WithCoordinate(c grid.Coord) Key {
	k.Coord = c

	return k
}

// Hash64 mixes the zoom level into the coordinate hash.
func (k Key) Hash64() uint64 {
	return k.Coord.Hash64() ^ uint64(k.Zoom)<<58
}

// String formats k as "zoom/col/row".
func (k Key) String() string {
	return fmt.Sprintf("%d/%d/%d", k.Zoom, k.Col, k.Row)
}

// Valid reports whether k lies inside the tile matrix of its zoom level.
func (k Key) Valid() bool {
	if k.Zoom < 0 || k.Zoom > MaxZoom {
		return false
	}
	n := 1 << k.Zoom

	return k.Col >= 0 && k.Col < n && k.Row >= 0 && k.Row < n
}

// tmsRow converts between south-growing rows and TMS rows. It is its own inverse.
func tmsRow(zoom, row int) int {
	return (1 << zoom) - 1 - row
}
