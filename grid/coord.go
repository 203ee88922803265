package grid

import "fmt"

// Coord is a grid coordinate. Col increases eastward, Row increases southward.
//
// Coord satisfies SpatialKey itself, so plain coordinates can key a collection.
type Coord struct {
	Col int
	Row int
}

// SpatialKey is the capability a key must offer to take part in neighbor collection.
//
// Coordinate must be deterministic. WithCoordinate returns a copy of the key with
// only its spatial component replaced; every other component is carried unchanged.
// Implementations that break either rule produce silently wrong neighborhoods.
type SpatialKey[K any] interface {
	comparable
	Coordinate() Coord
	WithCoordinate(c Coord) K
}

// Coordinate implements SpatialKey.
func (c Coord) Coordinate() Coord { return c }

// WithCoordinate implements SpatialKey.
func (c Coord) WithCoordinate(n Coord) Coord { return n }

// Add returns c displaced by (dCol, dRow).
func (c Coord) Add(dCol, dRow int) Coord {
	return Coord{Col: c.Col + dCol, Row: c.Row + dRow}
}

// Neighbor returns the coordinate lying at direction d from c.
func (c Coord) Neighbor(d Direction) Coord {
	return c.Add(d.Offset())
}

// Hash64 mixes both components into a 64-bit hash.
func (c Coord) Hash64() uint64 {
	return mix64(uint64(int64(c.Col))*0x9e3779b97f4a7c15 ^ uint64(int64(c.Row)))
}

// String formats c as "col,row".
func (c Coord) String() string {
	return fmt.Sprintf("%d,%d", c.Col, c.Row)
}

// SpaceTimeKey is a composite key: a grid coordinate observed at an instant.
// Instant is opaque to the grid (e.g. Unix milliseconds).
type SpaceTimeKey struct {
	Coord
	Instant int64
}

// WithCoordinate implements SpatialKey, keeping Instant.
func (k SpaceTimeKey) WithCoordinate(c Coord) SpaceTimeKey {
	k.Coord = c

	return k
}

// Hash64 mixes the coordinate and the instant.
func (k SpaceTimeKey) Hash64() uint64 {
	return mix64(k.Coord.Hash64() ^ uint64(k.Instant)*0xbf58476d1ce4e5b9)
}

// String formats k as "col,row@instant".
func (k SpaceTimeKey) String() string {
	return fmt.Sprintf("%s@%d", k.Coord, k.Instant)
}

// mix64 is the splitmix64 finalizer.
func mix64(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31

	return x
}
