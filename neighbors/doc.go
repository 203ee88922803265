// Package neighbors gathers, for every tile of a sparse grid, references to
// the tiles around it: the halo exchange that must precede any focal
// operation (convolution, slope, resampling) run locally on each tile.
//
// How:
//
//  1. Fan-out: every tile sends nine messages, one to itself and one to each
//     of the eight coordinates around it. A message is tagged with where the
//     sender lies as seen from the receiver, so the tile at (c,r) tells
//     (c-1,r) "I am on your Right".
//  2. Group: messages are grouped by destination key under the input's own
//     partitioner when it has one, so the fan-out shuffle is the only one.
//  3. Filter: destinations that received no Center message hold no tile and
//     are dropped. Off-grid coordinates never reach the output.
//  4. Materialize: the surviving messages become a NeighborMap.
//
// Guarantees:
//
//   - Every output key is an input key; every input key appears once.
//   - A NeighborMap holds a direction only if a tile exists at that offset.
//   - Output partitioner == input partitioner whenever the input has one.
//
// Preconditions:
//
//	Keys satisfy grid.SpatialKey. A WithCoordinate that alters other key
//	components, or a non-deterministic Coordinate, yields wrong neighborhoods
//	without any error.
//
// Complexity: 9·N messages, one shuffle, O(N) memory beyond the shuffle.
package neighbors
