// Package grid defines the integer tile grid used by the halo packages:
// coordinates, the nine relative directions of an 8-connected neighborhood,
// and the SpatialKey capability that lets composite keys expose and replace
// their grid coordinate.
//
// What:
//
//   - Coord is a (Col, Row) pair. Col grows eastward, Row grows southward.
//   - Direction enumerates Center and the eight neighbors of a tile.
//   - SpatialKey is the constraint every key handled by the neighbor
//     collector must satisfy.
//   - SpaceTimeKey is a composite key carrying a time instant next to the coordinate.
//   - Bounds and Dense describe rectangular, fully populated grids.
//   - BlockPartitioner assigns keys to partitions by square blocks of tiles.
//
// Convention:
//
//	        Col-1   Col   Col+1
//	Row-1   TL      T     TR
//	Row     L       C     R
//	Row+1   BL      B     BR
//
// Errors:
//
//   - ErrEmptyGrid: dense input has no rows or no columns.
//   - ErrNonRectangular: dense rows have differing lengths.
package grid
