// Package tilestore reads and writes tiles in an SQLite database laid out
// as an MBTiles "tiles" table, yielding records ready for neighbor collection.
//
// MBTiles stores rows in TMS order (row 0 at the south edge). The store flips
// them on the way in and out so that Key rows grow southward like every other
// grid coordinate in this module.
//
// Errors:
//
//   - ErrEmptyPath: Open was given an empty database path.
//   - ErrZoomRange: a zoom level outside [0, MaxZoom].
//   - ErrOutOfRange: a coordinate outside the 2^zoom × 2^zoom matrix.
package tilestore
