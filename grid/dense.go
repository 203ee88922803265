package grid

// Bounds is an inclusive rectangle of grid coordinates.
type Bounds struct {
	ColMin, RowMin int
	ColMax, RowMax int
}

// Width returns the number of columns covered by b.
func (b Bounds) Width() int { return b.ColMax - b.ColMin + 1 }

// Height returns the number of rows covered by b.
func (b Bounds) Height() int { return b.RowMax - b.RowMin + 1 }

// Contains reports whether c lies within b.
// Complexity: O(1).
func (b Bounds) Contains(c Coord) bool {
	return c.Col >= b.ColMin && c.Col <= b.ColMax && c.Row >= b.RowMin && c.Row <= b.RowMax
}

// Dense is a rectangular, fully populated block of tiles anchored at Origin.
// Cells[r][c] is the tile at Origin.Add(c, r). It is immutable once built.
type Dense[V any] struct {
	Origin        Coord
	Width, Height int
	Cells         [][]V
}

// NewDense constructs a Dense grid from a non-empty, rectangular 2D slice.
// The outer slices are copied; tile values themselves are not.
// Returns ErrEmptyGrid if values has no rows or no columns,
// ErrNonRectangular if any row length differs.
// Complexity: O(W×H) time and memory.
func NewDense[V any](origin Coord, values [][]V) (*Dense[V], error) {
	if len(values) == 0 || len(values[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	h, w := len(values), len(values[0])
	for _, row := range values {
		if len(row) != w {
			return nil, ErrNonRectangular
		}
	}
	cells := make([][]V, h)
	for r := 0; r < h; r++ {
		cells[r] = make([]V, w)
		copy(cells[r], values[r])
	}

	return &Dense[V]{Origin: origin, Width: w, Height: h, Cells: cells}, nil
}

// Bounds returns the coordinates covered by d.
func (d *Dense[V]) Bounds() Bounds {
	return Bounds{
		ColMin: d.Origin.Col,
		RowMin: d.Origin.Row,
		ColMax: d.Origin.Col + d.Width - 1,
		RowMax: d.Origin.Row + d.Height - 1,
	}
}

// Each calls fn for every tile in row-major order.
func (d *Dense[V]) Each(fn func(c Coord, v V)) {
	for r := 0; r < d.Height; r++ {
		for c := 0; c < d.Width; c++ {
			fn(d.Origin.Add(c, r), d.Cells[r][c])
		}
	}
}

// At returns the tile at c and whether c lies inside d.
func (d *Dense[V]) At(c Coord) (V, bool) {
	if !d.Bounds().Contains(c) {
		var zero V
		return zero, false
	}

	return d.Cells[c.Row-d.Origin.Row][c.Col-d.Origin.Col], true
}
