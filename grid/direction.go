package grid

import "fmt"

// Direction names a position relative to a tile in its 8-connected neighborhood.
// The zero value is Center.
type Direction uint8

const (
	Center Direction = iota
	Left
	Right
	Top
	Bottom
	TopLeft
	TopRight
	BottomLeft
	BottomRight
)

// directionCount is the size of the closed Direction set.
const directionCount = 9

var directionNames = [directionCount]string{
	Center:      "center",
	Left:        "left",
	Right:       "right",
	Top:         "top",
	Bottom:      "bottom",
	TopLeft:     "top_left",
	TopRight:    "top_right",
	BottomLeft:  "bottom_left",
	BottomRight: "bottom_right",
}

// directionOffsets holds (dCol, dRow) of the neighbor at each direction,
// measured from the center tile with Col east and Row south.
var directionOffsets = [directionCount][2]int{
	Center:      {0, 0},
	Left:        {-1, 0},
	Right:       {1, 0},
	Top:         {0, -1},
	Bottom:      {0, 1},
	TopLeft:     {-1, -1},
	TopRight:    {1, -1},
	BottomLeft:  {-1, 1},
	BottomRight: {1, 1},
}

var opposites = [directionCount]Direction{
	Center:      Center,
	Left:        Right,
	Right:       Left,
	Top:         Bottom,
	Bottom:      Top,
	TopLeft:     BottomRight,
	TopRight:    BottomLeft,
	BottomLeft:  TopRight,
	BottomRight: TopLeft,
}

// Directions returns all nine directions, Center first.
func Directions() []Direction {
	return []Direction{Center, Left, Right, Top, Bottom, TopLeft, TopRight, BottomLeft, BottomRight}
}

// Neighbors returns the eight non-Center directions.
func Neighbors() []Direction {
	return Directions()[1:]
}

// Valid reports whether d is one of the nine defined directions.
func (d Direction) Valid() bool {
	return d < directionCount
}

// Offset returns the displacement from a center tile to its neighbor at d.
// Offset of an invalid direction is (0, 0).
func (d Direction) Offset() (dCol, dRow int) {
	if !d.Valid() {
		return 0, 0
	}
	o := directionOffsets[d]

	return o[0], o[1]
}

// Opposite returns the direction pointing back from the neighbor at d to the center.
func (d Direction) Opposite() Direction {
	if !d.Valid() {
		return d
	}

	return opposites[d]
}

// String implements fmt.Stringer.
func (d Direction) String() string {
	if !d.Valid() {
		return fmt.Sprintf("direction(%d)", uint8(d))
	}

	return directionNames[d]
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("grid: invalid direction %d", uint8(d))
	}

	return []byte(directionNames[d]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(text []byte) error {
	p, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = p

	return nil
}

// ParseDirection returns the Direction named s, as produced by String.
func ParseDirection(s string) (Direction, error) {
	for i, name := range directionNames {
		if name == s {
			return Direction(i), nil
		}
	}

	return Center, fmt.Errorf("grid: unknown direction %q", s)
}
