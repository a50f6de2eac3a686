// Package grid provides the square-board geometry for the Noir arena:
// positions, directions, and a generic matrix with adjacency, ray, and
// row/column rotation queries.
package grid

// Position is a (row, col) coordinate on a square board.
// Equality is value equality.
type Position struct {
	Row int
	Col int
}

// Direction identifies one of the four orthogonal board directions.
type Direction int

const (
	// DirectionUp points toward decreasing rows.
	DirectionUp Direction = iota
	// DirectionRight points toward increasing columns.
	DirectionRight
	// DirectionDown points toward increasing rows.
	DirectionDown
	// DirectionLeft points toward decreasing columns.
	DirectionLeft
)

// Reverse returns the opposite direction.
func (d Direction) Reverse() Direction {
	switch d {
	case DirectionUp:
		return DirectionDown
	case DirectionRight:
		return DirectionLeft
	case DirectionDown:
		return DirectionUp
	default:
		return DirectionRight
	}
}

// IsValid reports whether the direction is one of the four defined values.
func (d Direction) IsValid() bool {
	return d >= DirectionUp && d <= DirectionLeft
}

// String returns the lowercase direction name.
func (d Direction) String() string {
	switch d {
	case DirectionUp:
		return "up"
	case DirectionRight:
		return "right"
	case DirectionDown:
		return "down"
	case DirectionLeft:
		return "left"
	default:
		return "unknown"
	}
}

// delta returns the (row, col) step for the direction.
func (d Direction) delta() (int, int) {
	switch d {
	case DirectionUp:
		return -1, 0
	case DirectionRight:
		return 0, 1
	case DirectionDown:
		return 1, 0
	default:
		return 0, -1
	}
}

// Step returns the position one cell away in the given direction.
// The result may be out of bounds; callers check against the matrix.
func (p Position) Step(d Direction) Position {
	dr, dc := d.delta()
	return Position{Row: p.Row + dr, Col: p.Col + dc}
}
