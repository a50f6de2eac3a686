package wire

import (
	apperrors "github.com/louisbranch/noir/internal/errors"
	"github.com/louisbranch/noir/internal/noir/board"
	"github.com/louisbranch/noir/internal/noir/grid"
)

// FromPosition converts an in-memory position to its wire point.
func FromPosition(p grid.Position) Point {
	return Point{X: p.Col, Y: p.Row}
}

// ToPosition converts a wire point to an in-memory position.
func ToPosition(pt Point) grid.Position {
	return grid.Position{Row: pt.Y, Col: pt.X}
}

// FromPositions converts a position slice, preserving order.
func FromPositions(ps []grid.Position) []Point {
	out := make([]Point, len(ps))
	for i, p := range ps {
		out[i] = FromPosition(p)
	}
	return out
}

// directionNames is the stable direction registry.
var directionNames = map[grid.Direction]string{
	grid.DirectionUp:    "up",
	grid.DirectionRight: "right",
	grid.DirectionDown:  "down",
	grid.DirectionLeft:  "left",
}

// FromDirection converts a direction to its wire name.
func FromDirection(d grid.Direction) string {
	return directionNames[d]
}

// ToDirection resolves a wire direction name.
func ToDirection(name string) (grid.Direction, error) {
	for d, n := range directionNames {
		if n == name {
			return d, nil
		}
	}
	return 0, apperrors.New(apperrors.CodeWireUnknownDirection, "unknown direction "+name)
}

// FromMarker converts a marker to its wire name.
func FromMarker(m board.Marker) string {
	return string(m)
}

// ToMarker resolves a wire marker name.
func ToMarker(name string) (board.Marker, error) {
	m := board.Marker(name)
	if !m.IsValid() {
		return "", apperrors.New(apperrors.CodeWireUnknownMarker, "unknown marker "+name)
	}
	return m, nil
}
