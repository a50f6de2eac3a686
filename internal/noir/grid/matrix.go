package grid

import (
	"fmt"

	apperrors "github.com/louisbranch/noir/internal/errors"
)

// Matrix is a size×size board of cells.
//
// All position access is bounds-checked; an out-of-range position is an
// invariant violation, not an ordinary rejection.
type Matrix[T any] struct {
	size  int
	cells [][]T
}

// NewMatrix creates a size×size matrix with zero-valued cells.
func NewMatrix[T any](size int) *Matrix[T] {
	cells := make([][]T, size)
	for i := range cells {
		cells[i] = make([]T, size)
	}
	return &Matrix[T]{size: size, cells: cells}
}

// Size returns the board dimension.
func (m *Matrix[T]) Size() int {
	return m.size
}

// Contains reports whether the position is on the board.
func (m *Matrix[T]) Contains(p Position) bool {
	return p.Row >= 0 && p.Row < m.size && p.Col >= 0 && p.Col < m.size
}

func (m *Matrix[T]) boundsCheck(p Position) error {
	if !m.Contains(p) {
		return apperrors.New(apperrors.CodeGridOutOfBounds,
			fmt.Sprintf("position (%d,%d) outside %dx%d board", p.Row, p.Col, m.size, m.size))
	}
	return nil
}

// At returns the cell at the position.
func (m *Matrix[T]) At(p Position) (T, error) {
	var zero T
	if err := m.boundsCheck(p); err != nil {
		return zero, err
	}
	return m.cells[p.Row][p.Col], nil
}

// Set replaces the cell at the position.
func (m *Matrix[T]) Set(p Position, value T) error {
	if err := m.boundsCheck(p); err != nil {
		return err
	}
	m.cells[p.Row][p.Col] = value
	return nil
}

// Swap exchanges two cells' contents in place.
func (m *Matrix[T]) Swap(a, b Position) error {
	if err := m.boundsCheck(a); err != nil {
		return err
	}
	if err := m.boundsCheck(b); err != nil {
		return err
	}
	m.cells[a.Row][a.Col], m.cells[b.Row][b.Col] = m.cells[b.Row][b.Col], m.cells[a.Row][a.Col]
	return nil
}

// Adjacent returns the in-bounds king-move neighbors of p, between 3 and 8
// positions depending on edge placement. Order is row-major around p.
func (m *Matrix[T]) Adjacent(p Position) []Position {
	var out []Position
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			q := Position{Row: p.Row + dr, Col: p.Col + dc}
			if m.Contains(q) {
				out = append(out, q)
			}
		}
	}
	return out
}

// Orthogonal walks the four orthogonal rays from p, each capped at max steps
// or the board edge, concatenated in the fixed order up, right, down, left.
func (m *Matrix[T]) Orthogonal(p Position, max int) []Position {
	var out []Position
	for _, d := range []Direction{DirectionUp, DirectionRight, DirectionDown, DirectionLeft} {
		dr, dc := d.delta()
		out = append(out, m.ray(p, dr, dc, max)...)
	}
	return out
}

// Diagonal walks the four diagonal rays from p, each capped at max steps or
// the board edge, in the fixed order up-left, up-right, down-left, down-right.
func (m *Matrix[T]) Diagonal(p Position, max int) []Position {
	deltas := [][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	var out []Position
	for _, d := range deltas {
		out = append(out, m.ray(p, d[0], d[1], max)...)
	}
	return out
}

// ray steps from p by (dr, dc) up to max times, stopping at the board edge.
func (m *Matrix[T]) ray(p Position, dr, dc, max int) []Position {
	var out []Position
	q := p
	for range max {
		q = Position{Row: q.Row + dr, Col: q.Col + dc}
		if !m.Contains(q) {
			break
		}
		out = append(out, q)
	}
	return out
}

// Shift rotates an entire row (Left/Right) or column (Up/Down) by count
// cells, wrapping around. Count must be in [0, size]; 0 or size is a no-op.
// This models the physical "shift a row or column of cards" board mechanic.
func (m *Matrix[T]) Shift(dir Direction, index, count int) error {
	if !dir.IsValid() {
		return apperrors.New(apperrors.CodeGridInvalidDirection,
			fmt.Sprintf("invalid shift direction %d", int(dir)))
	}
	if index < 0 || index >= m.size {
		return apperrors.New(apperrors.CodeGridOutOfBounds,
			fmt.Sprintf("shift index %d outside %dx%d board", index, m.size, m.size))
	}
	if count < 0 || count > m.size {
		return apperrors.New(apperrors.CodeGridInvalidShift,
			fmt.Sprintf("shift count %d outside [0, %d]", count, m.size))
	}
	if count == 0 || count == m.size {
		return nil
	}

	line := make([]T, m.size)
	switch dir {
	case DirectionRight:
		for i := range m.size {
			line[(i+count)%m.size] = m.cells[index][i]
		}
		copy(m.cells[index], line)
	case DirectionLeft:
		for i := range m.size {
			line[i] = m.cells[index][(i+count)%m.size]
		}
		copy(m.cells[index], line)
	case DirectionDown:
		for i := range m.size {
			line[(i+count)%m.size] = m.cells[i][index]
		}
		for i := range m.size {
			m.cells[i][index] = line[i]
		}
	case DirectionUp:
		for i := range m.size {
			line[i] = m.cells[(i+count)%m.size][index]
		}
		for i := range m.size {
			m.cells[i][index] = line[i]
		}
	}
	return nil
}

// ForEach visits every cell in row-major order.
func (m *Matrix[T]) ForEach(fn func(Position, T)) {
	for r := range m.size {
		for c := range m.size {
			fn(Position{Row: r, Col: c}, m.cells[r][c])
		}
	}
}

// Filter returns the positions whose cells satisfy the predicate, in
// row-major order.
func (m *Matrix[T]) Filter(pred func(Position, T) bool) []Position {
	var out []Position
	m.ForEach(func(p Position, v T) {
		if pred(p, v) {
			out = append(out, p)
		}
	})
	return out
}

// Count returns the number of cells satisfying the predicate.
func (m *Matrix[T]) Count(pred func(Position, T) bool) int {
	return len(m.Filter(pred))
}

// FindFirst returns the first cell in row-major order satisfying the
// predicate, reporting whether one was found.
func (m *Matrix[T]) FindFirst(pred func(Position, T) bool) (Position, bool) {
	for r := range m.size {
		for c := range m.size {
			p := Position{Row: r, Col: c}
			if pred(p, m.cells[r][c]) {
				return p, true
			}
		}
	}
	return Position{}, false
}

// Clone deep-copies the matrix using the element clone function.
func (m *Matrix[T]) Clone(cloneElem func(T) T) *Matrix[T] {
	out := NewMatrix[T](m.size)
	for r := range m.size {
		for c := range m.size {
			out.cells[r][c] = cloneElem(m.cells[r][c])
		}
	}
	return out
}
