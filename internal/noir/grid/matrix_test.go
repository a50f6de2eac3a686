package grid

import (
	"testing"

	apperrors "github.com/louisbranch/noir/internal/errors"
)

func numbered(size int) *Matrix[int] {
	m := NewMatrix[int](size)
	n := 0
	for r := range size {
		for c := range size {
			m.cells[r][c] = n
			n++
		}
	}
	return m
}

func equalCells(a, b *Matrix[int]) bool {
	if a.Size() != b.Size() {
		return false
	}
	for r := range a.Size() {
		for c := range a.Size() {
			if a.cells[r][c] != b.cells[r][c] {
				return false
			}
		}
	}
	return true
}

func TestAtBounds(t *testing.T) {
	m := numbered(6)

	v, err := m.At(Position{Row: 1, Col: 2})
	if err != nil {
		t.Fatalf("at: %v", err)
	}
	if v != 8 {
		t.Fatalf("expected 8, got %d", v)
	}

	_, err = m.At(Position{Row: 6, Col: 0})
	if !apperrors.IsCode(err, apperrors.CodeGridOutOfBounds) {
		t.Fatalf("expected out-of-bounds error, got %v", err)
	}
	_, err = m.At(Position{Row: 0, Col: -1})
	if !apperrors.IsCode(err, apperrors.CodeGridOutOfBounds) {
		t.Fatalf("expected out-of-bounds error, got %v", err)
	}
}

func TestAdjacent(t *testing.T) {
	m := numbered(6)

	tcs := []struct {
		name string
		pos  Position
		want int
	}{
		{name: "corner", pos: Position{Row: 0, Col: 0}, want: 3},
		{name: "edge", pos: Position{Row: 0, Col: 3}, want: 5},
		{name: "interior", pos: Position{Row: 3, Col: 3}, want: 8},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			got := m.Adjacent(tc.pos)
			if len(got) != tc.want {
				t.Fatalf("expected %d neighbors, got %d", tc.want, len(got))
			}
			seen := make(map[Position]bool)
			for _, q := range got {
				if !m.Contains(q) {
					t.Fatalf("neighbor %v out of bounds", q)
				}
				if q == tc.pos {
					t.Fatal("neighbor equals origin")
				}
				if seen[q] {
					t.Fatalf("duplicate neighbor %v", q)
				}
				seen[q] = true
			}
		})
	}
}

func TestOrthogonalOrder(t *testing.T) {
	m := numbered(7)

	got := m.Orthogonal(Position{Row: 3, Col: 3}, 3)
	want := []Position{
		// up
		{2, 3}, {1, 3}, {0, 3},
		// right
		{3, 4}, {3, 5}, {3, 6},
		// down
		{4, 3}, {5, 3}, {6, 3},
		// left
		{3, 2}, {3, 1}, {3, 0},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d positions, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestOrthogonalEdgeCapped(t *testing.T) {
	m := numbered(6)

	got := m.Orthogonal(Position{Row: 0, Col: 0}, 3)
	want := []Position{
		// up: none
		// right
		{0, 1}, {0, 2}, {0, 3},
		// down
		{1, 0}, {2, 0}, {3, 0},
		// left: none
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d positions, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestDiagonalOrder(t *testing.T) {
	m := numbered(7)

	got := m.Diagonal(Position{Row: 3, Col: 3}, 2)
	want := []Position{
		// up-left
		{2, 2}, {1, 1},
		// up-right
		{2, 4}, {1, 5},
		// down-left
		{4, 2}, {5, 1},
		// down-right
		{4, 4}, {5, 5},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d positions, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestShiftRotates(t *testing.T) {
	m := numbered(6)

	if err := m.Shift(DirectionRight, 0, 2); err != nil {
		t.Fatalf("shift: %v", err)
	}
	// Row 0 was 0..5; rotated right by 2 it becomes 4 5 0 1 2 3.
	want := []int{4, 5, 0, 1, 2, 3}
	for c, w := range want {
		if m.cells[0][c] != w {
			t.Fatalf("col %d: expected %d, got %d", c, w, m.cells[0][c])
		}
	}
}

func TestShiftColumnRotates(t *testing.T) {
	m := numbered(6)

	if err := m.Shift(DirectionDown, 2, 1); err != nil {
		t.Fatalf("shift: %v", err)
	}
	// Column 2 held 2, 8, 14, 20, 26, 32; down by 1 brings 32 to the top.
	want := []int{32, 2, 8, 14, 20, 26}
	for r, w := range want {
		if m.cells[r][2] != w {
			t.Fatalf("row %d: expected %d, got %d", r, w, m.cells[r][2])
		}
	}
}

func TestShiftInverse(t *testing.T) {
	for _, dir := range []Direction{DirectionUp, DirectionRight, DirectionDown, DirectionLeft} {
		for count := 0; count <= 6; count++ {
			m := numbered(6)
			orig := m.Clone(func(v int) int { return v })

			if err := m.Shift(dir, 3, count); err != nil {
				t.Fatalf("%v count %d: shift: %v", dir, count, err)
			}
			if err := m.Shift(dir.Reverse(), 3, count); err != nil {
				t.Fatalf("%v count %d: reverse shift: %v", dir, count, err)
			}
			if !equalCells(m, orig) {
				t.Fatalf("%v count %d: shift then reverse did not restore grid", dir, count)
			}
		}
	}
}

func TestShiftNoop(t *testing.T) {
	m := numbered(6)
	orig := m.Clone(func(v int) int { return v })

	if err := m.Shift(DirectionLeft, 1, 0); err != nil {
		t.Fatalf("count 0: %v", err)
	}
	if err := m.Shift(DirectionLeft, 1, 6); err != nil {
		t.Fatalf("count size: %v", err)
	}
	if !equalCells(m, orig) {
		t.Fatal("no-op shift mutated grid")
	}
}

func TestShiftInvalidCount(t *testing.T) {
	m := numbered(6)

	if err := m.Shift(DirectionLeft, 1, 7); !apperrors.IsCode(err, apperrors.CodeGridInvalidShift) {
		t.Fatalf("expected invalid shift error, got %v", err)
	}
	if err := m.Shift(DirectionLeft, 1, -1); !apperrors.IsCode(err, apperrors.CodeGridInvalidShift) {
		t.Fatalf("expected invalid shift error, got %v", err)
	}
	if err := m.Shift(DirectionLeft, 6, 1); !apperrors.IsCode(err, apperrors.CodeGridOutOfBounds) {
		t.Fatalf("expected out-of-bounds index error, got %v", err)
	}
}

func TestSwap(t *testing.T) {
	m := numbered(6)
	a := Position{Row: 0, Col: 0}
	b := Position{Row: 5, Col: 5}

	if err := m.Swap(a, b); err != nil {
		t.Fatalf("swap: %v", err)
	}
	va, _ := m.At(a)
	vb, _ := m.At(b)
	if va != 35 || vb != 0 {
		t.Fatalf("expected swapped corners, got %d and %d", va, vb)
	}
}

func TestScansRowMajor(t *testing.T) {
	m := numbered(6)

	first, ok := m.FindFirst(func(_ Position, v int) bool { return v%7 == 0 && v > 0 })
	if !ok {
		t.Fatal("expected a match")
	}
	if (first != Position{Row: 1, Col: 1}) {
		t.Fatalf("expected first match at (1,1), got %v", first)
	}

	evens := m.Filter(func(_ Position, v int) bool { return v%2 == 0 })
	if len(evens) != 18 {
		t.Fatalf("expected 18 even cells, got %d", len(evens))
	}
	if (evens[0] != Position{Row: 0, Col: 0}) {
		t.Fatalf("expected row-major order, got %v first", evens[0])
	}

	if got := m.Count(func(_ Position, v int) bool { return v < 6 }); got != 6 {
		t.Fatalf("expected 6, got %d", got)
	}
}

func TestCloneIsDeep(t *testing.T) {
	m := numbered(6)
	clone := m.Clone(func(v int) int { return v })

	if err := m.Set(Position{Row: 0, Col: 0}, 99); err != nil {
		t.Fatalf("set: %v", err)
	}
	v, _ := clone.At(Position{Row: 0, Col: 0})
	if v != 0 {
		t.Fatalf("clone shares storage with original: got %d", v)
	}
}
