package board

import (
	"fmt"

	apperrors "github.com/louisbranch/noir/internal/errors"
	"github.com/louisbranch/noir/internal/noir/grid"
)

// Board is the arena: a square matrix of suspect cells.
type Board struct {
	*grid.Matrix[*Suspect]
}

// New deals the given characters row-major onto a size×size board.
func New(size int, characters []string) (*Board, error) {
	if len(characters) != size*size {
		return nil, apperrors.New(apperrors.CodeCorruptState,
			fmt.Sprintf("%d characters cannot fill a %dx%d board", len(characters), size, size))
	}
	m := grid.NewMatrix[*Suspect](size)
	i := 0
	for r := range size {
		for c := range size {
			if err := m.Set(grid.Position{Row: r, Col: c}, NewSuspect(characters[i])); err != nil {
				return nil, err
			}
			i++
		}
	}
	return &Board{Matrix: m}, nil
}

// FindCharacter returns the position of the cell holding the character.
// Characters are unique within a game, so at most one cell matches.
func (b *Board) FindCharacter(name string) (grid.Position, bool) {
	return b.FindFirst(func(_ grid.Position, s *Suspect) bool {
		return s.Character() == name
	})
}

// FindPlayer returns the position of the cell hosting the player. Exactly
// one cell references a live player at any time; a missing player is an
// invariant violation surfaced by the caller.
func (b *Board) FindPlayer(playerID string) (grid.Position, bool) {
	return b.FindFirst(func(_ grid.Position, s *Suspect) bool {
		return s.HostsPlayer(playerID)
	})
}

// StripMarker removes every instance of the marker from the board and
// returns the positions cleared, in row-major order.
func (b *Board) StripMarker(m Marker) []grid.Position {
	cleared := b.Filter(func(_ grid.Position, s *Suspect) bool {
		return s.HasMarker(m)
	})
	for _, p := range cleared {
		s, _ := b.At(p)
		_ = s.RemoveMarker(m)
	}
	return cleared
}

// Clone deep-copies the board.
func (b *Board) Clone() *Board {
	return &Board{Matrix: b.Matrix.Clone(func(s *Suspect) *Suspect {
		return s.Clone()
	})}
}
