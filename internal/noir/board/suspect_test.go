package board

import (
	"testing"

	apperrors "github.com/louisbranch/noir/internal/errors"
	"github.com/louisbranch/noir/internal/noir/grid"
)

func TestMarkersOnAliveCell(t *testing.T) {
	s := NewSuspect("Ace Delgado")

	if err := s.AddMarker(MarkerThreat); err != nil {
		t.Fatalf("add threat: %v", err)
	}
	if err := s.AddMarker(MarkerThreat); !apperrors.IsCode(err, apperrors.CodeSuspectMarkerPresent) {
		t.Fatalf("expected marker-present error, got %v", err)
	}
	if !s.HasMarker(MarkerThreat) {
		t.Fatal("expected threat marker")
	}
	if err := s.RemoveMarker(MarkerThreat); err != nil {
		t.Fatalf("remove threat: %v", err)
	}
	if err := s.RemoveMarker(MarkerThreat); !apperrors.IsCode(err, apperrors.CodeSuspectMarkerAbsent) {
		t.Fatalf("expected marker-absent error, got %v", err)
	}
}

func TestClosingClearsThreatAndProtection(t *testing.T) {
	s := NewSuspect("Gilda Voss")
	for _, m := range []Marker{MarkerBomb, MarkerThreat, MarkerProtection} {
		if err := s.AddMarker(m); err != nil {
			t.Fatalf("add %s: %v", m, err)
		}
	}

	if err := s.SetOccupant(Occupant{Kind: OccupantKilled}); err != nil {
		t.Fatalf("kill: %v", err)
	}

	if s.Alive() {
		t.Fatal("killed cell reported alive")
	}
	if s.HasMarker(MarkerThreat) || s.HasMarker(MarkerProtection) {
		t.Fatal("closing must clear threat and protection")
	}
	if !s.HasMarker(MarkerBomb) {
		t.Fatal("bomb must survive closing for the detonation resolver")
	}
}

func TestClosedCellIsTerminal(t *testing.T) {
	s := NewSuspect("Vic Muldoon")
	if err := s.SetOccupant(Occupant{Kind: OccupantArrested}); err != nil {
		t.Fatalf("arrest: %v", err)
	}

	err := s.SetOccupant(Faceless())
	if !apperrors.IsCode(err, apperrors.CodeSuspectClosed) {
		t.Fatalf("expected closed-cell error, got %v", err)
	}

	// Threat and protection cannot be placed on a closed cell; a bomb can.
	if err := s.AddMarker(MarkerThreat); !apperrors.IsCode(err, apperrors.CodeSuspectClosed) {
		t.Fatalf("expected closed-cell error, got %v", err)
	}
	if err := s.AddMarker(MarkerBomb); err != nil {
		t.Fatalf("bomb on closed cell: %v", err)
	}
}

func TestBoardDealAndLookups(t *testing.T) {
	chars := make([]string, 36)
	for i := range chars {
		chars[i] = string(rune('A' + i%26)) + string(rune('a'+i/26))
	}
	b, err := New(6, chars)
	if err != nil {
		t.Fatalf("new board: %v", err)
	}

	pos, ok := b.FindCharacter(chars[7])
	if !ok {
		t.Fatal("expected character on board")
	}
	if (pos != grid.Position{Row: 1, Col: 1}) {
		t.Fatalf("expected row-major deal, got %v", pos)
	}

	s, err := b.At(pos)
	if err != nil {
		t.Fatalf("at: %v", err)
	}
	if err := s.SetOccupant(PlayerOccupant("p1")); err != nil {
		t.Fatalf("place player: %v", err)
	}

	got, ok := b.FindPlayer("p1")
	if !ok || got != pos {
		t.Fatalf("expected player at %v, got %v (found=%v)", pos, got, ok)
	}
}

func TestBoardSizeMismatch(t *testing.T) {
	_, err := New(6, []string{"only", "four", "cards", "here"})
	if !apperrors.IsCode(err, apperrors.CodeCorruptState) {
		t.Fatalf("expected corrupt-state error, got %v", err)
	}
}

func TestStripMarker(t *testing.T) {
	chars := make([]string, 36)
	for i := range chars {
		chars[i] = string(rune('A'+i%26)) + string(rune('a'+i/26))
	}
	b, err := New(6, chars)
	if err != nil {
		t.Fatalf("new board: %v", err)
	}

	marked := []grid.Position{{Row: 0, Col: 1}, {Row: 3, Col: 2}, {Row: 5, Col: 5}}
	for _, p := range marked {
		s, _ := b.At(p)
		if err := s.AddMarker(MarkerThreat); err != nil {
			t.Fatalf("add threat: %v", err)
		}
	}

	cleared := b.StripMarker(MarkerThreat)
	if len(cleared) != len(marked) {
		t.Fatalf("expected %d cleared, got %d", len(marked), len(cleared))
	}
	for i, p := range marked {
		if cleared[i] != p {
			t.Fatalf("cleared %d: expected %v, got %v", i, p, cleared[i])
		}
	}
	if got := b.StripMarker(MarkerThreat); len(got) != 0 {
		t.Fatalf("expected no threats left, got %d", len(got))
	}
}

func TestBoardCloneIsDeep(t *testing.T) {
	chars := make([]string, 36)
	for i := range chars {
		chars[i] = string(rune('A'+i%26)) + string(rune('a'+i/26))
	}
	b, err := New(6, chars)
	if err != nil {
		t.Fatalf("new board: %v", err)
	}

	clone := b.Clone()
	s, _ := b.At(grid.Position{Row: 0, Col: 0})
	if err := s.AddMarker(MarkerBomb); err != nil {
		t.Fatalf("add bomb: %v", err)
	}

	cs, _ := clone.At(grid.Position{Row: 0, Col: 0})
	if cs.HasMarker(MarkerBomb) {
		t.Fatal("clone shares cell storage with original")
	}
}
