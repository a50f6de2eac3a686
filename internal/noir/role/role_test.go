package role

import (
	"testing"

	apperrors "github.com/louisbranch/noir/internal/errors"
	"github.com/louisbranch/noir/internal/noir/board"
)

func TestTeamsPartitionRoles(t *testing.T) {
	mafia, fbi := 0, 0
	for _, r := range All() {
		switch r.Team() {
		case TeamMafia:
			mafia++
		case TeamFBI:
			fbi++
		default:
			t.Fatalf("role %s has no team", r)
		}
	}
	if mafia != 4 || fbi != 4 {
		t.Fatalf("expected 4/4 team split, got %d/%d", mafia, fbi)
	}
}

func TestRotationAlternatesTeams(t *testing.T) {
	all := All()
	if all[0] != Killer {
		t.Fatalf("rotation must start with the killer, got %s", all[0])
	}
	for i := 1; i < len(all); i++ {
		if all[i].Team() == all[i-1].Team() {
			t.Fatalf("rotation positions %d and %d share team %s", i-1, i, all[i].Team())
		}
	}
}

func TestOwnMarkers(t *testing.T) {
	tcs := []struct {
		role Role
		want board.Marker
	}{
		{role: Psycho, want: board.MarkerThreat},
		{role: Bomber, want: board.MarkerBomb},
		{role: Suit, want: board.MarkerProtection},
		{role: Killer, want: ""},
		{role: Detective, want: ""},
	}
	for _, tc := range tcs {
		if got := tc.role.Capabilities().OwnMarker; got != tc.want {
			t.Fatalf("%s: expected own marker %q, got %q", tc.role, tc.want, got)
		}
	}
}

func TestParseRoundTrip(t *testing.T) {
	for _, r := range All() {
		parsed, err := Parse(string(r))
		if err != nil {
			t.Fatalf("parse %s: %v", r, err)
		}
		if parsed != r {
			t.Fatalf("round trip changed %s to %s", r, parsed)
		}
	}

	_, err := Parse("janitor")
	if !apperrors.IsCode(err, apperrors.CodeWireUnknownRole) {
		t.Fatalf("expected unknown-role error, got %v", err)
	}
}

func TestRostersAreRotationPrefixes(t *testing.T) {
	for _, roster := range Rosters() {
		if len(roster) != 6 && len(roster) != 8 {
			t.Fatalf("unexpected roster size %d", len(roster))
		}
		for i := 1; i < len(roster); i++ {
			if roster[i-1].RotationIndex() >= roster[i].RotationIndex() {
				t.Fatalf("roster not in rotation order at %d", i)
			}
		}
	}
}

func TestPhaseLists(t *testing.T) {
	if got := Psycho.Capabilities().Phases; len(got) != 3 || got[0] != PhaseKill || got[2] != PhasePlace {
		t.Fatalf("unexpected psycho phases %v", got)
	}
	if got := Suit.Capabilities().Phases; len(got) != 3 || got[0] != PhaseMarker || got[2] != PhaseProtection {
		t.Fatalf("unexpected suit phases %v", got)
	}
	if got := Killer.Capabilities().Phases; len(got) != 1 || got[0] != PhaseAction {
		t.Fatalf("unexpected killer phases %v", got)
	}
}
