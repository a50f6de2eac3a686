package prep

import (
	"strconv"
	"testing"

	apperrors "github.com/louisbranch/noir/internal/errors"
	"github.com/louisbranch/noir/internal/noir/game"
	"github.com/louisbranch/noir/internal/noir/role"
)

func wantCode(t *testing.T, err error, code apperrors.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error code %s, got nil", code)
	}
	if !apperrors.IsCode(err, code) {
		t.Fatalf("error code = %v, want %s", err, code)
	}
}

// fillLobby seats and readies the n-player roster.
func fillLobby(t *testing.T, l *Lobby, n int) {
	t.Helper()
	var roster []role.Role
	for _, r := range role.Rosters() {
		if len(r) == n {
			roster = r
		}
	}
	for i, r := range roster {
		id := "p" + strconv.Itoa(i+1)
		if err := l.Join(id); err != nil {
			t.Fatalf("join %s: %v", id, err)
		}
		if err := l.PickRole(id, r); err != nil {
			t.Fatalf("pick %s: %v", r, err)
		}
		if err := l.SetReady(id, true); err != nil {
			t.Fatalf("ready %s: %v", id, err)
		}
	}
}

func TestJoinAndLeave(t *testing.T) {
	l := NewLobby("g1")

	if err := l.Join("ava"); err != nil {
		t.Fatalf("join: %v", err)
	}
	if err := l.Join("ava"); err != nil {
		t.Fatalf("rejoin should be a no-op: %v", err)
	}
	if got := len(l.Seats()); got != 1 {
		t.Fatalf("seats = %d, want 1", got)
	}

	if err := l.Leave("ava"); err != nil {
		t.Fatalf("leave: %v", err)
	}
	wantCode(t, l.Leave("ava"), apperrors.CodePrepNotJoined)
}

func TestLobbyFull(t *testing.T) {
	l := NewLobby("g1")
	for i := range MaxPlayers {
		if err := l.Join("p" + strconv.Itoa(i)); err != nil {
			t.Fatalf("join %d: %v", i, err)
		}
	}
	wantCode(t, l.Join("late"), apperrors.CodePrepFull)
}

func TestPickRole(t *testing.T) {
	l := NewLobby("g1")
	if err := l.Join("ava"); err != nil {
		t.Fatalf("join: %v", err)
	}
	if err := l.Join("ben"); err != nil {
		t.Fatalf("join: %v", err)
	}

	if err := l.PickRole("ava", role.Killer); err != nil {
		t.Fatalf("pick: %v", err)
	}
	wantCode(t, l.PickRole("ben", role.Killer), apperrors.CodePrepRoleTaken)
	wantCode(t, l.PickRole("ghost", role.Suit), apperrors.CodePrepNotJoined)
	wantCode(t, l.PickRole("ben", "bartender"), apperrors.CodeWireUnknownRole)

	// Re-picking releases the old claim and clears readiness.
	if err := l.SetReady("ava", true); err != nil {
		t.Fatalf("ready: %v", err)
	}
	if err := l.PickRole("ava", role.Psycho); err != nil {
		t.Fatalf("re-pick: %v", err)
	}
	if l.Seats()[0].Ready {
		t.Fatal("re-pick should clear readiness")
	}
	if err := l.PickRole("ben", role.Killer); err != nil {
		t.Fatalf("freed role should be claimable: %v", err)
	}
}

func TestSetReadyRequiresRole(t *testing.T) {
	l := NewLobby("g1")
	if err := l.Join("ava"); err != nil {
		t.Fatalf("join: %v", err)
	}
	wantCode(t, l.SetReady("ava", true), apperrors.CodePrepNoRole)
	wantCode(t, l.SetReady("ghost", true), apperrors.CodePrepNotJoined)

	if err := l.SetReady("ava", false); err != nil {
		t.Fatalf("unready without role: %v", err)
	}
}

func TestStart(t *testing.T) {
	t.Run("six player roster", func(t *testing.T) {
		l := NewLobby("g1")
		fillLobby(t, l, 6)
		if !l.CanStart() {
			t.Fatal("complete roster should be startable")
		}
		snapshot, err := l.Start(42)
		if err != nil {
			t.Fatalf("start: %v", err)
		}
		if snapshot.GameID != "g1" || snapshot.Seed != 42 || len(snapshot.Seats) != 6 {
			t.Fatalf("snapshot = %+v", snapshot)
		}
		if _, _, err := game.New(snapshot); err != nil {
			t.Fatalf("snapshot should set up a game: %v", err)
		}
	})

	t.Run("eight player roster", func(t *testing.T) {
		l := NewLobby("g1")
		fillLobby(t, l, 8)
		if _, err := l.Start(7); err != nil {
			t.Fatalf("start: %v", err)
		}
	})

	t.Run("incomplete roster", func(t *testing.T) {
		l := NewLobby("g1")
		fillLobby(t, l, 6)
		if err := l.Leave("p1"); err != nil {
			t.Fatalf("leave: %v", err)
		}
		_, err := l.Start(7)
		wantCode(t, err, apperrors.CodePrepRosterInvalid)
	})

	t.Run("unready player", func(t *testing.T) {
		l := NewLobby("g1")
		fillLobby(t, l, 6)
		if err := l.SetReady("p3", false); err != nil {
			t.Fatalf("unready: %v", err)
		}
		if l.CanStart() {
			t.Fatal("unready roster should not start")
		}
		_, err := l.Start(7)
		wantCode(t, err, apperrors.CodePrepRosterInvalid)
	})

	t.Run("wrong role mix", func(t *testing.T) {
		l := NewLobby("g1")
		fillLobby(t, l, 6)
		if err := l.PickRole("p6", role.Sniper); err != nil {
			t.Fatalf("re-pick: %v", err)
		}
		if err := l.SetReady("p6", true); err != nil {
			t.Fatalf("ready: %v", err)
		}
		_, err := l.Start(7)
		wantCode(t, err, apperrors.CodePrepRosterInvalid)
	})
}
