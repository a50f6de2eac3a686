// Package prep implements the preparation lobby: players join, claim a
// unique role, and flag ready. The lobby starts exactly when the seated
// roles form one of the permitted rosters and everyone is ready.
package prep

import (
	"fmt"

	apperrors "github.com/louisbranch/noir/internal/errors"
	"github.com/louisbranch/noir/internal/noir/game"
	"github.com/louisbranch/noir/internal/noir/role"
)

// MaxPlayers caps the lobby at the largest permitted roster.
const MaxPlayers = 8

// Seat is one lobby participant's state.
type Seat struct {
	PlayerID string
	// Role is empty until picked.
	Role role.Role
	// Ready requires a picked role.
	Ready bool
}

// Lobby holds the pre-game state of one session. Like the engine it is
// single-threaded; callers own exclusivity per lobby.
type Lobby struct {
	gameID string
	// seats preserves join order.
	seats []Seat
}

// NewLobby creates an empty lobby for the game.
func NewLobby(gameID string) *Lobby {
	return &Lobby{gameID: gameID}
}

// GameID returns the game this lobby prepares.
func (l *Lobby) GameID() string {
	return l.gameID
}

// Seats returns the current seats in join order.
func (l *Lobby) Seats() []Seat {
	out := make([]Seat, len(l.seats))
	copy(out, l.seats)
	return out
}

func (l *Lobby) seatOf(playerID string) *Seat {
	for i := range l.seats {
		if l.seats[i].PlayerID == playerID {
			return &l.seats[i]
		}
	}
	return nil
}

// Join seats a player. Joining twice is a no-op; a full lobby rejects.
func (l *Lobby) Join(playerID string) error {
	if l.seatOf(playerID) != nil {
		return nil
	}
	if len(l.seats) >= MaxPlayers {
		return apperrors.New(apperrors.CodePrepFull,
			fmt.Sprintf("lobby seats %d players", MaxPlayers))
	}
	l.seats = append(l.seats, Seat{PlayerID: playerID})
	return nil
}

// Leave removes a player, freeing their role.
func (l *Lobby) Leave(playerID string) error {
	for i := range l.seats {
		if l.seats[i].PlayerID == playerID {
			l.seats = append(l.seats[:i], l.seats[i+1:]...)
			return nil
		}
	}
	return apperrors.New(apperrors.CodePrepNotJoined,
		fmt.Sprintf("player %s has not joined", playerID))
}

// PickRole claims a role for the player. Roles are exclusive; re-picking
// releases the previous claim and clears readiness.
func (l *Lobby) PickRole(playerID string, r role.Role) error {
	seat := l.seatOf(playerID)
	if seat == nil {
		return apperrors.New(apperrors.CodePrepNotJoined,
			fmt.Sprintf("player %s has not joined", playerID))
	}
	if !r.IsValid() {
		return apperrors.New(apperrors.CodeWireUnknownRole,
			fmt.Sprintf("unknown role %q", r))
	}
	for i := range l.seats {
		if l.seats[i].Role == r && l.seats[i].PlayerID != playerID {
			return apperrors.New(apperrors.CodePrepRoleTaken,
				fmt.Sprintf("role %s is taken by %s", r, l.seats[i].PlayerID))
		}
	}
	seat.Role = r
	seat.Ready = false
	return nil
}

// SetReady flags the player's readiness. Readying up requires a role.
func (l *Lobby) SetReady(playerID string, ready bool) error {
	seat := l.seatOf(playerID)
	if seat == nil {
		return apperrors.New(apperrors.CodePrepNotJoined,
			fmt.Sprintf("player %s has not joined", playerID))
	}
	if ready && seat.Role == "" {
		return apperrors.New(apperrors.CodePrepNoRole,
			fmt.Sprintf("player %s has no role", playerID))
	}
	seat.Ready = ready
	return nil
}

// CanStart reports whether the lobby forms a complete, ready roster.
func (l *Lobby) CanStart() bool {
	return l.rosterCheck() == nil
}

func (l *Lobby) rosterCheck() error {
	seated := make(map[role.Role]bool, len(l.seats))
	for _, s := range l.seats {
		if !s.Ready {
			return apperrors.New(apperrors.CodePrepRosterInvalid,
				fmt.Sprintf("player %s is not ready", s.PlayerID))
		}
		seated[s.Role] = true
	}
	for _, roster := range role.Rosters() {
		if len(roster) != len(l.seats) {
			continue
		}
		matched := true
		for _, r := range roster {
			if !seated[r] {
				matched = false
				break
			}
		}
		if matched {
			return nil
		}
	}
	return apperrors.New(apperrors.CodePrepRosterInvalid,
		fmt.Sprintf("%d seats do not form a permitted roster", len(l.seats)))
}

// Start turns the lobby into a Play setup snapshot. The seed drives the
// deterministic shuffle, deal, and placement.
func (l *Lobby) Start(seed int64) (game.Snapshot, error) {
	if err := l.rosterCheck(); err != nil {
		return game.Snapshot{}, err
	}
	seats := make([]game.Seat, len(l.seats))
	for i, s := range l.seats {
		seats[i] = game.Seat{PlayerID: s.PlayerID, Role: s.Role}
	}
	return game.Snapshot{GameID: l.gameID, Seed: seed, Seats: seats}, nil
}
