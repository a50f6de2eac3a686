package game

import (
	"github.com/louisbranch/noir/internal/noir/role"
)

// Player is one participant of a Play session. The identity is an opaque
// external reference compared by value; the role is immutable after setup.
// A player's board location is derived, never stored: it is whichever cell
// currently hosts the player as its occupant.
type Player struct {
	id   string
	role role.Role
	// phase indexes the role's phase list; len(phases) means the turn is
	// over and the engine rotates.
	phase int
}

// ID returns the player's opaque identity.
func (p *Player) ID() string {
	return p.id
}

// Role returns the player's immutable role.
func (p *Player) Role() role.Role {
	return p.role
}

// Phase returns the player's current phase.
func (p *Player) Phase() role.Phase {
	phases := p.role.Capabilities().Phases
	if p.phase >= len(phases) {
		return ""
	}
	return phases[p.phase]
}

// phaseIndexOf returns the index of the named phase in the player's phase
// list, or the list length when absent.
func (p *Player) phaseIndexOf(ph role.Phase) int {
	phases := p.role.Capabilities().Phases
	for i, candidate := range phases {
		if candidate == ph {
			return i
		}
	}
	return len(phases)
}

// turnDone reports whether the player has advanced past their last phase.
func (p *Player) turnDone() bool {
	return p.phase >= len(p.role.Capabilities().Phases)
}
