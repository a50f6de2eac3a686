// Package role defines the eight Noir roles as capability records: team
// affiliation, turn phase list, exclusive marker, and fast-shift
// eligibility. Roles are a closed set; behavior is table-driven rather than
// spread across a type hierarchy.
package role

import (
	apperrors "github.com/louisbranch/noir/internal/errors"
	"github.com/louisbranch/noir/internal/noir/board"
)

// Role identifies one of the eight playable roles.
type Role string

// Mafia roles.
const (
	Killer Role = "killer"
	Psycho Role = "psycho"
	Bomber Role = "bomber"
	Sniper Role = "sniper"
)

// FBI roles.
const (
	Undercover Role = "undercover"
	Detective  Role = "detective"
	Suit       Role = "suit"
	Profiler   Role = "profiler"
)

// Team is one of the two affiliations.
type Team string

const (
	// TeamMafia are the infiltrators.
	TeamMafia Team = "mafia"
	// TeamFBI are the investigators.
	TeamFBI Team = "fbi"
)

// Phase is a step in a role's turn.
type Phase string

const (
	// PhaseKill is the Psycho's threat-resolution step.
	PhaseKill Phase = "kill"
	// PhaseAction is the common mid-turn step.
	PhaseAction Phase = "action"
	// PhasePlace is the Psycho's threat-placement step.
	PhasePlace Phase = "place"
	// PhaseMarker is the Suit's marker-pickup step.
	PhaseMarker Phase = "marker"
	// PhaseProtection is the Suit's marker-placement step.
	PhaseProtection Phase = "protection"
)

// Capability describes everything the engine needs to know about a role.
type Capability struct {
	Team Team
	// Phases is the ordered phase list; advancing past the last phase ends
	// the turn.
	Phases []Phase
	// OwnMarker is the marker type exclusive to the role, empty when the
	// role has none. Stripped from the whole board when the role's player
	// is killed or arrested.
	OwnMarker board.Marker
	// FastShift marks roles allowed to shift by two cells.
	FastShift bool
}

var capabilities = map[Role]Capability{
	Killer: {
		Team:      TeamMafia,
		Phases:    []Phase{PhaseAction},
		FastShift: true,
	},
	Psycho: {
		Team:      TeamMafia,
		Phases:    []Phase{PhaseKill, PhaseAction, PhasePlace},
		OwnMarker: board.MarkerThreat,
	},
	Bomber: {
		Team:      TeamMafia,
		Phases:    []Phase{PhaseAction},
		OwnMarker: board.MarkerBomb,
	},
	Sniper: {
		Team:   TeamMafia,
		Phases: []Phase{PhaseAction},
	},
	Undercover: {
		Team:      TeamFBI,
		Phases:    []Phase{PhaseAction},
		FastShift: true,
	},
	Detective: {
		Team:   TeamFBI,
		Phases: []Phase{PhaseAction},
	},
	Suit: {
		Team:      TeamFBI,
		Phases:    []Phase{PhaseMarker, PhaseAction, PhaseProtection},
		OwnMarker: board.MarkerProtection,
	},
	Profiler: {
		Team:   TeamFBI,
		Phases: []Phase{PhaseAction},
	},
}

// order is the fixed turn rotation: alternating team membership starting
// with the Killer. Rosters take a prefix-compatible subset of this order.
var order = []Role{Killer, Undercover, Psycho, Detective, Bomber, Suit, Sniper, Profiler}

// All returns every role in rotation order.
func All() []Role {
	out := make([]Role, len(order))
	copy(out, order)
	return out
}

// Capabilities returns the capability record for the role.
func (r Role) Capabilities() Capability {
	return capabilities[r]
}

// Team returns the role's team affiliation.
func (r Role) Team() Team {
	return capabilities[r].Team
}

// IsValid reports whether the role is one of the eight defined roles.
func (r Role) IsValid() bool {
	_, ok := capabilities[r]
	return ok
}

// Parse resolves a stable role name to a Role. The mapping round-trips with
// the string value of the role, which is the wire representation.
func Parse(name string) (Role, error) {
	r := Role(name)
	if !r.IsValid() {
		return "", apperrors.New(apperrors.CodeWireUnknownRole, "unknown role "+name)
	}
	return r, nil
}

// RotationIndex returns the role's position in the fixed turn order.
func (r Role) RotationIndex() int {
	for i, o := range order {
		if o == r {
			return i
		}
	}
	return len(order)
}

// Rosters returns the two permitted role-set configurations: the 6-player
// roster and the full 8-player roster, each in rotation order.
func Rosters() [][]Role {
	return [][]Role{
		{Killer, Undercover, Psycho, Detective, Bomber, Suit},
		{Killer, Undercover, Psycho, Detective, Bomber, Suit, Sniper, Profiler},
	}
}
