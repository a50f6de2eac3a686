// Package board models the arena cells: anonymous suspect cards holding a
// character identity, a mutable occupant, and transient markers.
package board

import (
	"fmt"

	apperrors "github.com/louisbranch/noir/internal/errors"
)

// Marker is a transient tag attachable to a cell.
type Marker string

const (
	// MarkerBomb is the Bomber's planted charge.
	MarkerBomb Marker = "bomb"
	// MarkerThreat is the Psycho's kill threat.
	MarkerThreat Marker = "threat"
	// MarkerProtection is the Suit's guard marker.
	MarkerProtection Marker = "protection"
)

// IsValid reports whether the marker is one of the three defined values.
func (m Marker) IsValid() bool {
	switch m {
	case MarkerBomb, MarkerThreat, MarkerProtection:
		return true
	}
	return false
}

// OccupantKind tags the occupant union of a cell.
type OccupantKind string

const (
	// OccupantSuspect is an anonymous faceless card.
	OccupantSuspect OccupantKind = "suspect"
	// OccupantInnocent is a publicly cleared card.
	OccupantInnocent OccupantKind = "innocent"
	// OccupantArrested is a closed card: a mafioso was arrested here.
	OccupantArrested OccupantKind = "arrested"
	// OccupantKilled is a closed card: someone died here.
	OccupantKilled OccupantKind = "killed"
	// OccupantPlayer means the cell secretly hosts a player identity.
	OccupantPlayer OccupantKind = "player"
)

// Occupant is the tagged union held by a cell: a player reference or one of
// the public card states.
type Occupant struct {
	Kind OccupantKind
	// PlayerID is set only when Kind is OccupantPlayer. Players are
	// referenced by ID, never aliased as object pointers.
	PlayerID string
}

// Faceless returns the anonymous suspect occupant.
func Faceless() Occupant {
	return Occupant{Kind: OccupantSuspect}
}

// PlayerOccupant returns an occupant hosting the given player.
func PlayerOccupant(playerID string) Occupant {
	return Occupant{Kind: OccupantPlayer, PlayerID: playerID}
}

// closed reports whether the occupant state is terminal for its cell.
func (o Occupant) closed() bool {
	return o.Kind == OccupantArrested || o.Kind == OccupantKilled
}

// Suspect is a single arena cell. The character identity is immutable; the
// occupant and markers mutate during play. Once the occupant is arrested or
// killed the cell is closed and its occupant can never change again.
type Suspect struct {
	character string
	occupant  Occupant
	markers   map[Marker]bool
}

// NewSuspect creates an open faceless cell for the character.
func NewSuspect(character string) *Suspect {
	return &Suspect{
		character: character,
		occupant:  Faceless(),
		markers:   make(map[Marker]bool),
	}
}

// Character returns the cell's immutable character identity.
func (s *Suspect) Character() string {
	return s.character
}

// Occupant returns the current occupant.
func (s *Suspect) Occupant() Occupant {
	return s.occupant
}

// Alive reports whether the cell is still open.
func (s *Suspect) Alive() bool {
	return !s.occupant.closed()
}

// HostsPlayer reports whether the cell hosts the given player.
func (s *Suspect) HostsPlayer(playerID string) bool {
	return s.occupant.Kind == OccupantPlayer && s.occupant.PlayerID == playerID
}

// SetOccupant mutates the occupant. Mutating a closed cell fails; closed
// states are terminal. A transition into a closed state clears Protection
// and Threat, leaving Bomb for the detonation resolver to consume.
func (s *Suspect) SetOccupant(o Occupant) error {
	if s.occupant.closed() {
		return apperrors.New(apperrors.CodeSuspectClosed,
			fmt.Sprintf("cell %q is %s", s.character, s.occupant.Kind))
	}
	s.occupant = o
	if o.closed() {
		delete(s.markers, MarkerProtection)
		delete(s.markers, MarkerThreat)
	}
	return nil
}

// HasMarker reports whether the marker is present.
func (s *Suspect) HasMarker(m Marker) bool {
	return s.markers[m]
}

// Markers returns the present markers in a fixed order.
func (s *Suspect) Markers() []Marker {
	var out []Marker
	for _, m := range []Marker{MarkerBomb, MarkerThreat, MarkerProtection} {
		if s.markers[m] {
			out = append(out, m)
		}
	}
	return out
}

// AddMarker attaches a marker. Threat and Protection require the cell to be
// alive; Bomb may be added regardless. Adding a marker twice fails.
func (s *Suspect) AddMarker(m Marker) error {
	if m != MarkerBomb && !s.Alive() {
		return apperrors.New(apperrors.CodeSuspectClosed,
			fmt.Sprintf("cannot mark closed cell %q with %s", s.character, m))
	}
	if s.markers[m] {
		return apperrors.New(apperrors.CodeSuspectMarkerPresent,
			fmt.Sprintf("cell %q already bears %s", s.character, m))
	}
	s.markers[m] = true
	return nil
}

// RemoveMarker detaches a marker, failing when it is absent.
func (s *Suspect) RemoveMarker(m Marker) error {
	if !s.markers[m] {
		return apperrors.New(apperrors.CodeSuspectMarkerAbsent,
			fmt.Sprintf("cell %q bears no %s", s.character, m))
	}
	delete(s.markers, m)
	return nil
}

// Clone deep-copies the cell.
func (s *Suspect) Clone() *Suspect {
	markers := make(map[Marker]bool, len(s.markers))
	for m, v := range s.markers {
		markers[m] = v
	}
	return &Suspect{
		character: s.character,
		occupant:  s.occupant,
		markers:   markers,
	}
}
