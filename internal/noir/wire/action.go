// Package wire defines the serializable envelopes exchanged with remote
// actors: the inbound action union and the outbound event union. Envelopes
// carry only primitives, points, and names; object references never cross
// the wire.
package wire

// ActionType tags the inbound action union.
type ActionType string

const (
	ActionShift          ActionType = "shift"
	ActionCollapse       ActionType = "collapse"
	ActionDisguise       ActionType = "disguise"
	ActionDisarm         ActionType = "disarm"
	ActionAccuse         ActionType = "accuse"
	ActionKnifeKill      ActionType = "knifeKill"
	ActionSwapSuspects   ActionType = "swapSuspects"
	ActionPlaceThreat    ActionType = "placeThreat"
	ActionPlaceBomb      ActionType = "placeBomb"
	ActionDetonateBomb   ActionType = "detonateBomb"
	ActionSelfDestruct   ActionType = "selfDestruct"
	ActionStopDetonation ActionType = "stopDetonation"
	ActionSnipeKill      ActionType = "snipeKill"
	ActionSetup          ActionType = "setup"
	ActionAutopsy        ActionType = "autopsy"
	ActionFarAccuse      ActionType = "farAccuse"
	ActionPickInnocents  ActionType = "pickInnocentsForCanvas"
	ActionCanvas         ActionType = "canvas"
	ActionPlaceProtect   ActionType = "placeProtection"
	ActionRemoveProtect  ActionType = "removeProtection"
	ActionDecideProtect  ActionType = "decideProtect"
	ActionProfile        ActionType = "profile"
)

// actionTypes is the closed set of accepted action tags.
var actionTypes = map[ActionType]bool{
	ActionShift:          true,
	ActionCollapse:       true,
	ActionDisguise:       true,
	ActionDisarm:         true,
	ActionAccuse:         true,
	ActionKnifeKill:      true,
	ActionSwapSuspects:   true,
	ActionPlaceThreat:    true,
	ActionPlaceBomb:      true,
	ActionDetonateBomb:   true,
	ActionSelfDestruct:   true,
	ActionStopDetonation: true,
	ActionSnipeKill:      true,
	ActionSetup:          true,
	ActionAutopsy:        true,
	ActionFarAccuse:      true,
	ActionPickInnocents:  true,
	ActionCanvas:         true,
	ActionPlaceProtect:   true,
	ActionRemoveProtect:  true,
	ActionDecideProtect:  true,
	ActionProfile:        true,
}

// IsValid reports whether the tag is a known action type.
func (t ActionType) IsValid() bool {
	return actionTypes[t]
}

// Point is the wire form of a board position: x is the column, y the row.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Action is the inbound action envelope. Only the fields relevant to the
// tagged type are set; the rest stay at their zero values and are omitted
// from the serialized form.
type Action struct {
	Type ActionType `json:"type"`

	// Target is the primary cell the action operates on.
	Target *Point `json:"target,omitempty"`
	// Second is the second cell for pair actions (swap, canvas pick).
	Second *Point `json:"second,omitempty"`

	// Shift fields. The cell count is derived from Fast, never sent.
	Direction string `json:"direction,omitempty"`
	Index     int    `json:"index,omitempty"`
	Fast      bool   `json:"fast,omitempty"`

	// Marker names the marker for disarm.
	Marker string `json:"marker,omitempty"`
	// Role names the accused mafioso for accuse/farAccuse.
	Role string `json:"role,omitempty"`
	// Protect carries the Suit's protection decision.
	Protect bool `json:"protect,omitempty"`
}
