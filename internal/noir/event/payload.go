package event

import "github.com/louisbranch/noir/internal/noir/wire"

// HelloPayload captures the payload for game.hello events.
type HelloPayload struct {
	GameID string `json:"game_id"`
}

// RosterSeat describes one player of the initial roster.
type RosterSeat struct {
	PlayerID string `json:"player_id"`
	Role     string `json:"role"`
}

// GameStartedPayload captures the payload for game.started events. It is the
// full initial snapshot: given the same seed and roster an external store can
// replay the game deterministically from the accepted-action journal.
type GameStartedPayload struct {
	Seed     int64        `json:"seed"`
	Size     int          `json:"size"`
	Roster   []RosterSeat `json:"roster"`
	Arena    [][]string   `json:"arena"`
	Deck     []string     `json:"deck"`
	WinMafia int          `json:"win_mafia"`
	WinFBI   int          `json:"win_fbi"`
}

// TurnChangedPayload captures the payload for game.turn_changed events.
type TurnChangedPayload struct {
	PlayerID string `json:"player_id"`
	Role     string `json:"role"`
}

// CompletePayload captures the payload for game.complete events.
type CompletePayload struct {
	// Winner is "mafia", "fbi", or "draw".
	Winner string `json:"winner"`
	Scores [2]int `json:"scores"`
}

// GameAbortedPayload captures the payload for game.aborted events.
type GameAbortedPayload struct {
	Reason string `json:"reason,omitempty"`
}

// ShiftedPayload captures the payload for board.shifted events.
type ShiftedPayload struct {
	Direction string `json:"direction"`
	Index     int    `json:"index"`
	Count     int    `json:"count"`
}

// SuspectsSwappedPayload captures the payload for board.suspects_swapped events.
type SuspectsSwappedPayload struct {
	First  wire.Point `json:"first"`
	Second wire.Point `json:"second"`
}

// MarkerMovedPayload captures the payload for board.marker_moved events.
type MarkerMovedPayload struct {
	Position wire.Point `json:"position"`
}

// MarkerPlacedPayload captures the payload for threat/bomb/protection
// placement events.
type MarkerPlacedPayload struct {
	Position wire.Point `json:"position"`
}

// ProtectionRemovedPayload captures the payload for board.protection_removed events.
type ProtectionRemovedPayload struct {
	Position wire.Point `json:"position"`
}

// DisarmedPayload captures the payload for board.disarmed events.
type DisarmedPayload struct {
	Position wire.Point `json:"position"`
	Marker   string     `json:"marker"`
}

// TryKillPayload captures the payload for resolution.try_kill events.
type TryKillPayload struct {
	Target wire.Point `json:"target"`
}

// KilledPayload captures the payload for resolution.killed events.
type KilledPayload struct {
	Position wire.Point `json:"position"`
	// NewIdentity is the position of the victim's fresh identity when the
	// victim was a player; nil for faceless kills.
	NewIdentity *wire.Point `json:"new_identity,omitempty"`
	Scores      [2]int      `json:"scores"`
}

// ArrestedPayload captures the payload for resolution.arrested events.
type ArrestedPayload struct {
	Position wire.Point `json:"position"`
	Role     string     `json:"role"`
	// NewIdentity is the position of the mafioso's fresh identity.
	NewIdentity wire.Point `json:"new_identity"`
	Scores      [2]int     `json:"scores"`
}

// AccusedPayload captures the payload for resolution.accused events.
type AccusedPayload struct {
	Target wire.Point `json:"target"`
	Role   string     `json:"role"`
}

// UnsuccessfulAccusedPayload captures the payload for
// resolution.unsuccessful_accused events.
type UnsuccessfulAccusedPayload struct {
	Target wire.Point `json:"target"`
	Role   string     `json:"role"`
}

// ProtectionActivatedPayload captures the payload for
// resolution.protection_activated events.
type ProtectionActivatedPayload struct {
	Target wire.Point `json:"target"`
}

// ProtectDecidedPayload captures the payload for resolution.protect_decided events.
type ProtectDecidedPayload struct {
	Protected bool `json:"protected"`
}

// SelfDestructionActivatedPayload captures the payload for
// resolution.self_destruction_activated events.
type SelfDestructionActivatedPayload struct {
	Position wire.Point `json:"position"`
}

// DisguisedPayload captures the payload for investigation.disguised events.
// The new location stays secret; observers only learn the vacated cell.
type DisguisedPayload struct {
	Vacated wire.Point `json:"vacated"`
}

// AutopsyCanvasedPayload captures the payload for
// investigation.autopsy_canvased events.
type AutopsyCanvasedPayload struct {
	Position  wire.Point `json:"position"`
	Character string     `json:"character"`
}

// InnocentsForCanvasPickedPayload captures the payload for
// investigation.innocents_for_canvas_picked events.
type InnocentsForCanvasPickedPayload struct {
	First  wire.Point `json:"first"`
	Second wire.Point `json:"second"`
}

// AllCanvasedPayload captures the payload for investigation.all_canvased
// events. Cleared lists the picked cells that became innocent.
type AllCanvasedPayload struct {
	Cleared []wire.Point `json:"cleared"`
}

// ProfiledPayload captures the payload for investigation.profiled events.
// Filtering the drawn character from non-profiler observers is the
// transport's concern.
type ProfiledPayload struct {
	Character string      `json:"character"`
	Cleared   *wire.Point `json:"cleared,omitempty"`
}
