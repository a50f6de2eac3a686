// Package event defines the outbound event union of the Noir engine and the
// emitter that appends events to the journal while broadcasting them to live
// observers. Events represent facts that have occurred, not commands.
package event

import (
	"strings"
	"time"
)

// Type identifies the kind of a game event.
type Type string

// Session lifecycle events.
const (
	// TypeHello greets a newly subscribed observer.
	TypeHello Type = "game.hello"
	// TypeGameStarted records the initial arena, roster, and deck snapshot.
	TypeGameStarted Type = "game.started"
	// TypeTurnChanged records the turn passing to another player.
	TypeTurnChanged Type = "game.turn_changed"
	// TypeComplete records a win or draw.
	TypeComplete Type = "game.complete"
	// TypeGameAborted records a force-aborted session.
	TypeGameAborted Type = "game.aborted"
)

// Board events.
const (
	// TypeShifted records a row or column rotation.
	TypeShifted Type = "board.shifted"
	// TypeCollapsed records a collapse (reserved; the action is unimplemented).
	TypeCollapsed Type = "board.collapsed"
	// TypeSuspectsSwapped records two cells exchanging contents.
	TypeSuspectsSwapped Type = "board.suspects_swapped"
	// TypeMarkerMoved records a role marker moving to a new cell.
	TypeMarkerMoved Type = "board.marker_moved"
	// TypeThreatPlaced records a threat marker placement.
	TypeThreatPlaced Type = "board.threat_placed"
	// TypeBombPlaced records a bomb marker placement.
	TypeBombPlaced Type = "board.bomb_placed"
	// TypeProtectionPlaced records a protection marker placement.
	TypeProtectionPlaced Type = "board.protection_placed"
	// TypeProtectionRemoved records a protection marker removal.
	TypeProtectionRemoved Type = "board.protection_removed"
	// TypeDisarmed records a bomb or threat being disarmed.
	TypeDisarmed Type = "board.disarmed"
)

// Resolution events.
const (
	// TypeTryKill is the pre-resolution notification of a kill attempt,
	// observable even when the attempt is later protected.
	TypeTryKill Type = "resolution.try_kill"
	// TypeKilled records a cell closing as killed.
	TypeKilled Type = "resolution.killed"
	// TypeArrested records a mafioso's arrest and fresh identity.
	TypeArrested Type = "resolution.arrested"
	// TypeAccused records a successful accusation.
	TypeAccused Type = "resolution.accused"
	// TypeUnsuccessfulAccused records an accusation that named the wrong cell.
	TypeUnsuccessfulAccused Type = "resolution.unsuccessful_accused"
	// TypeProtectionActivated records a kill suspending on a protection marker.
	TypeProtectionActivated Type = "resolution.protection_activated"
	// TypeProtectDecided records the Suit's protection decision.
	TypeProtectDecided Type = "resolution.protect_decided"
	// TypeSelfDestructionActivated records the Bomber blowing their own cover.
	TypeSelfDestructionActivated Type = "resolution.self_destruction_activated"
)

// Investigation events.
const (
	// TypeDisguised records the Undercover slipping to a new cell.
	TypeDisguised Type = "investigation.disguised"
	// TypeAutopsyCanvased records the Detective examining a killed cell.
	TypeAutopsyCanvased Type = "investigation.autopsy_canvased"
	// TypeInnocentsForCanvasPicked records the Detective's picked pair.
	TypeInnocentsForCanvasPicked Type = "investigation.innocents_for_canvas_picked"
	// TypeAllCanvased records the canvased cells being publicly cleared.
	TypeAllCanvased Type = "investigation.all_canvased"
	// TypeProfiled records the Profiler drawing evidence.
	TypeProfiled Type = "investigation.profiled"
)

// ActorType identifies who or what triggered an event.
type ActorType string

const (
	// ActorTypeSystem indicates the event was triggered by the engine.
	ActorTypeSystem ActorType = "system"
	// ActorTypePlayer indicates the event was triggered by a player.
	ActorTypePlayer ActorType = "player"
)

// Event is an immutable record in a game's event journal.
type Event struct {
	// GameID is the game this event belongs to.
	GameID string
	// Seq is the event sequence number within the game (starts at 1).
	// Assigned by storage on append.
	Seq uint64
	// Timestamp is when the event occurred.
	Timestamp time.Time
	// Type identifies the kind of event.
	Type Type
	// ActorType identifies who triggered the event.
	ActorType ActorType
	// ActorID is the player ID when ActorType is player.
	ActorID string
	// PayloadJSON holds event-specific data as JSON.
	PayloadJSON []byte
}

// IsValid reports whether the event type is usable.
func (t Type) IsValid() bool {
	return strings.TrimSpace(string(t)) != ""
}

// Domain returns the domain prefix of the event type (e.g. "board").
func (t Type) Domain() string {
	for i, c := range t {
		if c == '.' {
			return string(t[:i])
		}
	}
	return string(t)
}
