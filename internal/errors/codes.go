// Package errors provides structured error handling for the Noir engine.
package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Grid errors
	CodeGridOutOfBounds      Code = "GRID_OUT_OF_BOUNDS"
	CodeGridInvalidShift     Code = "GRID_INVALID_SHIFT_COUNT"
	CodeGridInvalidDirection Code = "GRID_INVALID_DIRECTION"

	// Suspect errors
	CodeSuspectClosed        Code = "SUSPECT_CLOSED"
	CodeSuspectMarkerAbsent  Code = "SUSPECT_MARKER_ABSENT"
	CodeSuspectMarkerPresent Code = "SUSPECT_MARKER_PRESENT"

	// Turn/phase errors
	CodeGameCompleted   Code = "GAME_COMPLETED"
	CodeNotYourTurn     Code = "NOT_YOUR_TURN"
	CodeWrongPhase      Code = "WRONG_PHASE"
	CodeReactionPending Code = "REACTION_PENDING"

	// Action errors
	CodeActionNotAllowed      Code = "ACTION_NOT_ALLOWED"
	CodeActionNotImplemented  Code = "ACTION_NOT_IMPLEMENTED"
	CodeTargetNotReachable    Code = "TARGET_NOT_REACHABLE"
	CodeTargetClosed          Code = "TARGET_CLOSED"
	CodeTargetInnocent        Code = "TARGET_INNOCENT"
	CodeShiftUndoForbidden    Code = "SHIFT_UNDO_FORBIDDEN"
	CodeFastShiftNotPermitted Code = "FAST_SHIFT_NOT_PERMITTED"
	CodeScopeNotSet           Code = "SCOPE_NOT_SET"
	CodeCanvasPairNotPicked   Code = "CANVAS_PAIR_NOT_PICKED"
	CodeNoChainTargets        Code = "NO_CHAIN_TARGETS"
	CodeProtectOutOfReach     Code = "PROTECT_OUT_OF_REACH"

	// Invariant violations (engine bugs, never bad input)
	CodeDeckExhausted   Code = "DECK_EXHAUSTED"
	CodePlayerNotPlaced Code = "PLAYER_NOT_PLACED"
	CodeCorruptState    Code = "CORRUPT_STATE"

	// Preparation errors
	CodePrepFull          Code = "PREPARATION_FULL"
	CodePrepRoleTaken     Code = "PREPARATION_ROLE_TAKEN"
	CodePrepNoRole        Code = "PREPARATION_NO_ROLE"
	CodePrepNotJoined     Code = "PREPARATION_NOT_JOINED"
	CodePrepRosterInvalid Code = "PREPARATION_ROSTER_INVALID"

	// Wire errors
	CodeWireUnknownAction    Code = "WIRE_UNKNOWN_ACTION"
	CodeWireUnknownRole      Code = "WIRE_UNKNOWN_ROLE"
	CodeWireUnknownMarker    Code = "WIRE_UNKNOWN_MARKER"
	CodeWireUnknownDirection Code = "WIRE_UNKNOWN_DIRECTION"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"
)

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	// InvalidArgument - malformed input
	case CodeGridInvalidShift,
		CodeGridInvalidDirection,
		CodeWireUnknownAction,
		CodeWireUnknownRole,
		CodeWireUnknownMarker,
		CodeWireUnknownDirection:
		return codes.InvalidArgument

	// FailedPrecondition - state doesn't allow the operation
	case CodeSuspectClosed,
		CodeSuspectMarkerAbsent,
		CodeSuspectMarkerPresent,
		CodeGameCompleted,
		CodeNotYourTurn,
		CodeWrongPhase,
		CodeReactionPending,
		CodeActionNotAllowed,
		CodeActionNotImplemented,
		CodeTargetNotReachable,
		CodeTargetClosed,
		CodeTargetInnocent,
		CodeShiftUndoForbidden,
		CodeFastShiftNotPermitted,
		CodeScopeNotSet,
		CodeCanvasPairNotPicked,
		CodeNoChainTargets,
		CodeProtectOutOfReach,
		CodePrepFull,
		CodePrepRoleTaken,
		CodePrepNoRole,
		CodePrepNotJoined,
		CodePrepRosterInvalid:
		return codes.FailedPrecondition

	// NotFound - resource doesn't exist
	case CodeNotFound:
		return codes.NotFound

	default:
		return codes.Internal
	}
}

// IsInvariant reports whether the code marks an invariant violation rather
// than an ordinary rejection. Invariant violations indicate a core bug and
// must never be swallowed or retried with a different action.
func (c Code) IsInvariant() bool {
	switch c {
	case CodeGridOutOfBounds, CodeDeckExhausted, CodePlayerNotPlaced, CodeCorruptState:
		return true
	}
	return false
}
