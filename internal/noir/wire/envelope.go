package wire

import "encoding/json"

// Envelope kinds on the outbound stream.
const (
	KindEvent = "event"
	KindError = "error"
)

// EventEnvelope is the outbound form of one journal event. Timestamps
// travel as UTC milliseconds.
type EventEnvelope struct {
	Kind      string          `json:"kind"`
	GameID    string          `json:"gameId"`
	Seq       uint64          `json:"seq"`
	Timestamp int64           `json:"timestamp"`
	Type      string          `json:"type"`
	ActorType string          `json:"actorType"`
	ActorID   string          `json:"actorId,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

// ErrorEnvelope reports a rejected action to the submitting client only.
// Status carries the canonical classification of the domain code (e.g.
// FailedPrecondition vs InvalidArgument) so clients can branch without a
// code table.
type ErrorEnvelope struct {
	Kind    string `json:"kind"`
	Code    string `json:"code"`
	Status  string `json:"status,omitempty"`
	Message string `json:"message"`
}

// NewErrorEnvelope builds an error envelope from a domain code and message.
func NewErrorEnvelope(code, message string) ErrorEnvelope {
	return ErrorEnvelope{Kind: KindError, Code: code, Message: message}
}
