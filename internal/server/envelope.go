package server

import (
	"encoding/json"

	"github.com/louisbranch/noir/internal/noir/event"
	"github.com/louisbranch/noir/internal/noir/wire"
)

// envelopeFromEvent converts a journal event to its outbound wire form.
func envelopeFromEvent(evt event.Event) wire.EventEnvelope {
	return wire.EventEnvelope{
		Kind:      wire.KindEvent,
		GameID:    evt.GameID,
		Seq:       evt.Seq,
		Timestamp: evt.Timestamp.UTC().UnixMilli(),
		Type:      string(evt.Type),
		ActorType: string(evt.ActorType),
		ActorID:   evt.ActorID,
		Payload:   json.RawMessage(evt.PayloadJSON),
	}
}
