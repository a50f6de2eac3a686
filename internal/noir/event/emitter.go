package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Store defines the interface for persisting events.
type Store interface {
	AppendEvent(ctx context.Context, evt Event) (Event, error)
}

// Sink receives every appended event synchronously, in order. The transport
// behind a sink owns fan-out, queuing, and slow-consumer handling.
type Sink interface {
	Publish(evt Event)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(evt Event)

// Publish implements Sink.
func (f SinkFunc) Publish(evt Event) {
	f(evt)
}

// Emitter appends events to a game's journal and relays them to a sink.
type Emitter struct {
	store Store
	sink  Sink
	now   func() time.Time
}

// NewEmitter creates an event emitter. The sink may be nil when no live
// observers exist (replays, tests).
func NewEmitter(store Store, sink Sink) *Emitter {
	return &Emitter{
		store: store,
		sink:  sink,
		now:   time.Now,
	}
}

// New builds an unsequenced event record with a marshaled payload. The
// engine produces these synchronously during an action; storage assigns the
// sequence and timestamp on append.
func New(gameID string, t Type, actorType ActorType, actorID string, payload any) (Event, error) {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return Event{}, fmt.Errorf("marshal event payload: %w", err)
	}
	return Event{
		GameID:      gameID,
		Type:        t,
		ActorType:   actorType,
		ActorID:     actorID,
		PayloadJSON: payloadJSON,
	}, nil
}

// Append persists an already-built event and publishes it to the sink.
func (e *Emitter) Append(ctx context.Context, evt Event) (Event, error) {
	if e.store == nil {
		return Event{}, fmt.Errorf("event store is not configured")
	}
	if evt.Timestamp.IsZero() {
		evt.Timestamp = e.now().UTC()
	}
	appended, err := e.store.AppendEvent(ctx, evt)
	if err != nil {
		return Event{}, err
	}
	if e.sink != nil {
		e.sink.Publish(appended)
	}
	return appended, nil
}

// EmitInput describes the input for emitting an event.
type EmitInput struct {
	GameID    string
	Type      Type
	ActorType ActorType
	ActorID   string
	Payload   any
}

// Emit appends an event to the journal and publishes it to the sink.
func (e *Emitter) Emit(ctx context.Context, input EmitInput) (Event, error) {
	if e.store == nil {
		return Event{}, fmt.Errorf("event store is not configured")
	}

	payloadJSON, err := json.Marshal(input.Payload)
	if err != nil {
		return Event{}, fmt.Errorf("marshal event payload: %w", err)
	}

	evt := Event{
		GameID:      input.GameID,
		Timestamp:   e.now().UTC(),
		Type:        input.Type,
		ActorType:   input.ActorType,
		ActorID:     input.ActorID,
		PayloadJSON: payloadJSON,
	}

	appended, err := e.store.AppendEvent(ctx, evt)
	if err != nil {
		return Event{}, err
	}
	if e.sink != nil {
		e.sink.Publish(appended)
	}
	return appended, nil
}
