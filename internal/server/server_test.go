package server

import (
	"encoding/json"
	"testing"

	"github.com/louisbranch/noir/internal/noir/event"
	"github.com/louisbranch/noir/internal/noir/wire"
)

func TestGreetQueuesHello(t *testing.T) {
	s := New("127.0.0.1:0", nil, nil)
	client := newClient(nil, nil, nil, "g7", "")

	s.greet(client)

	select {
	case payload := <-client.send:
		var envelope wire.EventEnvelope
		if err := json.Unmarshal(payload, &envelope); err != nil {
			t.Fatalf("decode envelope: %v", err)
		}
		if envelope.Kind != wire.KindEvent || envelope.Type != string(event.TypeHello) {
			t.Fatalf("envelope = %+v", envelope)
		}
		if envelope.GameID != "g7" || envelope.Seq != 0 {
			t.Fatalf("hello should be unsequenced for the game: %+v", envelope)
		}
		if envelope.ActorType != string(event.ActorTypeSystem) {
			t.Fatalf("actor type = %s, want system", envelope.ActorType)
		}
		var hello event.HelloPayload
		if err := json.Unmarshal(envelope.Payload, &hello); err != nil {
			t.Fatalf("decode payload: %v", err)
		}
		if hello.GameID != "g7" {
			t.Fatalf("payload = %+v", hello)
		}
	default:
		t.Fatal("greet queued nothing")
	}
}
