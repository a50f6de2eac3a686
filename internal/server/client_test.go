package server

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	apperrors "github.com/louisbranch/noir/internal/errors"
	"github.com/louisbranch/noir/internal/noir/wire"
)

func recvError(t *testing.T, c *Client) wire.ErrorEnvelope {
	t.Helper()
	select {
	case payload := <-c.send:
		var envelope wire.ErrorEnvelope
		if err := json.Unmarshal(payload, &envelope); err != nil {
			t.Fatalf("decode error envelope: %v", err)
		}
		return envelope
	default:
		t.Fatal("no error envelope queued")
		return wire.ErrorEnvelope{}
	}
}

func TestSendErrorClassifiesCode(t *testing.T) {
	c := newClient(nil, nil, nil, "g1", "p1")
	c.sendError(apperrors.CodeWireUnknownAction, "action envelope is not decodable")

	envelope := recvError(t, c)
	if envelope.Kind != wire.KindError || envelope.Code != "WIRE_UNKNOWN_ACTION" {
		t.Fatalf("envelope = %+v", envelope)
	}
	if envelope.Status != "InvalidArgument" {
		t.Fatalf("status = %s, want InvalidArgument", envelope.Status)
	}
}

func TestSendRejection(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   string
		wantStatus string
	}{
		{
			name:       "turn rejection",
			err:        apperrors.New(apperrors.CodeNotYourTurn, "player p2 is not the active player"),
			wantCode:   "NOT_YOUR_TURN",
			wantStatus: "FailedPrecondition",
		},
		{
			name:       "invariant violation",
			err:        apperrors.New(apperrors.CodeCorruptState, "cell hosts unknown player"),
			wantCode:   "CORRUPT_STATE",
			wantStatus: "Internal",
		},
		{
			name:       "missing game",
			err:        apperrors.New(apperrors.CodeNotFound, "no lobby for game g1"),
			wantCode:   "NOT_FOUND",
			wantStatus: "NotFound",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := newClient(nil, nil, nil, "g1", "p1")
			c.sendRejection(tc.err)

			envelope := recvError(t, c)
			if envelope.Code != tc.wantCode {
				t.Fatalf("code = %s, want %s", envelope.Code, tc.wantCode)
			}
			if envelope.Status != tc.wantStatus {
				t.Fatalf("status = %s, want %s", envelope.Status, tc.wantStatus)
			}
			if envelope.Message != tc.err.Error() {
				t.Fatalf("message = %q, want %q", envelope.Message, tc.err.Error())
			}
		})
	}
}

func TestSendRejectionSanitizesUnknownErrors(t *testing.T) {
	c := newClient(nil, nil, nil, "g1", "p1")
	c.sendRejection(errors.New("dial tcp 10.0.0.5: connection refused"))

	envelope := recvError(t, c)
	if envelope.Code != string(apperrors.CodeUnknown) {
		t.Fatalf("code = %s, want UNKNOWN", envelope.Code)
	}
	if envelope.Status != "Internal" {
		t.Fatalf("status = %s, want Internal", envelope.Status)
	}
	if strings.Contains(envelope.Message, "10.0.0.5") {
		t.Fatalf("message leaks internals: %q", envelope.Message)
	}
}
