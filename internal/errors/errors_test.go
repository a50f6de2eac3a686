package errors

import (
	"errors"
	"fmt"
	"testing"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestErrorMatchingByCode(t *testing.T) {
	base := New(CodeNotYourTurn, "player p2 is not the active player")
	if !errors.Is(base, New(CodeNotYourTurn, "different message")) {
		t.Fatal("errors with the same code should match")
	}
	if errors.Is(base, New(CodeWrongPhase, "")) {
		t.Fatal("errors with different codes should not match")
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := fmt.Errorf("disk is full")
	wrapped := Wrap(CodeCorruptState, "journal append failed", cause)
	if !errors.Is(wrapped, cause) {
		t.Fatal("wrap should preserve the cause chain")
	}
	if GetCode(wrapped) != CodeCorruptState {
		t.Fatalf("code = %s, want %s", GetCode(wrapped), CodeCorruptState)
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"nil-ish plain error", fmt.Errorf("boom"), CodeUnknown},
		{"domain error", New(CodeTargetClosed, "cell is closed"), CodeTargetClosed},
		{"wrapped domain error", fmt.Errorf("submit: %w", New(CodePrepFull, "lobby full")), CodePrepFull},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.want {
				t.Fatalf("GetCode = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestGRPCCodeMapping(t *testing.T) {
	tests := []struct {
		code Code
		want codes.Code
	}{
		{CodeWireUnknownAction, codes.InvalidArgument},
		{CodeGridInvalidShift, codes.InvalidArgument},
		{CodeNotYourTurn, codes.FailedPrecondition},
		{CodeReactionPending, codes.FailedPrecondition},
		{CodePrepRosterInvalid, codes.FailedPrecondition},
		{CodeNotFound, codes.NotFound},
		{CodeDeckExhausted, codes.Internal},
		{CodeCorruptState, codes.Internal},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			if got := tt.code.GRPCCode(); got != tt.want {
				t.Fatalf("GRPCCode = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsInvariant(t *testing.T) {
	for _, code := range []Code{CodeGridOutOfBounds, CodeDeckExhausted, CodePlayerNotPlaced, CodeCorruptState} {
		if !code.IsInvariant() {
			t.Fatalf("%s should be an invariant violation", code)
		}
	}
	for _, code := range []Code{CodeNotYourTurn, CodeTargetClosed, CodePrepFull} {
		if code.IsInvariant() {
			t.Fatalf("%s should be an ordinary rejection", code)
		}
	}
}

func TestHandleError(t *testing.T) {
	if HandleError(nil) != nil {
		t.Fatal("nil error should pass through")
	}

	st, ok := status.FromError(HandleError(New(CodeNotYourTurn, "not your turn")))
	if !ok {
		t.Fatal("domain error should convert to a status")
	}
	if st.Code() != codes.FailedPrecondition {
		t.Fatalf("status code = %v, want FailedPrecondition", st.Code())
	}

	st, ok = status.FromError(HandleError(fmt.Errorf("boom")))
	if !ok || st.Code() != codes.Internal {
		t.Fatalf("unknown error should map to Internal, got %v", st.Code())
	}
	if st.Message() == "boom" {
		t.Fatal("internal details must not leak to clients")
	}
}

func TestToGRPCStatusCarriesDetails(t *testing.T) {
	appErr := WithMetadata(CodeTargetClosed, "cell is closed",
		map[string]string{"position": "2,3"})
	st, ok := status.FromError(appErr.ToGRPCStatus())
	if !ok {
		t.Fatal("expected a status error")
	}
	if len(st.Details()) == 0 {
		t.Fatal("expected errdetails on the status")
	}
}
