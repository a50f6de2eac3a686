// Package storage defines the persistence contracts of the Noir service:
// game snapshots, the per-game event journal, and the accepted-action log
// that replays rebuild from.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/louisbranch/noir/internal/noir/event"
)

var (
	// ErrNotFound indicates a requested record is missing.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists indicates a uniqueness-constrained record already exists.
	ErrAlreadyExists = errors.New("record already exists")
)

// Seat is one roster entry of a stored game.
type Seat struct {
	PlayerID string
	Role     string
}

// GameRecord is the durable snapshot of a game: the seed and roster fully
// determine the initial arena, so no board state is stored.
type GameRecord struct {
	ID        string
	Seed      int64
	Seats     []Seat
	Status    string
	Winner    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// GamePage is one page of game records.
type GamePage struct {
	Games         []GameRecord
	NextPageToken string
}

// GameStore persists game snapshots.
type GameStore interface {
	CreateGame(ctx context.Context, record GameRecord) error
	GetGame(ctx context.Context, gameID string) (GameRecord, error)
	UpdateGameOutcome(ctx context.Context, gameID, status, winner string) error
	ListGames(ctx context.Context, pageSize int, pageToken string) (GamePage, error)
}

// EventStore persists the per-game event journal. AppendEvent assigns the
// next monotonic sequence number and returns the sequenced event.
type EventStore interface {
	AppendEvent(ctx context.Context, evt event.Event) (event.Event, error)
	ListEvents(ctx context.Context, gameID string, afterSeq uint64, limit int) ([]event.Event, error)
}

// ActionRecord is one accepted action in a game's journal. Rejected actions
// are never recorded; replaying the accepted list over the snapshot
// reproduces the engine state.
type ActionRecord struct {
	GameID      string
	Seq         uint64
	PlayerID    string
	PayloadJSON []byte
	Timestamp   time.Time
}

// ActionStore persists the accepted-action journal.
type ActionStore interface {
	AppendAction(ctx context.Context, record ActionRecord) (ActionRecord, error)
	ListActions(ctx context.Context, gameID string, afterSeq uint64, limit int) ([]ActionRecord, error)
}

// Store bundles every persistence contract of the service.
type Store interface {
	GameStore
	EventStore
	ActionStore
	Close() error
}
