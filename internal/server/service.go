// Package server hosts the Noir gateway: a service layer owning live game
// sessions and a thin JSON-over-websocket transport exposing them to remote
// actors. The engine itself is single-threaded; the service serializes
// access per game so concurrent submissions never interleave inside an
// action.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	apperrors "github.com/louisbranch/noir/internal/errors"
	"github.com/louisbranch/noir/internal/id"
	"github.com/louisbranch/noir/internal/noir/event"
	"github.com/louisbranch/noir/internal/noir/game"
	"github.com/louisbranch/noir/internal/noir/prep"
	"github.com/louisbranch/noir/internal/noir/replay"
	"github.com/louisbranch/noir/internal/noir/role"
	"github.com/louisbranch/noir/internal/noir/wire"
	"github.com/louisbranch/noir/internal/random"
	"github.com/louisbranch/noir/internal/storage"
)

// Service owns lobbies and live game sessions over a store and a hub.
type Service struct {
	store   storage.Store
	hub     *Hub
	newID   func() (string, error)
	newSeed func() (int64, error)

	mu       sync.Mutex
	lobbies  map[string]*prep.Lobby
	sessions map[string]*session
}

// session pins one live game behind its own mutex. The emitter's sink
// broadcasts to the game's room.
type session struct {
	mu      sync.Mutex
	game    *game.Game
	emitter *event.Emitter
}

// NewService creates the gateway service. The hub may be nil in tests that
// exercise the service without live observers.
func NewService(store storage.Store, hub *Hub) *Service {
	return &Service{
		store:    store,
		hub:      hub,
		newID:    id.New,
		newSeed:  random.NewSeed,
		lobbies:  make(map[string]*prep.Lobby),
		sessions: make(map[string]*session),
	}
}

func (s *Service) sink(gameID string) event.Sink {
	if s.hub == nil {
		return nil
	}
	return event.SinkFunc(func(evt event.Event) {
		payload, err := json.Marshal(envelopeFromEvent(evt))
		if err != nil {
			return
		}
		s.hub.Publish(gameID, payload)
	})
}

// CreateLobby opens a fresh lobby and returns its game ID.
func (s *Service) CreateLobby(context.Context) (string, error) {
	gameID, err := s.newID()
	if err != nil {
		return "", fmt.Errorf("generate game id: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lobbies[gameID] = prep.NewLobby(gameID)
	return gameID, nil
}

func (s *Service) lobby(gameID string) (*prep.Lobby, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	lobby, ok := s.lobbies[gameID]
	if !ok {
		return nil, apperrors.New(apperrors.CodeNotFound, "no lobby for game "+gameID)
	}
	return lobby, nil
}

// JoinLobby seats a player in the lobby.
func (s *Service) JoinLobby(_ context.Context, gameID, playerID string) error {
	lobby, err := s.lobby(gameID)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return lobby.Join(playerID)
}

// LeaveLobby releases a player's seat.
func (s *Service) LeaveLobby(_ context.Context, gameID, playerID string) error {
	lobby, err := s.lobby(gameID)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return lobby.Leave(playerID)
}

// PickRole claims a role for a seated player.
func (s *Service) PickRole(_ context.Context, gameID, playerID string, r role.Role) error {
	lobby, err := s.lobby(gameID)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return lobby.PickRole(playerID, r)
}

// SetReady flips a player's readiness.
func (s *Service) SetReady(_ context.Context, gameID, playerID string, ready bool) error {
	lobby, err := s.lobby(gameID)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return lobby.SetReady(playerID, ready)
}

// StartGame seals the lobby into a live game: the snapshot is persisted, the
// engine set up, and the setup events journaled and broadcast.
func (s *Service) StartGame(ctx context.Context, gameID string) error {
	lobby, err := s.lobby(gameID)
	if err != nil {
		return err
	}
	seed, err := s.newSeed()
	if err != nil {
		return fmt.Errorf("generate seed: %w", err)
	}

	s.mu.Lock()
	snapshot, err := lobby.Start(seed)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	record := storage.GameRecord{
		ID:     snapshot.GameID,
		Seed:   snapshot.Seed,
		Status: string(game.StatusPlaying),
	}
	for _, seat := range snapshot.Seats {
		record.Seats = append(record.Seats, storage.Seat{
			PlayerID: seat.PlayerID,
			Role:     string(seat.Role),
		})
	}
	if err := s.store.CreateGame(ctx, record); err != nil {
		return fmt.Errorf("persist game %s: %w", gameID, err)
	}

	g, setup, err := game.New(snapshot)
	if err != nil {
		return err
	}
	sess := &session{
		game:    g,
		emitter: event.NewEmitter(s.store, s.sink(gameID)),
	}
	for _, evt := range setup {
		if _, err := sess.emitter.Append(ctx, evt); err != nil {
			return fmt.Errorf("journal setup event: %w", err)
		}
	}

	s.mu.Lock()
	delete(s.lobbies, gameID)
	s.sessions[gameID] = sess
	s.mu.Unlock()
	return nil
}

// session returns the live session, rebuilding it from storage when the
// game is not resident (process restart, eviction).
func (s *Service) session(ctx context.Context, gameID string) (*session, error) {
	s.mu.Lock()
	sess, ok := s.sessions[gameID]
	s.mu.Unlock()
	if ok {
		return sess, nil
	}

	g, err := replay.Rebuild(ctx, s.store, gameID)
	if err != nil {
		return nil, err
	}
	sess = &session{
		game:    g,
		emitter: event.NewEmitter(s.store, s.sink(gameID)),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.sessions[gameID]; ok {
		return existing, nil
	}
	s.sessions[gameID] = sess
	return sess, nil
}

// Submit applies one action to the game. Accepted actions are journaled
// before their events; rejections leave no trace in storage.
func (s *Service) Submit(ctx context.Context, gameID, playerID string, act wire.Action) error {
	sess, err := s.session(ctx, gameID)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	events, err := sess.game.Apply(playerID, act)
	if err != nil {
		return s.submitFailure(gameID, err)
	}

	payload, err := json.Marshal(act)
	if err != nil {
		return fmt.Errorf("marshal action: %w", err)
	}
	if _, err := s.store.AppendAction(ctx, storage.ActionRecord{
		GameID:      gameID,
		PlayerID:    playerID,
		PayloadJSON: payload,
	}); err != nil {
		return fmt.Errorf("journal action: %w", err)
	}
	for _, evt := range events {
		if _, err := sess.emitter.Append(ctx, evt); err != nil {
			return fmt.Errorf("journal event: %w", err)
		}
	}

	if sess.game.Status() == game.StatusCompleted {
		if err := s.store.UpdateGameOutcome(ctx, gameID,
			string(sess.game.Status()), string(sess.game.Winner())); err != nil {
			return fmt.Errorf("record outcome: %w", err)
		}
	}
	return nil
}

// submitFailure classifies a rejected submit. Ordinary rejections pass
// through; an invariant violation means the resident state can no longer be
// trusted, so the session is dropped and the next submit rebuilds it from
// the journal instead of replaying the corruption.
func (s *Service) submitFailure(gameID string, err error) error {
	if apperrors.GetCode(err).IsInvariant() {
		log.Printf("invariant violation in game %s, evicting session: %v", gameID, err)
		s.evict(gameID)
	}
	return err
}

func (s *Service) evict(gameID string) {
	s.mu.Lock()
	delete(s.sessions, gameID)
	s.mu.Unlock()
}

// Abort force-terminates a live game: the abort event is journaled and
// broadcast, the stored outcome set, and the session released.
func (s *Service) Abort(ctx context.Context, gameID, reason string) error {
	sess, err := s.session(ctx, gameID)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	events, err := sess.game.Abort(reason)
	if err != nil {
		return err
	}
	for _, evt := range events {
		if _, err := sess.emitter.Append(ctx, evt); err != nil {
			return fmt.Errorf("journal abort event: %w", err)
		}
	}
	if err := s.store.UpdateGameOutcome(ctx, gameID,
		string(game.StatusAborted), string(game.WinnerNone)); err != nil {
		return fmt.Errorf("record outcome: %w", err)
	}
	s.evict(gameID)
	return nil
}

// Events returns journaled events after the given sequence, for observer
// catch-up on connect.
func (s *Service) Events(ctx context.Context, gameID string, afterSeq uint64, limit int) ([]event.Event, error) {
	return s.store.ListEvents(ctx, gameID, afterSeq, limit)
}
