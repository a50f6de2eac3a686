package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/noir/internal/noir/event"
	"github.com/louisbranch/noir/internal/storage"
)

// nextSeqTx claims the next sequence number for the game in the given seq
// table. Runs inside the caller's transaction so the claim and the insert
// commit together.
func nextSeqTx(ctx context.Context, tx *sql.Tx, table, gameID string) (uint64, error) {
	if _, err := tx.ExecContext(
		ctx,
		`INSERT INTO `+table+` (game_id, next_seq) VALUES (?, 1)
		 ON CONFLICT(game_id) DO NOTHING`,
		gameID,
	); err != nil {
		return 0, fmt.Errorf("init %s: %w", table, err)
	}
	var seq uint64
	if err := tx.QueryRowContext(
		ctx,
		`SELECT next_seq FROM `+table+` WHERE game_id = ?`,
		gameID,
	).Scan(&seq); err != nil {
		return 0, fmt.Errorf("read %s: %w", table, err)
	}
	if _, err := tx.ExecContext(
		ctx,
		`UPDATE `+table+` SET next_seq = next_seq + 1 WHERE game_id = ?`,
		gameID,
	); err != nil {
		return 0, fmt.Errorf("advance %s: %w", table, err)
	}
	return seq, nil
}

// AppendEvent assigns the event's sequence number and persists it.
func (s *Store) AppendEvent(ctx context.Context, evt event.Event) (event.Event, error) {
	if err := ctx.Err(); err != nil {
		return event.Event{}, err
	}
	if s == nil || s.sqlDB == nil {
		return event.Event{}, fmt.Errorf("storage is not configured")
	}
	gameID := strings.TrimSpace(evt.GameID)
	if gameID == "" {
		return event.Event{}, fmt.Errorf("game id is required")
	}
	if !evt.Type.IsValid() {
		return event.Event{}, fmt.Errorf("event type is required")
	}
	if evt.Timestamp.IsZero() {
		evt.Timestamp = time.Now().UTC()
	}
	payload := evt.PayloadJSON
	if len(payload) == 0 {
		payload = []byte("{}")
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return event.Event{}, fmt.Errorf("begin append event: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	seq, err := nextSeqTx(ctx, tx, "event_seqs", gameID)
	if err != nil {
		return event.Event{}, err
	}
	if _, err := tx.ExecContext(
		ctx,
		`INSERT INTO events (game_id, seq, timestamp, event_type, actor_type, actor_id, payload_json)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		gameID,
		seq,
		toMillis(evt.Timestamp),
		string(evt.Type),
		string(evt.ActorType),
		evt.ActorID,
		string(payload),
	); err != nil {
		return event.Event{}, fmt.Errorf("append event: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return event.Event{}, fmt.Errorf("commit append event: %w", err)
	}

	evt.GameID = gameID
	evt.Seq = seq
	evt.Timestamp = evt.Timestamp.UTC()
	evt.PayloadJSON = payload
	return evt, nil
}

// ListEvents returns up to limit events with Seq greater than afterSeq.
func (s *Store) ListEvents(ctx context.Context, gameID string, afterSeq uint64, limit int) ([]event.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return nil, fmt.Errorf("game id is required")
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be greater than zero")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT seq, timestamp, event_type, actor_type, actor_id, payload_json
		   FROM events
		  WHERE game_id = ? AND seq > ?
		  ORDER BY seq ASC
		  LIMIT ?`,
		gameID,
		afterSeq,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []event.Event
	for rows.Next() {
		evt := event.Event{GameID: gameID}
		var timestamp int64
		var eventType, actorType, payload string
		if err := rows.Scan(&evt.Seq, &timestamp, &eventType, &actorType,
			&evt.ActorID, &payload); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		evt.Timestamp = fromMillis(timestamp)
		evt.Type = event.Type(eventType)
		evt.ActorType = event.ActorType(actorType)
		evt.PayloadJSON = []byte(payload)
		events = append(events, evt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// AppendAction assigns the action's sequence number and persists it.
func (s *Store) AppendAction(ctx context.Context, record storage.ActionRecord) (storage.ActionRecord, error) {
	if err := ctx.Err(); err != nil {
		return storage.ActionRecord{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.ActionRecord{}, fmt.Errorf("storage is not configured")
	}
	gameID := strings.TrimSpace(record.GameID)
	if gameID == "" {
		return storage.ActionRecord{}, fmt.Errorf("game id is required")
	}
	if len(record.PayloadJSON) == 0 {
		return storage.ActionRecord{}, fmt.Errorf("action payload is required")
	}
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now().UTC()
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return storage.ActionRecord{}, fmt.Errorf("begin append action: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	seq, err := nextSeqTx(ctx, tx, "action_seqs", gameID)
	if err != nil {
		return storage.ActionRecord{}, err
	}
	if _, err := tx.ExecContext(
		ctx,
		`INSERT INTO actions (game_id, seq, player_id, payload_json, timestamp)
		 VALUES (?, ?, ?, ?, ?)`,
		gameID,
		seq,
		record.PlayerID,
		string(record.PayloadJSON),
		toMillis(record.Timestamp),
	); err != nil {
		return storage.ActionRecord{}, fmt.Errorf("append action: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return storage.ActionRecord{}, fmt.Errorf("commit append action: %w", err)
	}

	record.GameID = gameID
	record.Seq = seq
	record.Timestamp = record.Timestamp.UTC()
	return record, nil
}

// ListActions returns up to limit actions with Seq greater than afterSeq.
func (s *Store) ListActions(ctx context.Context, gameID string, afterSeq uint64, limit int) ([]storage.ActionRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return nil, fmt.Errorf("game id is required")
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be greater than zero")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT seq, player_id, payload_json, timestamp
		   FROM actions
		  WHERE game_id = ? AND seq > ?
		  ORDER BY seq ASC
		  LIMIT ?`,
		gameID,
		afterSeq,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list actions: %w", err)
	}
	defer rows.Close()

	var records []storage.ActionRecord
	for rows.Next() {
		record := storage.ActionRecord{GameID: gameID}
		var payload string
		var timestamp int64
		if err := rows.Scan(&record.Seq, &record.PlayerID, &payload, &timestamp); err != nil {
			return nil, fmt.Errorf("scan action: %w", err)
		}
		record.PayloadJSON = []byte(payload)
		record.Timestamp = fromMillis(timestamp)
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list actions: %w", err)
	}
	return records, nil
}
