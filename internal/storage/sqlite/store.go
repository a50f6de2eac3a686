// Package sqlite provides the SQLite-backed noir storage implementation.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/louisbranch/noir/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/noir/internal/storage"
	"github.com/louisbranch/noir/internal/storage/sqlite/migrations"
)

// Store persists noir state in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite store at the path and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle. Nil-safe so callers can always defer it.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// CreateGame inserts one game snapshot with its roster.
func (s *Store) CreateGame(ctx context.Context, record storage.GameRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	gameID := strings.TrimSpace(record.ID)
	if gameID == "" {
		return fmt.Errorf("game id is required")
	}
	if len(record.Seats) == 0 {
		return fmt.Errorf("seats are required")
	}
	createdAt := record.CreatedAt.UTC()
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	updatedAt := record.UpdatedAt.UTC()
	if updatedAt.IsZero() {
		updatedAt = createdAt
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create game: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(
		ctx,
		`INSERT INTO games (id, seed, status, winner, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		gameID,
		record.Seed,
		record.Status,
		record.Winner,
		toMillis(createdAt),
		toMillis(updatedAt),
	); err != nil {
		if isUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("create game: %w", err)
	}
	for i, seat := range record.Seats {
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO game_seats (game_id, idx, player_id, role) VALUES (?, ?, ?, ?)`,
			gameID,
			i,
			seat.PlayerID,
			seat.Role,
		); err != nil {
			return fmt.Errorf("create game seat: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create game: %w", err)
	}
	return nil
}

// GetGame returns one game snapshot by ID, roster included.
func (s *Store) GetGame(ctx context.Context, gameID string) (storage.GameRecord, error) {
	if err := ctx.Err(); err != nil {
		return storage.GameRecord{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.GameRecord{}, fmt.Errorf("storage is not configured")
	}
	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return storage.GameRecord{}, fmt.Errorf("game id is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, seed, status, winner, created_at, updated_at FROM games WHERE id = ?`,
		gameID,
	)
	var record storage.GameRecord
	var createdAt int64
	var updatedAt int64
	if err := row.Scan(&record.ID, &record.Seed, &record.Status, &record.Winner,
		&createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.GameRecord{}, storage.ErrNotFound
		}
		return storage.GameRecord{}, fmt.Errorf("get game: %w", err)
	}
	record.CreatedAt = fromMillis(createdAt)
	record.UpdatedAt = fromMillis(updatedAt)

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT player_id, role FROM game_seats WHERE game_id = ? ORDER BY idx ASC`,
		gameID,
	)
	if err != nil {
		return storage.GameRecord{}, fmt.Errorf("get game seats: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var seat storage.Seat
		if err := rows.Scan(&seat.PlayerID, &seat.Role); err != nil {
			return storage.GameRecord{}, fmt.Errorf("scan game seat: %w", err)
		}
		record.Seats = append(record.Seats, seat)
	}
	if err := rows.Err(); err != nil {
		return storage.GameRecord{}, fmt.Errorf("get game seats: %w", err)
	}
	return record, nil
}

// UpdateGameOutcome records a game's lifecycle transition.
func (s *Store) UpdateGameOutcome(ctx context.Context, gameID, status, winner string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return fmt.Errorf("game id is required")
	}
	result, err := s.sqlDB.ExecContext(
		ctx,
		`UPDATE games SET status = ?, winner = ?, updated_at = ? WHERE id = ?`,
		status,
		winner,
		toMillis(time.Now().UTC()),
		gameID,
	)
	if err != nil {
		return fmt.Errorf("update game outcome: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update game outcome: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// ListGames returns one page of game records ordered by ID.
func (s *Store) ListGames(ctx context.Context, pageSize int, pageToken string) (storage.GamePage, error) {
	if err := ctx.Err(); err != nil {
		return storage.GamePage{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.GamePage{}, fmt.Errorf("storage is not configured")
	}
	if pageSize <= 0 {
		return storage.GamePage{}, fmt.Errorf("page size must be greater than zero")
	}
	pageToken = strings.TrimSpace(pageToken)

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, seed, status, winner, created_at, updated_at
		   FROM games
		  WHERE id > ?
		  ORDER BY id ASC
		  LIMIT ?`,
		pageToken,
		pageSize+1,
	)
	if err != nil {
		return storage.GamePage{}, fmt.Errorf("list games: %w", err)
	}
	defer rows.Close()

	page := storage.GamePage{Games: make([]storage.GameRecord, 0, pageSize)}
	for rows.Next() {
		var record storage.GameRecord
		var createdAt int64
		var updatedAt int64
		if err := rows.Scan(&record.ID, &record.Seed, &record.Status, &record.Winner,
			&createdAt, &updatedAt); err != nil {
			return storage.GamePage{}, fmt.Errorf("list games: %w", err)
		}
		record.CreatedAt = fromMillis(createdAt)
		record.UpdatedAt = fromMillis(updatedAt)
		page.Games = append(page.Games, record)
	}
	if err := rows.Err(); err != nil {
		return storage.GamePage{}, fmt.Errorf("list games: %w", err)
	}
	if len(page.Games) > pageSize {
		page.NextPageToken = page.Games[pageSize-1].ID
		page.Games = page.Games[:pageSize]
	}
	return page, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}

var _ storage.Store = (*Store)(nil)
