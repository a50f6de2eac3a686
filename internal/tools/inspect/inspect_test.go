package inspect

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/louisbranch/noir/internal/noir/game"
	"github.com/louisbranch/noir/internal/noir/role"
	"github.com/louisbranch/noir/internal/noir/wire"
	"github.com/louisbranch/noir/internal/storage"
	"github.com/louisbranch/noir/internal/storage/sqlite"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.DBPath != "noir.db" {
		t.Fatalf("db path = %s, want noir.db", cfg.DBPath)
	}
	if cfg.Timeout != time.Minute {
		t.Fatalf("timeout = %s, want 1m", cfg.Timeout)
	}
	if cfg.GameID != "" || cfg.JSONOutput {
		t.Fatalf("cfg = %+v, want empty game id and text output", cfg)
	}
}

func TestParseConfigEnvAndFlags(t *testing.T) {
	t.Setenv("NOIR_DB_PATH", "/var/lib/noir/journal.db")
	t.Setenv("NOIR_INSPECT_TIMEOUT", "30s")

	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-game-id", "g1", "-json"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.DBPath != "/var/lib/noir/journal.db" {
		t.Fatalf("db path = %s", cfg.DBPath)
	}
	if cfg.Timeout != 30*time.Second {
		t.Fatalf("timeout = %s", cfg.Timeout)
	}
	if cfg.GameID != "g1" || !cfg.JSONOutput {
		t.Fatalf("cfg = %+v", cfg)
	}
}

// seedGame stores a fresh game under gameID and journals one accepted shift.
func seedGame(t *testing.T, dbPath, gameID string) {
	t.Helper()
	ctx := context.Background()

	store, err := sqlite.Open(dbPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	roster := role.Rosters()[0]
	snapshot := game.Snapshot{GameID: gameID, Seed: 42}
	record := storage.GameRecord{ID: gameID, Seed: 42, Status: string(game.StatusPlaying)}
	for i, r := range roster {
		playerID := "p" + string(rune('1'+i))
		snapshot.Seats = append(snapshot.Seats, game.Seat{PlayerID: playerID, Role: r})
		record.Seats = append(record.Seats, storage.Seat{PlayerID: playerID, Role: string(r)})
	}
	if err := store.CreateGame(ctx, record); err != nil {
		t.Fatalf("create game: %v", err)
	}

	live, _, err := game.New(snapshot)
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	act := wire.Action{Type: wire.ActionShift, Direction: "right", Index: 0}
	actorID := live.CurrentPlayer().ID()
	if _, err := live.Apply(actorID, act); err != nil {
		t.Fatalf("apply shift: %v", err)
	}
	payload, err := json.Marshal(act)
	if err != nil {
		t.Fatalf("marshal action: %v", err)
	}
	if _, err := store.AppendAction(ctx, storage.ActionRecord{
		GameID:      gameID,
		PlayerID:    actorID,
		PayloadJSON: payload,
	}); err != nil {
		t.Fatalf("append action: %v", err)
	}
}

func TestRunReportsGame(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "noir.db")
	seedGame(t, dbPath, "g1")

	var out bytes.Buffer
	err := Run(context.Background(), Config{GameID: "g1", DBPath: dbPath}, &out)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	text := out.String()
	if !strings.Contains(text, "game g1: playing") {
		t.Fatalf("report missing header:\n%s", text)
	}
	if !strings.Contains(text, "journal: 1 actions") {
		t.Fatalf("report missing journal count:\n%s", text)
	}
	if !strings.Contains(text, "seat p1:") {
		t.Fatalf("report missing seats:\n%s", text)
	}
}

func TestRunReportsJSON(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "noir.db")
	seedGame(t, dbPath, "g1")

	var out bytes.Buffer
	err := Run(context.Background(), Config{GameID: "g1", DBPath: dbPath, JSONOutput: true}, &out)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	var report Report
	if err := json.Unmarshal(out.Bytes(), &report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if report.GameID != "g1" || report.Status != string(game.StatusPlaying) {
		t.Fatalf("report = %+v", report)
	}
	if report.Actions != 1 {
		t.Fatalf("actions = %d, want 1", report.Actions)
	}
	if len(report.Seats) != len(role.Rosters()[0]) {
		t.Fatalf("seats = %v", report.Seats)
	}
}

func TestRunListsGames(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "noir.db")
	seedGame(t, dbPath, "g1")
	seedGame(t, dbPath, "g2")

	var out bytes.Buffer
	err := Run(context.Background(), Config{DBPath: dbPath}, &out)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %v", lines)
	}
	if !strings.HasPrefix(lines[0], "g1\tplaying") || !strings.HasPrefix(lines[1], "g2\tplaying") {
		t.Fatalf("listing = %v", lines)
	}
}

func TestRunMissingGame(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "noir.db")
	seedGame(t, dbPath, "g1")

	var out bytes.Buffer
	err := Run(context.Background(), Config{GameID: "ghost", DBPath: dbPath}, &out)
	if err == nil {
		t.Fatal("run should fail for a missing game")
	}
}
