// Package inspect implements the operator CLI for a Noir journal database:
// it lists stored games or rebuilds one game from its snapshot and
// accepted-action journal and reports the resulting state.
package inspect

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/louisbranch/noir/internal/noir/replay"
	"github.com/louisbranch/noir/internal/storage"
	"github.com/louisbranch/noir/internal/storage/sqlite"
)

const listPageSize = 50

// Config holds inspect command configuration.
type Config struct {
	GameID     string
	DBPath     string
	Timeout    time.Duration
	JSONOutput bool
}

type envConfig struct {
	DBPath  string        `env:"NOIR_DB_PATH" envDefault:"noir.db"`
	Timeout time.Duration `env:"NOIR_INSPECT_TIMEOUT" envDefault:"1m"`
}

// ParseConfig parses flags into a Config. Environment variables supply
// defaults; flags override them.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var envCfg envConfig
	if err := env.Parse(&envCfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	cfg := Config{
		DBPath:  envCfg.DBPath,
		Timeout: envCfg.Timeout,
	}
	fs.StringVar(&cfg.GameID, "game-id", "", "game ID to rebuild and report (empty = list stored games)")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "path to the sqlite database (default: NOIR_DB_PATH or noir.db)")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "overall timeout")
	fs.BoolVar(&cfg.JSONOutput, "json", false, "output a JSON report")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Report is the rebuilt state of one game.
type Report struct {
	GameID        string   `json:"gameId"`
	Status        string   `json:"status"`
	Winner        string   `json:"winner,omitempty"`
	Scores        [2]int   `json:"scores"`
	CurrentPlayer string   `json:"currentPlayer"`
	CurrentRole   string   `json:"currentRole"`
	CurrentPhase  string   `json:"currentPhase"`
	DeckLen       int      `json:"deckLen"`
	Seats         []string `json:"seats"`
	Actions       int      `json:"actions"`
}

// Run executes the inspect command.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}

	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	if cfg.GameID == "" {
		return listGames(ctx, cfg, store, out)
	}
	return reportGame(ctx, cfg, store, out)
}

func listGames(ctx context.Context, cfg Config, store storage.Store, out io.Writer) error {
	token := ""
	for {
		page, err := store.ListGames(ctx, listPageSize, token)
		if err != nil {
			return fmt.Errorf("list games: %w", err)
		}
		for _, record := range page.Games {
			if cfg.JSONOutput {
				line, err := json.Marshal(record)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(line))
				continue
			}
			fmt.Fprintf(out, "%s\t%s\t%s\t%d seats\n",
				record.ID, record.Status, record.Winner, len(record.Seats))
		}
		if page.NextPageToken == "" {
			return nil
		}
		token = page.NextPageToken
	}
}

func reportGame(ctx context.Context, cfg Config, store storage.Store, out io.Writer) error {
	record, err := store.GetGame(ctx, cfg.GameID)
	if err != nil {
		return fmt.Errorf("get game %s: %w", cfg.GameID, err)
	}
	g, err := replay.Rebuild(ctx, store, cfg.GameID)
	if err != nil {
		return fmt.Errorf("rebuild game %s: %w", cfg.GameID, err)
	}

	actions, err := countActions(ctx, store, cfg.GameID)
	if err != nil {
		return err
	}

	report := Report{
		GameID:        g.ID(),
		Status:        string(g.Status()),
		Winner:        string(g.Winner()),
		Scores:        g.Scores(),
		CurrentPlayer: g.CurrentPlayer().ID(),
		CurrentRole:   string(g.CurrentPlayer().Role()),
		CurrentPhase:  string(g.CurrentPlayer().Phase()),
		DeckLen:       g.DeckLen(),
		Actions:       actions,
	}
	for _, seat := range record.Seats {
		report.Seats = append(report.Seats, seat.PlayerID+":"+seat.Role)
	}

	if cfg.JSONOutput {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	fmt.Fprintf(out, "game %s: %s", report.GameID, report.Status)
	if report.Winner != "" {
		fmt.Fprintf(out, " (winner: %s)", report.Winner)
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "scores: mafia %d, fbi %d\n", report.Scores[0], report.Scores[1])
	fmt.Fprintf(out, "turn: %s as %s in phase %s\n",
		report.CurrentPlayer, report.CurrentRole, report.CurrentPhase)
	fmt.Fprintf(out, "deck: %d cards, journal: %d actions\n", report.DeckLen, report.Actions)
	for _, seat := range report.Seats {
		fmt.Fprintf(out, "seat %s\n", seat)
	}
	return nil
}

func countActions(ctx context.Context, store storage.ActionStore, gameID string) (int, error) {
	count := 0
	var afterSeq uint64
	for {
		records, err := store.ListActions(ctx, gameID, afterSeq, listPageSize)
		if err != nil {
			return 0, fmt.Errorf("list actions: %w", err)
		}
		count += len(records)
		if len(records) < listPageSize {
			return count, nil
		}
		afterSeq = records[len(records)-1].Seq
	}
}
