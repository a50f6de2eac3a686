// Package replay rebuilds a game engine from its stored snapshot and
// accepted-action journal. Because the engine is deterministic, replaying
// the journal over the seeded snapshot reproduces the live state exactly.
package replay

import (
	"context"
	"encoding/json"
	"fmt"

	apperrors "github.com/louisbranch/noir/internal/errors"
	"github.com/louisbranch/noir/internal/noir/game"
	"github.com/louisbranch/noir/internal/noir/role"
	"github.com/louisbranch/noir/internal/noir/wire"
	"github.com/louisbranch/noir/internal/storage"
)

// pageSize bounds how many journal records one listing round-trip loads.
const pageSize = 200

// Source is the storage slice replay depends on.
type Source interface {
	storage.GameStore
	storage.ActionStore
}

// Rebuild loads the game record and replays its accepted actions over a
// fresh engine. The returned game is at the exact state the last accepted
// action left it in.
func Rebuild(ctx context.Context, src Source, gameID string) (*game.Game, error) {
	record, err := src.GetGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("load game %s: %w", gameID, err)
	}
	snapshot, err := snapshotFromRecord(record)
	if err != nil {
		return nil, err
	}
	g, _, err := game.New(snapshot)
	if err != nil {
		return nil, fmt.Errorf("rebuild game %s: %w", gameID, err)
	}

	var afterSeq uint64
	for {
		records, err := src.ListActions(ctx, gameID, afterSeq, pageSize)
		if err != nil {
			return nil, fmt.Errorf("load actions for %s: %w", gameID, err)
		}
		for _, rec := range records {
			var act wire.Action
			if err := json.Unmarshal(rec.PayloadJSON, &act); err != nil {
				return nil, apperrors.Wrap(apperrors.CodeCorruptState,
					fmt.Sprintf("action %d of game %s is not decodable", rec.Seq, gameID), err)
			}
			if _, err := g.Apply(rec.PlayerID, act); err != nil {
				// Journaled actions were accepted once; a rejection now
				// means the snapshot and journal disagree.
				return nil, apperrors.Wrap(apperrors.CodeCorruptState,
					fmt.Sprintf("action %d of game %s no longer applies", rec.Seq, gameID), err)
			}
			afterSeq = rec.Seq
		}
		if len(records) < pageSize {
			break
		}
	}

	// Aborts are journaled as events, not actions, so the replayed engine
	// ends up playing; reapply the stored terminal status.
	if record.Status == string(game.StatusAborted) && g.Status() == game.StatusPlaying {
		if _, err := g.Abort(""); err != nil {
			return nil, fmt.Errorf("restore aborted status of %s: %w", gameID, err)
		}
	}
	return g, nil
}

func snapshotFromRecord(record storage.GameRecord) (game.Snapshot, error) {
	snapshot := game.Snapshot{
		GameID: record.ID,
		Seed:   record.Seed,
		Seats:  make([]game.Seat, 0, len(record.Seats)),
	}
	for _, seat := range record.Seats {
		r, err := role.Parse(seat.Role)
		if err != nil {
			return game.Snapshot{}, apperrors.Wrap(apperrors.CodeCorruptState,
				fmt.Sprintf("stored seat of game %s names an unknown role", record.ID), err)
		}
		snapshot.Seats = append(snapshot.Seats, game.Seat{PlayerID: seat.PlayerID, Role: r})
	}
	return snapshot, nil
}
