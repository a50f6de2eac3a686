package game

import (
	"fmt"

	apperrors "github.com/louisbranch/noir/internal/errors"
	"github.com/louisbranch/noir/internal/noir/board"
	"github.com/louisbranch/noir/internal/noir/event"
	"github.com/louisbranch/noir/internal/noir/grid"
	"github.com/louisbranch/noir/internal/noir/role"
	"github.com/louisbranch/noir/internal/noir/wire"
)

// tryKill opens a kill attempt on an alive cell. When the cell carries a
// protection marker the attempt suspends into a Suit reaction and tryKill
// reports suspended=true; otherwise the kill resolves immediately.
func (g *Game) tryKill(actor *Player, target grid.Position, source killSource, boreBomb bool) (bool, error) {
	cell, err := g.cellAt(target)
	if err != nil {
		return false, err
	}
	if !cell.Alive() {
		return false, apperrors.New(apperrors.CodeTargetClosed,
			fmt.Sprintf("cell (%d,%d) is closed", target.Row, target.Col))
	}

	if err := g.emit(event.TypeTryKill, actor.id, event.TryKillPayload{
		Target: wire.FromPosition(target),
	}); err != nil {
		return false, err
	}

	if cell.HasMarker(board.MarkerProtection) {
		suit := g.playerByRole(role.Suit)
		if suit == nil {
			return false, apperrors.New(apperrors.CodeCorruptState,
				"protection marker on board without a suit in the roster")
		}
		g.pushReaction(reaction{
			kind:           reactionProtect,
			playerID:       suit.id,
			resumePlayerID: actor.id,
			resumePhase:    actor.phase,
			target:         target,
			source:         source,
			boreBomb:       boreBomb,
		})
		return true, g.emit(event.TypeProtectionActivated, "", event.ProtectionActivatedPayload{
			Target: wire.FromPosition(target),
		})
	}

	return false, g.resolveKill(actor, target, source)
}

// resolveKill closes a cell and settles the consequences: scoring by victim
// kind, identity reassignment for player victims, and the victim's own
// marker leaving the board.
func (g *Game) resolveKill(actor *Player, target grid.Position, source killSource) error {
	cell, err := g.cellAt(target)
	if err != nil {
		return err
	}
	occ := cell.Occupant()

	if occ.Kind != board.OccupantPlayer {
		// Faceless suspect or publicly cleared innocent: a civilian death.
		if err := cell.SetOccupant(board.Occupant{Kind: board.OccupantKilled}); err != nil {
			return err
		}
		g.scores[0]++
		return g.emit(event.TypeKilled, actor.id, event.KilledPayload{
			Position: wire.FromPosition(target),
			Scores:   g.scores,
		})
	}

	victim := g.playerByID(occ.PlayerID)
	if victim == nil {
		return apperrors.New(apperrors.CodeCorruptState,
			fmt.Sprintf("cell hosts unknown player %s", occ.PlayerID))
	}

	// A caught mafioso is arrested, not killed; bombs make no arrests.
	arrested := victim.role.Team() == role.TeamMafia &&
		source != sourceDetonate && source != sourceSelfDestruct
	kind := board.OccupantKilled
	if arrested {
		kind = board.OccupantArrested
	}
	if err := cell.SetOccupant(board.Occupant{Kind: kind}); err != nil {
		return err
	}

	switch {
	case arrested:
		g.scores[1]++
	case source == sourceSelfDestruct:
		// A self-destruct is an escape, not a score.
	case victim.role.Team() == role.TeamMafia:
		// Friendly fire by explosion scores for nobody.
	default:
		g.scores[0] += 2
	}

	newPos, err := g.reassign(victim)
	if err != nil {
		return err
	}
	g.stripOwnMarker(victim)

	identity := wire.FromPosition(newPos)
	if arrested {
		return g.emit(event.TypeArrested, actor.id, event.ArrestedPayload{
			Position:    wire.FromPosition(target),
			Role:        string(victim.role),
			NewIdentity: identity,
			Scores:      g.scores,
		})
	}
	return g.emit(event.TypeKilled, actor.id, event.KilledPayload{
		Position:    wire.FromPosition(target),
		NewIdentity: &identity,
		Scores:      g.scores,
	})
}

// reassign deals the victim a fresh identity from the evidence deck. Cards
// whose suspect is no longer an open faceless cell are discarded; an empty
// deck is a fatal invariant breach, sized so a full session never hits it.
func (g *Game) reassign(victim *Player) (grid.Position, error) {
	for {
		card, err := g.deck.Pop()
		if err != nil {
			return grid.Position{}, err
		}
		pos, ok := g.board.FindCharacter(card)
		if !ok {
			return grid.Position{}, apperrors.New(apperrors.CodeCorruptState,
				fmt.Sprintf("evidence card %q has no cell", card))
		}
		cell, err := g.cellAt(pos)
		if err != nil {
			return grid.Position{}, err
		}
		if cell.Occupant().Kind != board.OccupantSuspect {
			continue
		}
		if err := cell.SetOccupant(board.PlayerOccupant(victim.id)); err != nil {
			return grid.Position{}, err
		}
		return pos, nil
	}
}

// stripOwnMarker removes the victim's signature marker from the board, if
// their role owns one and it is out.
func (g *Game) stripOwnMarker(victim *Player) {
	marker := victim.role.Capabilities().OwnMarker
	if marker == "" {
		return
	}
	g.board.StripMarker(marker)
}
