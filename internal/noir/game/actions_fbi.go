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

// disguise slips the Undercover onto an adjacent faceless cell. Observers
// learn only the vacated cell; the destination stays secret.
func (g *Game) disguise(actor *Player, act wire.Action) error {
	if err := requireRole(actor, role.Undercover); err != nil {
		return err
	}
	if err := requirePhase(actor, role.PhaseAction); err != nil {
		return err
	}
	target, err := g.requireTarget(act.Target)
	if err != nil {
		return err
	}
	pos, err := g.positionOf(actor)
	if err != nil {
		return err
	}
	if !g.adjacentTo(pos, target) {
		return apperrors.New(apperrors.CodeTargetNotReachable,
			fmt.Sprintf("cell (%d,%d) is not adjacent", target.Row, target.Col))
	}
	cell, err := g.cellAt(target)
	if err != nil {
		return err
	}
	switch cell.Occupant().Kind {
	case board.OccupantSuspect:
	case board.OccupantInnocent:
		return apperrors.New(apperrors.CodeTargetInnocent,
			fmt.Sprintf("cell (%d,%d) is publicly innocent", target.Row, target.Col))
	case board.OccupantArrested, board.OccupantKilled:
		return apperrors.New(apperrors.CodeTargetClosed,
			fmt.Sprintf("cell (%d,%d) is closed", target.Row, target.Col))
	default:
		return apperrors.New(apperrors.CodeActionNotAllowed,
			fmt.Sprintf("cell (%d,%d) is unavailable", target.Row, target.Col))
	}

	own, err := g.cellAt(pos)
	if err != nil {
		return err
	}
	if err := own.SetOccupant(board.Faceless()); err != nil {
		return err
	}
	if err := cell.SetOccupant(board.PlayerOccupant(actor.id)); err != nil {
		return err
	}

	if err := g.emit(event.TypeDisguised, actor.id, event.DisguisedPayload{
		Vacated: wire.FromPosition(pos),
	}); err != nil {
		return err
	}
	return g.completeAction(actor)
}

// autopsy examines an adjacent killed cell and publishes its character.
func (g *Game) autopsy(actor *Player, act wire.Action) error {
	if err := requireRole(actor, role.Detective); err != nil {
		return err
	}
	if err := requirePhase(actor, role.PhaseAction); err != nil {
		return err
	}
	target, err := g.requireTarget(act.Target)
	if err != nil {
		return err
	}
	pos, err := g.positionOf(actor)
	if err != nil {
		return err
	}
	if !g.adjacentTo(pos, target) {
		return apperrors.New(apperrors.CodeTargetNotReachable,
			fmt.Sprintf("cell (%d,%d) is not adjacent", target.Row, target.Col))
	}
	cell, err := g.cellAt(target)
	if err != nil {
		return err
	}
	if cell.Occupant().Kind != board.OccupantKilled {
		return apperrors.New(apperrors.CodeActionNotAllowed,
			fmt.Sprintf("cell (%d,%d) holds no body to examine", target.Row, target.Col))
	}

	if err := g.emit(event.TypeAutopsyCanvased, actor.id, event.AutopsyCanvasedPayload{
		Position:  wire.FromPosition(target),
		Character: cell.Character(),
	}); err != nil {
		return err
	}
	return g.completeAction(actor)
}

// pickInnocents records the Detective's pair of cells for a later canvas.
func (g *Game) pickInnocents(actor *Player, act wire.Action) error {
	if err := requireRole(actor, role.Detective); err != nil {
		return err
	}
	if err := requirePhase(actor, role.PhaseAction); err != nil {
		return err
	}
	first, err := g.requireTarget(act.Target)
	if err != nil {
		return err
	}
	second, err := g.requireTarget(act.Second)
	if err != nil {
		return err
	}
	if first == second {
		return apperrors.New(apperrors.CodeTargetNotReachable,
			"canvas requires two distinct cells")
	}
	for _, p := range []grid.Position{first, second} {
		cell, err := g.cellAt(p)
		if err != nil {
			return err
		}
		if !cell.Alive() {
			return apperrors.New(apperrors.CodeTargetClosed,
				fmt.Sprintf("cell (%d,%d) is closed", p.Row, p.Col))
		}
	}
	g.canvasPair = []grid.Position{first, second}

	if err := g.emit(event.TypeInnocentsForCanvasPicked, actor.id, event.InnocentsForCanvasPickedPayload{
		First:  wire.FromPosition(first),
		Second: wire.FromPosition(second),
	}); err != nil {
		return err
	}
	return g.completeAction(actor)
}

// canvas clears the previously picked pair: picked cells that are still
// open faceless suspects become publicly innocent. Cells that gained an
// occupant or closed since the pick are skipped without comment.
func (g *Game) canvas(actor *Player) error {
	if err := requireRole(actor, role.Detective); err != nil {
		return err
	}
	if err := requirePhase(actor, role.PhaseAction); err != nil {
		return err
	}
	if len(g.canvasPair) == 0 {
		return apperrors.New(apperrors.CodeCanvasPairNotPicked,
			"no cells have been picked for canvasing")
	}

	var cleared []grid.Position
	for _, p := range g.canvasPair {
		cell, err := g.cellAt(p)
		if err != nil {
			return err
		}
		if cell.Occupant().Kind != board.OccupantSuspect {
			continue
		}
		if err := cell.SetOccupant(board.Occupant{Kind: board.OccupantInnocent}); err != nil {
			return err
		}
		cleared = append(cleared, p)
	}
	g.canvasPair = nil

	if err := g.emit(event.TypeAllCanvased, actor.id, event.AllCanvasedPayload{
		Cleared: wire.FromPositions(cleared),
	}); err != nil {
		return err
	}
	return g.completeAction(actor)
}

// placeProtection puts the Suit's single guard marker on an open cell
// sharing the Suit's row or column.
func (g *Game) placeProtection(actor *Player, act wire.Action) error {
	if err := requireRole(actor, role.Suit); err != nil {
		return err
	}
	if err := requirePhase(actor, role.PhaseProtection); err != nil {
		return err
	}
	target, err := g.requireTarget(act.Target)
	if err != nil {
		return err
	}
	onBoard := g.board.Count(func(_ grid.Position, s *board.Suspect) bool {
		return s.HasMarker(board.MarkerProtection)
	})
	if onBoard > 0 {
		return apperrors.New(apperrors.CodeSuspectMarkerPresent,
			"a protection marker is already on the board")
	}
	pos, err := g.positionOf(actor)
	if err != nil {
		return err
	}
	if pos.Row != target.Row && pos.Col != target.Col {
		return apperrors.New(apperrors.CodeProtectOutOfReach,
			fmt.Sprintf("cell (%d,%d) shares no row or column with the suit", target.Row, target.Col))
	}
	cell, err := g.cellAt(target)
	if err != nil {
		return err
	}
	if err := cell.AddMarker(board.MarkerProtection); err != nil {
		return err
	}

	if err := g.emit(event.TypeProtectionPlaced, actor.id, event.MarkerPlacedPayload{
		Position: wire.FromPosition(target),
	}); err != nil {
		return err
	}
	return g.completeAction(actor)
}

// removeProtection picks the guard marker back up at the start of the
// Suit's turn, freeing it for replacement.
func (g *Game) removeProtection(actor *Player, act wire.Action) error {
	if err := requireRole(actor, role.Suit); err != nil {
		return err
	}
	if err := requirePhase(actor, role.PhaseMarker); err != nil {
		return err
	}
	target, err := g.requireTarget(act.Target)
	if err != nil {
		return err
	}
	cell, err := g.cellAt(target)
	if err != nil {
		return err
	}
	if err := cell.RemoveMarker(board.MarkerProtection); err != nil {
		return err
	}

	if err := g.emit(event.TypeProtectionRemoved, actor.id, event.ProtectionRemovedPayload{
		Position: wire.FromPosition(target),
	}); err != nil {
		return err
	}
	return g.completeAction(actor)
}

// decideProtect resolves a suspended kill. Protecting requires the Suit to
// share a row or column with the threatened cell and cancels the kill,
// restoring the attacker's phase; declining lets the kill resolve.
func (g *Game) decideProtect(actor *Player, act wire.Action) error {
	rec := *g.topReaction()

	if act.Protect {
		pos, err := g.positionOf(actor)
		if err != nil {
			return err
		}
		if pos.Row != rec.target.Row && pos.Col != rec.target.Col {
			return apperrors.New(apperrors.CodeProtectOutOfReach,
				fmt.Sprintf("cell (%d,%d) shares no row or column with the suit",
					rec.target.Row, rec.target.Col))
		}
		g.popReaction()
		if err := g.emit(event.TypeProtectDecided, actor.id, event.ProtectDecidedPayload{
			Protected: true,
		}); err != nil {
			return err
		}
		resume := g.playerByID(rec.resumePlayerID)
		resume.phase = rec.resumePhase
		if rec.source == sourceThreat {
			return g.processThreats()
		}
		return nil
	}

	g.popReaction()
	if err := g.emit(event.TypeProtectDecided, actor.id, event.ProtectDecidedPayload{
		Protected: false,
	}); err != nil {
		return err
	}
	attacker := g.playerByID(rec.resumePlayerID)
	if err := g.resolveKill(attacker, rec.target, rec.source); err != nil {
		return err
	}
	switch rec.source {
	case sourceThreat:
		return g.processThreats()
	case sourceDetonate, sourceSelfDestruct:
		attacker.phase = rec.resumePhase
		return g.afterDetonation(attacker, rec.target, rec.boreBomb)
	default:
		attacker.phase = rec.resumePhase
		return g.completeAction(attacker)
	}
}

// profile draws the top evidence card. If the drawn character's cell is
// still an open faceless suspect it is publicly cleared.
func (g *Game) profile(actor *Player) error {
	if err := requireRole(actor, role.Profiler); err != nil {
		return err
	}
	if err := requirePhase(actor, role.PhaseAction); err != nil {
		return err
	}
	if g.deck.Len() == 0 {
		return apperrors.New(apperrors.CodeActionNotAllowed, "no evidence remains to profile")
	}

	card, err := g.deck.Pop()
	if err != nil {
		return err
	}
	pos, ok := g.board.FindCharacter(card)
	if !ok {
		return apperrors.New(apperrors.CodeCorruptState,
			fmt.Sprintf("evidence card %q has no cell", card))
	}
	cell, err := g.cellAt(pos)
	if err != nil {
		return err
	}
	var clearedPt *wire.Point
	if cell.Occupant().Kind == board.OccupantSuspect {
		if err := cell.SetOccupant(board.Occupant{Kind: board.OccupantInnocent}); err != nil {
			return err
		}
		pt := wire.FromPosition(pos)
		clearedPt = &pt
	}
	g.evidence = append(g.evidence, card)

	if err := g.emit(event.TypeProfiled, actor.id, event.ProfiledPayload{
		Character: card,
		Cleared:   clearedPt,
	}); err != nil {
		return err
	}
	return g.completeAction(actor)
}
