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

// shift rotates a row or column. Everyone may shift; only fast-shift roles
// may move two cells at once. A shift that exactly undoes the previous one
// is forbidden.
func (g *Game) shift(actor *Player, act wire.Action) error {
	if err := requirePhase(actor, role.PhaseAction); err != nil {
		return err
	}
	dir, err := wire.ToDirection(act.Direction)
	if err != nil {
		return err
	}
	if act.Index < 0 || act.Index >= g.size {
		return apperrors.New(apperrors.CodeGridInvalidShift,
			fmt.Sprintf("shift index %d outside %dx%d board", act.Index, g.size, g.size))
	}
	count := 1
	if act.Fast {
		if !actor.role.Capabilities().FastShift {
			return apperrors.New(apperrors.CodeFastShiftNotPermitted,
				fmt.Sprintf("role %s cannot fast-shift", actor.role))
		}
		count = 2
	}
	if last := g.lastShift; last != nil &&
		last.index == act.Index && last.count == count && dir == last.dir.Reverse() {
		return apperrors.New(apperrors.CodeShiftUndoForbidden,
			"shift would undo the previous shift")
	}

	if err := g.board.Shift(dir, act.Index, count); err != nil {
		return err
	}
	g.lastShift = &shiftRecord{dir: dir, index: act.Index, count: count}

	if err := g.emit(event.TypeShifted, actor.id, event.ShiftedPayload{
		Direction: wire.FromDirection(dir),
		Index:     act.Index,
		Count:     count,
	}); err != nil {
		return err
	}
	return g.completeAction(actor)
}

// disarm lets any FBI player remove an adjacent bomb or threat marker.
func (g *Game) disarm(actor *Player, act wire.Action) error {
	if err := requireTeam(actor, role.TeamFBI); err != nil {
		return err
	}
	if err := requirePhase(actor, role.PhaseAction); err != nil {
		return err
	}
	marker, err := wire.ToMarker(act.Marker)
	if err != nil {
		return err
	}
	if marker == board.MarkerProtection {
		return apperrors.New(apperrors.CodeActionNotAllowed,
			"protection markers cannot be disarmed")
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
	if err := cell.RemoveMarker(marker); err != nil {
		return err
	}

	if err := g.emit(event.TypeDisarmed, actor.id, event.DisarmedPayload{
		Position: wire.FromPosition(target),
		Marker:   wire.FromMarker(marker),
	}); err != nil {
		return err
	}
	return g.completeAction(actor)
}

// accuse names a mafioso at a target cell. An adjacent accusation is open
// to the whole FBI; the three-cell orthogonal far accusation belongs to the
// Detective. A correct accusation on a bombed cell detours into the
// Bomber's self-destruct reaction before the arrest can land.
func (g *Game) accuse(actor *Player, act wire.Action, far bool) error {
	if far {
		if err := requireRole(actor, role.Detective); err != nil {
			return err
		}
	} else {
		if err := requireTeam(actor, role.TeamFBI); err != nil {
			return err
		}
	}
	if err := requirePhase(actor, role.PhaseAction); err != nil {
		return err
	}
	accused, err := role.Parse(act.Role)
	if err != nil {
		return err
	}
	if accused.Team() != role.TeamMafia {
		return apperrors.New(apperrors.CodeActionNotAllowed,
			fmt.Sprintf("%s is not a mafia role", accused))
	}
	target, err := g.requireTarget(act.Target)
	if err != nil {
		return err
	}
	pos, err := g.positionOf(actor)
	if err != nil {
		return err
	}
	var reach []grid.Position
	if far {
		reach = g.board.Orthogonal(pos, 3)
	} else {
		reach = g.board.Adjacent(pos)
	}
	if !containsPos(reach, target) {
		return apperrors.New(apperrors.CodeTargetNotReachable,
			fmt.Sprintf("cell (%d,%d) is out of accusation range", target.Row, target.Col))
	}
	cell, err := g.cellAt(target)
	if err != nil {
		return err
	}
	if !cell.Alive() {
		return apperrors.New(apperrors.CodeTargetClosed,
			fmt.Sprintf("cell (%d,%d) is closed", target.Row, target.Col))
	}
	if cell.Occupant().Kind == board.OccupantInnocent {
		return apperrors.New(apperrors.CodeTargetInnocent,
			fmt.Sprintf("cell (%d,%d) is publicly innocent", target.Row, target.Col))
	}
	accusedPlayer := g.playerByRole(accused)
	if accusedPlayer == nil {
		return apperrors.New(apperrors.CodeActionNotAllowed,
			fmt.Sprintf("role %s is not seated this game", accused))
	}

	accusedPos, err := g.positionOf(accusedPlayer)
	if err != nil {
		return err
	}
	if accusedPos != target {
		if err := g.emit(event.TypeUnsuccessfulAccused, actor.id, event.UnsuccessfulAccusedPayload{
			Target: wire.FromPosition(target),
			Role:   string(accused),
		}); err != nil {
			return err
		}
		return g.completeAction(actor)
	}

	if err := g.emit(event.TypeAccused, actor.id, event.AccusedPayload{
		Target: wire.FromPosition(target),
		Role:   string(accused),
	}); err != nil {
		return err
	}

	// A cornered mafioso on a bombed cell may still go out with a bang.
	if bomber := g.playerByRole(role.Bomber); bomber != nil && cell.HasMarker(board.MarkerBomb) {
		g.pushReaction(reaction{
			kind:           reactionSelfDestruct,
			playerID:       bomber.id,
			resumePlayerID: actor.id,
			resumePhase:    actor.phase,
			target:         target,
			accusedRole:    accused,
		})
		return nil
	}
	return g.arrest(actor, target, accusedPlayer)
}

// arrest closes the accused's cell, scores for the FBI, and deals the
// mafioso a fresh identity.
func (g *Game) arrest(actor *Player, target grid.Position, accused *Player) error {
	cell, err := g.cellAt(target)
	if err != nil {
		return err
	}
	if err := cell.SetOccupant(board.Occupant{Kind: board.OccupantArrested}); err != nil {
		return err
	}
	g.scores[1]++

	newPos, err := g.reassign(accused)
	if err != nil {
		return err
	}
	g.stripOwnMarker(accused)

	if err := g.emit(event.TypeArrested, actor.id, event.ArrestedPayload{
		Position:    wire.FromPosition(target),
		Role:        string(accused.role),
		NewIdentity: wire.FromPosition(newPos),
		Scores:      g.scores,
	}); err != nil {
		return err
	}
	return g.completeAction(actor)
}

func containsPos(ps []grid.Position, p grid.Position) bool {
	for _, q := range ps {
		if q == p {
			return true
		}
	}
	return false
}
