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

// knifeKill is the Killer's adjacent stab.
func (g *Game) knifeKill(actor *Player, act wire.Action) error {
	if err := requireRole(actor, role.Killer); err != nil {
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

	suspended, err := g.tryKill(actor, target, sourceKnife, false)
	if err != nil {
		return err
	}
	if suspended {
		return nil
	}
	return g.completeAction(actor)
}

// swapSuspects exchanges two mutually adjacent open cells, markers and
// occupants included.
func (g *Game) swapSuspects(actor *Player, act wire.Action) error {
	if err := requireRole(actor, role.Killer); err != nil {
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
	if first == second || !g.adjacentTo(first, second) {
		return apperrors.New(apperrors.CodeTargetNotReachable,
			"swap requires two distinct adjacent cells")
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

	if err := g.board.Swap(first, second); err != nil {
		return err
	}
	if err := g.emit(event.TypeSuspectsSwapped, actor.id, event.SuspectsSwappedPayload{
		First:  wire.FromPosition(first),
		Second: wire.FromPosition(second),
	}); err != nil {
		return err
	}
	return g.completeAction(actor)
}

// placeThreat is the Psycho's end-of-turn threat drop on an adjacent cell.
// The threat fires at the top of the Psycho's next turn.
func (g *Game) placeThreat(actor *Player, act wire.Action) error {
	if err := requireRole(actor, role.Psycho); err != nil {
		return err
	}
	if err := requirePhase(actor, role.PhasePlace); err != nil {
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
	if err := cell.AddMarker(board.MarkerThreat); err != nil {
		return err
	}

	if err := g.emit(event.TypeThreatPlaced, actor.id, event.MarkerPlacedPayload{
		Position: wire.FromPosition(target),
	}); err != nil {
		return err
	}
	return g.completeAction(actor)
}

// placeBomb plants the Bomber's charge on an adjacent open cell. The bomb
// sits inert until detonated, disarmed, or inherited by a kill.
func (g *Game) placeBomb(actor *Player, act wire.Action) error {
	if err := requireRole(actor, role.Bomber); err != nil {
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
	if !cell.Alive() {
		return apperrors.New(apperrors.CodeTargetClosed,
			fmt.Sprintf("cell (%d,%d) is closed", target.Row, target.Col))
	}
	if err := cell.AddMarker(board.MarkerBomb); err != nil {
		return err
	}

	if err := g.emit(event.TypeBombPlaced, actor.id, event.MarkerPlacedPayload{
		Position: wire.FromPosition(target),
	}); err != nil {
		return err
	}
	return g.completeAction(actor)
}

// detonateBomb sets off a planted bomb from anywhere, or continues an open
// chain by blowing one of its targets. A chained cell need not carry a bomb
// itself, but only bombed cells extend the chain further.
func (g *Game) detonateBomb(actor *Player, act wire.Action) error {
	if err := requireRole(actor, role.Bomber); err != nil {
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

	if len(g.chain) > 0 {
		if !containsPos(g.chain, target) {
			return apperrors.New(apperrors.CodeTargetNotReachable,
				fmt.Sprintf("cell (%d,%d) is not in the blast radius", target.Row, target.Col))
		}
	} else {
		if err := requirePhase(actor, role.PhaseAction); err != nil {
			return err
		}
		if !cell.HasMarker(board.MarkerBomb) {
			return apperrors.New(apperrors.CodeSuspectMarkerAbsent,
				fmt.Sprintf("cell (%d,%d) bears no bomb", target.Row, target.Col))
		}
	}
	if !cell.Alive() {
		return apperrors.New(apperrors.CodeTargetClosed,
			fmt.Sprintf("cell (%d,%d) is closed", target.Row, target.Col))
	}

	boreBomb := cell.HasMarker(board.MarkerBomb)
	if boreBomb {
		if err := cell.RemoveMarker(board.MarkerBomb); err != nil {
			return err
		}
	}

	suspended, err := g.tryKill(actor, target, sourceDetonate, boreBomb)
	if err != nil {
		return err
	}
	if suspended {
		return nil
	}
	return g.afterDetonation(actor, target, boreBomb)
}

// afterDetonation settles what an explosion leaves behind: a bombed cell
// opens a chain onto its live neighbors, otherwise the chain (and any
// chain reaction) winds down.
func (g *Game) afterDetonation(actor *Player, target grid.Position, boreBomb bool) error {
	if boreBomb {
		if next := g.aliveAdjacent(target); len(next) > 0 {
			g.chain = next
			return nil
		}
	}
	g.chain = nil

	if r := g.topReaction(); r != nil && r.kind == reactionChain && r.playerID == actor.id {
		done := g.popReaction()
		resume := g.playerByID(done.resumePlayerID)
		resume.phase = done.resumePhase
		return g.completeAction(resume)
	}
	return g.completeAction(actor)
}

// selfDestruct blows the Bomber's cover. Voluntarily it destroys the
// Bomber's own cell; as a reaction to a correct accusation it destroys the
// accused's bombed cell before the arrest can land. Either way nobody
// scores and the blast may chain.
func (g *Game) selfDestruct(actor *Player) error {
	if r := g.topReaction(); r != nil && r.kind == reactionSelfDestruct {
		rec := g.popReaction()
		if err := g.emit(event.TypeSelfDestructionActivated, actor.id,
			event.SelfDestructionActivatedPayload{Position: wire.FromPosition(rec.target)}); err != nil {
			return err
		}
		cell, err := g.cellAt(rec.target)
		if err != nil {
			return err
		}
		if cell.HasMarker(board.MarkerBomb) {
			if err := cell.RemoveMarker(board.MarkerBomb); err != nil {
				return err
			}
		}
		if err := g.resolveKill(actor, rec.target, sourceSelfDestruct); err != nil {
			return err
		}
		if next := g.aliveAdjacent(rec.target); len(next) > 0 {
			g.chain = next
			g.pushReaction(reaction{
				kind:           reactionChain,
				playerID:       actor.id,
				resumePlayerID: rec.resumePlayerID,
				resumePhase:    rec.resumePhase,
			})
			return nil
		}
		resume := g.playerByID(rec.resumePlayerID)
		resume.phase = rec.resumePhase
		return g.completeAction(resume)
	}

	if err := requireRole(actor, role.Bomber); err != nil {
		return err
	}
	if err := requirePhase(actor, role.PhaseAction); err != nil {
		return err
	}
	pos, err := g.positionOf(actor)
	if err != nil {
		return err
	}
	if err := g.emit(event.TypeSelfDestructionActivated, actor.id,
		event.SelfDestructionActivatedPayload{Position: wire.FromPosition(pos)}); err != nil {
		return err
	}
	cell, err := g.cellAt(pos)
	if err != nil {
		return err
	}
	if cell.HasMarker(board.MarkerBomb) {
		if err := cell.RemoveMarker(board.MarkerBomb); err != nil {
			return err
		}
	}
	if err := g.resolveKill(actor, pos, sourceSelfDestruct); err != nil {
		return err
	}
	if next := g.aliveAdjacent(pos); len(next) > 0 {
		g.chain = next
		return nil
	}
	return g.completeAction(actor)
}

// stopDetonation ends a chain, or declines the self-destruct offer and lets
// the suspended arrest land.
func (g *Game) stopDetonation(actor *Player) error {
	if r := g.topReaction(); r != nil {
		rec := g.popReaction()
		switch rec.kind {
		case reactionSelfDestruct:
			accuser := g.playerByID(rec.resumePlayerID)
			accuser.phase = rec.resumePhase
			accused := g.playerByRole(rec.accusedRole)
			if accused == nil {
				return apperrors.New(apperrors.CodeCorruptState,
					fmt.Sprintf("accused role %s vanished from the roster", rec.accusedRole))
			}
			return g.arrest(accuser, rec.target, accused)
		case reactionChain:
			g.chain = nil
			resume := g.playerByID(rec.resumePlayerID)
			resume.phase = rec.resumePhase
			return g.completeAction(resume)
		}
		return apperrors.New(apperrors.CodeCorruptState, "unresolvable reaction on the stack")
	}

	if len(g.chain) == 0 {
		return apperrors.New(apperrors.CodeNoChainTargets, "no chain detonation to stop")
	}
	g.chain = nil
	return g.completeAction(actor)
}

// setupScope places the Sniper's scope anywhere on the board, spending the
// turn. The following turn may fire along the scope's diagonals.
func (g *Game) setupScope(actor *Player, act wire.Action) error {
	if err := requireRole(actor, role.Sniper); err != nil {
		return err
	}
	if err := requirePhase(actor, role.PhaseAction); err != nil {
		return err
	}
	target, err := g.requireTarget(act.Target)
	if err != nil {
		return err
	}
	g.scope = &target

	if err := g.emit(event.TypeMarkerMoved, actor.id, event.MarkerMovedPayload{
		Position: wire.FromPosition(target),
	}); err != nil {
		return err
	}
	return g.completeAction(actor)
}

// snipeKill fires at a cell within three diagonal steps of the placed
// scope. The scope is consumed by the shot, protected or not.
func (g *Game) snipeKill(actor *Player, act wire.Action) error {
	if err := requireRole(actor, role.Sniper); err != nil {
		return err
	}
	if err := requirePhase(actor, role.PhaseAction); err != nil {
		return err
	}
	if g.scope == nil {
		return apperrors.New(apperrors.CodeScopeNotSet, "no scope has been set up")
	}
	target, err := g.requireTarget(act.Target)
	if err != nil {
		return err
	}
	if !containsPos(g.board.Diagonal(*g.scope, 3), target) {
		return apperrors.New(apperrors.CodeTargetNotReachable,
			fmt.Sprintf("cell (%d,%d) is off the scope's diagonals", target.Row, target.Col))
	}
	cell, err := g.cellAt(target)
	if err != nil {
		return err
	}
	if !cell.Alive() {
		return apperrors.New(apperrors.CodeTargetClosed,
			fmt.Sprintf("cell (%d,%d) is closed", target.Row, target.Col))
	}
	g.scope = nil

	suspended, err := g.tryKill(actor, target, sourceSnipe, false)
	if err != nil {
		return err
	}
	if suspended {
		return nil
	}
	return g.completeAction(actor)
}

// aliveAdjacent returns the open neighbors of p.
func (g *Game) aliveAdjacent(p grid.Position) []grid.Position {
	var out []grid.Position
	for _, q := range g.board.Adjacent(p) {
		cell, err := g.cellAt(q)
		if err != nil {
			continue
		}
		if cell.Alive() {
			out = append(out, q)
		}
	}
	return out
}
