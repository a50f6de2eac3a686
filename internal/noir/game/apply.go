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

// Apply validates and executes one action, returning the events it fired in
// order. A rejected action leaves the game unchanged: every handler
// validates fully before its first mutation, and buffered events are
// discarded on failure.
func (g *Game) Apply(actorID string, act wire.Action) ([]event.Event, error) {
	g.pending = nil
	if err := g.apply(actorID, act); err != nil {
		g.pending = nil
		return nil, err
	}
	events := g.pending
	g.pending = nil
	return events, nil
}

// Abort force-terminates a running session with no winner. Only an operator
// or an escalation path calls this; it is not a player action and never
// enters the action journal.
func (g *Game) Abort(reason string) ([]event.Event, error) {
	if g.status != StatusPlaying {
		return nil, apperrors.New(apperrors.CodeGameCompleted,
			fmt.Sprintf("game is %s", g.status))
	}
	g.pending = nil
	g.status = StatusAborted
	if err := g.emit(event.TypeGameAborted, "", event.GameAbortedPayload{Reason: reason}); err != nil {
		g.pending = nil
		return nil, err
	}
	events := g.pending
	g.pending = nil
	return events, nil
}

// apply is the closed dispatch over the action union. Unhandled action
// types fail loudly; there is no dynamic handler lookup.
func (g *Game) apply(actorID string, act wire.Action) error {
	if g.status != StatusPlaying {
		return apperrors.New(apperrors.CodeGameCompleted,
			fmt.Sprintf("game is %s", g.status))
	}
	if !act.Type.IsValid() {
		return apperrors.New(apperrors.CodeWireUnknownAction,
			fmt.Sprintf("unknown action type %q", act.Type))
	}

	actor := g.playerByID(actorID)
	if actor == nil {
		return apperrors.New(apperrors.CodeNotYourTurn,
			fmt.Sprintf("unknown actor %s", actorID))
	}

	// The reaction stack outranks the turn pointer: while a reaction is
	// pending only the top reactor may act, and only with the actions
	// that resolve the reaction.
	if r := g.topReaction(); r != nil {
		if r.playerID != actorID {
			return apperrors.New(apperrors.CodeReactionPending,
				fmt.Sprintf("waiting for reaction from %s", r.playerID))
		}
		if !reactionAllows(r.kind, act.Type) {
			return apperrors.New(apperrors.CodeActionNotAllowed,
				fmt.Sprintf("%s cannot resolve the pending reaction", act.Type))
		}
	} else {
		if g.CurrentPlayer().ID() != actorID {
			return apperrors.New(apperrors.CodeNotYourTurn,
				fmt.Sprintf("turn belongs to %s", g.CurrentPlayer().ID()))
		}
		// Mid-chain the Bomber must keep detonating or stop.
		if len(g.chain) > 0 && act.Type != wire.ActionDetonateBomb && act.Type != wire.ActionStopDetonation {
			return apperrors.New(apperrors.CodeActionNotAllowed,
				"chain detonation in progress")
		}
	}

	switch act.Type {
	case wire.ActionShift:
		return g.shift(actor, act)
	case wire.ActionCollapse:
		// Deliberately unimplemented: the collapse rules are an open
		// design gap upstream, so the action parses but always rejects.
		return apperrors.New(apperrors.CodeActionNotImplemented, "collapse is not implemented")
	case wire.ActionDisarm:
		return g.disarm(actor, act)
	case wire.ActionAccuse:
		return g.accuse(actor, act, false)
	case wire.ActionFarAccuse:
		return g.accuse(actor, act, true)
	case wire.ActionKnifeKill:
		return g.knifeKill(actor, act)
	case wire.ActionSwapSuspects:
		return g.swapSuspects(actor, act)
	case wire.ActionPlaceThreat:
		return g.placeThreat(actor, act)
	case wire.ActionPlaceBomb:
		return g.placeBomb(actor, act)
	case wire.ActionDetonateBomb:
		return g.detonateBomb(actor, act)
	case wire.ActionSelfDestruct:
		return g.selfDestruct(actor)
	case wire.ActionStopDetonation:
		return g.stopDetonation(actor)
	case wire.ActionSnipeKill:
		return g.snipeKill(actor, act)
	case wire.ActionSetup:
		return g.setupScope(actor, act)
	case wire.ActionDisguise:
		return g.disguise(actor, act)
	case wire.ActionAutopsy:
		return g.autopsy(actor, act)
	case wire.ActionPickInnocents:
		return g.pickInnocents(actor, act)
	case wire.ActionCanvas:
		return g.canvas(actor)
	case wire.ActionPlaceProtect:
		return g.placeProtection(actor, act)
	case wire.ActionRemoveProtect:
		return g.removeProtection(actor, act)
	case wire.ActionDecideProtect:
		return g.decideProtect(actor, act)
	case wire.ActionProfile:
		return g.profile(actor)
	default:
		return apperrors.New(apperrors.CodeWireUnknownAction,
			fmt.Sprintf("unhandled action type %q", act.Type))
	}
}

// reactionAllows reports which actions may resolve a pending reaction.
func reactionAllows(kind reactionKind, t wire.ActionType) bool {
	switch kind {
	case reactionProtect:
		return t == wire.ActionDecideProtect
	case reactionSelfDestruct:
		return t == wire.ActionSelfDestruct || t == wire.ActionStopDetonation
	case reactionChain:
		return t == wire.ActionDetonateBomb || t == wire.ActionStopDetonation
	}
	return false
}

// emit buffers an event for the action being applied.
func (g *Game) emit(t event.Type, actorID string, payload any) error {
	actorType := event.ActorTypePlayer
	if actorID == "" {
		actorType = event.ActorTypeSystem
	}
	evt, err := event.New(g.id, t, actorType, actorID, payload)
	if err != nil {
		return err
	}
	g.pending = append(g.pending, evt)
	return nil
}

// requireRole rejects actors whose role is not among the allowed ones.
func requireRole(actor *Player, allowed ...role.Role) error {
	for _, r := range allowed {
		if actor.role == r {
			return nil
		}
	}
	return apperrors.New(apperrors.CodeActionNotAllowed,
		fmt.Sprintf("role %s may not perform this action", actor.role))
}

// requireTeam rejects actors outside the given team.
func requireTeam(actor *Player, team role.Team) error {
	if actor.role.Team() != team {
		return apperrors.New(apperrors.CodeActionNotAllowed,
			fmt.Sprintf("team %s may not perform this action", actor.role.Team()))
	}
	return nil
}

// requirePhase rejects actions attempted outside their phase.
func requirePhase(actor *Player, ph role.Phase) error {
	if actor.Phase() != ph {
		return apperrors.New(apperrors.CodeWrongPhase,
			fmt.Sprintf("action requires phase %s, current is %s", ph, actor.Phase()))
	}
	return nil
}

// requireTarget extracts and bounds-checks the primary target. A missing or
// off-board target is an ordinary rejection at this layer, not an invariant
// violation.
func (g *Game) requireTarget(pt *wire.Point) (grid.Position, error) {
	if pt == nil {
		return grid.Position{}, apperrors.New(apperrors.CodeTargetNotReachable,
			"target position is required")
	}
	pos := wire.ToPosition(*pt)
	if !g.board.Contains(pos) {
		return grid.Position{}, apperrors.New(apperrors.CodeTargetNotReachable,
			fmt.Sprintf("position (%d,%d) is off the board", pos.Row, pos.Col))
	}
	return pos, nil
}

// cellAt fetches a validated cell.
func (g *Game) cellAt(pos grid.Position) (*board.Suspect, error) {
	return g.board.At(pos)
}

// adjacentTo reports whether target is a king-move neighbor of from.
func (g *Game) adjacentTo(from, target grid.Position) bool {
	for _, p := range g.board.Adjacent(from) {
		if p == target {
			return true
		}
	}
	return false
}

// completeAction advances the actor's phase and closes the turn when the
// phase list is exhausted.
func (g *Game) completeAction(actor *Player) error {
	actor.phase++
	if actor.turnDone() {
		return g.endTurn()
	}
	return nil
}

// endTurn runs the win check and either completes the session or passes the
// turn to the next player in fixed rotation order.
func (g *Game) endTurn() error {
	if winner := g.checkWin(); winner != WinnerNone {
		g.status = StatusCompleted
		g.winner = winner
		return g.emit(event.TypeComplete, "", event.CompletePayload{
			Winner: string(winner),
			Scores: g.scores,
		})
	}
	g.lastTurnCleanup()
	g.turn = (g.turn + 1) % len(g.players)
	return g.initTurn()
}

// lastTurnCleanup resets per-turn auxiliary state.
func (g *Game) lastTurnCleanup() {
	g.chain = nil
}

// checkWin is monotonic and idempotent: scores never decrease, so once a
// threshold is met the same winner is reported on every call.
func (g *Game) checkWin() Winner {
	mafia := g.scores[0] >= g.winMafia
	fbi := g.scores[1] >= g.winFBI
	switch {
	case mafia && fbi:
		return WinnerDraw
	case mafia:
		return WinnerMafia
	case fbi:
		return WinnerFBI
	default:
		return WinnerNone
	}
}

// initTurn starts the current player's turn: announce it, reset the phase
// cursor, and run role-specific turn-start effects.
func (g *Game) initTurn() error {
	p := g.CurrentPlayer()
	p.phase = 0
	if err := g.emit(event.TypeTurnChanged, "", event.TurnChangedPayload{
		PlayerID: p.id,
		Role:     string(p.role),
	}); err != nil {
		return err
	}

	switch p.role {
	case role.Psycho:
		// Threats placed on earlier turns resolve at the top of the
		// Psycho's turn, before any other action.
		g.threatQueue = g.board.Filter(func(_ grid.Position, s *board.Suspect) bool {
			return s.HasMarker(board.MarkerThreat)
		})
		return g.processThreats()
	case role.Suit:
		// The marker phase only exists while a protection marker is out.
		onBoard := g.board.Count(func(_ grid.Position, s *board.Suspect) bool {
			return s.HasMarker(board.MarkerProtection)
		})
		if onBoard == 0 {
			p.phase = p.phaseIndexOf(role.PhaseAction)
		}
	}
	return nil
}

// processThreats resolves the Psycho's queued threat kills one at a time.
// A protection detour suspends the loop; decideProtect resumes it.
func (g *Game) processThreats() error {
	psycho := g.playerByRole(role.Psycho)
	for len(g.threatQueue) > 0 {
		target := g.threatQueue[0]
		g.threatQueue = g.threatQueue[1:]

		cell, err := g.cellAt(target)
		if err != nil {
			return err
		}
		if !cell.Alive() {
			continue
		}
		// The threat fires regardless of the outcome.
		if err := cell.RemoveMarker(board.MarkerThreat); err != nil {
			return err
		}
		suspended, err := g.tryKill(psycho, target, sourceThreat, false)
		if err != nil {
			return err
		}
		if suspended {
			return nil
		}
	}
	psycho.phase = psycho.phaseIndexOf(role.PhaseAction)
	return nil
}
