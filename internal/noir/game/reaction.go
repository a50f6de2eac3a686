package game

import (
	"github.com/louisbranch/noir/internal/noir/grid"
	"github.com/louisbranch/noir/internal/noir/role"
)

// reactionKind tags the interrupt sub-turn union.
type reactionKind int

const (
	// reactionProtect waits for the Suit's decideProtect on a suspended kill.
	reactionProtect reactionKind = iota
	// reactionSelfDestruct offers the Bomber a self-destruct before an
	// accusation's arrest resolves.
	reactionSelfDestruct
	// reactionChain keeps the Bomber detonating after an accusation detour
	// turned into an explosion.
	reactionChain
)

// killSource tags what kind of resolution a suspended kill resumes into.
type killSource int

const (
	sourceKnife killSource = iota
	sourceSnipe
	sourceThreat
	sourceDetonate
	sourceSelfDestruct
)

// reaction is an explicit continuation record: who reacts, what suspended,
// and the exact phase the interrupted player resumes into. Reactions are a
// stack; only the top reactor may act.
type reaction struct {
	kind     reactionKind
	playerID string

	// resume restores the interrupted player once the reaction resolves.
	resumePlayerID string
	resumePhase    int

	// target is the cell the suspended resolution operates on.
	target grid.Position
	// source tags the suspended kill for reactionProtect.
	source killSource
	// boreBomb remembers whether the suspended kill's target carried a
	// bomb, which decides chain continuation after the protection call.
	boreBomb bool
	// accusedRole is the mafioso named by the suspended accusation, for
	// reactionSelfDestruct.
	accusedRole role.Role
}

func (g *Game) pushReaction(r reaction) {
	g.reactions = append(g.reactions, r)
}

func (g *Game) topReaction() *reaction {
	if len(g.reactions) == 0 {
		return nil
	}
	return &g.reactions[len(g.reactions)-1]
}

func (g *Game) popReaction() reaction {
	top := g.reactions[len(g.reactions)-1]
	g.reactions = g.reactions[:len(g.reactions)-1]
	return top
}
