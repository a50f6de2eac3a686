// Package game implements the Noir rules engine: the arena, the per-role
// action contracts, the turn and reaction state machines, and win
// resolution. The engine is single-threaded and synchronous; callers own
// exclusivity per game instance.
package game

import (
	"fmt"
	"math/rand"

	apperrors "github.com/louisbranch/noir/internal/errors"
	"github.com/louisbranch/noir/internal/noir/board"
	"github.com/louisbranch/noir/internal/noir/character"
	"github.com/louisbranch/noir/internal/noir/event"
	"github.com/louisbranch/noir/internal/noir/grid"
	"github.com/louisbranch/noir/internal/noir/role"
)

// Status is the lifecycle state of a Play session.
type Status string

const (
	// StatusPlaying accepts actions.
	StatusPlaying Status = "playing"
	// StatusCompleted is terminal; every action is rejected.
	StatusCompleted Status = "completed"
	// StatusAborted is terminal; the session was force-aborted before a win.
	StatusAborted Status = "aborted"
)

// Winner tags the outcome of a completed game.
type Winner string

const (
	WinnerNone  Winner = ""
	WinnerMafia Winner = "mafia"
	WinnerFBI   Winner = "fbi"
	WinnerDraw  Winner = "draw"
)

// Seat pairs a participant identity with their chosen role.
type Seat struct {
	PlayerID string
	Role     role.Role
}

// Snapshot is the minimal state needed to reconstruct a game's initial
// arena deterministically: the same seed and roster reproduce the same
// shuffle, deal, and placement.
type Snapshot struct {
	GameID string
	Seed   int64
	Seats  []Seat
}

// shiftRecord remembers the last shift for the anti-undo rule.
type shiftRecord struct {
	dir   grid.Direction
	index int
	count int
}

// Game is the aggregate root of a Play session.
type Game struct {
	id      string
	seed    int64
	size    int
	board   *board.Board
	players []*Player
	deck    *character.Deck
	scores  [2]int // [mafia, fbi]
	status  Status
	winner  Winner

	winMafia int
	winFBI   int

	turn      int
	reactions []reaction
	lastShift *shiftRecord

	// Per-role auxiliary state.
	threatQueue []grid.Position   // Psycho kills pending at turn start
	scope       *grid.Position    // Sniper's placed scope
	canvasPair  []grid.Position   // Detective's picked pair
	evidence    []string          // Profiler's drawn cards
	chain       []grid.Position   // Bomber's valid chain-detonation targets

	// pending buffers the events of the action currently being applied.
	pending []event.Event
}

// winningScores returns the [mafia, fbi] thresholds for the player count.
func winningScores(players int) (int, int) {
	if players == 8 {
		return 25, 6
	}
	return 18, 5
}

// boardSize returns the arena dimension for the player count.
func boardSize(players int) int {
	if players == 8 {
		return 7
	}
	return 6
}

// New sets up a Play session from a snapshot: it validates the roster
// against the permitted configurations, deals the arena, hides the players,
// and builds the evidence deck. The returned events (GameStarted plus the
// first TurnChanged) have not been journaled yet; the caller appends them.
func New(snapshot Snapshot) (*Game, []event.Event, error) {
	seats, err := normalizeSeats(snapshot.Seats)
	if err != nil {
		return nil, nil, err
	}

	size := boardSize(len(seats))
	winMafia, winFBI := winningScores(len(seats))
	rng := rand.New(rand.NewSource(snapshot.Seed))

	chars, err := character.Deal(rng, size*size)
	if err != nil {
		return nil, nil, err
	}
	arena, err := board.New(size, chars)
	if err != nil {
		return nil, nil, err
	}

	g := &Game{
		id:       snapshot.GameID,
		seed:     snapshot.Seed,
		size:     size,
		board:    arena,
		deck:     nil,
		status:   StatusPlaying,
		winMafia: winMafia,
		winFBI:   winFBI,
	}

	for _, seat := range seats {
		g.players = append(g.players, &Player{id: seat.PlayerID, role: seat.Role})
	}

	// Hide each player on a distinct random cell; the rest of the deal
	// becomes the evidence deck.
	positions := allPositions(size)
	rng.Shuffle(len(positions), func(i, j int) {
		positions[i], positions[j] = positions[j], positions[i]
	})
	taken := make(map[string]bool)
	for i, p := range g.players {
		cell, err := arena.At(positions[i])
		if err != nil {
			return nil, nil, err
		}
		if err := cell.SetOccupant(board.PlayerOccupant(p.id)); err != nil {
			return nil, nil, err
		}
		taken[cell.Character()] = true
	}
	var deckCards []string
	for _, name := range chars {
		if !taken[name] {
			deckCards = append(deckCards, name)
		}
	}
	g.deck = character.NewDeck(rng, deckCards)

	started, err := event.New(g.id, event.TypeGameStarted, event.ActorTypeSystem, "", g.startedPayload(seats))
	if err != nil {
		return nil, nil, err
	}
	events := []event.Event{started}

	g.pending = nil
	if err := g.initTurn(); err != nil {
		return nil, nil, err
	}
	events = append(events, g.pending...)
	g.pending = nil

	return g, events, nil
}

// normalizeSeats orders the seats by rotation and validates the roster
// against the two permitted configurations.
func normalizeSeats(seats []Seat) ([]Seat, error) {
	have := make(map[role.Role]Seat, len(seats))
	ids := make(map[string]bool, len(seats))
	for _, seat := range seats {
		if !seat.Role.IsValid() {
			return nil, apperrors.New(apperrors.CodePrepRosterInvalid,
				fmt.Sprintf("unknown role %q", seat.Role))
		}
		if _, dup := have[seat.Role]; dup {
			return nil, apperrors.New(apperrors.CodePrepRosterInvalid,
				fmt.Sprintf("role %s seated twice", seat.Role))
		}
		if ids[seat.PlayerID] {
			return nil, apperrors.New(apperrors.CodePrepRosterInvalid,
				fmt.Sprintf("player %s seated twice", seat.PlayerID))
		}
		have[seat.Role] = seat
		ids[seat.PlayerID] = true
	}

	for _, roster := range role.Rosters() {
		if len(roster) != len(seats) {
			continue
		}
		matched := true
		for _, r := range roster {
			if _, ok := have[r]; !ok {
				matched = false
				break
			}
		}
		if !matched {
			continue
		}
		ordered := make([]Seat, 0, len(roster))
		for _, r := range roster {
			ordered = append(ordered, have[r])
		}
		return ordered, nil
	}
	return nil, apperrors.New(apperrors.CodePrepRosterInvalid,
		fmt.Sprintf("%d seats do not match a permitted roster", len(seats)))
}

func allPositions(size int) []grid.Position {
	out := make([]grid.Position, 0, size*size)
	for r := range size {
		for c := range size {
			out = append(out, grid.Position{Row: r, Col: c})
		}
	}
	return out
}

func (g *Game) startedPayload(seats []Seat) event.GameStartedPayload {
	roster := make([]event.RosterSeat, len(seats))
	for i, seat := range seats {
		roster[i] = event.RosterSeat{PlayerID: seat.PlayerID, Role: string(seat.Role)}
	}
	arena := make([][]string, g.size)
	for r := range g.size {
		arena[r] = make([]string, g.size)
		for c := range g.size {
			cell, _ := g.board.At(grid.Position{Row: r, Col: c})
			arena[r][c] = cell.Character()
		}
	}
	return event.GameStartedPayload{
		Seed:     g.seed,
		Size:     g.size,
		Roster:   roster,
		Arena:    arena,
		Deck:     g.deck.Cards(),
		WinMafia: g.winMafia,
		WinFBI:   g.winFBI,
	}
}

// ID returns the game identifier.
func (g *Game) ID() string { return g.id }

// Status returns the session lifecycle state.
func (g *Game) Status() Status { return g.status }

// Winner returns the outcome tag, empty while playing.
func (g *Game) Winner() Winner { return g.winner }

// Scores returns the [mafia, fbi] score vector. Scores never decrease.
func (g *Game) Scores() [2]int { return g.scores }

// Board returns the arena.
func (g *Game) Board() *board.Board { return g.board }

// DeckLen returns the number of evidence cards remaining.
func (g *Game) DeckLen() int { return g.deck.Len() }

// CurrentPlayer returns the player whose turn it is, ignoring reactions.
func (g *Game) CurrentPlayer() *Player { return g.players[g.turn] }

// ActivePlayer returns the player allowed to act now: the top reactor when
// a reaction is pending, the current-turn player otherwise.
func (g *Game) ActivePlayer() *Player {
	if len(g.reactions) > 0 {
		return g.playerByID(g.reactions[len(g.reactions)-1].playerID)
	}
	return g.CurrentPlayer()
}

// Players returns the rotation order.
func (g *Game) Players() []*Player {
	out := make([]*Player, len(g.players))
	copy(out, g.players)
	return out
}

func (g *Game) playerByID(id string) *Player {
	for _, p := range g.players {
		if p.id == id {
			return p
		}
	}
	return nil
}

func (g *Game) playerByRole(r role.Role) *Player {
	for _, p := range g.players {
		if p.role == r {
			return p
		}
	}
	return nil
}

// positionOf locates the cell hosting the player. Exactly one cell hosts a
// player at any time outside kill resolution; a miss is a corrupt state.
func (g *Game) positionOf(p *Player) (grid.Position, error) {
	pos, ok := g.board.FindPlayer(p.id)
	if !ok {
		return grid.Position{}, apperrors.New(apperrors.CodePlayerNotPlaced,
			fmt.Sprintf("player %s has no cell", p.id))
	}
	return pos, nil
}
