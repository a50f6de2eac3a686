// Package character provides the anonymous suspect identities dealt onto the
// arena and the evidence deck used for identity reassignment.
package character

import (
	"fmt"
	"math/rand"

	apperrors "github.com/louisbranch/noir/internal/errors"
)

// Names is the full pool of unique character identities. A game deals
// size×size of them onto the board; no name is reused within a game.
var Names = []string{
	"Ace Delgado", "Bix Calloway", "Cora Lafayette", "Dutch Mercer",
	"Edie Fontaine", "Flint Marlowe", "Gilda Voss", "Hank Oakes",
	"Iris Beaumont", "Jack Antonelli", "Kitty LaRue", "Lou Castellano",
	"Mabel Quigley", "Nico Ferrara", "Opal Sinclair", "Pete Gallagher",
	"Queenie Moss", "Rocco DiMarco", "Sadie Whitlock", "Tony Bramante",
	"Ursula Droste", "Vic Muldoon", "Wanda Kessler", "Xavier Boone",
	"Yvette Marchand", "Ziggy Kowalski", "Archie Penrose", "Bonnie Tran",
	"Cyrus Aldine", "Delia Hargrove", "Ernest Pike", "Fay Lindqvist",
	"Gus Tremont", "Hattie Okafor", "Ivan Petrov", "Josie Calhoun",
	"Karl Steiner", "Lena Moretti", "Monty Fairbanks", "Nora Ashby",
	"Otis Granger", "Pearl Navarro", "Quincy Holt", "Ruth Abernathy",
	"Silas Crowe", "Thea Lindgren", "Ulysses Park", "Vera Dombrowski",
	"Wes Hollister", "Xena Aquino", "Yusuf Demir", "Zelda Fontaine",
}

// Deal shuffles the character pool with the seeded RNG and returns count
// names. Deterministic for a given seed, which is what lets a stored
// snapshot replay a game exactly.
func Deal(rng *rand.Rand, count int) ([]string, error) {
	if count > len(Names) {
		return nil, apperrors.New(apperrors.CodeCorruptState,
			fmt.Sprintf("deal of %d exceeds character pool of %d", count, len(Names)))
	}
	pool := make([]string, len(Names))
	copy(pool, Names)
	rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	return pool[:count], nil
}

// Deck is the evidence deck: a stack of character cards referencing cells on
// the board. Cards are popped for identity reassignment and peek mechanics.
type Deck struct {
	cards []string
}

// NewDeck builds a deck from the given cards, shuffled with the seeded RNG.
// The top of the deck is the last element.
func NewDeck(rng *rand.Rand, cards []string) *Deck {
	out := make([]string, len(cards))
	copy(out, cards)
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return &Deck{cards: out}
}

// Len returns the number of cards remaining.
func (d *Deck) Len() int {
	return len(d.cards)
}

// Pop removes and returns the top card. Popping from an empty deck is an
// invariant violation.
func (d *Deck) Pop() (string, error) {
	if len(d.cards) == 0 {
		return "", apperrors.New(apperrors.CodeDeckExhausted, "evidence deck is empty")
	}
	card := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return card, nil
}

// Cards returns a copy of the remaining cards, bottom first.
func (d *Deck) Cards() []string {
	out := make([]string, len(d.cards))
	copy(out, d.cards)
	return out
}

// Clone deep-copies the deck.
func (d *Deck) Clone() *Deck {
	return &Deck{cards: d.Cards()}
}
