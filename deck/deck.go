// Package deck builds, shuffles and deals the standard 52-card deck, and
// defines the canonical card ordering the whole game is played against.
package deck

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
)

type Suit string

type Rank string

const (
	Hearts   Suit = "hearts"
	Diamonds Suit = "diamonds"
	Spades   Suit = "spades"
	Clubs    Suit = "clubs"
)

// Suits and Ranks are listed in canonical order: a card sorts by suit first,
// then rank, with A low and K high.
var (
	Suits = []Suit{Hearts, Diamonds, Spades, Clubs}
	Ranks = []Rank{"A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}
)

// Size is the number of cards in a full deck.
const Size = 52

var ErrInsufficientCards = errors.New("not enough cards in the deck")

// Card is an immutable value; two cards are equal iff suit and rank match.
type Card struct {
	Suit Suit `json:"suit"`
	Rank Rank `json:"rank"`
}

func (c Card) String() string {
	return fmt.Sprintf("%s of %s", c.Rank, c.Suit)
}

var (
	suitIndex = make(map[Suit]int, len(Suits))
	rankIndex = make(map[Rank]int, len(Ranks))
)

func init() {
	for i, s := range Suits {
		suitIndex[s] = i
	}
	for i, r := range Ranks {
		rankIndex[r] = i
	}
}

// Valid reports whether the card names a real suit and rank.
func Valid(c Card) bool {
	_, okSuit := suitIndex[c.Suit]
	_, okRank := rankIndex[c.Rank]
	return okSuit && okRank
}

// OrderKey maps a card onto the canonical total order over all 52 cards.
func (c Card) OrderKey() int {
	return suitIndex[c.Suit]*len(Ranks) + rankIndex[c.Rank]
}

// New returns the full deck in canonical enumeration order.
func New() []Card {
	cards := make([]Card, 0, Size)
	for _, suit := range Suits {
		for _, rank := range Ranks {
			cards = append(cards, Card{Suit: suit, Rank: rank})
		}
	}
	return cards
}

// Shuffle returns a uniformly shuffled copy of cards.
func Shuffle(cards []Card) []Card {
	shuffled := make([]Card, len(cards))
	copy(shuffled, cards)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled
}

// Sort orders a hand in place by the canonical order.
func Sort(hand []Card) {
	sort.Slice(hand, func(i, j int) bool {
		return hand[i].OrderKey() < hand[j].OrderKey()
	})
}

// Deal draws from the tail of cards, one card per player per pass, until each
// of numPlayers hands holds cardsPerPlayer cards. Hands come back canonically
// sorted. The undealt remainder is returned alongside.
func Deal(cards []Card, numPlayers, cardsPerPlayer int) ([][]Card, []Card, error) {
	if numPlayers*cardsPerPlayer > len(cards) {
		return nil, nil, ErrInsufficientCards
	}

	rest := make([]Card, len(cards))
	copy(rest, cards)

	hands := make([][]Card, numPlayers)
	for i := range hands {
		hands[i] = make([]Card, 0, cardsPerPlayer)
	}
	for i := 0; i < cardsPerPlayer; i++ {
		for j := 0; j < numPlayers; j++ {
			hands[j] = append(hands[j], rest[len(rest)-1])
			rest = rest[:len(rest)-1]
		}
	}
	for i := range hands {
		Sort(hands[i])
	}
	return hands, rest, nil
}

// ExpectedOrder flattens the dealt hands and sorts them canonically. This is
// the ground-truth sequence a round enforces, independent of who holds what.
func ExpectedOrder(hands [][]Card) []Card {
	var all []Card
	for _, hand := range hands {
		all = append(all, hand...)
	}
	Sort(all)
	return all
}

// CardsPerPlayer is the per-head deal size for a round. Groups of five or
// more share proportionally more information, so they get one card fewer.
func CardsPerPlayer(round, playerCount int) int {
	if playerCount >= 5 {
		return round
	}
	return round + 1
}
