package lobby

import (
	"fmt"

	"github.com/warithr621/game-theory/deck"
)

// placement is the verdict on one proposed card.
type placement struct {
	Match    bool
	Expected deck.Card
}

// judgePlacement compares the placed card against the next card of the
// round's expected order. The expected card is read by index; the order is
// authoritative, never the players' hands.
func judgePlacement(expected []deck.Card, index int, placed deck.Card) placement {
	want := expected[index]
	return placement{Match: placed == want, Expected: want}
}

// failureMessage is the wording shown to every player when a card comes
// down out of order.
func failureMessage(playerName string, placed, want deck.Card) string {
	return fmt.Sprintf("%s played the %s of %s, but the next card should have been the %s of %s!",
		playerName, placed.Rank, placed.Suit, want.Rank, want.Suit)
}
