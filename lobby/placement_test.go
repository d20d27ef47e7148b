package lobby

import (
	"testing"

	"github.com/warithr621/game-theory/deck"
)

func TestJudgePlacement(t *testing.T) {
	expected := []deck.Card{
		{Suit: deck.Hearts, Rank: "2"},
		{Suit: deck.Hearts, Rank: "5"},
		{Suit: deck.Diamonds, Rank: "K"},
		{Suit: deck.Spades, Rank: "3"},
	}

	verdict := judgePlacement(expected, 0, deck.Card{Suit: deck.Hearts, Rank: "2"})
	if !verdict.Match {
		t.Error("Placing the expected card should match")
	}

	verdict = judgePlacement(expected, 1, deck.Card{Suit: deck.Spades, Rank: "3"})
	if verdict.Match {
		t.Error("Placing a later card should not match")
	}
	if verdict.Expected != expected[1] {
		t.Errorf("Expected card should be read by index: got %v, want %v", verdict.Expected, expected[1])
	}
}

func TestFailureMessage(t *testing.T) {
	placed := deck.Card{Suit: deck.Spades, Rank: "3"}
	want := deck.Card{Suit: deck.Hearts, Rank: "5"}

	msg := failureMessage("Bob", placed, want)
	expected := "Bob played the 3 of spades, but the next card should have been the 5 of hearts!"
	if msg != expected {
		t.Errorf("Failure message mismatch:\ngot:  %s\nwant: %s", msg, expected)
	}
}
