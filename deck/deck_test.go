package deck

import (
	"testing"
)

func TestNew_FullDeck(t *testing.T) {
	cards := New()

	if len(cards) != Size {
		t.Fatalf("Expected %d cards, got %d", Size, len(cards))
	}

	seen := make(map[Card]bool, Size)
	for _, c := range cards {
		if seen[c] {
			t.Errorf("Duplicate card: %v", c)
		}
		seen[c] = true
	}

	for _, suit := range Suits {
		for _, rank := range Ranks {
			if !seen[Card{Suit: suit, Rank: rank}] {
				t.Errorf("Missing card: %s of %s", rank, suit)
			}
		}
	}
}

func TestShuffle_IsPermutation(t *testing.T) {
	original := New()
	shuffled := Shuffle(original)

	if len(shuffled) != len(original) {
		t.Fatalf("Shuffle changed deck size: %d -> %d", len(original), len(shuffled))
	}

	counts := make(map[Card]int)
	for _, c := range original {
		counts[c]++
	}
	for _, c := range shuffled {
		counts[c]--
	}
	for c, n := range counts {
		if n != 0 {
			t.Errorf("Card %v count off by %d after shuffle", c, n)
		}
	}

	// The input must not be mutated.
	fresh := New()
	for i := range original {
		if original[i] != fresh[i] {
			t.Fatal("Shuffle mutated its input")
		}
	}
}

func TestDeal(t *testing.T) {
	hands, rest, err := Deal(Shuffle(New()), 3, 4)
	if err != nil {
		t.Fatalf("Deal returned error: %v", err)
	}

	if len(hands) != 3 {
		t.Fatalf("Expected 3 hands, got %d", len(hands))
	}
	seen := make(map[Card]bool)
	for i, hand := range hands {
		if len(hand) != 4 {
			t.Errorf("Hand %d has %d cards, want 4", i, len(hand))
		}
		for j, c := range hand {
			if seen[c] {
				t.Errorf("Card %v dealt twice", c)
			}
			seen[c] = true
			if j > 0 && hand[j-1].OrderKey() > c.OrderKey() {
				t.Errorf("Hand %d is not canonically sorted", i)
			}
		}
	}
	if len(rest) != Size-12 {
		t.Errorf("Expected %d cards left in the deck, got %d", Size-12, len(rest))
	}
}

func TestDeal_InsufficientCards(t *testing.T) {
	_, _, err := Deal(New(), 9, 6)
	if err != ErrInsufficientCards {
		t.Fatalf("Expected ErrInsufficientCards, got %v", err)
	}
}

func TestExpectedOrder(t *testing.T) {
	hands, _, err := Deal(Shuffle(New()), 4, 3)
	if err != nil {
		t.Fatalf("Deal returned error: %v", err)
	}

	order := ExpectedOrder(hands)
	if len(order) != 12 {
		t.Fatalf("Expected order of 12 cards, got %d", len(order))
	}
	for i := 1; i < len(order); i++ {
		if order[i-1].OrderKey() >= order[i].OrderKey() {
			t.Fatalf("Expected order not strictly ascending at index %d", i)
		}
	}

	inHands := make(map[Card]bool)
	for _, hand := range hands {
		for _, c := range hand {
			inHands[c] = true
		}
	}
	for _, c := range order {
		if !inHands[c] {
			t.Errorf("Expected order contains undealt card %v", c)
		}
	}
}

func TestCardsPerPlayer(t *testing.T) {
	cases := []struct {
		round, players, want int
	}{
		{1, 2, 2},
		{1, 3, 2},
		{1, 4, 2},
		{1, 5, 1},
		{2, 2, 3},
		{3, 5, 3},
	}
	for _, c := range cases {
		if got := CardsPerPlayer(c.round, c.players); got != c.want {
			t.Errorf("CardsPerPlayer(%d, %d) = %d, want %d", c.round, c.players, got, c.want)
		}
	}

	// Strictly increasing in round for a fixed player count.
	for _, players := range []int{2, 5} {
		for round := 1; round < 10; round++ {
			if CardsPerPlayer(round+1, players) <= CardsPerPlayer(round, players) {
				t.Errorf("CardsPerPlayer not increasing in round for %d players", players)
			}
		}
	}
}

func TestOrderKey_CanonicalOrder(t *testing.T) {
	aceHearts := Card{Suit: Hearts, Rank: "A"}
	kingHearts := Card{Suit: Hearts, Rank: "K"}
	aceDiamonds := Card{Suit: Diamonds, Rank: "A"}
	aceClubs := Card{Suit: Clubs, Rank: "A"}

	if aceHearts.OrderKey() >= kingHearts.OrderKey() {
		t.Error("A of hearts should sort before K of hearts")
	}
	if kingHearts.OrderKey() >= aceDiamonds.OrderKey() {
		t.Error("K of hearts should sort before A of diamonds (suit is the primary key)")
	}
	if aceDiamonds.OrderKey() >= aceClubs.OrderKey() {
		t.Error("A of diamonds should sort before A of clubs")
	}
}

func TestValid(t *testing.T) {
	if !Valid(Card{Suit: Spades, Rank: "10"}) {
		t.Error("10 of spades should be valid")
	}
	if Valid(Card{Suit: "stars", Rank: "A"}) {
		t.Error("Unknown suit should be invalid")
	}
	if Valid(Card{Suit: Hearts, Rank: "1"}) {
		t.Error("Unknown rank should be invalid")
	}
}
