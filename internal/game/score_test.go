package game

import (
	"testing"

	"github.com/embervale/tarotjack/internal/deck"
)

func card(suit deck.Suit, rank deck.Rank) deck.Card {
	return deck.NewCard(suit, rank)
}

func holeCard(suit deck.Suit, rank deck.Rank) deck.Card {
	c := deck.NewCard(suit, rank)
	c.Facing = deck.FaceDown
	return c
}

func TestScoreEmptyHand(t *testing.T) {
	if got := Score(deck.Hand{}, AllCards); got != 0 {
		t.Errorf("empty hand scored %d, want 0", got)
	}
	if got := Score(nil, VisibleOnly); got != 0 {
		t.Errorf("nil hand scored %d, want 0", got)
	}
}

func TestScoreBasicHands(t *testing.T) {
	tests := []struct {
		name string
		hand deck.Hand
		want int
	}{
		{"numeric cards", deck.Hand{card(deck.Spades, deck.Two), card(deck.Hearts, deck.Nine)}, 11},
		{"face cards count ten", deck.Hand{card(deck.Spades, deck.Jack), card(deck.Hearts, deck.Queen)}, 20},
		{"soft ace", deck.Hand{card(deck.Spades, deck.Ace), card(deck.Hearts, deck.Six)}, 17},
		{"natural", deck.Hand{card(deck.Spades, deck.Ace), card(deck.Hearts, deck.King)}, 21},
		{"ace renormalizes", deck.Hand{card(deck.Spades, deck.Ace), card(deck.Hearts, deck.Nine), card(deck.Clubs, deck.Five)}, 15},
		{"two aces never double soft", deck.Hand{card(deck.Spades, deck.Ace), card(deck.Hearts, deck.Ace), card(deck.Clubs, deck.Nine)}, 21},
		{"all aces", deck.Hand{card(deck.Spades, deck.Ace), card(deck.Hearts, deck.Ace), card(deck.Clubs, deck.Ace), card(deck.Diamonds, deck.Ace)}, 14},
		{"bust", deck.Hand{card(deck.Spades, deck.King), card(deck.Hearts, deck.Queen), card(deck.Clubs, deck.Five)}, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(tt.hand, AllCards); got != tt.want {
				t.Errorf("Score(%v) = %d, want %d", tt.hand, got, tt.want)
			}
		})
	}
}

func TestScoreOrderIndependent(t *testing.T) {
	a := deck.Hand{card(deck.Spades, deck.Ace), card(deck.Hearts, deck.Nine), card(deck.Clubs, deck.Five)}
	b := deck.Hand{card(deck.Clubs, deck.Five), card(deck.Spades, deck.Ace), card(deck.Hearts, deck.Nine)}

	if Score(a, AllCards) != Score(b, AllCards) {
		t.Errorf("scoring depends on card order: %d vs %d", Score(a, AllCards), Score(b, AllCards))
	}

	// Idempotent: re-scoring the same hand yields the same result.
	first := Score(a, AllCards)
	for i := 0; i < 3; i++ {
		if got := Score(a, AllCards); got != first {
			t.Fatalf("re-score %d = %d, want %d", i, got, first)
		}
	}
}

func TestScoreVisibilityPolicies(t *testing.T) {
	hand := deck.Hand{card(deck.Spades, deck.King), holeCard(deck.Hearts, deck.Nine)}

	visible := Score(hand, VisibleOnly)
	actual := Score(hand, AllCards)
	if visible != 10 {
		t.Errorf("visible score = %d, want 10", visible)
	}
	if actual != 19 {
		t.Errorf("actual score = %d, want 19", actual)
	}
	if visible > actual {
		t.Error("visible score must never exceed actual score")
	}

	// Equal once everything is face up.
	hand[1].Facing = deck.FaceUp
	if Score(hand, VisibleOnly) != Score(hand, AllCards) {
		t.Error("scores should match when all cards are face up")
	}
}

func TestIsNatural(t *testing.T) {
	natural := deck.Hand{card(deck.Spades, deck.Ace), card(deck.Hearts, deck.King)}
	if !IsNatural(natural) {
		t.Error("ace + king should be a natural")
	}

	// The actual policy counts a hole card for natural detection.
	hidden := deck.Hand{card(deck.Spades, deck.Ace), holeCard(deck.Hearts, deck.King)}
	if !IsNatural(hidden) {
		t.Error("natural detection must use the actual policy")
	}

	threeCard := deck.Hand{card(deck.Spades, deck.Seven), card(deck.Hearts, deck.Seven), card(deck.Clubs, deck.Seven)}
	if IsNatural(threeCard) {
		t.Error("a three-card 21 is not a natural")
	}
}

func TestIsBust(t *testing.T) {
	if IsBust(deck.Hand{card(deck.Spades, deck.King), card(deck.Hearts, deck.Ace)}) {
		t.Error("21 is not bust")
	}
	if !IsBust(deck.Hand{card(deck.Spades, deck.King), card(deck.Hearts, deck.Queen), card(deck.Clubs, deck.Two)}) {
		t.Error("22 is bust")
	}
}
