package deck

import (
	"testing"

	"github.com/embervale/tarotjack/internal/randutil"
)

func TestShoeDealsFullDeck(t *testing.T) {
	shoe := NewShoe(randutil.New(1))

	seen := make(map[Card]bool)
	for i := 0; i < 52; i++ {
		c := shoe.Draw(FaceUp)
		key := Card{Suit: c.Suit, Rank: c.Rank, Facing: FaceUp}
		if seen[key] {
			t.Fatalf("card %s dealt twice", c)
		}
		seen[key] = true
	}

	if len(seen) != 52 {
		t.Errorf("expected 52 distinct cards, got %d", len(seen))
	}
}

func TestShoeReshufflesWhenEmpty(t *testing.T) {
	shoe := NewShoe(randutil.New(2))
	for i := 0; i < 52; i++ {
		shoe.Draw(FaceUp)
	}
	if shoe.Remaining() != 0 {
		t.Fatalf("expected empty shoe, %d remaining", shoe.Remaining())
	}

	// The next draw must succeed from a fresh deck.
	c := shoe.Draw(FaceUp)
	if c.Rank < Ace || c.Rank > King {
		t.Errorf("unexpected card after reshuffle: %v", c)
	}
	if shoe.Remaining() != 51 {
		t.Errorf("expected 51 remaining after reshuffle draw, got %d", shoe.Remaining())
	}
}

func TestShoeDrawFacing(t *testing.T) {
	shoe := NewShoe(randutil.New(3))
	if c := shoe.Draw(FaceDown); c.Facing != FaceDown {
		t.Error("Draw(FaceDown) should deal a face-down card")
	}
	if c := shoe.Draw(FaceUp); c.Facing != FaceUp {
		t.Error("Draw(FaceUp) should deal a face-up card")
	}
}

func TestStackedShoeDealsInOrder(t *testing.T) {
	stacked := []Card{
		NewCard(Spades, Ace),
		NewCard(Hearts, King),
		NewCard(Clubs, Seven),
	}
	shoe := NewStackedShoe(randutil.New(4), stacked...)

	for i, want := range stacked {
		got := shoe.Draw(FaceUp)
		if got.Suit != want.Suit || got.Rank != want.Rank {
			t.Errorf("draw %d = %s, want %s", i, got, want)
		}
	}
}

func TestShoeDeterministicWithSeed(t *testing.T) {
	a := NewShoe(randutil.New(42))
	b := NewShoe(randutil.New(42))

	for i := 0; i < 52; i++ {
		ca, cb := a.Draw(FaceUp), b.Draw(FaceUp)
		if ca != cb {
			t.Fatalf("draw %d diverged: %s vs %s", i, ca, cb)
		}
	}
}
