package deck

import rand "math/rand/v2"

// Shoe holds the shuffled cards a round draws from. It reshuffles a
// fresh 52-card deck automatically when exhausted, so callers never
// observe a failed draw.
type Shoe struct {
	cards []Card
	rng   *rand.Rand
}

// NewShoe creates a shuffled single-deck shoe using the provided RNG.
// Inject a seeded RNG (see randutil.New) for deterministic rounds.
func NewShoe(rng *rand.Rand) *Shoe {
	s := &Shoe{rng: rng}
	s.refill()
	return s
}

// NewStackedShoe creates a shoe that deals the given cards in order.
// Once the stacked cards run out the shoe reshuffles a full deck.
// Used by tests that need exact hands.
func NewStackedShoe(rng *rand.Rand, cards ...Card) *Shoe {
	s := &Shoe{rng: rng}
	s.cards = append(s.cards, cards...)
	return s
}

func (s *Shoe) refill() {
	s.cards = s.cards[:0]
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Ace; rank <= King; rank++ {
			s.cards = append(s.cards, NewCard(suit, rank))
		}
	}
	s.rng.Shuffle(len(s.cards), func(i, j int) {
		s.cards[i], s.cards[j] = s.cards[j], s.cards[i]
	})
}

// Draw deals the top card with the requested facing.
func (s *Shoe) Draw(facing Facing) Card {
	if len(s.cards) == 0 {
		s.refill()
	}
	card := s.cards[0]
	s.cards = s.cards[1:]
	card.Facing = facing
	return card
}

// Remaining returns the number of cards left before a reshuffle.
func (s *Shoe) Remaining() int {
	return len(s.cards)
}
