package deck

import "fmt"

// Suit represents a card suit
type Suit int

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

// String returns the string representation of a suit
func (s Suit) String() string {
	switch s {
	case Spades:
		return "♠"
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	default:
		return "?"
	}
}

// Name returns the lowercase English name of the suit, used in
// configuration and transcripts.
func (s Suit) Name() string {
	switch s {
	case Spades:
		return "spades"
	case Hearts:
		return "hearts"
	case Diamonds:
		return "diamonds"
	case Clubs:
		return "clubs"
	default:
		return "unknown"
	}
}

// ParseSuit converts a suit name back into a Suit.
func ParseSuit(name string) (Suit, error) {
	switch name {
	case "spades":
		return Spades, nil
	case "hearts":
		return Hearts, nil
	case "diamonds":
		return Diamonds, nil
	case "clubs":
		return Clubs, nil
	default:
		return 0, fmt.Errorf("unknown suit %q", name)
	}
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Rank represents a card rank. Aces are low (1); blackjack scoring
// treats them as soft elevens until the hand would bust.
type Rank int

const (
	Ace Rank = iota + 1
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

// String returns the string representation of a rank
func (r Rank) String() string {
	switch r {
	case Ace:
		return "A"
	case Ten:
		return "T"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	default:
		if r >= Two && r <= Nine {
			return fmt.Sprintf("%d", int(r))
		}
		return "?"
	}
}

// Facing represents whether a card is shown face up or face down.
// The dealer's hole card is the only card ever dealt face down.
type Facing int

const (
	FaceUp Facing = iota
	FaceDown
)

// String returns the string representation of a facing
func (f Facing) String() string {
	if f == FaceDown {
		return "down"
	}
	return "up"
}

// Card represents a playing card at a point in time. Suit and rank are
// immutable once dealt; facing may be flipped exactly once, when the
// dealer reveals the hole card.
type Card struct {
	Suit   Suit
	Rank   Rank
	Facing Facing
}

// NewCard creates a new face-up card
func NewCard(suit Suit, rank Rank) Card {
	return Card{Suit: suit, Rank: rank, Facing: FaceUp}
}

// String returns the string representation of a card (e.g., "A♠").
// Face-down cards render as a hidden back.
func (c Card) String() string {
	if c.Facing == FaceDown {
		return "🂠"
	}
	return fmt.Sprintf("%s%s", c.Rank, c.Suit)
}

// IsRed returns true if the card is red
func (c Card) IsRed() bool {
	return c.Suit.IsRed()
}

// IsAce returns true if the card is an Ace
func (c Card) IsAce() bool {
	return c.Rank == Ace
}

// IsFaceCard returns true if the card is a face card (J, Q, K)
func (c Card) IsFaceCard() bool {
	return c.Rank >= Jack && c.Rank <= King
}

// Hand is an ordered sequence of dealt cards belonging to one owner.
type Hand []Card

// String renders the hand in deal order, hiding face-down cards.
func (h Hand) String() string {
	out := ""
	for i, c := range h {
		if i > 0 {
			out += " "
		}
		out += c.String()
	}
	return out
}
