package game

import "github.com/embervale/tarotjack/internal/deck"

// BustThreshold is the score above which a hand is bust.
const BustThreshold = 21

// VisibilityPolicy selects which dealt cards count toward a score.
type VisibilityPolicy int

const (
	// VisibleOnly counts face-up cards only. This is the score shown
	// to the player while the dealer's hole card is still hidden.
	VisibleOnly VisibilityPolicy = iota

	// AllCards counts every dealt card regardless of facing. Used for
	// outcome comparison and natural-blackjack detection at deal time.
	AllCards
)

// Score converts a hand into its blackjack score under the given
// visibility policy. Aces count as 11 until the total would bust,
// then renormalize to 1 one at a time. Face cards count 10, numeric
// cards their face value. An empty hand scores 0.
//
// Score is pure: re-scoring the same hand and policy always yields
// the same result regardless of card order.
func Score(hand deck.Hand, policy VisibilityPolicy) int {
	total, softAces := 0, 0
	for _, c := range hand {
		if policy == VisibleOnly && c.Facing == deck.FaceDown {
			continue
		}
		switch {
		case c.IsAce():
			total += 11
			softAces++
		case c.IsFaceCard():
			total += 10
		default:
			total += int(c.Rank)
		}
	}
	for total > BustThreshold && softAces > 0 {
		total -= 10
		softAces--
	}
	return total
}

// IsBust reports whether the hand's actual score exceeds the bust
// threshold.
func IsBust(hand deck.Hand) bool {
	return Score(hand, AllCards) > BustThreshold
}

// IsNatural reports whether the hand is a natural blackjack: an
// actual score of 21 with exactly two cards. A natural beats any
// non-natural 21.
func IsNatural(hand deck.Hand) bool {
	return len(hand) == 2 && Score(hand, AllCards) == BustThreshold
}
