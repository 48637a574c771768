package game

import "github.com/embervale/tarotjack/internal/deck"

// EffectID identifies a tarot modifier.
type EffectID string

const (
	Assassin    EffectID = "assassin"
	Botanist    EffectID = "botanist"
	Jeweler     EffectID = "jeweler"
	SecretLover EffectID = "secret_lover"
	HouseKeeper EffectID = "house_keeper"
	Artificer   EffectID = "artificer"
	WitchDoctor EffectID = "witch_doctor"
)

// BehaviorKind tags the closed set of effect behaviors. Dispatch is
// by switch on the tag; there is one parametrized implementation per
// kind rather than one subclass per card.
type BehaviorKind int

const (
	// SuitBonus pays a fixed amount per final-hand card of one suit.
	SuitBonus BehaviorKind = iota
	// RankBonus pays a fixed amount per final-hand card of the listed ranks.
	RankBonus
	// StreakMultiplier scales the win payout when a win streak is
	// active at resolution time.
	StreakMultiplier
	// LossRefund heals back a fraction of the lost bet.
	LossRefund
)

func (k BehaviorKind) String() string {
	switch k {
	case SuitBonus:
		return "suit_bonus"
	case RankBonus:
		return "rank_bonus"
	case StreakMultiplier:
		return "streak_multiplier"
	case LossRefund:
		return "loss_refund"
	default:
		return "unknown"
	}
}

// Effect describes one tarot modifier. Effects are stateless and
// shared read-only across rounds; all per-round state (activation
// flags, accumulated bonuses) lives in RoundState keyed by EffectID.
type Effect struct {
	ID   EffectID
	Name string
	Kind BehaviorKind

	Suit    deck.Suit   // SuitBonus only
	Ranks   []deck.Rank // RankBonus only
	PerCard int         // additive amount per matching card

	Factor   float64 // StreakMultiplier only
	Fraction float64 // LossRefund only
}

// Bonus returns the effect's additive contribution computed against
// the final player hand. Multiplicative and refund effects contribute
// no additive bonus.
func (e Effect) Bonus(hand deck.Hand) int {
	matches := 0
	switch e.Kind {
	case SuitBonus:
		for _, c := range hand {
			if c.Suit == e.Suit {
				matches++
			}
		}
	case RankBonus:
		for _, c := range hand {
			for _, r := range e.Ranks {
				if c.Rank == r {
					matches++
					break
				}
			}
		}
	default:
		return 0
	}
	return matches * e.PerCard
}

// Default catalog amounts. Tables may override these through the
// effect blocks in the server configuration.
const (
	DefaultSuitBonusPerCard = 50
	DefaultRankBonusPerCard = 50
	DefaultStreakFactor     = 1.1
	DefaultRefundFraction   = 0.1
)

// DefaultCatalog returns the built-in tarot effects with their
// default amounts. The suit-bonus family is a single parametrized
// kind instantiated once per suit.
func DefaultCatalog() []Effect {
	return []Effect{
		{ID: Assassin, Name: "The Assassin", Kind: SuitBonus, Suit: deck.Spades, PerCard: DefaultSuitBonusPerCard},
		{ID: Botanist, Name: "The Botanist", Kind: SuitBonus, Suit: deck.Clubs, PerCard: DefaultSuitBonusPerCard},
		{ID: Jeweler, Name: "The Jeweler", Kind: SuitBonus, Suit: deck.Diamonds, PerCard: DefaultSuitBonusPerCard},
		{ID: SecretLover, Name: "The Secret Lover", Kind: SuitBonus, Suit: deck.Hearts, PerCard: DefaultSuitBonusPerCard},
		{ID: HouseKeeper, Name: "The House Keeper", Kind: RankBonus, Ranks: []deck.Rank{deck.Jack, deck.Queen, deck.King}, PerCard: DefaultRankBonusPerCard},
		{ID: Artificer, Name: "The Artificer", Kind: StreakMultiplier, Factor: DefaultStreakFactor},
		{ID: WitchDoctor, Name: "The Witch Doctor", Kind: LossRefund, Fraction: DefaultRefundFraction},
	}
}

// Registry maps effect identifiers to their descriptors. The catalog
// is closed and compile-time registered; lookup order is stable so
// bonus iteration is deterministic.
type Registry struct {
	effects map[EffectID]Effect
	order   []EffectID
}

// NewRegistry creates a registry from the given effects. Later
// entries with a duplicate ID replace earlier ones without changing
// their position.
func NewRegistry(effects ...Effect) *Registry {
	r := &Registry{effects: make(map[EffectID]Effect, len(effects))}
	for _, e := range effects {
		if _, seen := r.effects[e.ID]; !seen {
			r.order = append(r.order, e.ID)
		}
		r.effects[e.ID] = e
	}
	return r
}

// Get returns the descriptor for an effect ID.
func (r *Registry) Get(id EffectID) (Effect, bool) {
	e, ok := r.effects[id]
	return e, ok
}

// IDs returns all registered effect IDs in registration order.
func (r *Registry) IDs() []EffectID {
	out := make([]EffectID, len(r.order))
	copy(out, r.order)
	return out
}
