package game

import (
	"testing"

	"github.com/embervale/tarotjack/internal/deck"
)

func TestDefaultCatalogCoversAllSuits(t *testing.T) {
	reg := NewRegistry(DefaultCatalog()...)

	suits := make(map[deck.Suit]EffectID)
	for _, id := range reg.IDs() {
		e, _ := reg.Get(id)
		if e.Kind == SuitBonus {
			if prev, dup := suits[e.Suit]; dup {
				t.Errorf("suit %s claimed by both %s and %s", e.Suit.Name(), prev, id)
			}
			suits[e.Suit] = id
		}
	}
	if len(suits) != 4 {
		t.Errorf("expected one suit-bonus effect per suit, got %d", len(suits))
	}
}

func TestSuitBonusCountsMatchingCards(t *testing.T) {
	assassin := Effect{ID: Assassin, Kind: SuitBonus, Suit: deck.Spades, PerCard: 50}

	hand := deck.Hand{
		card(deck.Spades, deck.King),
		card(deck.Spades, deck.Two),
		card(deck.Hearts, deck.Nine),
	}
	if got := assassin.Bonus(hand); got != 100 {
		t.Errorf("two spades should pay 100, got %d", got)
	}
	if got := assassin.Bonus(deck.Hand{card(deck.Hearts, deck.Nine)}); got != 0 {
		t.Errorf("no spades should pay 0, got %d", got)
	}
}

func TestRankBonusCountsFaceCards(t *testing.T) {
	houseKeeper := Effect{
		ID:      HouseKeeper,
		Kind:    RankBonus,
		Ranks:   []deck.Rank{deck.Jack, deck.Queen, deck.King},
		PerCard: 50,
	}

	hand := deck.Hand{
		card(deck.Spades, deck.Jack),
		card(deck.Hearts, deck.Queen),
		card(deck.Clubs, deck.Ten), // ten is worth 10 but is not a face card
	}
	if got := houseKeeper.Bonus(hand); got != 100 {
		t.Errorf("jack + queen should pay 100, got %d", got)
	}
}

func TestNonAdditiveEffectsContributeNoBonus(t *testing.T) {
	hand := deck.Hand{card(deck.Spades, deck.King), card(deck.Spades, deck.Ace)}

	artificer := Effect{ID: Artificer, Kind: StreakMultiplier, Factor: 1.1}
	if got := artificer.Bonus(hand); got != 0 {
		t.Errorf("multiplier effect contributed additive bonus %d", got)
	}

	witchDoctor := Effect{ID: WitchDoctor, Kind: LossRefund, Fraction: 0.1}
	if got := witchDoctor.Bonus(hand); got != 0 {
		t.Errorf("refund effect contributed additive bonus %d", got)
	}
}

func TestRegistryLookup(t *testing.T) {
	reg := NewRegistry(DefaultCatalog()...)

	e, ok := reg.Get(SecretLover)
	if !ok {
		t.Fatal("secret_lover missing from default catalog")
	}
	if e.Suit != deck.Hearts {
		t.Errorf("secret_lover bound to %s, want hearts", e.Suit.Name())
	}

	if _, ok := reg.Get(EffectID("the_fool")); ok {
		t.Error("unknown effect should not resolve")
	}
}

func TestRegistryOverrideKeepsOrder(t *testing.T) {
	catalog := DefaultCatalog()
	override := Effect{ID: Assassin, Name: "The Assassin", Kind: SuitBonus, Suit: deck.Spades, PerCard: 75}
	reg := NewRegistry(append(catalog, override)...)

	e, _ := reg.Get(Assassin)
	if e.PerCard != 75 {
		t.Errorf("override lost: per-card %d, want 75", e.PerCard)
	}
	if len(reg.IDs()) != len(catalog) {
		t.Errorf("override duplicated ID: %d entries, want %d", len(reg.IDs()), len(catalog))
	}
	if reg.IDs()[0] != Assassin {
		t.Errorf("override moved %s from first position", Assassin)
	}
}
