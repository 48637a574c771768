package game

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/embervale/tarotjack/internal/deck"
)

func testResolver(t *testing.T, inv Inventory) *Resolver {
	t.Helper()
	return NewResolver(NewRegistry(DefaultCatalog()...), inv, log.New(io.Discard))
}

func testState(bet int, hand deck.Hand) *RoundState {
	state := &RoundState{
		ID:          "test-round",
		Phase:       PlayerTurn,
		Bet:         bet,
		PlayerHand:  hand,
		Activations: make(map[EffectID]ActivationState),
	}
	return state
}

func TestActivateIsOneShotPerRound(t *testing.T) {
	resolver := testResolver(t, NewMemoryInventory(Assassin))
	state := testState(20, nil)

	_, err := resolver.Activate(state, Assassin)
	require.NoError(t, err)
	require.Equal(t, Activated, state.Activations[Assassin])

	// Second activation in the same round is a non-fatal rejection
	// and the state is unchanged.
	_, err = resolver.Activate(state, Assassin)
	require.Error(t, err)
	assert.True(t, IsCode(err, CodeEffectAlreadyActivated))
	assert.Equal(t, "The Assassin was already activated this round", ReasonOf(err))
	assert.Equal(t, Activated, state.Activations[Assassin])
}

func TestActivateRequiresHeldEffect(t *testing.T) {
	resolver := testResolver(t, NewMemoryInventory()) // holds nothing
	state := testState(20, nil)

	_, err := resolver.Activate(state, Jeweler)
	require.Error(t, err)
	assert.True(t, IsCode(err, CodeEffectPreconditionUnmet))
	assert.Equal(t, Dormant, state.Activations[Jeweler])
}

func TestActivateRequiresBet(t *testing.T) {
	resolver := testResolver(t, NewMemoryInventory(Assassin))
	state := testState(0, nil)

	_, err := resolver.Activate(state, Assassin)
	require.Error(t, err)
	assert.True(t, IsCode(err, CodeInvalidTransition))
}

func TestActivateUnknownEffect(t *testing.T) {
	resolver := testResolver(t, NewMemoryInventory(Assassin))
	state := testState(20, nil)

	_, err := resolver.Activate(state, EffectID("the_tower"))
	require.Error(t, err)
	assert.True(t, IsCode(err, CodeEffectPreconditionUnmet))
}

func TestActivateWithoutInventoryCollaborator(t *testing.T) {
	resolver := testResolver(t, nil)
	state := testState(20, nil)

	_, err := resolver.Activate(state, Assassin)
	require.Error(t, err)
	assert.True(t, IsCode(err, CodeMissingCollaborator))
	// The failed operation leaves the round state untouched.
	assert.Equal(t, Dormant, state.Activations[Assassin])
}

func TestCanActivateDoesNotMutate(t *testing.T) {
	resolver := testResolver(t, NewMemoryInventory(Botanist))
	state := testState(20, nil)

	require.NoError(t, resolver.CanActivate(state, Botanist))
	assert.Equal(t, Dormant, state.Activations[Botanist])
}

func TestSettleAdditiveBonusOnWin(t *testing.T) {
	resolver := testResolver(t, NewMemoryInventory(Assassin))
	state := testState(20, deck.Hand{
		card(deck.Spades, deck.King),
		card(deck.Spades, deck.Nine),
		card(deck.Hearts, deck.Two),
	})
	_, err := resolver.Activate(state, Assassin)
	require.NoError(t, err)

	s := resolver.Settle(state, Win, 0)
	assert.Equal(t, 100, s.Bonus, "two spades at 50 each")
	assert.Equal(t, 1.0, s.Multiplier)
	assert.Equal(t, 120, s.Payout, "bet + bonus")
	assert.Zero(t, s.Refund)
}

func TestSettleAdditiveBonusesAreOrderIndependent(t *testing.T) {
	hand := deck.Hand{
		card(deck.Spades, deck.King),
		card(deck.Hearts, deck.Nine),
		card(deck.Hearts, deck.Two),
	}

	// Activate in both orders; the composed bonus must match.
	totals := make([]int, 2)
	for i, order := range [][]EffectID{{Assassin, SecretLover}, {SecretLover, Assassin}} {
		resolver := testResolver(t, NewMemoryInventory(Assassin, SecretLover))
		state := testState(20, hand)
		for _, id := range order {
			_, err := resolver.Activate(state, id)
			require.NoError(t, err)
		}
		totals[i] = resolver.Settle(state, Win, 0).Bonus
	}
	assert.Equal(t, totals[0], totals[1])
	assert.Equal(t, 150, totals[0], "one spade + two hearts at 50 each")
}

func TestSettleMultiplierAppliesLastAndOnlyOnStreak(t *testing.T) {
	resolver := testResolver(t, NewMemoryInventory(Artificer, SecretLover))
	state := testState(20, deck.Hand{
		card(deck.Hearts, deck.King),
		card(deck.Hearts, deck.Nine),
	})
	for _, id := range []EffectID{Artificer, SecretLover} {
		_, err := resolver.Activate(state, id)
		require.NoError(t, err)
	}

	// No streak at resolution time: factor inactive.
	s := resolver.Settle(state, Win, 0)
	assert.Equal(t, 1.0, s.Multiplier)
	assert.Equal(t, 120, s.Payout)

	// Active streak: additive bonuses fold in first, then the factor.
	s = resolver.Settle(state, Win, 2)
	assert.InDelta(t, 1.1, s.Multiplier, 1e-9)
	assert.Equal(t, 132, s.Payout, "(20 + 100) x 1.1")
}

func TestSettleRefundOnLoss(t *testing.T) {
	resolver := testResolver(t, NewMemoryInventory(WitchDoctor, Assassin))
	state := testState(20, deck.Hand{card(deck.Spades, deck.King), card(deck.Spades, deck.Five)})
	for _, id := range []EffectID{WitchDoctor, Assassin} {
		_, err := resolver.Activate(state, id)
		require.NoError(t, err)
	}

	s := resolver.Settle(state, Loss, 0)
	assert.InDelta(t, 2.0, s.Refund, 1e-9, "10%% of the lost bet")
	assert.Zero(t, s.Payout, "payout path must not run on a loss")
	assert.Zero(t, s.Bonus)
}

func TestSettlePushAppliesNeitherPath(t *testing.T) {
	resolver := testResolver(t, NewMemoryInventory(WitchDoctor, Assassin))
	state := testState(20, deck.Hand{card(deck.Spades, deck.King), card(deck.Spades, deck.Nine)})
	for _, id := range []EffectID{WitchDoctor, Assassin} {
		_, err := resolver.Activate(state, id)
		require.NoError(t, err)
	}

	s := resolver.Settle(state, Push, 3)
	assert.Zero(t, s.Payout)
	assert.Zero(t, s.Refund)
	assert.Zero(t, s.Bonus)
}

func TestSettleDormantEffectsDoNotContribute(t *testing.T) {
	resolver := testResolver(t, NewMemoryInventory(Assassin, SecretLover))
	state := testState(20, deck.Hand{card(deck.Spades, deck.King), card(deck.Hearts, deck.Nine)})

	// SecretLover is held but never activated this round.
	_, err := resolver.Activate(state, Assassin)
	require.NoError(t, err)

	s := resolver.Settle(state, Win, 0)
	assert.Equal(t, 50, s.Bonus, "only the activated effect pays")
}
