// Package game implements the core rules engine for a single-player
// blackjack variant where health is the betting currency and a closed
// set of tarot modifiers alters scoring and payout.
//
// The main type is Round, which drives one bet-to-payout cycle
// through the phases AwaitingBet, BetPlaced, PlayerTurn, DealerTurn
// and Resolved in response to discrete intents (PlaceBet, Deal, Hit,
// Stand, ActivateEffect).
//
// # Basic Usage
//
//	prog := game.NewMemoryProgression(100)
//	inv := game.NewMemoryInventory(game.Assassin, game.WitchDoctor)
//	resolver := game.NewResolver(game.NewRegistry(game.DefaultCatalog()...), inv, logger)
//	round := game.NewRound(shoe, resolver, prog, game.BetLimits{Min: 1, Max: 50})
//
//	round.PlaceBet(20)
//	round.Deal()
//	round.ActivateEffect(game.Assassin)
//	round.Stand()
//
// # Architecture
//
// Round delegates responsibilities to specialized components:
//   - Score: pure hand scoring with soft-ace renormalization and
//     per-card visibility policies
//   - ValidateBet: pure bet-legality predicate
//   - Registry: the compile-time catalog of tarot effects
//   - Resolver: the one-shot-per-round activation protocol and
//     bonus composition at hand resolution
//
// Effects are stateless descriptors shared across rounds; all
// per-round state (activation flags, the bet, both hands) lives in
// RoundState and is discarded when the round resolves. External
// concerns reach the engine only through the Progression and
// Inventory interfaces, so the whole package tests without a UI
// runtime.
//
// Presentation layers observe the round through its EventBus;
// transitions are immediately consistent and never wait on
// subscribers.
package game
