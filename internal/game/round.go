package game

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/embervale/tarotjack/internal/deck"
)

// Phase represents the round lifecycle phase.
type Phase int

const (
	AwaitingBet Phase = iota
	BetPlaced
	PlayerTurn
	DealerTurn
	Resolved
)

func (p Phase) String() string {
	return [...]string{"awaiting_bet", "bet_placed", "player_turn", "dealer_turn", "resolved"}[p]
}

// Seat identifies a hand owner.
type Seat int

const (
	Player Seat = iota
	Dealer
)

func (s Seat) String() string {
	return [...]string{"player", "dealer"}[s]
}

// Outcome is the resolved result of a round.
type Outcome int

const (
	Win Outcome = iota
	Loss
	Push
)

func (o Outcome) String() string {
	return [...]string{"win", "loss", "push"}[o]
}

// RoundState holds all per-round mutable state. Exactly one instance
// exists per round: created when a bet is accepted, mutated by turn
// actions and effect activations, discarded at resolution.
type RoundState struct {
	ID          string
	Phase       Phase
	Bet         int
	Turn        Seat
	PlayerHand  deck.Hand
	DealerHand  deck.Hand
	Activations map[EffectID]ActivationState
	Streak      int // win streak snapshot taken at bet placement
}

// RoundResult is the retained summary of the last resolved round,
// kept for presentation after the per-round state is discarded.
type RoundResult struct {
	RoundID     string
	Outcome     Outcome
	PlayerHand  deck.Hand
	DealerHand  deck.Hand
	PlayerScore int
	DealerScore int
	Settlement  Settlement
}

// Round is the top-level driver for one bet-to-payout cycle. It
// advances only in response to discrete intents from a single control
// goroutine; no method blocks internally. Wrong-phase intents are
// rejected without touching the state.
type Round struct {
	state       *RoundState
	limits      BetLimits
	standsOn    int
	shoe        *deck.Shoe
	resolver    *Resolver
	progression Progression
	bus         EventBus
	logger      *log.Logger
	last        *RoundResult
}

// RoundOption customizes a Round.
type RoundOption func(*Round)

// WithEventBus attaches an existing event bus instead of a fresh one.
func WithEventBus(bus EventBus) RoundOption {
	return func(r *Round) { r.bus = bus }
}

// WithLogger attaches a logger.
func WithLogger(logger *log.Logger) RoundOption {
	return func(r *Round) { r.logger = logger }
}

// WithDealerStandsOn overrides the house rule score at which the
// dealer stops drawing (default 17).
func WithDealerStandsOn(score int) RoundOption {
	return func(r *Round) { r.standsOn = score }
}

// NewRound creates a round state machine. The shoe, resolver and
// progression collaborator are explicit dependencies so the machine
// runs deterministically in tests without a live UI runtime.
func NewRound(shoe *deck.Shoe, resolver *Resolver, progression Progression, limits BetLimits, opts ...RoundOption) *Round {
	r := &Round{
		state:       newRoundState(),
		limits:      limits,
		standsOn:    17,
		shoe:        shoe,
		resolver:    resolver,
		progression: progression,
		bus:         NewEventBus(),
		logger:      log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.WithPrefix("round")
	return r
}

func newRoundState() *RoundState {
	return &RoundState{
		Phase:       AwaitingBet,
		Activations: make(map[EffectID]ActivationState),
	}
}

// State exposes the current round state to presentation layers.
// Callers must treat it as read-only.
func (r *Round) State() *RoundState {
	return r.state
}

// Bus returns the event bus presentation layers subscribe to.
func (r *Round) Bus() EventBus {
	return r.bus
}

// Limits returns the table betting limits.
func (r *Round) Limits() BetLimits {
	return r.limits
}

// LastResult returns the summary of the most recently resolved round,
// or nil before the first resolution.
func (r *Round) LastResult() *RoundResult {
	return r.last
}

// EffectActivated reports whether the effect has been activated this
// round. Exposed read-only so inventories and UIs can proxy it.
func (r *Round) EffectActivated(id EffectID) bool {
	return r.state.Activations[id] == Activated
}

// PlaceBet accepts a bet and opens a new round. The amount is
// validated against the live balance, deducted immediately, and all
// per-effect activation flags are reset to Dormant exactly once.
func (r *Round) PlaceBet(amount int) error {
	if r.state.Phase != AwaitingBet {
		return r.invalid("cannot place a bet during %s", r.state.Phase)
	}
	if r.progression == nil {
		return reject(CodeMissingCollaborator, "progression collaborator is not available")
	}

	// Re-validate against the live balance; it may have changed since
	// the input was gated.
	if err := ValidateBet(amount, r.progression.Balance(), r.limits); err != nil {
		r.logger.Debug("Bet rejected", "amount", amount, "reason", ReasonOf(err))
		return err
	}
	if err := r.progression.DeductBet(amount); err != nil {
		return reject(CodeBetRejected, "bet %d exceeds your current balance", amount)
	}

	r.state = newRoundState()
	r.state.ID = uuid.NewString()
	r.state.Bet = amount
	r.state.Streak = r.progression.WinStreak()
	for _, id := range r.resolver.Registry().IDs() {
		r.state.Activations[id] = Dormant
	}
	r.setPhase(BetPlaced)

	r.logger.Info("Bet placed", "round", r.state.ID, "amount", amount, "balance", r.progression.Balance())
	r.bus.Publish(NewBetPlacedEvent(r.state.ID, amount, r.progression.Balance()))
	return nil
}

// Deal starts play: two face-up cards to the player, one face-up and
// one face-down to the dealer. If either hand is a natural the round
// resolves immediately and the dealer never draws.
func (r *Round) Deal() error {
	if r.state.Phase != BetPlaced {
		return r.invalid("cannot deal during %s", r.state.Phase)
	}

	r.dealTo(Player, deck.FaceUp)
	r.dealTo(Dealer, deck.FaceUp)
	r.dealTo(Player, deck.FaceUp)
	r.dealTo(Dealer, deck.FaceDown)

	r.state.Turn = Player
	r.setPhase(PlayerTurn)

	// Natural detection uses the actual policy so the hole card counts.
	if IsNatural(r.state.PlayerHand) || IsNatural(r.state.DealerHand) {
		r.logger.Info("Natural at deal", "round", r.state.ID,
			"player", IsNatural(r.state.PlayerHand), "dealer", IsNatural(r.state.DealerHand))
		r.finishAgainstDealer(false)
	}
	return nil
}

// Hit deals the player one more card. A bust ends the turn and
// resolves the round without dealer draws.
func (r *Round) Hit() error {
	if r.state.Phase != PlayerTurn {
		return r.invalid("cannot hit during %s", r.state.Phase)
	}

	r.dealTo(Player, deck.FaceUp)
	if IsBust(r.state.PlayerHand) {
		r.logger.Info("Player bust", "round", r.state.ID, "score", Score(r.state.PlayerHand, AllCards))
		r.finishAgainstDealer(false)
	}
	return nil
}

// Stand ends the player turn. The dealer reveals the hole card and
// draws under the house rule, then the round resolves.
func (r *Round) Stand() error {
	if r.state.Phase != PlayerTurn {
		return r.invalid("cannot stand during %s", r.state.Phase)
	}
	r.finishAgainstDealer(true)
	return nil
}

// ActivateEffect requests a one-shot activation of a tarot effect.
// Valid while a bet is placed, up to the end of the player turn.
func (r *Round) ActivateEffect(id EffectID) error {
	if r.state.Phase != BetPlaced && r.state.Phase != PlayerTurn {
		err := r.invalid("cannot activate an effect during %s", r.state.Phase)
		r.bus.Publish(NewEffectRejectedEvent(r.state.ID, id, CodeInvalidTransition, ReasonOf(err)))
		return err
	}

	effect, err := r.resolver.Activate(r.state, id)
	if err != nil {
		var code ErrorCode
		if rej, ok := err.(*Rejection); ok {
			code = rej.Code
		}
		r.bus.Publish(NewEffectRejectedEvent(r.state.ID, id, code, ReasonOf(err)))
		return err
	}

	r.bus.Publish(NewEffectActivatedEvent(r.state.ID, effect))
	return nil
}

// finishAgainstDealer moves through the dealer turn and resolution.
// The hole card flips exactly once; dealer draws happen only when the
// player neither busted nor holds a natural.
func (r *Round) finishAgainstDealer(dealerDraws bool) {
	r.state.Turn = Dealer
	r.setPhase(DealerTurn)
	r.revealHoleCard()

	if dealerDraws {
		for Score(r.state.DealerHand, AllCards) < r.standsOn {
			r.dealTo(Dealer, deck.FaceUp)
		}
	}

	r.resolve()
}

// revealHoleCard flips the dealer's face-down card. Each card's
// facing changes at most once, so a second call finds nothing to do.
func (r *Round) revealHoleCard() {
	for i := range r.state.DealerHand {
		if r.state.DealerHand[i].Facing == deck.FaceDown {
			r.state.DealerHand[i].Facing = deck.FaceUp
			r.bus.Publish(NewHoleCardRevealedEvent(r.state.ID, r.state.DealerHand[i], Score(r.state.DealerHand, AllCards)))
			return
		}
	}
}

// resolve decides the outcome, settles effects exactly once, applies
// the full delta atomically through the progression collaborator and
// returns the machine to AwaitingBet, discarding the round state.
func (r *Round) resolve() {
	outcome := r.outcome()

	// The streak is read live at resolution time; it may differ from
	// the snapshot taken at bet placement.
	settlement := r.resolver.Settle(r.state, outcome, r.progression.WinStreak())

	switch outcome {
	case Win:
		r.progression.ApplyPayout(settlement.Payout)
	case Loss:
		if settlement.Refund > 0 {
			r.progression.HealPlayer(settlement.Refund)
		}
	case Push:
		// Stake comes back; neither effect path runs.
		r.progression.ApplyPayout(r.state.Bet)
	}
	r.progression.RecordOutcome(outcome)

	r.last = &RoundResult{
		RoundID:     r.state.ID,
		Outcome:     outcome,
		PlayerHand:  append(deck.Hand(nil), r.state.PlayerHand...),
		DealerHand:  append(deck.Hand(nil), r.state.DealerHand...),
		PlayerScore: Score(r.state.PlayerHand, AllCards),
		DealerScore: Score(r.state.DealerHand, AllCards),
		Settlement:  settlement,
	}

	r.setPhase(Resolved)
	r.logger.Info("Round resolved",
		"round", r.state.ID,
		"outcome", outcome,
		"playerScore", r.last.PlayerScore,
		"dealerScore", r.last.DealerScore,
		"payout", settlement.Payout,
		"bonus", settlement.Bonus,
		"refund", settlement.Refund,
		"balance", r.progression.Balance())
	r.bus.Publish(NewRoundResolvedEvent(r.last, r.progression.Balance()))

	// The payout is handed off, so the round state is discarded and
	// the machine is immediately ready for the next bet.
	r.state = newRoundState()
	r.setPhase(AwaitingBet)
}

// outcome compares both hands under the actual policy with standard
// blackjack precedence: bust is an auto-loss, a natural beats a
// non-natural 21, otherwise the higher score under 22 wins and equal
// scores push.
func (r *Round) outcome() Outcome {
	playerScore := Score(r.state.PlayerHand, AllCards)
	dealerScore := Score(r.state.DealerHand, AllCards)

	switch {
	case playerScore > BustThreshold:
		return Loss
	case dealerScore > BustThreshold:
		return Win
	}

	playerNatural := IsNatural(r.state.PlayerHand)
	dealerNatural := IsNatural(r.state.DealerHand)
	switch {
	case playerNatural && !dealerNatural:
		return Win
	case dealerNatural && !playerNatural:
		return Loss
	}

	switch {
	case playerScore > dealerScore:
		return Win
	case playerScore < dealerScore:
		return Loss
	default:
		return Push
	}
}

func (r *Round) dealTo(seat Seat, facing deck.Facing) {
	card := r.shoe.Draw(facing)
	var visible int
	if seat == Player {
		r.state.PlayerHand = append(r.state.PlayerHand, card)
		visible = Score(r.state.PlayerHand, VisibleOnly)
	} else {
		r.state.DealerHand = append(r.state.DealerHand, card)
		visible = Score(r.state.DealerHand, VisibleOnly)
	}
	r.bus.Publish(NewCardDealtEvent(r.state.ID, seat, card, visible))
}

func (r *Round) setPhase(to Phase) {
	from := r.state.Phase
	r.state.Phase = to
	r.bus.Publish(NewPhaseChangedEvent(r.state.ID, from, to))
}

func (r *Round) invalid(format string, args ...any) error {
	err := reject(CodeInvalidTransition, format, args...)
	r.logger.Debug("Invalid transition", "phase", r.state.Phase, "reason", err.Reason)
	return err
}
