package game

import (
	"math"

	"github.com/charmbracelet/log"
)

// ActivationState tracks an effect's per-round lifecycle. The only
// transition is Dormant to Activated, at most once per round.
type ActivationState int

const (
	Dormant ActivationState = iota
	Activated
)

func (s ActivationState) String() string {
	if s == Activated {
		return "activated"
	}
	return "dormant"
}

// Resolver orchestrates effect activation and composes bonuses at
// hand resolution. It holds no per-round state of its own; activation
// flags live in the RoundState it is handed.
type Resolver struct {
	registry  *Registry
	inventory Inventory
	logger    *log.Logger
}

// NewResolver creates a resolver over the given catalog and inventory
// collaborator.
func NewResolver(registry *Registry, inventory Inventory, logger *log.Logger) *Resolver {
	return &Resolver{
		registry:  registry,
		inventory: inventory,
		logger:    logger.WithPrefix("resolver"),
	}
}

// Registry returns the effect catalog the resolver dispatches over.
func (r *Resolver) Registry() *Registry {
	return r.registry
}

// CanActivate checks every activation condition without mutating the
// round state. Presentation layers use it to gate activation controls.
func (r *Resolver) CanActivate(state *RoundState, id EffectID) error {
	_, err := r.check(state, id)
	return err
}

// Activate transitions an effect from Dormant to Activated for this
// round. It fires only when a bet is placed, the owner holds the
// effect, the effect's precondition holds, and the flag is still
// Dormant. A repeat activation is a non-fatal rejection and leaves
// the round state unchanged.
func (r *Resolver) Activate(state *RoundState, id EffectID) (Effect, error) {
	effect, err := r.check(state, id)
	if err != nil {
		return Effect{}, err
	}
	state.Activations[id] = Activated
	r.logger.Debug("Effect activated", "effect", id, "round", state.ID)
	return effect, nil
}

func (r *Resolver) check(state *RoundState, id EffectID) (Effect, error) {
	if r.inventory == nil {
		return Effect{}, reject(CodeMissingCollaborator, "inventory collaborator is not available")
	}
	effect, ok := r.registry.Get(id)
	if !ok {
		return Effect{}, reject(CodeEffectPreconditionUnmet, "unknown effect %q", id)
	}
	if state.Bet <= 0 {
		return Effect{}, reject(CodeInvalidTransition, "no bet is placed for this round")
	}
	if !r.inventory.HasEffect(id) {
		return Effect{}, reject(CodeEffectPreconditionUnmet, "you do not hold %s", effect.Name)
	}
	if state.Activations[id] == Activated {
		return Effect{}, reject(CodeEffectAlreadyActivated, "%s was already activated this round", effect.Name)
	}
	return effect, nil
}

// Settlement describes the money movement of a resolved round.
// Exactly one of the win-payout path and the loss-refund path
// executes; a push applies neither.
type Settlement struct {
	Outcome    Outcome
	Bonus      int     // sum of additive effect bonuses
	Multiplier float64 // composed multiplicative factor, 1.0 when inactive
	Payout     int     // credited on a win: (bet + bonus) x multiplier
	Refund     float64 // credited via HealPlayer on a loss
}

// Settle computes the settlement for the round, once, after the
// outcome is decided. Additive bonuses are computed independently per
// activated effect against the final player hand and summed, so their
// order cannot matter. Multiplicative factors apply exactly once,
// last, and only while a win streak is active at resolution time.
func (r *Resolver) Settle(state *RoundState, outcome Outcome, streak int) Settlement {
	s := Settlement{Outcome: outcome, Multiplier: 1.0}

	switch outcome {
	case Win:
		for _, id := range r.registry.IDs() {
			if state.Activations[id] != Activated {
				continue
			}
			effect, _ := r.registry.Get(id)
			s.Bonus += effect.Bonus(state.PlayerHand)
			if effect.Kind == StreakMultiplier && streak > 0 {
				s.Multiplier *= effect.Factor
			}
		}
		s.Payout = int(math.Round(float64(state.Bet+s.Bonus) * s.Multiplier))

	case Loss:
		for _, id := range r.registry.IDs() {
			if state.Activations[id] != Activated {
				continue
			}
			effect, _ := r.registry.Get(id)
			if effect.Kind == LossRefund {
				s.Refund += float64(state.Bet) * effect.Fraction
			}
		}

	case Push:
		// No payout, no refund; the bet was already returned by the
		// round machine.
	}

	return s
}
