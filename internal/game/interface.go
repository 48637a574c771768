package game

import (
	"fmt"
	"sync"
)

// Progression is the external player-progression collaborator. The
// engine calls it at bet placement and round resolution and never
// touches any other progression field. Implementations must serialize
// mutations: payout application is atomic, and the win streak has a
// single entry point.
type Progression interface {
	// Balance returns the current health balance.
	Balance() float64

	// DeductBet removes the bet from the balance the moment it is
	// placed. The bet is at risk from that instant, independent of
	// the round's outcome.
	DeductBet(amount int) error

	// ApplyPayout credits the resolved win payout.
	ApplyPayout(delta int)

	// HealPlayer credits a refund outside the payout path.
	HealPlayer(amount float64)

	// WinStreak returns the current consecutive-win counter. The
	// streak persists across rounds and is reset only by a loss.
	WinStreak() int

	// RecordOutcome updates the streak counter for a resolved round.
	RecordOutcome(outcome Outcome)
}

// Inventory is the external collaborator that knows which tarot
// effects the player holds.
type Inventory interface {
	HasEffect(id EffectID) bool
}

// MemoryProgression is an in-memory Progression used by the server
// sessions, the terminal UI and tests. A mutex serializes every
// mutation so no partial payout is ever observable.
type MemoryProgression struct {
	mu     sync.Mutex
	health float64
	streak int
}

// NewMemoryProgression creates a progression with the given starting
// health balance.
func NewMemoryProgression(health float64) *MemoryProgression {
	return &MemoryProgression{health: health}
}

func (p *MemoryProgression) Balance() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.health
}

func (p *MemoryProgression) DeductBet(amount int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if float64(amount) > p.health {
		return fmt.Errorf("bet %d exceeds balance %.0f", amount, p.health)
	}
	p.health -= float64(amount)
	return nil
}

func (p *MemoryProgression) ApplyPayout(delta int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.health += float64(delta)
}

func (p *MemoryProgression) HealPlayer(amount float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.health += amount
}

func (p *MemoryProgression) WinStreak() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.streak
}

func (p *MemoryProgression) RecordOutcome(outcome Outcome) {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch outcome {
	case Win:
		p.streak++
	case Loss:
		p.streak = 0
	}
	// A push leaves the streak untouched.
}

// MemoryInventory is an in-memory Inventory.
type MemoryInventory struct {
	held map[EffectID]bool
}

// NewMemoryInventory creates an inventory holding the given effects.
func NewMemoryInventory(ids ...EffectID) *MemoryInventory {
	inv := &MemoryInventory{held: make(map[EffectID]bool, len(ids))}
	for _, id := range ids {
		inv.held[id] = true
	}
	return inv
}

// Grant adds an effect to the inventory.
func (inv *MemoryInventory) Grant(id EffectID) {
	inv.held[id] = true
}

func (inv *MemoryInventory) HasEffect(id EffectID) bool {
	return inv.held[id]
}
