package game

import (
	"time"

	"github.com/embervale/tarotjack/internal/deck"
)

// EventType represents a round event type with type safety
type EventType string

const (
	EventTypeBetPlaced        EventType = "bet_placed"
	EventTypeCardDealt        EventType = "card_dealt"
	EventTypeHoleCardRevealed EventType = "hole_card_revealed"
	EventTypePhaseChanged     EventType = "phase_changed"
	EventTypeEffectActivated  EventType = "effect_activated"
	EventTypeEffectRejected   EventType = "effect_rejected"
	EventTypeRoundResolved    EventType = "round_resolved"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// RoundEvent represents any event emitted by the round state machine.
// Events are notifications fired after a transition has already
// completed; the machine never waits on their consumers, so visual
// side effects (panel slides, card flights) cannot gate transitions.
type RoundEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

// BetPlacedEvent is published when a bet is accepted and deducted.
type BetPlacedEvent struct {
	RoundID   string
	Amount    int
	Balance   float64
	timestamp time.Time
}

func (e BetPlacedEvent) EventType() EventType { return EventTypeBetPlaced }
func (e BetPlacedEvent) Timestamp() time.Time { return e.timestamp }

// NewBetPlacedEvent creates a new bet placed event
func NewBetPlacedEvent(roundID string, amount int, balance float64) BetPlacedEvent {
	return BetPlacedEvent{RoundID: roundID, Amount: amount, Balance: balance, timestamp: time.Now()}
}

// CardDealtEvent is published for every dealt card. VisibleScore is
// the receiving hand's score counting face-up cards only.
type CardDealtEvent struct {
	RoundID      string
	Seat         Seat
	Card         deck.Card
	VisibleScore int
	timestamp    time.Time
}

func (e CardDealtEvent) EventType() EventType { return EventTypeCardDealt }
func (e CardDealtEvent) Timestamp() time.Time { return e.timestamp }

// NewCardDealtEvent creates a new card dealt event
func NewCardDealtEvent(roundID string, seat Seat, card deck.Card, visibleScore int) CardDealtEvent {
	return CardDealtEvent{RoundID: roundID, Seat: seat, Card: card, VisibleScore: visibleScore, timestamp: time.Now()}
}

// HoleCardRevealedEvent is published when the dealer's hole card is
// flipped face up at the start of the dealer turn.
type HoleCardRevealedEvent struct {
	RoundID     string
	Card        deck.Card
	DealerScore int
	timestamp   time.Time
}

func (e HoleCardRevealedEvent) EventType() EventType { return EventTypeHoleCardRevealed }
func (e HoleCardRevealedEvent) Timestamp() time.Time { return e.timestamp }

// NewHoleCardRevealedEvent creates a new hole card revealed event
func NewHoleCardRevealedEvent(roundID string, card deck.Card, dealerScore int) HoleCardRevealedEvent {
	return HoleCardRevealedEvent{RoundID: roundID, Card: card, DealerScore: dealerScore, timestamp: time.Now()}
}

// PhaseChangedEvent is published after every phase transition.
type PhaseChangedEvent struct {
	RoundID   string
	From      Phase
	To        Phase
	timestamp time.Time
}

func (e PhaseChangedEvent) EventType() EventType { return EventTypePhaseChanged }
func (e PhaseChangedEvent) Timestamp() time.Time { return e.timestamp }

// NewPhaseChangedEvent creates a new phase changed event
func NewPhaseChangedEvent(roundID string, from, to Phase) PhaseChangedEvent {
	return PhaseChangedEvent{RoundID: roundID, From: from, To: to, timestamp: time.Now()}
}

// EffectActivatedEvent is published when a tarot effect activates.
type EffectActivatedEvent struct {
	RoundID   string
	Effect    Effect
	timestamp time.Time
}

func (e EffectActivatedEvent) EventType() EventType { return EventTypeEffectActivated }
func (e EffectActivatedEvent) Timestamp() time.Time { return e.timestamp }

// NewEffectActivatedEvent creates a new effect activated event
func NewEffectActivatedEvent(roundID string, effect Effect) EffectActivatedEvent {
	return EffectActivatedEvent{RoundID: roundID, Effect: effect, timestamp: time.Now()}
}

// EffectRejectedEvent is published when an activation request is
// refused. Reason is the user-facing string for the presentation
// layer; no rejection is silent.
type EffectRejectedEvent struct {
	RoundID   string
	ID        EffectID
	Code      ErrorCode
	Reason    string
	timestamp time.Time
}

func (e EffectRejectedEvent) EventType() EventType { return EventTypeEffectRejected }
func (e EffectRejectedEvent) Timestamp() time.Time { return e.timestamp }

// NewEffectRejectedEvent creates a new effect rejected event
func NewEffectRejectedEvent(roundID string, id EffectID, code ErrorCode, reason string) EffectRejectedEvent {
	return EffectRejectedEvent{RoundID: roundID, ID: id, Code: code, Reason: reason, timestamp: time.Now()}
}

// RoundResolvedEvent is published exactly once per round, after the
// settlement delta has been applied.
type RoundResolvedEvent struct {
	Result    *RoundResult
	Balance   float64
	timestamp time.Time
}

func (e RoundResolvedEvent) EventType() EventType { return EventTypeRoundResolved }
func (e RoundResolvedEvent) Timestamp() time.Time { return e.timestamp }

// NewRoundResolvedEvent creates a new round resolved event
func NewRoundResolvedEvent(result *RoundResult, balance float64) RoundResolvedEvent {
	return RoundResolvedEvent{Result: result, Balance: balance, timestamp: time.Now()}
}

// EventSubscriber can subscribe to round events
type EventSubscriber interface {
	OnEvent(event RoundEvent)
}

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event RoundEvent)
}

// SimpleEventBus is a basic in-memory event bus implementation
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() EventBus {
	return &SimpleEventBus{subscribers: make([]EventSubscriber, 0)}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber from receiving events
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	for i, sub := range bus.subscribers {
		if sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			break
		}
	}
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event RoundEvent) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}
