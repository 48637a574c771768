package server

import (
	"encoding/json"
	"time"

	"github.com/embervale/tarotjack/internal/deck"
	"github.com/embervale/tarotjack/internal/game"
)

// MessageType identifies a message on the wire with type safety
type MessageType string

const (
	// Client → Server
	MessageTypePlaceBet       MessageType = "place_bet"
	MessageTypeDeal           MessageType = "deal"
	MessageTypeHit            MessageType = "hit"
	MessageTypeStand          MessageType = "stand"
	MessageTypeActivateEffect MessageType = "activate_effect"
	MessageTypeGetState       MessageType = "get_state"

	// Server → Client
	MessageTypeBetAccepted      MessageType = "bet_accepted"
	MessageTypeCardDealt        MessageType = "card_dealt"
	MessageTypeHoleCardRevealed MessageType = "hole_card_revealed"
	MessageTypePhaseChanged     MessageType = "phase_changed"
	MessageTypeEffectActivated  MessageType = "effect_activated"
	MessageTypeEffectRejected   MessageType = "effect_rejected"
	MessageTypeRoundResolved    MessageType = "round_resolved"
	MessageTypeTableState       MessageType = "table_state"
	MessageTypeError            MessageType = "error"
)

// String returns the string representation of the message type
func (mt MessageType) String() string {
	return string(mt)
}

// Message represents the base WebSocket message structure
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewMessage creates a new message with the current timestamp
func NewMessage(messageType MessageType, data interface{}) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: time.Now(),
	}, nil
}

// Client → Server Messages

type PlaceBetData struct {
	Amount int `json:"amount"`
}

type ActivateEffectData struct {
	Effect string `json:"effect"`
}

// Server → Client Messages

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// CardState is the wire form of a card. Face-down cards carry no rank
// or suit so the dealer's hole card cannot leak to the client.
type CardState struct {
	Rank     string `json:"rank,omitempty"`
	Suit     string `json:"suit,omitempty"`
	FaceDown bool   `json:"faceDown,omitempty"`
}

type BetAcceptedData struct {
	RoundID string  `json:"roundId"`
	Amount  int     `json:"amount"`
	Balance float64 `json:"balance"`
}

type CardDealtData struct {
	RoundID      string    `json:"roundId"`
	Seat         string    `json:"seat"`
	Card         CardState `json:"card"`
	VisibleScore int       `json:"visibleScore"`
}

type HoleCardRevealedData struct {
	RoundID     string    `json:"roundId"`
	Card        CardState `json:"card"`
	DealerScore int       `json:"dealerScore"`
}

type PhaseChangedData struct {
	RoundID string `json:"roundId"`
	From    string `json:"from"`
	To      string `json:"to"`
}

type EffectActivatedData struct {
	RoundID string `json:"roundId"`
	Effect  string `json:"effect"`
	Name    string `json:"name"`
}

type EffectRejectedData struct {
	RoundID string `json:"roundId"`
	Effect  string `json:"effect"`
	Code    string `json:"code"`
	Reason  string `json:"reason"`
}

type RoundResolvedData struct {
	RoundID     string      `json:"roundId"`
	Outcome     string      `json:"outcome"`
	PlayerHand  []CardState `json:"playerHand"`
	DealerHand  []CardState `json:"dealerHand"`
	PlayerScore int         `json:"playerScore"`
	DealerScore int         `json:"dealerScore"`
	Bonus       int         `json:"bonus"`
	Multiplier  float64     `json:"multiplier"`
	Payout      int         `json:"payout"`
	Refund      float64     `json:"refund"`
	Balance     float64     `json:"balance"`
}

type TableStateData struct {
	Table       string      `json:"table"`
	Phase       string      `json:"phase"`
	Bet         int         `json:"bet"`
	Balance     float64     `json:"balance"`
	Streak      int         `json:"streak"`
	MinBet      int         `json:"minBet"`
	MaxBet      int         `json:"maxBet"`
	PlayerHand  []CardState `json:"playerHand"`
	DealerHand  []CardState `json:"dealerHand"`
	PlayerScore int         `json:"playerScore"`
	DealerScore int         `json:"dealerScore"`
	Effects     []string    `json:"effects"`
}

// Helper functions to convert between internal types and message types

// CardStateFromDeck hides face-down cards unless reveal is set.
func CardStateFromDeck(c deck.Card, reveal bool) CardState {
	if c.Facing == deck.FaceDown && !reveal {
		return CardState{FaceDown: true}
	}
	return CardState{Rank: c.Rank.String(), Suit: c.Suit.Name()}
}

// HandStateFromDeck converts a hand for the wire, hiding face-down
// cards.
func HandStateFromDeck(hand deck.Hand) []CardState {
	out := make([]CardState, len(hand))
	for i, c := range hand {
		out[i] = CardStateFromDeck(c, false)
	}
	return out
}

// RoundResolvedDataFromGame builds the resolution payload. Both hands
// are fully revealed at resolution.
func RoundResolvedDataFromGame(result *game.RoundResult, balance float64) RoundResolvedData {
	reveal := func(hand deck.Hand) []CardState {
		out := make([]CardState, len(hand))
		for i, c := range hand {
			out[i] = CardStateFromDeck(c, true)
		}
		return out
	}

	return RoundResolvedData{
		RoundID:     result.RoundID,
		Outcome:     result.Outcome.String(),
		PlayerHand:  reveal(result.PlayerHand),
		DealerHand:  reveal(result.DealerHand),
		PlayerScore: result.PlayerScore,
		DealerScore: result.DealerScore,
		Bonus:       result.Settlement.Bonus,
		Multiplier:  result.Settlement.Multiplier,
		Payout:      result.Settlement.Payout,
		Refund:      result.Settlement.Refund,
		Balance:     balance,
	}
}
