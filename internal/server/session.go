package server

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/embervale/tarotjack/internal/deck"
	"github.com/embervale/tarotjack/internal/game"
	"github.com/embervale/tarotjack/internal/randutil"
)

// Sender delivers server messages to one client.
type Sender interface {
	SendMessage(msg *Message) error
}

// Session binds one client connection to its own round state machine.
// Every client gets a private shoe, progression and inventory; intents
// arrive on the connection's read goroutine, which is the machine's
// single control goroutine.
type Session struct {
	table       TableConfig
	round       *game.Round
	progression *game.MemoryProgression
	sender      Sender
	logger      *log.Logger

	clock       quartz.Clock
	idleTimeout time.Duration
	idleTimer   *quartz.Timer
	onIdle      func()
	seed        int64
}

// SessionOption customizes a Session.
type SessionOption func(*Session)

// WithClock substitutes the wall clock, used by tests to drive the
// idle timeout deterministically.
func WithClock(clock quartz.Clock) SessionOption {
	return func(s *Session) { s.clock = clock }
}

// WithIdleTimeout overrides how long a session may sit without intents
// before it is closed.
func WithIdleTimeout(d time.Duration) SessionOption {
	return func(s *Session) { s.idleTimeout = d }
}

// WithSeed fixes the shoe's shuffle seed.
func WithSeed(seed int64) SessionOption {
	return func(s *Session) { s.seed = seed }
}

// WithOnIdle registers the callback fired when the idle timeout
// elapses. The server uses it to close the connection.
func WithOnIdle(f func()) SessionOption {
	return func(s *Session) { s.onIdle = f }
}

// NewSession creates a session playing at the given table. The player
// holds the full effect catalog; per-player inventories belong to a
// progression service outside this server.
func NewSession(table TableConfig, registry *game.Registry, sender Sender, logger *log.Logger, opts ...SessionOption) *Session {
	s := &Session{
		table:       table,
		sender:      sender,
		logger:      logger.WithPrefix("session"),
		clock:       quartz.NewReal(),
		idleTimeout: defaultIdleTimeout,
		seed:        time.Now().UnixNano(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.progression = game.NewMemoryProgression(table.StartingHealth)
	inventory := game.NewMemoryInventory(registry.IDs()...)
	resolver := game.NewResolver(registry, inventory, s.logger)
	s.round = game.NewRound(
		deck.NewShoe(randutil.New(s.seed)),
		resolver,
		s.progression,
		game.BetLimits{Min: table.MinBet, Max: table.MaxBet},
		game.WithDealerStandsOn(table.DealerStandsOn),
		game.WithLogger(s.logger),
	)
	s.round.Bus().Subscribe(s)
	return s
}

// Start arms the idle timer and pushes the initial table state.
func (s *Session) Start() {
	if s.onIdle != nil {
		s.idleTimer = s.clock.AfterFunc(s.idleTimeout, s.onIdle)
	}
	s.sendState()
}

// Stop releases the idle timer.
func (s *Session) Stop() {
	if s.idleTimer != nil {
		s.idleTimer.Stop()
	}
}

// Round exposes the state machine for event wiring (history recording,
// monitors).
func (s *Session) Round() *game.Round {
	return s.round
}

// HandleIntent routes one client message into the state machine.
// Rejections are reported back to the client and never terminate the
// session.
func (s *Session) HandleIntent(msg *Message) {
	s.touch()

	var err error
	switch msg.Type {
	case MessageTypePlaceBet:
		var data PlaceBetData
		if jsonErr := json.Unmarshal(msg.Data, &data); jsonErr != nil {
			s.sendError("invalid_message", "Failed to parse bet data")
			return
		}
		err = s.round.PlaceBet(data.Amount)

	case MessageTypeDeal:
		err = s.round.Deal()

	case MessageTypeHit:
		err = s.round.Hit()

	case MessageTypeStand:
		err = s.round.Stand()

	case MessageTypeActivateEffect:
		var data ActivateEffectData
		if jsonErr := json.Unmarshal(msg.Data, &data); jsonErr != nil {
			s.sendError("invalid_message", "Failed to parse effect data")
			return
		}
		err = s.round.ActivateEffect(game.EffectID(data.Effect))

	case MessageTypeGetState:
		s.sendState()
		return

	default:
		s.sendError("unknown_message_type", "Unknown message type: "+msg.Type.String())
		return
	}

	if err != nil {
		var rejection *game.Rejection
		if errors.As(err, &rejection) {
			s.sendError(string(rejection.Code), rejection.Reason)
			return
		}
		s.sendError("internal_error", err.Error())
	}
}

// OnEvent forwards round events to the client as messages.
func (s *Session) OnEvent(event game.RoundEvent) {
	switch e := event.(type) {
	case game.BetPlacedEvent:
		s.send(MessageTypeBetAccepted, BetAcceptedData{
			RoundID: e.RoundID,
			Amount:  e.Amount,
			Balance: e.Balance,
		})
	case game.CardDealtEvent:
		s.send(MessageTypeCardDealt, CardDealtData{
			RoundID:      e.RoundID,
			Seat:         e.Seat.String(),
			Card:         CardStateFromDeck(e.Card, false),
			VisibleScore: e.VisibleScore,
		})
	case game.HoleCardRevealedEvent:
		s.send(MessageTypeHoleCardRevealed, HoleCardRevealedData{
			RoundID:     e.RoundID,
			Card:        CardStateFromDeck(e.Card, true),
			DealerScore: e.DealerScore,
		})
	case game.PhaseChangedEvent:
		s.send(MessageTypePhaseChanged, PhaseChangedData{
			RoundID: e.RoundID,
			From:    e.From.String(),
			To:      e.To.String(),
		})
	case game.EffectActivatedEvent:
		s.send(MessageTypeEffectActivated, EffectActivatedData{
			RoundID: e.RoundID,
			Effect:  string(e.Effect.ID),
			Name:    e.Effect.Name,
		})
	case game.EffectRejectedEvent:
		s.send(MessageTypeEffectRejected, EffectRejectedData{
			RoundID: e.RoundID,
			Effect:  string(e.ID),
			Code:    string(e.Code),
			Reason:  e.Reason,
		})
	case game.RoundResolvedEvent:
		s.send(MessageTypeRoundResolved, RoundResolvedDataFromGame(e.Result, e.Balance))
	}
}

// touch pushes the idle deadline forward.
func (s *Session) touch() {
	if s.idleTimer != nil {
		s.idleTimer.Reset(s.idleTimeout)
	}
}

func (s *Session) sendState() {
	state := s.round.State()
	effects := make([]string, 0, len(state.Activations))
	for id, flag := range state.Activations {
		if flag == game.Activated {
			effects = append(effects, string(id))
		}
	}

	s.send(MessageTypeTableState, TableStateData{
		Table:       s.table.Name,
		Phase:       state.Phase.String(),
		Bet:         state.Bet,
		Balance:     s.progression.Balance(),
		Streak:      s.progression.WinStreak(),
		MinBet:      s.table.MinBet,
		MaxBet:      s.table.MaxBet,
		PlayerHand:  HandStateFromDeck(state.PlayerHand),
		DealerHand:  HandStateFromDeck(state.DealerHand),
		PlayerScore: game.Score(state.PlayerHand, game.VisibleOnly),
		DealerScore: game.Score(state.DealerHand, game.VisibleOnly),
		Effects:     effects,
	})
}

func (s *Session) send(messageType MessageType, data interface{}) {
	msg, err := NewMessage(messageType, data)
	if err != nil {
		s.logger.Error("Failed to create message", "type", messageType, "error", err)
		return
	}
	if err := s.sender.SendMessage(msg); err != nil {
		s.logger.Debug("Failed to send message", "type", messageType, "error", err)
	}
}

func (s *Session) sendError(code, message string) {
	s.send(MessageTypeError, ErrorData{Code: code, Message: message})
}
