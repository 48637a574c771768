// Package tui renders a single-player table in the terminal. All game
// state lives in the round state machine; the model translates key
// presses into intents and round events into log lines.
package tui

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/embervale/tarotjack/internal/deck"
	"github.com/embervale/tarotjack/internal/game"
	"github.com/embervale/tarotjack/internal/randutil"
)

const maxLogLines = 10

// Options configures a table session.
type Options struct {
	Seed           int64
	StartingHealth float64
	MinBet         int
	MaxBet         int
	DealerStandsOn int
	Registry       *game.Registry
	Logger         *log.Logger
}

// Model is the Bubble Tea model for one table session.
type Model struct {
	round       *game.Round
	progression *game.MemoryProgression
	registry    *game.Registry
	logger      *log.Logger

	betInput textinput.Model

	gameLog  []string
	errLine  string
	width    int
	height   int
	quitting bool
}

// NewModel creates a model driving a fresh round state machine.
func NewModel(opts Options) *Model {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	registry := opts.Registry
	if registry == nil {
		registry = game.NewRegistry(game.DefaultCatalog()...)
	}
	if opts.DealerStandsOn == 0 {
		opts.DealerStandsOn = 17
	}

	progression := game.NewMemoryProgression(opts.StartingHealth)
	inventory := game.NewMemoryInventory(registry.IDs()...)
	resolver := game.NewResolver(registry, inventory, logger)

	m := &Model{
		progression: progression,
		registry:    registry,
		logger:      logger.WithPrefix("tui"),
	}
	m.round = game.NewRound(
		deck.NewShoe(randutil.New(opts.Seed)),
		resolver,
		progression,
		game.BetLimits{Min: opts.MinBet, Max: opts.MaxBet},
		game.WithDealerStandsOn(opts.DealerStandsOn),
		game.WithLogger(logger),
	)
	m.round.Bus().Subscribe(m)

	limits := m.round.Limits()
	ti := textinput.New()
	ti.Placeholder = fmt.Sprintf("bet amount (%d-%d)", limits.Min, limits.Max)
	ti.CharLimit = 6
	ti.Width = 24
	ti.Prompt = "> "
	ti.Focus()
	m.betInput = ti

	return m
}

// Round exposes the state machine, used by tests and event wiring.
func (m *Model) Round() *game.Round {
	return m.round
}

// Init initializes the TUI model
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages in the TUI
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		if cmd, handled := m.handleKey(msg); handled {
			return m, cmd
		}
	}

	var cmd tea.Cmd
	if m.round.State().Phase == game.AwaitingBet {
		m.betInput, cmd = m.betInput.Update(msg)
	}
	return m, cmd
}

// handleKey maps key presses to round intents. Keys that belong to
// the bet input fall through to it.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	phase := m.round.State().Phase

	switch msg.String() {
	case "ctrl+c", "esc":
		m.quitting = true
		return tea.Quit, true

	case "enter":
		if phase == game.AwaitingBet {
			m.placeBetFromInput()
			return nil, true
		}

	case "d":
		if phase == game.BetPlaced {
			m.intend(m.round.Deal())
			return nil, true
		}

	case "h":
		if phase == game.PlayerTurn {
			m.intend(m.round.Hit())
			return nil, true
		}

	case "s":
		if phase == game.PlayerTurn {
			m.intend(m.round.Stand())
			return nil, true
		}

	case "q":
		if phase != game.AwaitingBet {
			m.quitting = true
			return tea.Quit, true
		}
	}

	// Number keys activate effects while a bet is down.
	if phase == game.BetPlaced || phase == game.PlayerTurn {
		if idx, err := strconv.Atoi(msg.String()); err == nil {
			ids := m.registry.IDs()
			if idx >= 1 && idx <= len(ids) {
				m.intend(m.round.ActivateEffect(ids[idx-1]))
				return nil, true
			}
		}
	}

	return nil, false
}

func (m *Model) placeBetFromInput() {
	raw := strings.TrimSpace(m.betInput.Value())
	amount, err := strconv.Atoi(raw)
	if err != nil {
		m.errLine = fmt.Sprintf("%q is not a bet amount", raw)
		return
	}
	if m.intend(m.round.PlaceBet(amount)) {
		m.betInput.SetValue("")
	}
}

// intend runs an intent against the machine. Rejections surface on
// the error line and leave everything else untouched.
func (m *Model) intend(err error) bool {
	if err != nil {
		m.errLine = game.ReasonOf(err)
		return false
	}
	m.errLine = ""
	return true
}

// OnEvent turns round events into log lines. The bus delivers them
// synchronously on the Update goroutine, so no locking is needed.
func (m *Model) OnEvent(event game.RoundEvent) {
	switch e := event.(type) {
	case game.BetPlacedEvent:
		m.appendLog(fmt.Sprintf("Bet %d placed, balance %.0f", e.Amount, e.Balance))
	case game.CardDealtEvent:
		if e.Card.Facing == deck.FaceDown {
			m.appendLog(fmt.Sprintf("%s draws a hidden card", e.Seat))
			return
		}
		m.appendLog(fmt.Sprintf("%s draws %s (%d)", e.Seat, e.Card, e.VisibleScore))
	case game.HoleCardRevealedEvent:
		m.appendLog(fmt.Sprintf("dealer reveals %s (%d)", e.Card, e.DealerScore))
	case game.EffectActivatedEvent:
		m.appendLog(EffectStyle.Render(fmt.Sprintf("%s activated", e.Effect.Name)))
	case game.EffectRejectedEvent:
		m.errLine = e.Reason
	case game.RoundResolvedEvent:
		m.appendLog(m.resolutionLine(e))
	}
}

func (m *Model) resolutionLine(e game.RoundResolvedEvent) string {
	switch e.Result.Outcome {
	case game.Win:
		return WinStyle.Render(fmt.Sprintf("WIN +%d (balance %.0f)", e.Result.Settlement.Payout, e.Balance))
	case game.Loss:
		if refund := e.Result.Settlement.Refund; refund > 0 {
			return LossStyle.Render(fmt.Sprintf("LOSS, %.1f healed back (balance %.1f)", refund, e.Balance))
		}
		return LossStyle.Render(fmt.Sprintf("LOSS (balance %.0f)", e.Balance))
	default:
		return PushStyle.Render(fmt.Sprintf("PUSH, bet returned (balance %.0f)", e.Balance))
	}
}

func (m *Model) appendLog(line string) {
	m.gameLog = append(m.gameLog, line)
	if len(m.gameLog) > maxLogLines {
		m.gameLog = m.gameLog[len(m.gameLog)-maxLogLines:]
	}
}

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	state := m.round.State()
	var b strings.Builder

	b.WriteString(HeaderStyle.Render("TAROTJACK"))
	b.WriteString("\n\n")

	b.WriteString(StatusStyle.Render(fmt.Sprintf(
		"health %.1f   streak %d   bet %d   %s",
		m.progression.Balance(), m.progression.WinStreak(), state.Bet, state.Phase,
	)))
	b.WriteString("\n\n")

	b.WriteString(HandLabelStyle.Render("dealer "))
	b.WriteString(renderHand(state.DealerHand))
	score := game.Score(state.DealerHand, game.VisibleOnly)
	if len(state.DealerHand) > 0 {
		b.WriteString(fmt.Sprintf("  (%d)", score))
	}
	b.WriteString("\n")

	b.WriteString(HandLabelStyle.Render("player "))
	b.WriteString(renderHand(state.PlayerHand))
	if len(state.PlayerHand) > 0 {
		b.WriteString(fmt.Sprintf("  (%d)", game.Score(state.PlayerHand, game.AllCards)))
	}
	b.WriteString("\n\n")

	if state.Phase == game.BetPlaced || state.Phase == game.PlayerTurn {
		b.WriteString(m.renderEffectMenu(state))
		b.WriteString("\n")
	}

	for _, line := range m.gameLog {
		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.errLine != "" {
		b.WriteString(ErrorStyle.Render(m.errLine))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch state.Phase {
	case game.AwaitingBet:
		b.WriteString(m.betInput.View())
		b.WriteString("\n")
		b.WriteString(HelpStyle.Render("enter place bet · esc quit"))
	case game.BetPlaced:
		b.WriteString(HelpStyle.Render("d deal · 1-7 activate effect · q quit"))
	case game.PlayerTurn:
		b.WriteString(HelpStyle.Render("h hit · s stand · 1-7 activate effect · q quit"))
	}
	b.WriteString("\n")

	return b.String()
}

func (m *Model) renderEffectMenu(state *game.RoundState) string {
	var parts []string
	for i, id := range m.registry.IDs() {
		effect, _ := m.registry.Get(id)
		label := fmt.Sprintf("%d %s", i+1, effect.Name)
		if state.Activations[id] == game.Activated {
			parts = append(parts, EffectStyle.Render(label+" ✓"))
			continue
		}
		parts = append(parts, HelpStyle.Render(label))
	}
	return strings.Join(parts, "  ")
}

func renderHand(hand deck.Hand) string {
	if len(hand) == 0 {
		return HelpStyle.Render("—")
	}
	parts := make([]string, len(hand))
	for i, c := range hand {
		parts[i] = styleCard(c)
	}
	return strings.Join(parts, " ")
}

func styleCard(c deck.Card) string {
	if c.Facing == deck.FaceDown {
		return HiddenCardStyle.Render(c.String())
	}
	if c.IsRed() {
		return RedCardStyle.Render(c.String())
	}
	return BlackCardStyle.Render(c.String())
}
