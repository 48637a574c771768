package history

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/embervale/tarotjack/internal/deck"
	"github.com/embervale/tarotjack/internal/game"
	"github.com/embervale/tarotjack/internal/randutil"
)

func playRecordedRound(t *testing.T, dir string) *game.Round {
	t.Helper()

	// Player 19 vs dealer 18 after one draw: a plain win.
	shoe := deck.NewStackedShoe(randutil.New(0),
		deck.NewCard(deck.Spades, deck.Ten),
		deck.NewCard(deck.Diamonds, deck.King),
		deck.NewCard(deck.Hearts, deck.Nine),
		deck.NewCard(deck.Diamonds, deck.Eight),
	)
	resolver := game.NewResolver(
		game.NewRegistry(game.DefaultCatalog()...),
		game.NewMemoryInventory(game.Assassin),
		log.New(io.Discard),
	)
	r := game.NewRound(shoe, resolver, game.NewMemoryProgression(100), game.BetLimits{Min: 1, Max: 50})
	r.Bus().Subscribe(NewRecorder(dir, log.New(io.Discard)))

	require.NoError(t, r.PlaceBet(10))
	require.NoError(t, r.ActivateEffect(game.Assassin))
	require.NoError(t, r.Deal())
	require.NoError(t, r.Stand())
	return r
}

func TestRecorderWritesTranscript(t *testing.T) {
	dir := t.TempDir()
	r := playRecordedRound(t, dir)

	result := r.LastResult()
	require.NotNil(t, result)

	data, err := os.ReadFile(filepath.Join(dir, "round-"+result.RoundID+".toml"))
	require.NoError(t, err)

	transcript, err := Decode(data)
	require.NoError(t, err)

	assert.Equal(t, result.RoundID, transcript.RoundID)
	assert.Equal(t, 10, transcript.Bet)
	assert.Equal(t, "win", transcript.Outcome)
	assert.Equal(t, []string{"T♠", "9♥"}, transcript.PlayerHand)
	assert.Equal(t, []string{"K♦", "8♦"}, transcript.DealerHand)
	assert.Equal(t, 19, transcript.PlayerScore)
	assert.Equal(t, 18, transcript.DealerScore)
	assert.Equal(t, []string{"assassin"}, transcript.Activations)
	assert.Equal(t, 50, transcript.Bonus, "one spade under the Assassin")
	assert.Equal(t, 60, transcript.Payout)
	assert.Equal(t, 150.0, transcript.BalanceAfter)
	assert.False(t, transcript.PlayedAt.IsZero())
}

func TestRecorderIgnoresEventsWithoutOpenRound(t *testing.T) {
	dir := t.TempDir()
	rec := NewRecorder(dir, log.New(io.Discard))

	// Resolution with no preceding bet placement is dropped.
	rec.OnEvent(game.NewRoundResolvedEvent(&game.RoundResult{RoundID: "orphan"}, 100))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestEncodeRoundTrip(t *testing.T) {
	original := &Transcript{
		RoundID:      "abc",
		PlayedAt:     time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
		Bet:          25,
		PlayerHand:   []string{"A♠", "K♣"},
		DealerHand:   []string{"9♦", "7♥"},
		PlayerScore:  21,
		DealerScore:  16,
		Outcome:      "win",
		Payout:       25,
		BalanceAfter: 125,
	}

	data, err := EncodeToBytes(original)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `round_id = "abc"`))
	assert.False(t, strings.Contains(string(data), "activations"), "empty lists are omitted")

	decoded, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}

func TestEncodeNilTranscript(t *testing.T) {
	_, err := EncodeToBytes(nil)
	assert.Error(t, err)
}
