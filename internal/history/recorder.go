package history

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/embervale/tarotjack/internal/deck"
	"github.com/embervale/tarotjack/internal/fileutil"
	"github.com/embervale/tarotjack/internal/game"
)

// Recorder subscribes to a round's event bus and writes one transcript
// file per resolved round into a directory. It implements
// game.EventSubscriber and is driven from the same goroutine as the
// round machine, so it needs no locking.
type Recorder struct {
	dir     string
	logger  *log.Logger
	current *Transcript
}

// NewRecorder creates a recorder writing transcripts under dir. The
// directory must already exist.
func NewRecorder(dir string, logger *log.Logger) *Recorder {
	if logger == nil {
		logger = log.Default()
	}
	return &Recorder{dir: dir, logger: logger.WithPrefix("history")}
}

// OnEvent consumes round events. Only bet placement, effect activation
// and resolution contribute to the transcript; everything else is
// recoverable from the final hands.
func (rec *Recorder) OnEvent(event game.RoundEvent) {
	switch e := event.(type) {
	case game.BetPlacedEvent:
		rec.current = &Transcript{
			RoundID:  e.RoundID,
			PlayedAt: e.Timestamp(),
			Bet:      e.Amount,
		}
	case game.EffectActivatedEvent:
		if rec.current != nil {
			rec.current.Activations = append(rec.current.Activations, string(e.Effect.ID))
		}
	case game.RoundResolvedEvent:
		rec.finish(e)
	}
}

func (rec *Recorder) finish(e game.RoundResolvedEvent) {
	if rec.current == nil || e.Result == nil {
		return
	}
	t := rec.current
	rec.current = nil

	t.PlayerHand = cardNames(e.Result.PlayerHand)
	t.DealerHand = cardNames(e.Result.DealerHand)
	t.PlayerScore = e.Result.PlayerScore
	t.DealerScore = e.Result.DealerScore
	t.Outcome = e.Result.Outcome.String()
	t.Bonus = e.Result.Settlement.Bonus
	t.Multiplier = e.Result.Settlement.Multiplier
	t.Payout = e.Result.Settlement.Payout
	t.Refund = e.Result.Settlement.Refund
	t.BalanceAfter = e.Balance

	if err := rec.write(t); err != nil {
		rec.logger.Error("Failed to write round transcript", "round", t.RoundID, "error", err)
		return
	}
	rec.logger.Debug("Round transcript written", "round", t.RoundID)
}

func (rec *Recorder) write(t *Transcript) error {
	data, err := EncodeToBytes(t)
	if err != nil {
		return err
	}
	return fileutil.WriteFileAtomic(rec.Path(t.RoundID), data, 0o644)
}

// Path returns the transcript file path for a round ID.
func (rec *Recorder) Path(roundID string) string {
	return filepath.Join(rec.dir, fmt.Sprintf("round-%s.toml", roundID))
}

func cardNames(hand deck.Hand) []string {
	names := make([]string, len(hand))
	for i, c := range hand {
		names[i] = fmt.Sprintf("%s%s", c.Rank, c.Suit)
	}
	return names
}
