// Package history records resolved rounds as TOML transcripts.
//
// The recorder subscribes to a round's event bus and writes one file
// per resolved round. Recording is a fire-and-forget side effect:
// encoding or write failures are logged and never reach the state
// machine.
package history

import "time"

// Transcript is the persisted record of one resolved round.
type Transcript struct {
	RoundID  string    `toml:"round_id"`
	PlayedAt time.Time `toml:"played_at"`
	Bet      int       `toml:"bet"`

	PlayerHand  []string `toml:"player_hand"`
	DealerHand  []string `toml:"dealer_hand"`
	PlayerScore int      `toml:"player_score"`
	DealerScore int      `toml:"dealer_score"`

	Activations []string `toml:"activations,omitempty"`

	Outcome      string  `toml:"outcome"`
	Bonus        int     `toml:"bonus"`
	Multiplier   float64 `toml:"multiplier"`
	Payout       int     `toml:"payout"`
	Refund       float64 `toml:"refund"`
	BalanceAfter float64 `toml:"balance_after"`
}
