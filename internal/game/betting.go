package game

// BetLimits holds the configured betting bounds for a table.
type BetLimits struct {
	Min int
	Max int
}

// ValidateBet decides whether a proposed bet is legal against the
// current balance and table limits. It returns nil when the bet is
// acceptable, or a *Rejection carrying the first failing rule.
//
// The validator is pure and side-effect free. Callers run it on every
// input change to gate the confirm action, and again immediately
// before committing the bet in case the balance changed in between.
func ValidateBet(amount int, balance float64, limits BetLimits) error {
	switch {
	case amount < limits.Min:
		return reject(CodeBetRejected, "bet %d is below the table minimum of %d", amount, limits.Min)
	case float64(amount) > balance:
		return reject(CodeBetRejected, "bet %d exceeds your current balance of %.0f", amount, balance)
	case amount > limits.Max:
		return reject(CodeBetRejected, "bet %d exceeds the table maximum of %d", amount, limits.Max)
	}
	return nil
}

// BetAllowed is the boolean form of ValidateBet, for callers that
// only gate a control and surface reasons elsewhere.
func BetAllowed(amount int, balance float64, limits BetLimits) bool {
	return ValidateBet(amount, balance, limits) == nil
}
