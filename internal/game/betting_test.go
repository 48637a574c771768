package game

import "testing"

func TestValidateBet(t *testing.T) {
	limits := BetLimits{Min: 1, Max: 50}

	tests := []struct {
		name    string
		amount  int
		balance float64
		ok      bool
	}{
		{"zero below minimum", 0, 100, false},
		{"negative amount", -5, 100, false},
		{"exactly minimum", 1, 100, true},
		{"minimum equals balance", 1, 1, true},
		{"exceeds balance below max", 30, 20, false},
		{"exactly balance", 20, 20, true},
		{"exceeds maximum", 51, 100, false},
		{"exactly maximum", 50, 100, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBet(tt.amount, tt.balance, limits)
			if tt.ok && err != nil {
				t.Errorf("expected bet %d to be valid, got %v", tt.amount, err)
			}
			if !tt.ok {
				if err == nil {
					t.Fatalf("expected bet %d to be rejected", tt.amount)
				}
				if !IsCode(err, CodeBetRejected) {
					t.Errorf("expected bet_rejected code, got %v", err)
				}
			}
			if got := BetAllowed(tt.amount, tt.balance, limits); got != tt.ok {
				t.Errorf("BetAllowed = %v, want %v", got, tt.ok)
			}
		})
	}
}

func TestValidateBetSurfacesFirstFailingRule(t *testing.T) {
	limits := BetLimits{Min: 5, Max: 50}

	// Below minimum reported before the balance check.
	err := ValidateBet(2, 1, limits)
	if err == nil {
		t.Fatal("expected rejection")
	}
	if reason := ReasonOf(err); reason != "bet 2 is below the table minimum of 5" {
		t.Errorf("unexpected reason %q", reason)
	}

	// Balance failure reported even when the amount is under the max.
	err = ValidateBet(30, 20, limits)
	if reason := ReasonOf(err); reason != "bet 30 exceeds your current balance of 20" {
		t.Errorf("unexpected reason %q", reason)
	}
}

func TestValidateBetHasNoSideEffects(t *testing.T) {
	limits := BetLimits{Min: 1, Max: 50}
	// Pure predicate: calling repeatedly yields identical results.
	for i := 0; i < 5; i++ {
		if err := ValidateBet(10, 100, limits); err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
	}
}
