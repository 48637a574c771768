package game

import (
	"errors"
	"fmt"
)

// ErrorCode classifies the recoverable rule violations the engine can
// report. Every code maps 1:1 to a short human-readable reason that
// presentation layers surface verbatim.
type ErrorCode string

const (
	CodeInvalidTransition       ErrorCode = "invalid_transition"
	CodeBetRejected             ErrorCode = "bet_rejected"
	CodeEffectAlreadyActivated  ErrorCode = "effect_already_activated"
	CodeEffectPreconditionUnmet ErrorCode = "effect_precondition_unmet"
	CodeMissingCollaborator     ErrorCode = "missing_collaborator"
)

// Rejection is a recoverable rule violation. The state machine stays
// in its current valid state; callers decide whether to retry or
// surface the reason. Rejections never cross package boundaries as
// panics.
type Rejection struct {
	Code   ErrorCode
	Reason string
}

func (r *Rejection) Error() string {
	return fmt.Sprintf("%s: %s", r.Code, r.Reason)
}

func reject(code ErrorCode, format string, args ...any) *Rejection {
	return &Rejection{Code: code, Reason: fmt.Sprintf(format, args...)}
}

// IsCode reports whether err is a Rejection carrying the given code.
func IsCode(err error, code ErrorCode) bool {
	var rej *Rejection
	return errors.As(err, &rej) && rej.Code == code
}

// ReasonOf extracts the human-readable reason from a rejection, or
// falls back to the plain error text.
func ReasonOf(err error) string {
	var rej *Rejection
	if errors.As(err, &rej) {
		return rej.Reason
	}
	if err != nil {
		return err.Error()
	}
	return ""
}
