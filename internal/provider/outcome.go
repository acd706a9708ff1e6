package provider

import (
	"context"
	"errors"
	"net"
)

// FetchOutcome tags the result of one attempt to obtain rates from external sources.
type FetchOutcome string

// Fetch outcomes. Everything except OutcomeSuccess leads to the fallback rates.
const (
	OutcomeSuccess     FetchOutcome = "success"
	OutcomeTimeout     FetchOutcome = "timeout"
	OutcomeBadStatus   FetchOutcome = "bad_status"
	OutcomeBadPayload  FetchOutcome = "bad_payload"
	OutcomeParseError  FetchOutcome = "parse_error"
	OutcomeCircuitOpen FetchOutcome = "circuit_open"
	OutcomeUnavailable FetchOutcome = "unavailable"
)

// Classify maps a source error to its outcome. A nil error is OutcomeSuccess.
// Checks run in order of specificity, so a facade error joining a timeout and a
// bad status reports the timeout.
func Classify(err error) FetchOutcome {
	if err == nil {
		return OutcomeSuccess
	}
	if isTimeout(err) {
		return OutcomeTimeout
	}
	switch {
	case errors.Is(err, ErrCircuitOpen):
		return OutcomeCircuitOpen
	case errors.Is(err, ErrBadStatus):
		return OutcomeBadStatus
	case errors.Is(err, ErrParse):
		return OutcomeParseError
	case errors.Is(err, ErrBadPayload):
		return OutcomeBadPayload
	}
	return OutcomeUnavailable
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
