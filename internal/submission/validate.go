package submission

import (
	"errors"
	"strings"

	"landingwaitlist/internal/domain"
)

// Local validation errors. Neither reaches the persister.
var (
	ErrEmptyEmail    = errors.New("email is required")
	ErrInvalidFormat = errors.New("invalid email format")
)

// ValidateEmail performs the structural plausibility check: exactly one '@',
// a non-empty local part, and a domain of at least two non-empty dot-separated
// labels. Surrounding whitespace is ignored. No DNS or MX lookup is done.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ErrEmptyEmail
	}
	local, host, ok := strings.Cut(email, "@")
	if !ok || local == "" || strings.Contains(host, "@") {
		return ErrInvalidFormat
	}
	labels := strings.Split(host, ".")
	if len(labels) < 2 {
		return ErrInvalidFormat
	}
	for _, l := range labels {
		if l == "" {
			return ErrInvalidFormat
		}
	}
	return nil
}

// Classify maps an error from validation or a persister to a FailureKind.
// A nil error is FailureNone; anything unrecognised is FailureGeneric.
func Classify(err error) FailureKind {
	switch {
	case err == nil:
		return FailureNone
	case errors.Is(err, ErrEmptyEmail):
		return FailureEmptyEmail
	case errors.Is(err, ErrInvalidFormat):
		return FailureInvalidFormat
	case errors.Is(err, domain.ErrDuplicateEmail):
		return FailureDuplicate
	}
	return FailureGeneric
}
