package submission

import (
	"fmt"
	"strings"
)

// User-visible copy for each outcome.
const (
	MsgEmailRequired = "email is required"
	MsgInvalidEmail  = "please enter a valid email"
	MsgSuccess       = "thank you for joining our waitlist"
	MsgDuplicate     = "this email is already on our waitlist"
	MsgGeneric       = "something went wrong, please try again later"

	LabelSubmit     = "join waitlist"
	LabelSubmitting = "submitting…"
)

// Status is the lifecycle stage of a submission.
type Status int

const (
	StatusIdle Status = iota
	StatusValidating
	StatusSubmitting
	StatusSuccess
	StatusFailed
)

var statusNames = [...]string{
	StatusIdle:       "idle",
	StatusValidating: "validating",
	StatusSubmitting: "submitting",
	StatusSuccess:    "success",
	StatusFailed:     "failed",
}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return fmt.Sprintf("Status(%d)", int(s))
	}
	return statusNames[s]
}

// MarshalText encodes the status by name.
func (s Status) MarshalText() ([]byte, error) {
	if s < 0 || int(s) >= len(statusNames) {
		return nil, fmt.Errorf("unknown status %d", int(s))
	}
	return []byte(statusNames[s]), nil
}

// UnmarshalText decodes a status name.
func (s *Status) UnmarshalText(b []byte) error {
	name := strings.ToLower(string(b))
	for i, n := range statusNames {
		if n == name {
			*s = Status(i)
			return nil
		}
	}
	return fmt.Errorf("unknown status %q", string(b))
}

// FailureKind classifies why a submission ended in StatusFailed.
type FailureKind int

const (
	FailureNone FailureKind = iota
	FailureEmptyEmail
	FailureInvalidFormat
	FailureDuplicate
	FailureGeneric
)

func (k FailureKind) String() string {
	switch k {
	case FailureNone:
		return "none"
	case FailureEmptyEmail:
		return "empty_email"
	case FailureInvalidFormat:
		return "invalid_format"
	case FailureDuplicate:
		return "duplicate"
	case FailureGeneric:
		return "generic"
	}
	return fmt.Sprintf("FailureKind(%d)", int(k))
}

// Message returns the copy shown for a failure of this kind.
func (k FailureKind) Message() string {
	switch k {
	case FailureEmptyEmail:
		return MsgEmailRequired
	case FailureInvalidFormat:
		return MsgInvalidEmail
	case FailureDuplicate:
		return MsgDuplicate
	case FailureNone:
		return ""
	}
	return MsgGeneric
}

// State is a snapshot of a Controller.
// ErrorMessage and Failure are set if and only if Status is StatusFailed.
// swagger:model SubmissionState
type State struct {
	Email        string      `json:"email"`
	Status       Status      `json:"status"`
	ErrorMessage string      `json:"error_message,omitempty"`
	Failure      FailureKind `json:"-"`
}

// Message is what the message area renders: the error in Failed, the thank-you copy in Success.
func (s State) Message() string {
	switch s.Status {
	case StatusFailed:
		return s.ErrorMessage
	case StatusSuccess:
		return MsgSuccess
	}
	return ""
}

// ButtonDisabled reports whether the submit button must be disabled.
func (s State) ButtonDisabled() bool { return s.Status == StatusSubmitting }

// ButtonLabel is the submit button text for this state.
func (s State) ButtonLabel() string {
	if s.Status == StatusSubmitting {
		return LabelSubmitting
	}
	return LabelSubmit
}

func failed(email string, kind FailureKind) State {
	return State{Email: email, Status: StatusFailed, ErrorMessage: kind.Message(), Failure: kind}
}
