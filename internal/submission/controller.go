package submission

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// DefaultTimeout bounds a single persistence call.
const DefaultTimeout = 10 * time.Second

// Persister stores an email on the waitlist. A duplicate must be reported
// with an error that wraps domain.ErrDuplicateEmail.
type Persister interface {
	AddToWaitlist(ctx context.Context, email string) error
}

// PersisterFunc adapts a function to Persister.
type PersisterFunc func(ctx context.Context, email string) error

// AddToWaitlist calls f(ctx, email).
func (f PersisterFunc) AddToWaitlist(ctx context.Context, email string) error {
	return f(ctx, email)
}

// Option configures a Controller.
type Option func(*Controller)

// WithTimeout sets the per-call persistence timeout. Non-positive values keep the default.
func WithTimeout(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger sets the logger used for persistence failures.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithObserver registers fn to receive every state transition, in order.
func WithObserver(fn func(State)) Option {
	return func(c *Controller) { c.observer = fn }
}

// Controller drives one signup form.
type Controller struct {
	persister Persister
	timeout   time.Duration
	logger    *slog.Logger
	observer  func(State)

	mu    sync.Mutex
	state State
}

// NewController returns an idle Controller that submits through p.
func NewController(p Persister, opts ...Option) *Controller {
	c := &Controller{
		persister: p,
		timeout:   DefaultTimeout,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current snapshot.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// UpdateEmail replaces the stored email. An outcome (Success or Failed) is
// discarded and the controller returns to Idle.
func (c *Controller) UpdateEmail(value string) {
	c.mu.Lock()
	var changed []State
	switch c.state.Status {
	case StatusFailed, StatusSuccess:
		c.state = State{Email: value, Status: StatusIdle}
		changed = append(changed, c.state)
	default:
		c.state.Email = value
	}
	c.mu.Unlock()
	c.notify(changed...)
}

// Submit validates the email and, if it is plausible, waits for the persister
// to settle. It never returns an error: every outcome is reflected in the
// returned State. A call made while another submission is in flight returns
// the current state without touching the persister.
func (c *Controller) Submit(ctx context.Context) State {
	c.mu.Lock()
	if c.state.Status == StatusSubmitting {
		s := c.state
		c.mu.Unlock()
		return s
	}
	raw := c.state.Email
	transitions := []State{c.setLocked(State{Email: raw, Status: StatusValidating})}
	if err := ValidateEmail(raw); err != nil {
		transitions = append(transitions, c.setLocked(failed(raw, Classify(err))))
		c.mu.Unlock()
		c.notify(transitions...)
		return transitions[len(transitions)-1]
	}
	transitions = append(transitions, c.setLocked(State{Email: raw, Status: StatusSubmitting}))
	c.mu.Unlock()
	c.notify(transitions...)

	err := c.persist(ctx, strings.TrimSpace(raw))

	c.mu.Lock()
	email := c.state.Email
	var final State
	if err == nil {
		final = State{Email: email, Status: StatusSuccess}
	} else {
		final = failed(email, Classify(err))
	}
	c.setLocked(final)
	c.mu.Unlock()

	if final.Failure == FailureGeneric {
		c.logger.WarnContext(ctx, "waitlist submission failed", "err", err)
	}
	c.notify(final)
	return final
}

func (c *Controller) persist(ctx context.Context, email string) error {
	if c.persister == nil {
		return fmt.Errorf("no persister configured")
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	// The persister may ignore ctx; the timeout still applies to the caller.
	done := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- fmt.Errorf("persister panic: %v", r)
			}
		}()
		done <- c.persister.AddToWaitlist(ctx, email)
	}()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return fmt.Errorf("waitlist submission: %w", ctx.Err())
	}
}

func (c *Controller) setLocked(s State) State {
	c.state = s
	return s
}

func (c *Controller) notify(states ...State) {
	if c.observer == nil {
		return
	}
	for _, s := range states {
		c.observer(s)
	}
}
