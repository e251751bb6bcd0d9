package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"landingwaitlist/internal/domain"
	"landingwaitlist/internal/metrics"
	"landingwaitlist/internal/submission"
	"landingwaitlist/internal/timing"
)

const (
	countRefreshTimeout = 5 * time.Second
	confirmationTimeout = 30 * time.Second
)

type waitlistService struct {
	repo         domain.WaitlistRepository
	emailService domain.EmailService
	metrics      *metrics.Metrics
	logger       *slog.Logger
	now          func() time.Time

	count       atomic.Int64
	countLoaded atomic.Bool
	refresh     *timing.Debouncer
	mail        sync.WaitGroup
}

// NewWaitlistService creates a WaitlistService. emailService and m may be nil.
// The cached size is reloaded refreshDelay after the last join or removal.
func NewWaitlistService(repo domain.WaitlistRepository, emailService domain.EmailService, m *metrics.Metrics, logger *slog.Logger, refreshDelay time.Duration) domain.WaitlistService {
	s := &waitlistService{
		repo:         repo,
		emailService: emailService,
		metrics:      m,
		logger:       logger,
		now:          time.Now,
	}
	s.refresh = timing.Debounce(func() {
		ctx, cancel := context.WithTimeout(context.Background(), countRefreshTimeout)
		defer cancel()
		if _, err := s.RefreshCount(ctx); err != nil {
			s.logger.Warn("waitlist count refresh failed", "err", err)
		}
	}, refreshDelay)
	return s
}

// Join normalises email, stores it and sends the confirmation email.
// Validation failures return submission.ErrEmptyEmail or submission.ErrInvalidFormat;
// a repeat signup returns an error wrapping domain.ErrDuplicateEmail.
func (s *waitlistService) Join(ctx context.Context, email string) (*domain.WaitlistRecord, error) {
	email = normalizeEmail(email)
	if err := submission.ValidateEmail(email); err != nil {
		s.metrics.ObserveSubmission(metrics.OutcomeInvalid)
		return nil, err
	}

	rec := domain.NewWaitlistRecord(uuid.NewString(), email, s.now().UTC())
	start := time.Now()
	err := s.repo.Create(ctx, rec)
	s.metrics.ObserveStore(time.Since(start))
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			s.metrics.ObserveSubmission(metrics.OutcomeDuplicate)
			return nil, err
		}
		s.metrics.ObserveSubmission(metrics.OutcomeError)
		return nil, fmt.Errorf("failed to add to waitlist: %w", err)
	}
	s.metrics.ObserveSubmission(metrics.OutcomeJoined)

	position := 0
	n := s.count.Add(1)
	if s.countLoaded.Load() {
		position = int(n)
	}
	s.metrics.SetSize(int(n))
	s.refresh.Call()

	s.sendConfirmation(ctx, rec, position)
	return rec, nil
}

// sendConfirmation mails the new signup in the background, detached from ctx's
// deadline. Failures are logged and counted; the record is already stored.
func (s *waitlistService) sendConfirmation(ctx context.Context, rec *domain.WaitlistRecord, position int) {
	if s.emailService == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), confirmationTimeout)
	data := &domain.WaitlistConfirmationEmailData{
		Email:    rec.Email,
		JoinedAt: rec.CreatedAt.Format("January 2, 2006"),
		Position: position,
	}
	s.mail.Add(1)
	go func() {
		defer s.mail.Done()
		defer cancel()
		if err := s.emailService.SendWaitlistConfirmation(ctx, data); err != nil {
			s.metrics.IncEmailFailed()
			s.logger.WarnContext(ctx, "waitlist confirmation email failed", "email", rec.Email, "err", err)
		}
	}()
}

// WaitForConfirmations blocks until every queued confirmation email has been attempted.
func (s *waitlistService) WaitForConfirmations() {
	s.mail.Wait()
}

func (s *waitlistService) List(ctx context.Context, search string, params domain.PaginationParams) ([]*domain.WaitlistRecord, int, error) {
	recs, total, err := s.repo.List(ctx, normalizeEmail(search), params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list waitlist: %w", err)
	}
	return recs, total, nil
}

// Count returns the cached waitlist size.
func (s *waitlistService) Count(ctx context.Context) int {
	return int(s.count.Load())
}

// RefreshCount reloads the waitlist size from the repository.
func (s *waitlistService) RefreshCount(ctx context.Context) (int, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count waitlist: %w", err)
	}
	s.count.Store(int64(n))
	s.countLoaded.Store(true)
	s.metrics.SetSize(n)
	return n, nil
}

func (s *waitlistService) Remove(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return submission.ErrEmptyEmail
	}
	if err := s.repo.DeleteByEmail(ctx, email); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to remove from waitlist: %w", err)
	}
	s.count.Add(-1)
	s.refresh.Call()
	s.logger.InfoContext(ctx, "removed from waitlist", "email", email)
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
