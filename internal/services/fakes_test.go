package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"landingwaitlist/internal/domain"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeWaitlistRepo implements domain.WaitlistRepository for tests.
type fakeWaitlistRepo struct {
	mu        sync.Mutex
	byEmail   map[string]*domain.WaitlistRecord
	createErr error
	listErr   error
	countErr  error
	counts    int
}

func newFakeWaitlistRepo() *fakeWaitlistRepo {
	return &fakeWaitlistRepo{byEmail: make(map[string]*domain.WaitlistRecord)}
}

func (f *fakeWaitlistRepo) Create(ctx context.Context, rec *domain.WaitlistRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.byEmail[rec.Email]; ok {
		return domain.ErrDuplicateEmail
	}
	f.byEmail[rec.Email] = rec
	return nil
}

func (f *fakeWaitlistRepo) List(ctx context.Context, search string, params domain.PaginationParams) ([]*domain.WaitlistRecord, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, 0, f.listErr
	}
	var all []*domain.WaitlistRecord
	for _, r := range f.byEmail {
		if search == "" || strings.Contains(r.Email, search) {
			all = append(all, r)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.Before(all[j].CreatedAt) })
	start := min(params.Offset(), len(all))
	end := min(start+params.PageSize, len(all))
	return all[start:end], len(all), nil
}

func (f *fakeWaitlistRepo) Count(ctx context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counts++
	if f.countErr != nil {
		return 0, f.countErr
	}
	return len(f.byEmail), nil
}

func (f *fakeWaitlistRepo) DeleteByEmail(ctx context.Context, email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byEmail[email]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byEmail, email)
	return nil
}

func (f *fakeWaitlistRepo) countCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.counts
}

// fakeEmailService implements domain.EmailService for tests.
type fakeEmailService struct {
	mu    sync.Mutex
	sent  []*domain.WaitlistConfirmationEmailData
	err   error
	delay time.Duration
}

func (f *fakeEmailService) SendWaitlistConfirmation(ctx context.Context, data *domain.WaitlistConfirmationEmailData) error {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, data)
	return f.err
}

// fakeMailer implements domain.Mailer for tests.
type fakeMailer struct {
	to, subject, html, text string
	err                     error
}

func (f *fakeMailer) Send(ctx context.Context, to, subject, html, text string) error {
	f.to, f.subject, f.html, f.text = to, subject, html, text
	return f.err
}

// fakeRenderer implements domain.EmailTemplateRenderer for tests.
type fakeRenderer struct {
	name string
	err  error
}

func (f *fakeRenderer) Render(templateName string, data any) (string, string, string, error) {
	f.name = templateName
	if f.err != nil {
		return "", "", "", f.err
	}
	return "subject", "<p>html</p>", "text", nil
}

// fakePasswordHasher implements domain.PasswordHasher for tests.
type fakePasswordHasher struct {
	compared int
}

func (f *fakePasswordHasher) Hash(password string) (string, error) { return "hash-" + password, nil }

func (f *fakePasswordHasher) Compare(hash, password string) error {
	f.compared++
	if hash != "hash-"+password {
		return errors.New("mismatch")
	}
	return nil
}

// fakeTokenIssuer implements domain.TokenIssuer for tests.
type fakeTokenIssuer struct {
	err     error
	subject string
	roles   []string
	expiry  time.Duration
}

func (f *fakeTokenIssuer) Issue(subject string, roles []string, expiry time.Duration) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.subject, f.roles, f.expiry = subject, roles, expiry
	return "token-" + subject, nil
}

// drain waits for background confirmation emails sent by svc.
func drain(svc domain.WaitlistService) {
	svc.(interface{ WaitForConfirmations() }).WaitForConfirmations()
}
