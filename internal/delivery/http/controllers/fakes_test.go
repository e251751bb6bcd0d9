package controllers

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"landingwaitlist/internal/domain"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeWaitlistService implements domain.WaitlistService for handler tests.
type fakeWaitlistService struct {
	mu         sync.Mutex
	joinErr    error
	joinCalls  []string
	count      int
	listErr    error
	listResult []*domain.WaitlistRecord
	listTotal  int
	lastSearch string
	lastParams domain.PaginationParams
	removeErr  error
	lastRemove string
}

func (f *fakeWaitlistService) Join(ctx context.Context, email string) (*domain.WaitlistRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.joinCalls = append(f.joinCalls, email)
	if f.joinErr != nil {
		return nil, f.joinErr
	}
	return &domain.WaitlistRecord{ID: "rec-1", Email: email}, nil
}

func (f *fakeWaitlistService) List(ctx context.Context, search string, params domain.PaginationParams) ([]*domain.WaitlistRecord, int, error) {
	f.lastSearch = search
	f.lastParams = params
	if f.listErr != nil {
		return nil, 0, f.listErr
	}
	return f.listResult, f.listTotal, nil
}

func (f *fakeWaitlistService) Count(ctx context.Context) int { return f.count }

func (f *fakeWaitlistService) RefreshCount(ctx context.Context) (int, error) { return f.count, nil }

func (f *fakeWaitlistService) Remove(ctx context.Context, email string) error {
	f.lastRemove = email
	return f.removeErr
}

// fakeAdminService implements domain.AdminService for handler tests.
type fakeAdminService struct {
	token string
	err   error
}

func (f *fakeAdminService) Login(ctx context.Context, email, password string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.token, nil
}

type fakePinger struct{ err error }

func (f fakePinger) PingContext(ctx context.Context) error { return f.err }
