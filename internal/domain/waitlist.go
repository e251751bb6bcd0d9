package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for waitlist operations.
var (
	// ErrDuplicateEmail is returned by repositories when the email is already on the waitlist.
	ErrDuplicateEmail = errors.New("email already on waitlist")
	ErrNotFound       = errors.New("not found")
)

// WaitlistRecord is one signup on the pre-launch waitlist.
// swagger:model WaitlistRecord
type WaitlistRecord struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// NewWaitlistRecord returns a record for email created at createdAt.
func NewWaitlistRecord(id, email string, createdAt time.Time) *WaitlistRecord {
	return &WaitlistRecord{ID: id, Email: email, CreatedAt: createdAt}
}

// WaitlistRepository defines the interface for waitlist storage.
// Create must return an error wrapping ErrDuplicateEmail on a unique violation.
type WaitlistRepository interface {
	Create(ctx context.Context, rec *WaitlistRecord) error
	List(ctx context.Context, search string, params PaginationParams) ([]*WaitlistRecord, int, error)
	Count(ctx context.Context) (int, error)
	DeleteByEmail(ctx context.Context, email string) error
}

// WaitlistService defines the business logic for waitlist signups.
type WaitlistService interface {
	Join(ctx context.Context, email string) (*WaitlistRecord, error)
	List(ctx context.Context, search string, params PaginationParams) ([]*WaitlistRecord, int, error)
	Count(ctx context.Context) int
	RefreshCount(ctx context.Context) (int, error)
	Remove(ctx context.Context, email string) error
}
