package domain

import (
	"context"
	"errors"
	"time"
)

// ErrInvalidCredentials is returned when an admin login does not match.
var ErrInvalidCredentials = errors.New("invalid credentials")

// RoleAdmin is the only role carried in issued tokens.
const RoleAdmin = "admin"

// PasswordHasher hashes and verifies admin passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated admin.
type TokenIssuer interface {
	Issue(subject string, roles []string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns its subject.
type TokenVerifier interface {
	Verify(token string) (subject string, err error)
}

// AdminService authenticates the operator who manages the waitlist.
type AdminService interface {
	Login(ctx context.Context, email, password string) (token string, err error)
}
