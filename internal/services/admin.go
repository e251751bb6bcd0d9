package services

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"landingwaitlist/internal/domain"
)

type adminService struct {
	email        string
	passwordHash string
	hasher       domain.PasswordHasher
	tokenIssuer  domain.TokenIssuer
	tokenExpiry  time.Duration
}

// NewAdminService creates an AdminService for the single operator account
// configured by email and bcrypt passwordHash.
func NewAdminService(email, passwordHash string, hasher domain.PasswordHasher, tokenIssuer domain.TokenIssuer, tokenExpiry time.Duration) domain.AdminService {
	return &adminService{
		email:        normalizeEmail(email),
		passwordHash: passwordHash,
		hasher:       hasher,
		tokenIssuer:  tokenIssuer,
		tokenExpiry:  tokenExpiry,
	}
}

func (s *adminService) Login(ctx context.Context, email, password string) (string, error) {
	if s.email == "" || s.passwordHash == "" {
		return "", domain.ErrInvalidCredentials
	}
	emailOK := subtle.ConstantTimeCompare([]byte(normalizeEmail(email)), []byte(s.email)) == 1
	// Compare the hash even when the email is wrong.
	passErr := s.hasher.Compare(s.passwordHash, password)
	if !emailOK || passErr != nil {
		return "", domain.ErrInvalidCredentials
	}
	token, err := s.tokenIssuer.Issue(s.email, []string{domain.RoleAdmin}, s.tokenExpiry)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}
