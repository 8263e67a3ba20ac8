package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"filehub/internal/auth"
	"filehub/internal/model"
	"filehub/internal/repository"
)

// AuthService issues access tokens and resolves them back to identities.
type AuthService interface {
	// Login verifies the credentials and returns a signed access token.
	Login(ctx context.Context, username, password string) (string, error)

	// Resolve verifies a token and returns the identity of its subject.
	// Role and department come from a fresh account lookup, not from the
	// token payload, so role changes apply to tokens issued earlier.
	Resolve(ctx context.Context, token string) (*model.Identity, error)
}

type authService struct {
	accounts repository.AccountRepository
	tokens   *auth.TokenIssuer
}

// NewAuthService constructs a new AuthService.
func NewAuthService(accounts repository.AccountRepository, tokens *auth.TokenIssuer) AuthService {
	return &authService{accounts: accounts, tokens: tokens}
}

func (s *authService) Login(ctx context.Context, username, password string) (string, error) {
	acc, err := s.accounts.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("find account: %w", err)
	}
	if !auth.VerifyPassword(password, acc.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(acc.Username, acc.Role)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}

func (s *authService) Resolve(ctx context.Context, token string) (*model.Identity, error) {
	subject, err := s.tokens.Parse(token)
	if err != nil {
		return nil, err
	}

	acc, err := s.accounts.FindByUsername(ctx, subject)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUnknownSubject
		}
		return nil, fmt.Errorf("resolve subject: %w", err)
	}
	return acc.Identity(), nil
}
