package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/vwsr/fleet-api/internal/core/domain"
	"github.com/vwsr/fleet-api/internal/core/ports"
)

// AuthService composes the account store, token issuer and refresh token
// cache into login, refresh and logout.
type AuthService struct {
	accounts ports.AccountRepository
	tokens   ports.TokenCache
	issuer   *TokenIssuer
	log      zerolog.Logger
}

func NewAuthService(accounts ports.AccountRepository, tokens ports.TokenCache, issuer *TokenIssuer, log zerolog.Logger) *AuthService {
	return &AuthService{accounts: accounts, tokens: tokens, issuer: issuer, log: log}
}

// Login validates the credentials and issues a token pair. A missing account,
// an inactive account and a password mismatch all return the same
// ErrInvalidCredentials so the caller cannot tell which check failed.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.TokenPair, *ports.Profile, error) {
	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, nil, domain.ErrInvalidCredentials
		}
		return nil, nil, err
	}
	if !account.IsActive {
		return nil, nil, domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return nil, nil, domain.ErrInvalidCredentials
	}

	pair, err := s.issue(ctx, account)
	if err != nil {
		return nil, nil, err
	}

	s.log.Info().Int64("account_id", account.ID).Str("role", account.Role).Msg("login succeeded")
	return pair, profileOf(account), nil
}

// Refresh rotates the refresh token: the presented token is atomically
// consumed before a new pair is issued, so a consumed token can never be
// replayed. The associated account must still be active.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*ports.TokenPair, *ports.Profile, error) {
	accountID, err := s.tokens.Claim(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, domain.ErrRefreshNotFound) {
			return nil, nil, domain.ErrInvalidCredentials
		}
		return nil, nil, err
	}

	account, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, nil, domain.ErrInvalidCredentials
		}
		return nil, nil, err
	}
	if !account.IsActive {
		return nil, nil, domain.ErrInvalidCredentials
	}

	pair, err := s.issue(ctx, account)
	if err != nil {
		return nil, nil, err
	}

	s.log.Debug().Int64("account_id", account.ID).Msg("refresh token rotated")
	return pair, profileOf(account), nil
}

// Logout removes the refresh token if present. Unknown or already removed
// tokens are not an error.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	return s.tokens.Remove(ctx, refreshToken)
}

func (s *AuthService) issue(ctx context.Context, account *domain.Account) (*ports.TokenPair, error) {
	access, err := s.issuer.AccessToken(account)
	if err != nil {
		return nil, err
	}
	refresh, err := s.issuer.RefreshToken()
	if err != nil {
		return nil, err
	}
	if err := s.tokens.Store(ctx, refresh, account.ID, s.issuer.RefreshTTL()); err != nil {
		return nil, err
	}
	return &ports.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func profileOf(a *domain.Account) *ports.Profile {
	return &ports.Profile{
		ID:       a.ID,
		Email:    a.Email,
		FullName: a.FullName(),
		Role:     a.Role,
		PhotoURL: a.PhotoURL,
	}
}
