package ports

import (
	"context"
	"time"

	"github.com/vwsr/fleet-api/internal/core/domain"
)

// AccountRepository defines persistence operations for accounts.
type AccountRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	FindByID(ctx context.Context, id int64) (*domain.Account, error)
}

// TokenCache is the process-wide refresh token store. Implementations must
// make Claim atomic: of two concurrent Claim calls for the same token exactly
// one may succeed. Expired entries behave as absent.
type TokenCache interface {
	Store(ctx context.Context, token string, accountID int64, ttl time.Duration) error
	// Claim consumes the token and returns the account it was issued to.
	// Returns domain.ErrRefreshNotFound when the token is absent or expired.
	Claim(ctx context.Context, token string) (int64, error)
	// Remove deletes the token if present. Removing an unknown token is not
	// an error.
	Remove(ctx context.Context, token string) error
}

// Profile is the caller-facing identity returned with every token pair.
type Profile struct {
	ID       int64
	Email    string
	FullName string
	Role     string
	PhotoURL string
}

// TokenPair is an access/refresh credential pair issued by the auth service.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AuthService implements login, refresh-token rotation and logout.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*TokenPair, *Profile, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, *Profile, error)
	Logout(ctx context.Context, refreshToken string) error
}
