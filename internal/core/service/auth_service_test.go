package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/vwsr/fleet-api/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stubs
// ---------------------------------------------------------------------------

type stubAccountRepo struct {
	byEmail map[string]*domain.Account
	byID    map[int64]*domain.Account
}

func newStubAccountRepo(accounts ...*domain.Account) *stubAccountRepo {
	r := &stubAccountRepo{
		byEmail: make(map[string]*domain.Account),
		byID:    make(map[int64]*domain.Account),
	}
	for _, a := range accounts {
		r.byEmail[a.Email] = a
		r.byID[a.ID] = a
	}
	return r
}

func (r *stubAccountRepo) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	a, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	clone := *a
	return &clone, nil
}

func (r *stubAccountRepo) FindByID(_ context.Context, id int64) (*domain.Account, error) {
	a, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	clone := *a
	return &clone, nil
}

type cacheEntry struct {
	accountID int64
	expiresAt time.Time
}

// stubTokenCache mirrors the Redis cache semantics: Claim consumes, expired
// entries behave as absent.
type stubTokenCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
}

func newStubTokenCache() *stubTokenCache {
	return &stubTokenCache{entries: make(map[string]cacheEntry)}
}

func (c *stubTokenCache) Store(_ context.Context, token string, accountID int64, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[token] = cacheEntry{accountID: accountID, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (c *stubTokenCache) Claim(_ context.Context, token string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[token]
	if !ok || time.Now().After(e.expiresAt) {
		return 0, domain.ErrRefreshNotFound
	}
	delete(c.entries, token)
	return e.accountID, nil
}

func (c *stubTokenCache) Remove(_ context.Context, token string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, token)
	return nil
}

func (c *stubTokenCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func testAccount(t *testing.T, id int64, email, password string, active bool) *domain.Account {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return &domain.Account{
		ID:           id,
		Email:        email,
		PasswordHash: string(hash),
		Role:         "Technician",
		FirstName:    "Ivan",
		LastName:     "Petrov",
		IsActive:     active,
	}
}

func newTestAuthService(accounts *stubAccountRepo, cache *stubTokenCache) *AuthService {
	issuer := NewTokenIssuer("test-secret", "fleet-api", "fleet-clients", time.Hour, 24*time.Hour)
	return NewAuthService(accounts, cache, issuer, zerolog.Nop())
}

// ---------------------------------------------------------------------------
// Login
// ---------------------------------------------------------------------------

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubAccountRepo(testAccount(t, 7, "tech@example.com", "s3cret", true))
	cache := newStubTokenCache()
	svc := newTestAuthService(repo, cache)

	pair, profile, err := svc.Login(context.Background(), "tech@example.com", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("expected both tokens, got %+v", pair)
	}
	if profile.Role != "Technician" {
		t.Fatalf("expected role Technician, got %s", profile.Role)
	}
	if profile.FullName != "Petrov Ivan" {
		t.Fatalf("unexpected full name: %q", profile.FullName)
	}
	if cache.len() != 1 {
		t.Fatalf("expected one stored refresh token, got %d", cache.len())
	}

	claims := AccessClaims{}
	parsed, err := jwt.ParseWithClaims(pair.AccessToken, &claims, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	}, jwt.WithIssuer("fleet-api"), jwt.WithAudience("fleet-clients"))
	if err != nil || !parsed.Valid {
		t.Fatalf("access token invalid: %v", err)
	}
	if claims.Subject != "7" {
		t.Fatalf("expected subject 7, got %q", claims.Subject)
	}
	if claims.Role != "Technician" {
		t.Fatalf("expected role claim Technician, got %q", claims.Role)
	}
}

func TestAuthService_Login_FailuresAreIndistinguishable(t *testing.T) {
	repo := newStubAccountRepo(
		testAccount(t, 1, "active@example.com", "goodpass", true),
		testAccount(t, 2, "inactive@example.com", "goodpass", false),
	)
	svc := newTestAuthService(repo, newStubTokenCache())

	cases := []struct {
		name     string
		email    string
		password string
	}{
		{"unknown account", "ghost@example.com", "whatever"},
		{"wrong password", "active@example.com", "badpass"},
		{"inactive account", "inactive@example.com", "goodpass"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := svc.Login(context.Background(), tc.email, tc.password)
			if err != domain.ErrInvalidCredentials {
				t.Fatalf("expected ErrInvalidCredentials, got %v", err)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Refresh
// ---------------------------------------------------------------------------

func TestAuthService_Refresh_RotatesToken(t *testing.T) {
	repo := newStubAccountRepo(testAccount(t, 3, "tech@example.com", "pw", true))
	cache := newStubTokenCache()
	svc := newTestAuthService(repo, cache)

	pair, _, err := svc.Login(context.Background(), "tech@example.com", "pw")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	next, profile, err := svc.Refresh(context.Background(), pair.RefreshToken)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if next.RefreshToken == pair.RefreshToken {
		t.Fatalf("refresh token was not rotated")
	}
	if profile.ID != 3 {
		t.Fatalf("expected profile for account 3, got %d", profile.ID)
	}

	// The consumed token must never work again.
	if _, _, err := svc.Refresh(context.Background(), pair.RefreshToken); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials on replayed token, got %v", err)
	}
}

func TestAuthService_Refresh_UnknownToken(t *testing.T) {
	svc := newTestAuthService(newStubAccountRepo(), newStubTokenCache())

	if _, _, err := svc.Refresh(context.Background(), "no-such-token"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Refresh_InactiveAccount(t *testing.T) {
	account := testAccount(t, 4, "tech@example.com", "pw", true)
	repo := newStubAccountRepo(account)
	cache := newStubTokenCache()
	svc := newTestAuthService(repo, cache)

	pair, _, err := svc.Login(context.Background(), "tech@example.com", "pw")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	// Account is deactivated between login and refresh.
	repo.byID[4].IsActive = false

	if _, _, err := svc.Refresh(context.Background(), pair.RefreshToken); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Logout
// ---------------------------------------------------------------------------

func TestAuthService_Logout_Idempotent(t *testing.T) {
	repo := newStubAccountRepo(testAccount(t, 5, "tech@example.com", "pw", true))
	cache := newStubTokenCache()
	svc := newTestAuthService(repo, cache)

	pair, _, err := svc.Login(context.Background(), "tech@example.com", "pw")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if err := svc.Logout(context.Background(), pair.RefreshToken); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	// Second logout and unknown tokens still succeed.
	if err := svc.Logout(context.Background(), pair.RefreshToken); err != nil {
		t.Fatalf("repeated logout failed: %v", err)
	}
	if err := svc.Logout(context.Background(), "never-issued"); err != nil {
		t.Fatalf("logout of unknown token failed: %v", err)
	}

	// A logged-out token cannot be refreshed.
	if _, _, err := svc.Refresh(context.Background(), pair.RefreshToken); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials after logout, got %v", err)
	}
}
