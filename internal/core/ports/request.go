package ports

import (
	"context"
	"time"

	"github.com/vwsr/fleet-api/internal/core/domain"
)

// RequestCard is the work-order row shown in the mobile list: the request
// joined with its machine, type and status names.
type RequestCard struct {
	ID          int64
	Number      string
	MachineName string
	ServiceType string
	Status      string
	PlannedDate time.Time
	Address     string
}

// RequestDetail is the full work-order view for the mobile detail screen.
type RequestDetail struct {
	ID              int64
	Number          string
	Status          string
	ServiceType     string
	PlannedDate     time.Time
	Notes           string
	DeclineReason   *string
	Assignment      domain.Assignment
	MachineName     string
	Address         string
	Place           string
	SerialNumber    string
	InventoryNumber string
	CreatedAt       time.Time
}

// Transition is the atomic read-modify-write applied by accept and decline.
// The store must check the assignment guard, update the request and append
// the history row in a single transaction holding the row lock, so that two
// concurrent claims of the same unassigned request cannot both succeed.
type Transition struct {
	RequestID int64
	ActorID   int64
	StatusID  int64
	// DeclineReason is recorded as-is; nil clears any previous reason.
	DeclineReason *string
}

// RequestRepository defines persistence operations for service requests.
type RequestRepository interface {
	// ListForAccount returns requests assigned to the account or unassigned,
	// ordered by planned date then id.
	ListForAccount(ctx context.Context, accountID int64) ([]RequestCard, error)
	// ListAll returns the global list capped at limit rows, same ordering.
	ListAll(ctx context.Context, limit int) ([]RequestCard, error)
	FindByID(ctx context.Context, id int64) (*RequestDetail, error)
	// History returns the status log newest-first.
	History(ctx context.Context, id int64) ([]domain.StatusHistoryEntry, error)
	// StatusIDByName resolves a well-known status name; missing names
	// surface as domain.ErrStatusNotConfigured.
	StatusIDByName(ctx context.Context, name string) (int64, error)
	// Apply runs the transition atomically. Fails with
	// domain.ErrRequestNotFound or domain.ErrForbidden.
	Apply(ctx context.Context, t Transition) error
}

// RequestService is the mobile work-order workflow.
type RequestService interface {
	List(ctx context.Context, accountID int64) ([]RequestCard, error)
	Get(ctx context.Context, id, accountID int64) (*RequestDetail, error)
	History(ctx context.Context, id, accountID int64) ([]domain.StatusHistoryEntry, error)
	Accept(ctx context.Context, id, accountID int64) error
	Decline(ctx context.Context, id, accountID int64, reason string) error
}
