package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/vwsr/fleet-api/internal/core/domain"
	"github.com/vwsr/fleet-api/internal/core/ports"
)

// fallbackListLimit caps the global work-order list shown to a caller with no
// assigned or claimable requests.
const fallbackListLimit = 30

// RequestService drives the mobile work-order workflow: listing, detail,
// history and the accept/decline state machine.
type RequestService struct {
	repo ports.RequestRepository
	log  zerolog.Logger
}

func NewRequestService(repo ports.RequestRepository, log zerolog.Logger) *RequestService {
	return &RequestService{repo: repo, log: log}
}

// List returns the caller's work orders (assigned to them or unassigned).
// When that list is empty, the global list is shown instead so a fresh
// technician still sees what exists in the system.
func (s *RequestService) List(ctx context.Context, accountID int64) ([]ports.RequestCard, error) {
	cards, err := s.repo.ListForAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if len(cards) == 0 {
		return s.repo.ListAll(ctx, fallbackListLimit)
	}
	return cards, nil
}

// Get returns the request detail. Requests assigned to someone else are
// forbidden; unassigned requests are visible to everyone.
func (s *RequestService) Get(ctx context.Context, id, accountID int64) (*ports.RequestDetail, error) {
	detail, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !detail.Assignment.ClaimableBy(accountID) {
		return nil, domain.ErrForbidden
	}
	return detail, nil
}

// History returns the status log newest-first. A request without logged
// changes yields a single synthesized entry built from its current status and
// creation time, with no actor.
func (s *RequestService) History(ctx context.Context, id, accountID int64) ([]domain.StatusHistoryEntry, error) {
	detail, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !detail.Assignment.ClaimableBy(accountID) {
		return nil, domain.ErrForbidden
	}

	entries, err := s.repo.History(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		entries = []domain.StatusHistoryEntry{{
			Status:    detail.Status,
			ChangedAt: detail.CreatedAt,
		}}
	}
	return entries, nil
}

// Accept claims the request for the acting account: status moves to
// "In progress", any decline reason is cleared, and a history row is
// appended. Re-accepting an already owned request repeats the transition and
// is still logged.
func (s *RequestService) Accept(ctx context.Context, id, accountID int64) error {
	// Existence and ownership are checked before resolving the status row,
	// so a missing request reports not-found even when the status table is
	// misconfigured. Apply re-checks the guard under the row lock.
	if err := s.guardTransition(ctx, id, accountID); err != nil {
		return err
	}

	statusID, err := s.repo.StatusIDByName(ctx, domain.StatusInProgress)
	if err != nil {
		return err
	}

	err = s.repo.Apply(ctx, ports.Transition{
		RequestID: id,
		ActorID:   accountID,
		StatusID:  statusID,
	})
	if err != nil {
		return err
	}

	s.log.Info().Int64("request_id", id).Int64("account_id", accountID).Msg("work order accepted")
	return nil
}

// Decline cancels the request with a mandatory reason. The acting account
// claims ownership of the decline, so the request ends up assigned to them.
func (s *RequestService) Decline(ctx context.Context, id, accountID int64, reason string) error {
	if err := s.guardTransition(ctx, id, accountID); err != nil {
		return err
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		return domain.ErrEmptyDeclineReason
	}

	statusID, err := s.repo.StatusIDByName(ctx, domain.StatusCancelled)
	if err != nil {
		return err
	}

	err = s.repo.Apply(ctx, ports.Transition{
		RequestID:     id,
		ActorID:       accountID,
		StatusID:      statusID,
		DeclineReason: &reason,
	})
	if err != nil {
		return err
	}

	s.log.Info().Int64("request_id", id).Int64("account_id", accountID).Str("reason", reason).Msg("work order declined")
	return nil
}

// guardTransition verifies the request exists and is claimable by the acting
// account. It runs outside the transition transaction and is advisory only;
// the authoritative check happens in Apply.
func (s *RequestService) guardTransition(ctx context.Context, id, accountID int64) error {
	detail, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !detail.Assignment.ClaimableBy(accountID) {
		return domain.ErrForbidden
	}
	return nil
}
