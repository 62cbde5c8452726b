package domain

import (
	"fmt"
	"time"
)

// Well-known service request status names. These must exist in the status
// reference table; accept/decline fail with a configuration error otherwise.
const (
	StatusInProgress = "In progress"
	StatusCancelled  = "Cancelled"
)

// RequestNumber renders the human-facing order number shown in lists and
// detail views.
func RequestNumber(id int64) string {
	return fmt.Sprintf("SR-%d", id)
}

// Assignment is the explicit form of the nullable assigned-account column:
// an unassigned request is claimable by any authenticated account.
type Assignment struct {
	AccountID int64
	Assigned  bool
}

// AssignedTo builds an assignment bound to the given account.
func AssignedTo(accountID int64) Assignment {
	return Assignment{AccountID: accountID, Assigned: true}
}

// Unassigned is the claimable-by-anyone state.
func Unassigned() Assignment {
	return Assignment{}
}

// ClaimableBy reports whether the account may act on a request carrying this
// assignment: either nobody owns it yet or the account already does.
func (a Assignment) ClaimableBy(accountID int64) bool {
	return !a.Assigned || a.AccountID == accountID
}

// ServiceRequest is a work order scheduled against a vending machine.
type ServiceRequest struct {
	ID            int64
	StatusID      int64
	StatusName    string
	TypeID        int64
	TypeName      string
	MachineID     int64
	Assignment    Assignment
	PlannedDate   time.Time
	DeclineReason *string
	Notes         string
	CreatedAt     time.Time
}

// StatusHistoryEntry is one append-only row of a request's status log.
// ChangedBy is empty for synthesized entries.
type StatusHistoryEntry struct {
	Status    string
	ChangedAt time.Time
	ChangedBy string
}
