package domain

import "errors"

// Authentication / authorization.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrRefreshNotFound    = errors.New("refresh token not found")
	ErrForbidden          = errors.New("access forbidden")
)

// Not found.
var (
	ErrAccountNotFound = errors.New("account not found")
	ErrMachineNotFound = errors.New("vending machine not found")
	ErrCompanyNotFound = errors.New("company not found")
	ErrRequestNotFound = errors.New("service request not found")
)

// Conflicts on create/update.
var (
	ErrDuplicateSerialNumber    = errors.New("serial number already in use")
	ErrDuplicateInventoryNumber = errors.New("inventory number already in use")
	ErrCompanyExists            = errors.New("company already exists")
	ErrCompanyInUse             = errors.New("company has linked machines or accounts")
)

// Bad input or missing server-side configuration.
var (
	ErrEmptyDeclineReason    = errors.New("decline reason is required")
	ErrStatusNotConfigured   = errors.New("service request status is not configured")
	ErrCompanyNameRequired   = errors.New("company name is required")
	ErrInvalidConnectionType = errors.New("invalid connection type filter")
)
