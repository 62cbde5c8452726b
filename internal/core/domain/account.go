package domain

import (
	"strings"
	"time"
)

// Account models an authenticated actor in the system. Accounts are created
// out-of-band (no signup endpoint); the API only reads them during login and
// token refresh.
type Account struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Patronymic   string    `json:"patronymic,omitempty"`
	PhotoURL     string    `json:"photo_url,omitempty"`
	IsActive     bool      `json:"is_active"`
	CompanyID    *int64    `json:"company_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// FullName joins last name, first name and patronymic, skipping blank parts.
func (a *Account) FullName() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{a.LastName, a.FirstName, a.Patronymic} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}
