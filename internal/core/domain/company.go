package domain

import "time"

// Company owns vending machines and employs accounts.
type Company struct {
	ID        int64
	Name      string
	Phone     string
	Email     string
	Address   string
	CreatedAt time.Time
}
