package domain

import "time"

// User is the domain model for people who own tickets.
type User struct {
	ID        string
	Name      string
	Email     string
	Role      *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
