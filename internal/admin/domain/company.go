package domain

import "time"

// Company represents a registered tenant.
type Company struct {
	ID        string
	Name      string
	Domain    CompanyDomain
	CreatedAt time.Time
}

// User is an employee account as seen by company admins.
type User struct {
	ID        string
	Email     string
	CompanyID string
	Enabled   bool
	CreatedAt time.Time
}
