package domain

import "time"

// Department represents an organizational unit within a company.
// Its name is unique per company.
type Department struct {
	ID          string
	CompanyID   string
	Name        string
	Description string
	CreatedAt   time.Time
}
