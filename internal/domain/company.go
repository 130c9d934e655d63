package domain

import "time"

// Company is the tenant boundary. It owns departments, sessions,
// learning topics and activity records.
type Company struct {
	ID        string
	Name      string
	LogoPath  string
	CreatedAt time.Time
}
