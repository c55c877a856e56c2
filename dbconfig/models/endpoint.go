package models

import "time"

// Endpoint is one stored submission channel endpoint.
type Endpoint struct {
	ID        int64
	SwqosType string
	URL       string
	AuthToken string
	SwqosOnly bool
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
