package models

import "time"

// FeeStrategy is one stored fee configuration row, scoped to a channel type
// and trade direction.
type FeeStrategy struct {
	ID        int64
	Preset    string
	SwqosType string
	TradeType string
	CuLimit   int64
	CuPrice   int64
	TipSol    float64
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
