package notify

import (
	"time"

	"github.com/shopspring/decimal"

	"vault-cap-monitor/internal/units"
)

// ChangeEvent captures a deposit cap change between two consecutive samples.
type ChangeEvent struct {
	ID             string
	VaultAddress   string
	OldCap         decimal.Decimal
	NewCap         decimal.Decimal
	Delta          decimal.Decimal
	DeltaPercent   units.Reading // unavailable when OldCap is zero
	TotalAssets    units.Reading
	MaxTokenSupply units.Reading
	ObservedAt     time.Time
	Symbols        Symbols
}

// Symbols are the unit labels printed next to amounts. Empty labels are omitted.
type Symbols struct {
	Asset string // deposit cap and total assets
	Share string // max token supply
}
