package monitor

import (
	"math/big"
	"time"

	"github.com/shopspring/decimal"

	"vault-cap-monitor/internal/units"
)

// Snapshot is one sample of the vault taken during a cycle.
type Snapshot struct {
	DepositCapRaw  *big.Int
	DepositCap     decimal.Decimal
	TotalAssets    units.Reading
	MaxTokenSupply units.Reading
	ObservedAt     time.Time
}

// NewSnapshot builds a snapshot from the raw deposit cap and the informational readings.
func NewSnapshot(depositCap *big.Int, totalAssets, maxTokenSupply units.Reading, observedAt time.Time) Snapshot {
	raw := new(big.Int).Set(depositCap)
	return Snapshot{
		DepositCapRaw:  raw,
		DepositCap:     units.FromBaseUnits(raw),
		TotalAssets:    totalAssets,
		MaxTokenSupply: maxTokenSupply,
		ObservedAt:     observedAt,
	}
}

// CapState holds the last observed deposit cap in base units. The zero value is unset.
type CapState struct {
	last *big.Int
}

// Last returns the last cap and whether one has been recorded.
func (s CapState) Last() (*big.Int, bool) {
	if s.last == nil {
		return nil, false
	}
	return new(big.Int).Set(s.last), true
}

// Set records v as the last observed cap.
func (s *CapState) Set(v *big.Int) {
	s.last = new(big.Int).Set(v)
}
