package monitor

import (
	"github.com/shopspring/decimal"

	"vault-cap-monitor/internal/notify"
	"vault-cap-monitor/internal/units"
)

// Outcome classifies a snapshot against the current state.
type Outcome int

const (
	// Initialization: no cap was recorded yet. The caller records the snapshot cap.
	Initialization Outcome = iota
	// NoChange: the cap equals the recorded one. State is left alone.
	NoChange
	// Changed: the cap differs. The caller notifies, then records the new cap.
	Changed
)

// String returns the log label of the outcome.
func (o Outcome) String() string {
	switch o {
	case Initialization:
		return "initialization"
	case NoChange:
		return "no_change"
	case Changed:
		return "changed"
	default:
		return "unknown"
	}
}

// Decision is the result of Evaluate. Event is only populated for Changed.
type Decision struct {
	Outcome Outcome
	Event   notify.ChangeEvent
}

var hundred = decimal.NewFromInt(100)

// Evaluate compares the sampled cap against state using exact base-unit equality.
// It does not mutate state.
func Evaluate(snap Snapshot, state CapState) Decision {
	last, ok := state.Last()
	if !ok {
		return Decision{Outcome: Initialization}
	}
	if snap.DepositCapRaw.Cmp(last) == 0 {
		return Decision{Outcome: NoChange}
	}

	oldCap := units.FromBaseUnits(last)
	delta := snap.DepositCap.Sub(oldCap)

	pct := units.Unavailable(nil)
	if !oldCap.IsZero() {
		pct = units.Available(delta.Div(oldCap).Mul(hundred))
	}

	return Decision{
		Outcome: Changed,
		Event: notify.ChangeEvent{
			OldCap:         oldCap,
			NewCap:         snap.DepositCap,
			Delta:          delta,
			DeltaPercent:   pct,
			TotalAssets:    snap.TotalAssets,
			MaxTokenSupply: snap.MaxTokenSupply,
			ObservedAt:     snap.ObservedAt,
		},
	}
}
