package units

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// Decimals is the fixed-point scale used by the vault's numeric fields.
const Decimals = 18

// NotAvailable is rendered in place of a value that could not be read or computed.
const NotAvailable = "N/A"

// FromBaseUnits converts a fixed-point integer scaled by 10^18 into a decimal without loss.
func FromBaseUnits(raw *big.Int) decimal.Decimal {
	if raw == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(raw, -Decimals)
}

// Reading is the outcome of an informational read: either a value or unavailable.
type Reading struct {
	value     decimal.Decimal
	available bool
	err       error
}

// Available wraps a successfully obtained value.
func Available(v decimal.Decimal) Reading {
	return Reading{value: v, available: true}
}

// Unavailable records that a value could not be obtained. err may be nil.
func Unavailable(err error) Reading {
	return Reading{err: err}
}

// Value returns the wrapped value and whether it is available.
func (r Reading) Value() (decimal.Decimal, bool) {
	return r.value, r.available
}

// IsAvailable reports whether the reading carries a value.
func (r Reading) IsAvailable() bool { return r.available }

// Err returns the cause of an unavailable reading, if any.
func (r Reading) Err() error { return r.err }

// String renders the value as-is, or N/A.
func (r Reading) String() string {
	if !r.available {
		return NotAvailable
	}
	return r.value.String()
}

// StringFixed renders the value with the given number of decimal places, or N/A.
func (r Reading) StringFixed(places int32) string {
	if !r.available {
		return NotAvailable
	}
	return r.value.StringFixed(places)
}

// Signed renders d with a leading "+" for positive values and the given decimal places.
func Signed(d decimal.Decimal, places int32) string {
	s := d.StringFixed(places)
	if d.IsPositive() {
		return "+" + s
	}
	return s
}
