package notify

import (
	"fmt"
	"strings"

	"vault-cap-monitor/internal/units"
)

// TimestampLayout is the operator-facing timestamp format.
const TimestampLayout = "02/01/2006 15:04:05"

const rule = "============================================================"

// RenderMessage builds the text delivered to remote channels.
func RenderMessage(event ChangeEvent) string {
	var sb strings.Builder
	sb.WriteString("Vault deposit cap changed\n")
	if event.VaultAddress != "" {
		sb.WriteString(fmt.Sprintf("Vault: %s\n", event.VaultAddress))
	}
	asset, share := event.Symbols.Asset, event.Symbols.Share
	sb.WriteString(fmt.Sprintf("Old: %s\n", withUnit(event.OldCap.StringFixed(2), asset)))
	sb.WriteString(fmt.Sprintf("New: %s\n", withUnit(event.NewCap.StringFixed(2), asset)))
	sb.WriteString(fmt.Sprintf("Change: %s (%s)\n", units.Signed(event.Delta, 2), percent(event.DeltaPercent)))
	sb.WriteString(fmt.Sprintf("Total Assets: %s\n", reading(event.TotalAssets, asset)))
	sb.WriteString(fmt.Sprintf("Max Supply: %s\n", reading(event.MaxTokenSupply, share)))
	sb.WriteString(fmt.Sprintf("Time: %s", event.ObservedAt.Format(TimestampLayout)))
	return sb.String()
}

// RenderConsoleBlock builds the highlighted block written to the console on a change.
func RenderConsoleBlock(event ChangeEvent) string {
	var sb strings.Builder
	sb.WriteString(rule + "\n")
	sb.WriteString("CAP CHANGE DETECTED\n")
	sb.WriteString(rule + "\n")
	asset, share := event.Symbols.Asset, event.Symbols.Share
	sb.WriteString(fmt.Sprintf("  Old cap: %s\n", withUnit(event.OldCap.String(), asset)))
	sb.WriteString(fmt.Sprintf("  New cap: %s\n", withUnit(event.NewCap.String(), asset)))
	sb.WriteString(fmt.Sprintf("  Change: %s (%s)\n", withUnit(units.Signed(event.Delta, 4), asset), percent(event.DeltaPercent)))
	sb.WriteString(fmt.Sprintf("  Current total assets: %s\n", reading(event.TotalAssets, asset)))
	sb.WriteString(fmt.Sprintf("  Max token supply: %s\n", reading(event.MaxTokenSupply, share)))
	sb.WriteString(fmt.Sprintf("  Timestamp: %s\n", event.ObservedAt.Format(TimestampLayout)))
	sb.WriteString(rule + "\n")
	return sb.String()
}

func withUnit(amount, unit string) string {
	if unit == "" {
		return amount
	}
	return amount + " " + unit
}

// reading labels an available value; N/A stays bare.
func reading(r units.Reading, unit string) string {
	if !r.IsAvailable() {
		return units.NotAvailable
	}
	return withUnit(r.String(), unit)
}

func percent(r units.Reading) string {
	v, ok := r.Value()
	if !ok {
		return units.NotAvailable
	}
	return units.Signed(v, 2) + "%"
}
