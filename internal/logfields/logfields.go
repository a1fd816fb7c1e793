package logfields

import "log/slog"

// Canonical log field names shared across packages.
const (
	KeyVault       = "vault"
	KeyChainID     = "chain_id"
	KeyDepositCap  = "deposit_cap"
	KeyOldCap      = "old_cap"
	KeyNewCap      = "new_cap"
	KeyTotalAssets = "total_assets"
	KeyMaxSupply   = "max_token_supply"
	KeyEventID     = "event_id"
	KeyChannel     = "channel"
	KeyDurationMS  = "duration_ms"
	KeyInterval    = "interval"
	KeyError       = "error"
)

func Vault(addr string) slog.Attr       { return slog.String(KeyVault, addr) }
func ChainID(id string) slog.Attr       { return slog.String(KeyChainID, id) }
func DepositCap(v string) slog.Attr     { return slog.String(KeyDepositCap, v) }
func OldCap(v string) slog.Attr         { return slog.String(KeyOldCap, v) }
func NewCap(v string) slog.Attr         { return slog.String(KeyNewCap, v) }
func TotalAssets(v string) slog.Attr    { return slog.String(KeyTotalAssets, v) }
func MaxTokenSupply(v string) slog.Attr { return slog.String(KeyMaxSupply, v) }
func EventID(id string) slog.Attr       { return slog.String(KeyEventID, id) }
func Channel(name string) slog.Attr     { return slog.String(KeyChannel, name) }
func DurationMS(ms float64) slog.Attr   { return slog.Float64(KeyDurationMS, ms) }
func Interval(d string) slog.Attr       { return slog.String(KeyInterval, d) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
