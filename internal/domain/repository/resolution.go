package repository

// Candle resolutions supported by the exchange history endpoint, in minutes
// (or "1D" for daily).
const (
	Res1m  = "1"
	Res5m  = "5"
	Res15m = "15"
	Res1h  = "60"
	Res4h  = "240"
	Res1d  = "1D"
)

// IsValidResolution returns true if r is a supported resolution.
func IsValidResolution(r string) bool {
	switch r {
	case Res1m, Res5m, Res15m, Res1h, Res4h, Res1d:
		return true
	default:
		return false
	}
}

// DefaultResolution returns the default candle resolution.
func DefaultResolution() string { return Res1h }

// NormalizeResolution converts a raw string to a valid resolution (or default).
func NormalizeResolution(s string) string {
	if s == "" {
		return DefaultResolution()
	}
	if IsValidResolution(s) {
		return s
	}
	return DefaultResolution()
}
