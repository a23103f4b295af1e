package util

import "time"

// ResolutionDuration maps a candle resolution code to its bar duration.
// Unknown codes fall back to one hour.
func ResolutionDuration(res string) time.Duration {
	switch res {
	case "1":
		return time.Minute
	case "5":
		return 5 * time.Minute
	case "15":
		return 15 * time.Minute
	case "60":
		return time.Hour
	case "240":
		return 4 * time.Hour
	case "1D":
		return 24 * time.Hour
	default:
		return time.Hour
	}
}

// CandleWindow returns the unix-second range covering limit bars of the
// given resolution ending at now, aligned to bar boundaries.
func CandleWindow(now time.Time, res string, limit int) (start, end int64) {
	d := ResolutionDuration(res)
	to := now.Truncate(d).Add(d)
	from := to.Add(-time.Duration(limit) * d)
	return from.Unix(), to.Unix()
}
