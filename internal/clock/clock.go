// Package clock provides the fixed-offset calendar arithmetic the board
// runs on. The shuttle operates in KST (UTC+9) regardless of where the
// server is deployed, so every "what day is it" decision goes through this
// package instead of the server's local zone.
package clock

import (
	"time"

	"github.com/dokim/shuttleboard/internal/domain"
)

// KST is the fixed UTC+9 zone. No DST, no tzdata dependency.
var KST = time.FixedZone("KST", 9*60*60)

// NowFunc supplies the current instant. Production code uses Now;
// tests inject a fixed function.
type NowFunc func() time.Time

// Now returns the current instant in KST, truncated to whole seconds.
func Now() time.Time {
	return time.Now().In(KST).Truncate(time.Second)
}

// DayKey maps t's weekday (in KST) to mon..fri, or the empty key for
// Saturday/Sunday. Callers must treat an empty key as "no schedule today".
func DayKey(t time.Time) domain.DayKey {
	switch t.In(KST).Weekday() {
	case time.Monday:
		return domain.Mon
	case time.Tuesday:
		return domain.Tue
	case time.Wednesday:
		return domain.Wed
	case time.Thursday:
		return domain.Thu
	case time.Friday:
		return domain.Fri
	default:
		return ""
	}
}

// YMD formats t's KST calendar date as zero-padded "YYYY-MM-DD".
// The format is zero-padded so dates compare correctly as strings.
func YMD(t time.Time) string {
	return t.In(KST).Format("2006-01-02")
}

// AddDays shifts t by n calendar days, preserving time-of-day.
// Used for the operator's "operate as if it were N days from now" override.
func AddDays(t time.Time, n int) time.Time {
	return t.In(KST).AddDate(0, 0, n)
}
