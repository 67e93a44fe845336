// internal/timeutil/timeutil.go
package timeutil

import (
	"math"
	"time"
)

// JST is the store's operating timezone. A fixed offset avoids a tzdata
// dependency; Japan has no DST.
var JST = time.FixedZone("JST", 9*60*60)

// NowJST returns the current time in JST.
func NowJST() time.Time {
	return time.Now().In(JST)
}

// HoursUntil returns the signed number of hours from now until t.
// Negative when t is already in the past.
func HoursUntil(t, now time.Time) float64 {
	return t.Sub(now).Hours()
}

// Round1 rounds to one decimal place, matching the precision used in
// remaining-hours and change-percent payload fields.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
