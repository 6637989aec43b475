// Package timeleft computes elapsed and remaining time between two instants and
// renders it as a whole number of days, hours, minutes or seconds.
//
// Rounding is half away from zero, so 1.5 days reads as "2 days" and 0.49 hours
// reads as "0 hours". Unit labels are pluralized whenever the count is not 1.
//
//	left := timeleft.Remaining(time.Now(), trialEnd)
//	label := timeleft.Format(left, timeleft.Hour) // "5 hours"
package timeleft

import (
	"math"
	"strconv"
	"time"
)

// Granularity is the unit a duration is expressed in.
type Granularity int

const (
	Second Granularity = iota
	Minute
	Hour
	Day
)

// Unit returns the length of one unit of g.
func (g Granularity) Unit() time.Duration {
	switch g {
	case Day:
		return 24 * time.Hour
	case Hour:
		return time.Hour
	case Minute:
		return time.Minute
	default:
		return time.Second
	}
}

func (g Granularity) String() string {
	switch g {
	case Day:
		return "day"
	case Hour:
		return "hour"
	case Minute:
		return "minute"
	default:
		return "second"
	}
}

// Remaining returns the time left from now until deadline.
// The result is negative once the deadline has passed.
func Remaining(now, deadline time.Time) time.Duration {
	return deadline.Sub(now)
}

// Elapsed returns the time passed between since and now.
func Elapsed(since, now time.Time) time.Duration {
	return now.Sub(since)
}

// Seconds truncates d to whole seconds.
func Seconds(d time.Duration) int64 {
	return int64(d / time.Second)
}

// Count returns d as a whole number of g units, rounded half away from zero.
func Count(d time.Duration, g Granularity) int64 {
	return int64(math.Round(float64(d) / float64(g.Unit())))
}

// Label renders count with the unit name of g, e.g. "1 day" or "3 days".
func Label(count int64, g Granularity) string {
	unit := g.String()
	if count != 1 {
		unit += "s"
	}
	return strconv.FormatInt(count, 10) + " " + unit
}

// Format is shorthand for Label(Count(d, g), g).
func Format(d time.Duration, g Granularity) string {
	return Label(Count(d, g), g)
}
