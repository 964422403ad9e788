// Package duration parses the retention windows accepted by
// "concord log --since" and "concord log prune --older-than".
//
// The short forms are Nh (hours), Nd (days), Nw (weeks), Nm (30-day months)
// and Ny (365-day years). Anything else falls through to time.ParseDuration
// so "90m30s" style values still work.
package duration

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// ErrInvalid is returned for strings that are neither a short form nor a
// Go duration.
var ErrInvalid = errors.New("invalid duration")

var short = regexp.MustCompile(`^(\d+)([hdwmy])$`)

const day = 24 * time.Hour

var units = map[string]time.Duration{
	"h": time.Hour,
	"d": day,
	"w": 7 * day,
	"m": 30 * day,
	"y": 365 * day,
}

// Parse converts s to a positive duration.
func Parse(s string) (time.Duration, error) {
	if m := short.FindStringSubmatch(s); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil || n == 0 {
			return 0, fmt.Errorf("%w: %s", ErrInvalid, s)
		}
		return time.Duration(n) * units[m[2]], nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%w: %s (use 12h, 7d, 4w, 3m or 1y)", ErrInvalid, s)
	}
	return d, nil
}

// Before returns the instant d before now.
func Before(now time.Time, s string) (time.Time, error) {
	d, err := Parse(s)
	if err != nil {
		return time.Time{}, err
	}
	return now.Add(-d), nil
}
