package config

import (
	"math"
	"regexp"
	"strconv"

	"github.com/cockroachdb/errors"
)

// Seconds per since unit.
const (
	secondsPerMinute = 60
	secondsPerHour   = 60 * 60
	secondsPerDay    = 24 * 60 * 60
)

var (
	// sincePattern is the constraint on --since values at flag parse time.
	sincePattern = regexp.MustCompile(`\d+[mhd]`)

	minutesPattern = regexp.MustCompile(`\d+m`)
	hoursPattern   = regexp.MustCompile(`\d+h`)
	daysPattern    = regexp.MustCompile(`\d+d`)
)

// WindowSeconds converts a since string such as "30m", "12h" or "3d" into a
// look-back window in seconds. The patterns are tried in the order minutes,
// hours, days and the multiplier applies to the leading digits of the string.
// The second return value is false when no pattern matches, in which case
// the window is 0.
func WindowSeconds(since string) (int64, bool) {
	var unit int64
	switch {
	case minutesPattern.MatchString(since):
		unit = secondsPerMinute
	case hoursPattern.MatchString(since):
		unit = secondsPerHour
	case daysPattern.MatchString(since):
		unit = secondsPerDay
	default:
		return 0, false
	}

	n := leadingDigits(since)
	if n > math.MaxInt64/unit {
		return math.MaxInt64, true
	}
	return n * unit, true
}

// leadingDigits parses the run of ASCII digits at the start of s.
// Anything unparseable yields 0.
func leadingDigits(s string) int64 {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// SinceValue is a pflag.Value that only accepts strings matching N[m|h|d].
type SinceValue string

// String implements pflag.Value.
func (s *SinceValue) String() string {
	return string(*s)
}

// Set implements pflag.Value.
func (s *SinceValue) Set(v string) error {
	if !sincePattern.MatchString(v) {
		return errors.Newf("%q does not match N[m|h|d] (e.g. 30m, 12h, 3d)", v)
	}
	*s = SinceValue(v)
	return nil
}

// Type implements pflag.Value.
func (s *SinceValue) Type() string {
	return "since"
}
