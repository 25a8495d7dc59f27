package parser

import (
	"fmt"
	"strconv"
	"time"
)

// TimestampLen is the length of an APRS position timestamp
const TimestampLen = 7

// DecodeTimestamp decodes "DDHHMMz" or "HHMMSSh" into an absolute UTC time.
// APRS timestamps carry no year, the missing date parts come from now.
func DecodeTimestamp(s string, now time.Time) (time.Time, error) {
	if len(s) != TimestampLen {
		return time.Time{}, fmt.Errorf("%w: %q must be %d characters", ErrMalformedTimestamp, s, TimestampLen)
	}
	if !isDigits(s[:6]) {
		return time.Time{}, fmt.Errorf("%w: non-digit in %q", ErrMalformedTimestamp, s)
	}

	a, _ := strconv.Atoi(s[0:2])
	b, _ := strconv.Atoi(s[2:4])
	c, _ := strconv.Atoi(s[4:6])

	now = now.UTC()
	switch s[6] {
	case 'z':
		if a < 1 || a > 31 || b > 23 || c > 59 {
			return time.Time{}, fmt.Errorf("%w: %q out of range", ErrMalformedTimestamp, s)
		}
		return time.Date(now.Year(), now.Month(), a, b, c, 0, 0, time.UTC), nil
	case 'h':
		if a > 23 || b > 59 || c > 59 {
			return time.Time{}, fmt.Errorf("%w: %q out of range", ErrMalformedTimestamp, s)
		}
		return time.Date(now.Year(), now.Month(), now.Day(), a, b, c, 0, time.UTC), nil
	case '/':
		return time.Time{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}

	return time.Time{}, fmt.Errorf("%w: unknown zone marker %q", ErrMalformedTimestamp, s[6])
}
