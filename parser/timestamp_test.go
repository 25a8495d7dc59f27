package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, time.October, 19, 8, 30, 12, 500, time.UTC)

func TestDecodeTimestampDayHourMinute(t *testing.T) {
	ts, err := DecodeTimestamp("092345z", testNow)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.October, 9, 23, 45, 0, 0, time.UTC), ts)
}

func TestDecodeTimestampHourMinuteSecond(t *testing.T) {
	ts, err := DecodeTimestamp("234517h", testNow)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.October, 19, 23, 45, 17, 0, time.UTC), ts)
}

func TestDecodeTimestampAnchorsToUTC(t *testing.T) {
	// 22:00 on the 19th in UTC-5 is already the 20th in UTC
	now := time.Date(2026, time.October, 19, 22, 0, 0, 0, time.FixedZone("EST", -5*3600))

	ts, err := DecodeTimestamp("010203h", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.October, 20, 1, 2, 3, 0, time.UTC), ts)
}

func TestDecodeTimestampLocalTime(t *testing.T) {
	_, err := DecodeTimestamp("092345/", testNow)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestDecodeTimestampMalformed(t *testing.T) {
	for _, s := range []string{
		"",
		"92345z",
		"0923450z",
		"09a345z",
		"092345x",
		"322345z",
		"092460z",
		"246000h",
	} {
		_, err := DecodeTimestamp(s, testNow)
		assert.ErrorIs(t, err, ErrMalformedTimestamp, s)
	}
}
