package parser

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestDegreesMinutesToLatitude(t *testing.T) {
	lat, err := DegreesMinutesToLatitude("4903.50N")
	require.NoError(t, err)
	assert.InDelta(t, 49.058333, lat, 1e-6)

	lat, err = DegreesMinutesToLatitude("3352.12S")
	require.NoError(t, err)
	assert.InDelta(t, -33.868667, lat, 1e-6)

	lat, err = DegreesMinutesToLatitude("9000.00N")
	require.NoError(t, err)
	assert.InDelta(t, 90.0, lat, 1e-9)
}

func TestDegreesMinutesToLatitudeInvalid(t *testing.T) {
	for _, s := range []string{
		"4903.",     // too short
		"4903.50",   // no hemisphere
		"4903.50NN", // too long
		"4903.50E",  // wrong hemisphere
		"49O3.50N",  // letter in minutes
		"4963.50N",  // minutes out of range
		"9100.00N",  // degrees out of range
		"4903,50N",  // no decimal point
	} {
		_, err := DegreesMinutesToLatitude(s)
		assert.ErrorIs(t, err, ErrInvalidInput, s)
	}
}

func TestDegreesMinutesToLongitude(t *testing.T) {
	lon, err := DegreesMinutesToLongitude("07201.75W")
	require.NoError(t, err)
	assert.InDelta(t, -72.029167, lon, 1e-6)

	lon, err = DegreesMinutesToLongitude("15112.33E")
	require.NoError(t, err)
	assert.InDelta(t, 151.205500, lon, 1e-6)

	for _, s := range []string{"7201.75W", "07201.75N", "18100.00E", "0720a.75W"} {
		_, err := DegreesMinutesToLongitude(s)
		assert.ErrorIs(t, err, ErrInvalidInput, s)
	}
}

// encodeLatitude is the inverse of DegreesMinutesToLatitude
func encodeLatitude(lat float64) string {
	hemisphere := 'N'
	if lat < 0 {
		hemisphere = 'S'
		lat = -lat
	}
	hundredths := int(math.Round(lat * 6000))
	return fmt.Sprintf("%02d%02d.%02d%c", hundredths/6000, hundredths%6000/100, hundredths%100, hemisphere)
}

func TestLatitudeRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		deg := rapid.IntRange(0, 89).Draw(t, "deg")
		hundredths := rapid.IntRange(0, 5999).Draw(t, "hundredths")
		hemisphere := rapid.SampledFrom([]byte{'N', 'S'}).Draw(t, "hemisphere")

		s := fmt.Sprintf("%02d%02d.%02d%c", deg, hundredths/100, hundredths%100, hemisphere)
		lat, err := DegreesMinutesToLatitude(s)
		require.NoError(t, err)

		again, err := DegreesMinutesToLatitude(encodeLatitude(lat))
		require.NoError(t, err)
		assert.InDelta(t, lat, again, 1e-4)
	})
}

func TestLatitudeMonotonic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := rapid.IntRange(0, 89*6000+5998).Draw(t, "a")
		b := rapid.IntRange(a+1, 89*6000+5999).Draw(t, "b")

		format := func(v int, hemisphere byte) string {
			return fmt.Sprintf("%02d%02d.%02d%c", v/6000, v%6000/100, v%100, hemisphere)
		}

		latA, err := DegreesMinutesToLatitude(format(a, 'N'))
		require.NoError(t, err)
		latB, err := DegreesMinutesToLatitude(format(b, 'N'))
		require.NoError(t, err)
		assert.Less(t, latA, latB)

		southA, err := DegreesMinutesToLatitude(format(a, 'S'))
		require.NoError(t, err)
		southB, err := DegreesMinutesToLatitude(format(b, 'S'))
		require.NoError(t, err)
		assert.Greater(t, southA, southB)
	})
}

func TestDecodeCompressedAltitude(t *testing.T) {
	// 1.002^4610 feet, the worked example from the protocol reference
	meters, err := DecodeCompressedAltitude("S]")
	require.NoError(t, err)
	assert.InDelta(t, 3049.378, meters, 0.1)

	meters, err = DecodeCompressedAltitude("%{")
	require.NoError(t, err)
	assert.InDelta(t, 0.755, meters, 0.1)

	meters, err = DecodeCompressedAltitude("!!")
	require.NoError(t, err)
	assert.InDelta(t, 0.3048, meters, 1e-9)

	_, err = DecodeCompressedAltitude("S")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = DecodeCompressedAltitude("S~")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDecodeCompressedCourseSpeed(t *testing.T) {
	cs, err := DecodeCompressedCourseSpeed("7P")
	require.NoError(t, err)
	assert.Equal(t, 88, cs.CourseDegrees)
	assert.InDelta(t, 18.639, cs.SpeedMetersPerSecond, 1e-3)

	cs, err = DecodeCompressedCourseSpeed("!!")
	require.NoError(t, err)
	assert.Equal(t, CourseSpeed{}, cs)

	// Course bytes outside '!'..'z' carry no course
	for _, s := range []string{" P", "{P", "~P"} {
		cs, err := DecodeCompressedCourseSpeed(s)
		require.NoError(t, err, s)
		assert.Equal(t, 0, cs.CourseDegrees, s)
		assert.InDelta(t, KnotsToMetersPerSecond(math.Pow(1.08, 47)-1), cs.SpeedMetersPerSecond, 1e-9, s)
	}

	cs, err = DecodeCompressedCourseSpeed("  ")
	require.NoError(t, err)
	assert.Equal(t, CourseSpeed{}, cs)

	for _, s := range []string{"", "7", "7PX"} {
		_, err := DecodeCompressedCourseSpeed(s)
		assert.ErrorIs(t, err, ErrInvalidInput, s)
	}
}

func TestDecodeCompressedCourseSpeedAnyBytes(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		c := rapid.Byte().Draw(t, "c")
		s := rapid.Byte().Draw(t, "s")

		cs, err := DecodeCompressedCourseSpeed(string([]byte{c, s}))
		require.NoError(t, err)
		assert.GreaterOrEqual(t, cs.CourseDegrees, 0)
		assert.LessOrEqual(t, cs.CourseDegrees, 359)
		assert.GreaterOrEqual(t, cs.SpeedMetersPerSecond, 0.0)
	})
}

func TestDecodeCompressedRange(t *testing.T) {
	assert.InDelta(t, 2*milesToKm, DecodeCompressedRange('!'), 1e-9)
	assert.InDelta(t, 32.3886, DecodeCompressedRange('?'), 1e-4)
	assert.InDelta(t, 2*milesToKm, DecodeCompressedRange(' '), 1e-9)
}

func TestKnotsToMetersPerSecond(t *testing.T) {
	assert.InDelta(t, 0.514444, KnotsToMetersPerSecond(1), 1e-6)
	assert.InDelta(t, 18.52, KnotsToMetersPerSecond(36), 1e-9)
}
