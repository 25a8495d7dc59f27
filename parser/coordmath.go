package parser

import (
	"fmt"
	"math"
	"strconv"

	"github.com/APRSCN/aprspos"
)

const (
	feetToMeters  = 0.3048
	knotsToMeters = 1852.0 / 3600.0
)

// KnotsToMetersPerSecond converts a speed in knots
func KnotsToMetersPerSecond(knots float64) float64 {
	return knots * knotsToMeters
}

// DegreesMinutesToLatitude converts "DDMM.hhN" (or S) to signed decimal degrees
func DegreesMinutesToLatitude(s string) (float64, error) {
	if len(s) != 8 {
		return 0, fmt.Errorf("%w: latitude %q must be 8 characters", ErrInvalidInput, s)
	}

	deg, err := degreesMinutes(s[:7], 2, 90)
	if err != nil {
		return 0, fmt.Errorf("%w: latitude %q: %s", ErrInvalidInput, s, err)
	}

	switch s[7] {
	case 'N', 'n':
		return deg, nil
	case 'S', 's':
		return -deg, nil
	}
	return 0, fmt.Errorf("%w: latitude %q has no N/S hemisphere", ErrInvalidInput, s)
}

// DegreesMinutesToLongitude converts "DDDMM.hhE" (or W) to signed decimal degrees
func DegreesMinutesToLongitude(s string) (float64, error) {
	if len(s) != 9 {
		return 0, fmt.Errorf("%w: longitude %q must be 9 characters", ErrInvalidInput, s)
	}

	deg, err := degreesMinutes(s[:8], 3, 180)
	if err != nil {
		return 0, fmt.Errorf("%w: longitude %q: %s", ErrInvalidInput, s, err)
	}

	switch s[8] {
	case 'E', 'e':
		return deg, nil
	case 'W', 'w':
		return -deg, nil
	}
	return 0, fmt.Errorf("%w: longitude %q has no E/W hemisphere", ErrInvalidInput, s)
}

// degreesMinutes parses an unsigned degrees field of width digits followed by "MM.hh"
func degreesMinutes(s string, width int, limit float64) (float64, error) {
	degPart, minPart := s[:width], s[width:]
	if !isDigits(degPart) || !isDigits(minPart[:2]) || minPart[2] != '.' || !isDigits(minPart[3:]) {
		return 0, fmt.Errorf("expected digits in %q", s)
	}

	deg, _ := strconv.Atoi(degPart)
	minutes, _ := strconv.ParseFloat(minPart, 64)
	if minutes >= 60 {
		return 0, fmt.Errorf("minutes %v out of range", minutes)
	}

	result := float64(deg) + minutes/60.0
	if result > limit {
		return 0, fmt.Errorf("%v degrees out of range", result)
	}
	return result, nil
}

// DecodeCompressedAltitude decodes the two compressed altitude bytes to meters
func DecodeCompressedAltitude(s string) (float64, error) {
	cs, err := aprspos.Base91Pair(s)
	if err != nil {
		return 0, fmt.Errorf("%w: altitude %q: %s", ErrInvalidInput, s, err)
	}

	return math.Pow(1.002, float64(cs)) * feetToMeters, nil
}

// DecodeCompressedCourseSpeed decodes the two compressed course/speed bytes.
// A course byte outside '!'..'z' leaves the course at 0, unknown.
func DecodeCompressedCourseSpeed(s string) (CourseSpeed, error) {
	if len(s) != 2 {
		return CourseSpeed{}, fmt.Errorf("%w: course/speed %q must be 2 characters", ErrInvalidInput, s)
	}

	cs := CourseSpeed{}
	if c := int(s[0]) - '!'; c >= 0 && c <= 89 {
		cs.CourseDegrees = c * 4
	}
	if v := int(s[1]) - '!'; v > 0 {
		cs.SpeedMetersPerSecond = KnotsToMetersPerSecond(math.Pow(1.08, float64(v)) - 1)
	}

	return cs, nil
}

// DecodeCompressedRange decodes the byte following a '{' course byte,
// the radio range is 2*1.08^s miles
func DecodeCompressedRange(s byte) float64 {
	v := int(s) - '!'
	if v < 0 {
		v = 0
	}
	return 2 * math.Pow(1.08, float64(v)) * milesToKm
}
