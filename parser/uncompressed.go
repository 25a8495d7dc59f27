package parser

import (
	"fmt"
	"strings"
)

const uncompressedLen = 19

// Uncompressed is a decoded "DDMM.hhN/DDDMM.hhW-" coordinate block
type Uncompressed struct {
	Latitude    float64
	Longitude   float64
	SymbolTable byte
	SymbolCode  byte
	// Ambiguity is the number of blanked minute digits (0-4)
	Ambiguity int
}

// DecodeUncompressed decodes the fixed width lat/symbol/lon/symbol block at the head of s
func DecodeUncompressed(s string) (Uncompressed, error) {
	if len(s) < uncompressedLen {
		return Uncompressed{}, fmt.Errorf("%w: uncompressed block %q is shorter than %d characters",
			ErrMalformedPosition, s, uncompressedLen)
	}

	lat, lon := s[0:8], s[9:18]

	latAmbiguity, lat, err := resolveAmbiguity(lat, 2)
	if err != nil {
		return Uncompressed{}, err
	}
	lonAmbiguity, lon, err := resolveAmbiguity(lon, 3)
	if err != nil {
		return Uncompressed{}, err
	}
	if latAmbiguity != lonAmbiguity {
		return Uncompressed{}, fmt.Errorf("%w: latitude and longitude ambiguity mismatch", ErrInvalidInput)
	}

	latitude, err := DegreesMinutesToLatitude(lat)
	if err != nil {
		return Uncompressed{}, err
	}
	longitude, err := DegreesMinutesToLongitude(lon)
	if err != nil {
		return Uncompressed{}, err
	}

	return Uncompressed{
		Latitude:    latitude,
		Longitude:   longitude,
		SymbolTable: s[8],
		SymbolCode:  s[18],
		Ambiguity:   latAmbiguity,
	}, nil
}

// resolveAmbiguity replaces blanked minute digits with the centre of the
// ambiguity box. Blanks must be the trailing digits of "MM.hh".
func resolveAmbiguity(field string, width int) (int, string, error) {
	if !strings.Contains(field, " ") {
		return 0, field, nil
	}

	b := []byte(field)
	digits := []int{width, width + 1, width + 3, width + 4}

	ambiguity := 0
	for i := len(digits) - 1; i >= 0 && b[digits[i]] == ' '; i-- {
		ambiguity++
	}
	if strings.Count(field, " ") != ambiguity {
		return 0, field, fmt.Errorf("%w: %q has blanks before digits", ErrInvalidInput, field)
	}

	if ambiguity >= 4 {
		copy(b[width:], "30.00")
		return ambiguity, string(b), nil
	}

	first := digits[len(digits)-ambiguity]
	for _, i := range digits[len(digits)-ambiguity:] {
		b[i] = '0'
	}
	b[first] = '5'

	return ambiguity, string(b), nil
}
