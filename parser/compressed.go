package parser

import (
	"fmt"

	"github.com/APRSCN/aprspos"
)

const compressedLen = 13

// Compressed is a decoded 13 byte base-91 coordinate block. The cs bytes
// and compression type are carried raw, interpretation is up to the caller.
type Compressed struct {
	Latitude        float64
	Longitude       float64
	SymbolTable     byte
	SymbolCode      byte
	Extension       string
	CompressionType byte
}

// DecodeCompressed decodes the compressed coordinate block at the head of s
func DecodeCompressed(s string) (Compressed, error) {
	if len(s) < compressedLen {
		return Compressed{}, fmt.Errorf("%w: compressed block %q is shorter than %d characters",
			ErrMalformedPosition, s, compressedLen)
	}

	base91Lat, err := aprspos.DecodeBase91(s[1:5])
	if err != nil {
		return Compressed{}, fmt.Errorf("%w: compressed latitude %q: %s", ErrInvalidInput, s[1:5], err)
	}
	base91Lon, err := aprspos.DecodeBase91(s[5:9])
	if err != nil {
		return Compressed{}, fmt.Errorf("%w: compressed longitude %q: %s", ErrInvalidInput, s[5:9], err)
	}

	latitude := 90 - float64(base91Lat)/380926
	longitude := -180 + float64(base91Lon)/190463
	if latitude < -90 || longitude > 180 {
		return Compressed{}, fmt.Errorf("%w: compressed coordinates %q out of range", ErrInvalidInput, s[1:9])
	}

	return Compressed{
		Latitude:        latitude,
		Longitude:       longitude,
		SymbolTable:     compressedSymbolTable(s[0]),
		SymbolCode:      s[9],
		Extension:       s[10:12],
		CompressionType: s[12],
	}, nil
}

// compressedSymbolTable maps the a-j overlay characters back to 0-9
func compressedSymbolTable(c byte) byte {
	if c >= 'a' && c <= 'j' {
		return c - 'a' + '0'
	}
	return c
}
