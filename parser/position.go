package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/APRSCN/aprspos"
	"github.com/golang/geo/s2"
	"github.com/tzneal/coordconv"
)

// Format is the coordinate encoding of a position report
type Format int

const (
	FormatUncompressed Format = iota + 1
	FormatCompressed
)

func (f Format) String() string {
	switch f {
	case FormatUncompressed:
		return "uncompressed"
	case FormatCompressed:
		return "compressed"
	}
	return "unknown"
}

// Compression types selecting what the compressed cs bytes carry
const (
	compressionAltitude    = 'Q'
	compressionCourseSpeed = 'G'
)

// weatherSymbol is the symbol code of a weather station, only its comment is
// scanned for a weather report
const weatherSymbol = "_"

// compressedRangeByte in the course position turns the speed byte into a radio range
const compressedRangeByte = '{'

// Position is a decoded position report. It is a value: nothing in this
// package touches it after DecodePosition returns.
type Position struct {
	Latitude  float64
	Longitude float64
	// Symbol is the symbol table identifier followed by the symbol code
	Symbol    string
	Format    Format
	Ambiguity int
	// Altitude is in meters, nil when absent
	Altitude  *float64
	Extension Extension
	Weather   Weather
	Telemetry *Telemetry
	DAO       *DAO
	// Comment is the text left after structured fields, empty when absent
	Comment string
}

// LatLng returns the position as an s2 point
func (p Position) LatLng() s2.LatLng {
	return s2.LatLngFromDegrees(p.Latitude, p.Longitude)
}

// DistanceKm returns the ellipsoidal distance to other in kilometers
func (p Position) DistanceKm(other Position) float64 {
	return aprspos.VincentyKm(p.LatLng(), other.LatLng())
}

// UTM renders the position as "zone hemisphere easting northing"
func (p Position) UTM() (string, error) {
	utm, err := coordconv.DefaultUTMConverter.ConvertFromGeodetic(p.LatLng(), 0)
	if err != nil {
		return "", err
	}

	hemisphere := "?"
	switch utm.Hemisphere {
	case coordconv.HemisphereNorth:
		hemisphere = "N"
	case coordconv.HemisphereSouth:
		hemisphere = "S"
	}

	return fmt.Sprintf("%d%s %.0f %.0f", utm.Zone, hemisphere, utm.Easting, utm.Northing), nil
}

// PositionBuilder accumulates fields during a decode
type PositionBuilder struct {
	p Position
}

// NewPositionBuilder starts a position from decoded coordinates
func NewPositionBuilder(lat, lon float64, symbol string, format Format) *PositionBuilder {
	return &PositionBuilder{p: Position{
		Latitude:  lat,
		Longitude: lon,
		Symbol:    symbol,
		Format:    format,
	}}
}

func (b *PositionBuilder) SetAmbiguity(ambiguity int) *PositionBuilder {
	b.p.Ambiguity = ambiguity
	return b
}

func (b *PositionBuilder) SetAltitude(meters float64) *PositionBuilder {
	b.p.Altitude = &meters
	return b
}

// SetAltitudeIfAbsent keeps an altitude that is already set
func (b *PositionBuilder) SetAltitudeIfAbsent(meters float64) *PositionBuilder {
	if b.p.Altitude == nil {
		b.SetAltitude(meters)
	}
	return b
}

func (b *PositionBuilder) SetExtension(ext Extension) *PositionBuilder {
	b.p.Extension = ext
	return b
}

// SetExtensionIfAbsent keeps an extension that is already set
func (b *PositionBuilder) SetExtensionIfAbsent(ext Extension) *PositionBuilder {
	if b.p.Extension == nil {
		b.p.Extension = ext
	}
	return b
}

func (b *PositionBuilder) SetWeather(w Weather) *PositionBuilder {
	b.p.Weather = w
	return b
}

func (b *PositionBuilder) SetTelemetry(t *Telemetry) *PositionBuilder {
	b.p.Telemetry = t
	return b
}

// SetDAO records the DAO tag and shifts the coordinates by its offsets
func (b *PositionBuilder) SetDAO(d *DAO) *PositionBuilder {
	b.p.DAO = d
	b.p.Latitude, b.p.Longitude = d.apply(b.p.Latitude, b.p.Longitude)
	return b
}

func (b *PositionBuilder) SetComment(comment string) *PositionBuilder {
	b.p.Comment = comment
	return b
}

// Build returns the finished position
func (b *PositionBuilder) Build() Position {
	return b.p
}

// Classify picks the coordinate format from the first character of body
func Classify(body string) Format {
	if body != "" && body[0] >= '0' && body[0] <= '9' {
		return FormatUncompressed
	}
	return FormatCompressed
}

// coordinateBlock is a decoded Uncompressed or Compressed head of a report
type coordinateBlock interface {
	// builder starts a position holding everything the block itself carries
	builder() *PositionBuilder
	// length is how many bytes of the report the block occupied
	length() int
}

func (u Uncompressed) builder() *PositionBuilder {
	symbol := string([]byte{u.SymbolTable, u.SymbolCode})
	return NewPositionBuilder(u.Latitude, u.Longitude, symbol, FormatUncompressed).
		SetAmbiguity(u.Ambiguity)
}

func (Uncompressed) length() int { return uncompressedLen }

// builder interprets the cs bytes by compression type. Bytes that do not
// decode are dropped, the coordinates stand on their own.
func (c Compressed) builder() *PositionBuilder {
	symbol := string([]byte{c.SymbolTable, c.SymbolCode})
	b := NewPositionBuilder(c.Latitude, c.Longitude, symbol, FormatCompressed)

	// A space in either byte means no cs data
	if len(c.Extension) != 2 || c.Extension[0] == ' ' || c.Extension[1] == ' ' {
		return b
	}

	switch c.CompressionType {
	case compressionAltitude:
		if altitude, err := DecodeCompressedAltitude(c.Extension); err == nil {
			b.SetAltitude(altitude)
		}
	case compressionCourseSpeed:
		if c.Extension[0] == compressedRangeByte {
			b.SetExtension(Range{Km: DecodeCompressedRange(c.Extension[1])})
		} else if cs, err := DecodeCompressedCourseSpeed(c.Extension); err == nil {
			b.SetExtension(cs)
		}
	}

	return b
}

func (Compressed) length() int { return compressedLen }

// decodeCoordinates runs the decoder Classify selects
func decodeCoordinates(body string) (coordinateBlock, error) {
	switch Classify(body) {
	case FormatUncompressed:
		return DecodeUncompressed(body)
	default:
		return DecodeCompressed(body)
	}
}

// DecodePosition decodes a position report body with any timestamp already
// removed: coordinates, symbol, compressed extension and the trailing comment.
// Values carried by the compressed block win over the same values in the comment.
func DecodePosition(body string) (Position, error) {
	block, err := decodeCoordinates(body)
	if err != nil {
		return Position{}, malformed(err)
	}

	b := block.builder()

	if rest := body[block.length():]; rest != "" {
		f := decodeComment(rest, strings.HasSuffix(b.p.Symbol, weatherSymbol))

		if f.Altitude != nil {
			b.SetAltitudeIfAbsent(*f.Altitude)
		}
		if f.Extension != nil {
			b.SetExtensionIfAbsent(f.Extension)
		}
		if f.Weather != nil {
			b.SetWeather(f.Weather)
		}
		if f.Telemetry != nil {
			b.SetTelemetry(f.Telemetry)
		}
		if f.DAO != nil {
			b.SetDAO(f.DAO)
		}
		b.SetComment(f.Comment)
	}

	return b.Build(), nil
}

// malformed tags err as ErrMalformedPosition while keeping its own kind
func malformed(err error) error {
	if errors.Is(err, ErrMalformedPosition) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrMalformedPosition, err)
}
