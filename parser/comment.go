package parser

import (
	"strconv"
	"strings"

	"github.com/APRSCN/aprspos"
	regexp "github.com/wasilibs/go-re2"
)

// DAO is a datum and extra precision tag, "!Wab!" or "!wab!"
type DAO struct {
	Datum     byte
	LatOffset float64
	LonOffset float64
}

// CommentFields is everything recognized in the text after the coordinates
type CommentFields struct {
	Altitude  *float64
	Weather   Weather
	Extension Extension
	Telemetry *Telemetry
	DAO       *DAO
	Comment   string
}

var (
	commentAltitudeRe = regexp.MustCompile(`^(.*?)/A=(-\d{5}|\d{6})(.*)$`)
	daoRe             = regexp.MustCompile(`^(.*)!([Ww])([\x20-\x7b]{2})!(.*?)$`)
)

// DecodeComment picks weather, a data extension, altitude, telemetry and DAO
// out of body. It never fails: anything unrecognized stays in Comment.
func DecodeComment(body string) CommentFields {
	return decodeComment(body, true)
}

// decodeComment is DecodeComment with the weather scan optional, positions
// only carry weather under the weather station symbol
func decodeComment(body string, weather bool) CommentFields {
	var f CommentFields

	if w, rest, ok := parseWeather(body); weather && ok {
		f.Weather = w
		body = rest
	} else {
		f.Extension, body = parseDataExtension(body)
	}

	f.Altitude, body = parseCommentAltitude(body)

	f.Telemetry, body = parseCommentTelemetry(body)

	f.DAO, body = parseDAO(body)

	body = strings.TrimPrefix(body, "/")
	f.Comment = strings.Trim(body, " ")

	return f
}

// parseCommentAltitude removes a /A=nnnnnn tag, altitude is returned in meters
func parseCommentAltitude(body string) (*float64, string) {
	m := commentAltitudeRe.FindStringSubmatch(body)
	if m == nil {
		return nil, body
	}

	feet, _ := strconv.Atoi(m[2])
	altitude := float64(feet) * feetToMeters
	return &altitude, m[1] + m[3]
}

// parseDAO removes the last !DAO! tag from body. Only the WGS84 datum is
// understood, "!Wab!" with digits or "!wab!" with base-91, spaces for unknown.
func parseDAO(body string) (*DAO, string) {
	m := daoRe.FindStringSubmatch(body)
	if m == nil {
		return nil, body
	}

	datum, dao := m[2][0], m[3]
	d := &DAO{Datum: 'W'}

	for i, offset := range []*float64{&d.LatOffset, &d.LonOffset} {
		c := dao[i]
		switch {
		case c == ' ':
		case datum == 'W' && c >= '0' && c <= '9':
			*offset = float64(c-'0') * 0.001 / 60
		case datum == 'w' && aprspos.IsBase91(c):
			*offset = float64(c-'!') / 91.0 * 0.01 / 60
		default:
			return nil, body
		}
	}

	return d, m[1] + m[4]
}

// apply moves lat/lon away from the equator/meridian by the DAO offsets
func (d *DAO) apply(lat, lon float64) (float64, float64) {
	if lat >= 0 {
		lat += d.LatOffset
	} else {
		lat -= d.LatOffset
	}
	if lon >= 0 {
		lon += d.LonOffset
	} else {
		lon -= d.LonOffset
	}
	return lat, lon
}
