package parser

import (
	"math"
	"strconv"

	regexp "github.com/wasilibs/go-re2"
)

// Extension is one of CourseSpeed, DirectionFinding, PHG or Range
type Extension interface {
	isExtension()
}

// CourseSpeed is a course over ground and speed
type CourseSpeed struct {
	// CourseDegrees is 0-359, 0 when unknown
	CourseDegrees        int
	SpeedMetersPerSecond float64
}

// DirectionFinding is a DF report, course/speed followed by bearing and NRQ
type DirectionFinding struct {
	CourseSpeed
	BearingDegrees int
	NRQ            int
}

// PHG is a power-height-gain station capability report
type PHG struct {
	Code         string
	PowerWatts   float64
	HeightMeters float64
	Gain         float64
	// Directivity is "omni", "invalid" or the direction in degrees
	Directivity string
	RangeKm     float64
	// Rate is the beacon rate in transmissions per hour, 0 when not given
	Rate int
}

// Range is a pre-calculated omni radio range from an RNG token
type Range struct {
	Km float64
}

func (CourseSpeed) isExtension()      {}
func (DirectionFinding) isExtension() {}
func (PHG) isExtension()              {}
func (Range) isExtension()            {}

const milesToKm = 1.609344

var (
	courseSpeedRe = regexp.MustCompile(`^([0-9 \.]{3})/([0-9 \.]{3})`)
	bearingNRQRe  = regexp.MustCompile(`^/([0-9 \.]{3})/([0-9 \.]{3})`)
	phgRe         = regexp.MustCompile(`^PHG(\d[\x30-\x7e]\d\d)([0-9A-Z]/)?`)
	rngRe         = regexp.MustCompile(`^RNG(\d{4})`)
)

// parseDataExtension consumes a 7 byte data extension at the head of body
func parseDataExtension(body string) (Extension, string) {
	// Course/speed, optionally followed by a DF bearing/NRQ
	if m := courseSpeedRe.FindStringSubmatch(body); m != nil {
		cse, spd := m[1], m[2]
		body = body[7:]

		if !isDigits(cse) && !isDigits(spd) {
			return nil, body
		}

		cs := CourseSpeed{}
		if isDigits(cse) {
			course, _ := strconv.Atoi(cse)
			if course < 360 {
				cs.CourseDegrees = course
			}
		}
		if isDigits(spd) {
			knots, _ := strconv.Atoi(spd)
			cs.SpeedMetersPerSecond = KnotsToMetersPerSecond(float64(knots))
		}

		if df := bearingNRQRe.FindStringSubmatch(body); df != nil {
			body = body[8:]
			bearing, _ := strconv.Atoi(df[1])
			nrq, _ := strconv.Atoi(df[2])
			return DirectionFinding{CourseSpeed: cs, BearingDegrees: bearing, NRQ: nrq}, body
		}

		return cs, body
	}

	if m := phgRe.FindStringSubmatch(body); m != nil {
		body = body[len(m[0]):]
		return decodePHG(m[1], m[2]), body
	}

	if m := rngRe.FindStringSubmatch(body); m != nil {
		body = body[len(m[0]):]
		miles, _ := strconv.Atoi(m[1])
		return Range{Km: float64(miles) * milesToKm}, body
	}

	return nil, body
}

// decodePHG expands the four PHG digits and the optional rate suffix
func decodePHG(phg string, rate string) PHG {
	p := PHG{Code: phg}

	power := float64(phg[0] - '0')
	p.PowerWatts = power * power

	heightFeet := 10 * math.Pow(2, float64(phg[1])-'0')
	p.HeightMeters = heightFeet * feetToMeters

	p.Gain = math.Pow(10, float64(phg[2]-'0')/10.0)

	switch dir := int(phg[3] - '0'); dir {
	case 0:
		p.Directivity = "omni"
	case 9:
		p.Directivity = "invalid"
	default:
		p.Directivity = strconv.Itoa(45 * dir)
	}

	p.RangeKm = math.Sqrt(2*heightFeet*math.Sqrt((p.PowerWatts/10.0)*(p.Gain/2.0))) * milesToKm

	if rate != "" {
		p.Code += rate[:1]
		r, _ := strconv.ParseInt(rate[:1], 16, 64)
		p.Rate = int(r)
	}

	return p
}
