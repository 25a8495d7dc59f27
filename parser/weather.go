package parser

import (
	"strconv"
	"strings"

	regexp "github.com/wasilibs/go-re2"
)

// Weather holds observations keyed by name, values in SI units
type Weather map[string]float64

const (
	windMultiplier = 0.44704 // mph to m/s
	rainMultiplier = 0.254   // hundredths of an inch to mm
)

var keyMap = map[byte]string{
	'g': "windGust",
	'c': "windDirection",
	't': "temperature",
	'S': "windSpeed",
	'r': "rain1h",
	'p': "rain24h",
	'P': "rainSinceMidnight",
	'h': "humidity",
	'b': "pressure",
	'l': "luminosity",
	'L': "luminosity",
	's': "snow",
	'#': "rainRaw",
}

var valMap = map[byte]func(string) float64{
	'g': func(x string) float64 {
		val, _ := strconv.Atoi(x)
		return float64(val) * windMultiplier
	},
	'c': func(x string) float64 {
		val, _ := strconv.Atoi(x)
		return float64(val)
	},
	'S': func(x string) float64 {
		val, _ := strconv.Atoi(x)
		return float64(val) * windMultiplier
	},
	't': func(x string) float64 {
		val, _ := strconv.ParseFloat(x, 64)
		return (val - 32) / 1.8
	},
	'r': func(x string) float64 {
		val, _ := strconv.Atoi(x)
		return float64(val) * rainMultiplier
	},
	'p': func(x string) float64 {
		val, _ := strconv.Atoi(x)
		return float64(val) * rainMultiplier
	},
	'P': func(x string) float64 {
		val, _ := strconv.Atoi(x)
		return float64(val) * rainMultiplier
	},
	'h': func(x string) float64 {
		val, _ := strconv.Atoi(x)
		if val == 0 {
			return 100
		}
		return float64(val)
	},
	'b': func(x string) float64 {
		val, _ := strconv.ParseFloat(x, 64)
		return val / 10
	},
	'l': func(x string) float64 {
		val, _ := strconv.Atoi(x)
		return float64(val + 1000)
	},
	'L': func(x string) float64 {
		val, _ := strconv.Atoi(x)
		return float64(val)
	},
	's': func(x string) float64 {
		val, _ := strconv.ParseFloat(x, 64)
		return val * 25.4
	},
	'#': func(x string) float64 {
		val, _ := strconv.Atoi(x)
		return float64(val)
	},
}

var (
	// Wind as "ddd/sss" or "cdddsddd" followed by the field run
	weatherSignatureRe = regexp.MustCompile(
		`^(?:([0-9. ]{3})/([0-9. ]{3})|c([0-9. ]{3})s([0-9. ]{3}))?` +
			`((?:[gtrpPlLs#][0-9\-. ]{3}|h[0-9. ]{2}|b[0-9. ]{5})*)`)
	weatherTokenRe = regexp.MustCompile(`[gtrpPlLs#][0-9\-. ]{3}|h[0-9. ]{2}|b[0-9. ]{5}`)
	weatherFieldRe = regexp.MustCompile(`([gtrpPlLs#]\d{3}|t-\d{2}|h\d{2}|b\d{5}|s\.\d{2}|s\d\.\d)`)
)

// parseWeather consumes a weather report at the head of body. Without a wind
// prefix the report must open with gust or temperature and hold at least two
// fields. It reports ok=false and leaves body untouched otherwise.
func parseWeather(body string) (Weather, string, bool) {
	m := weatherSignatureRe.FindStringSubmatch(body)
	if m == nil {
		return nil, body, false
	}

	windDir, windSpeed := m[1], m[2]
	if m[3] != "" || m[4] != "" {
		windDir, windSpeed = m[3], m[4]
	}
	fields := m[5]

	hasWind := windDir != "" || windSpeed != ""
	if fields == "" {
		return nil, body, false
	}
	if !hasWind && ((fields[0] != 'g' && fields[0] != 't') || len(weatherTokenRe.FindAllString(fields, 2)) < 2) {
		return nil, body, false
	}

	w := Weather{}
	if isDigits(windDir) {
		w[keyMap['c']] = valMap['c'](windDir)
	}
	if isDigits(windSpeed) {
		w[keyMap['S']] = valMap['S'](windSpeed)
	}

	for _, field := range weatherFieldRe.FindAllString(fields, -1) {
		key := field[0]
		value := strings.ReplaceAll(field[1:], " ", "")
		w[keyMap[key]] = valMap[key](value)
	}

	return w, body[len(m[0]):], true
}
