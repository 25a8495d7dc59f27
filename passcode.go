package aprspos

import (
	"strconv"
	"strings"
)

const passcodeSeed = 0x73e2

// Passcode calculates the APRS-IS passcode of a callsign, the SSID is ignored
func Passcode(callsign string) int {
	rootCall, _, _ := strings.Cut(callsign, "-")
	if len(rootCall) > 10 {
		rootCall = rootCall[:10]
	}
	data := []byte(strings.ToUpper(rootCall))

	hash := passcodeSeed
	for i := 0; i < len(data); i += 2 {
		hash ^= int(data[i]) << 8
		if i+1 < len(data) {
			hash ^= int(data[i+1])
		}
	}

	return hash & 0x7fff
}

// VerifyPasscode reports whether passcode is valid for callsign
func VerifyPasscode(callsign, passcode string) bool {
	n, err := strconv.Atoi(strings.TrimSpace(passcode))
	if err != nil {
		return false
	}
	return n == Passcode(callsign)
}
