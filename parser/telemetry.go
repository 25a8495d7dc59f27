package parser

import (
	"strings"

	"github.com/APRSCN/aprspos"
	regexp "github.com/wasilibs/go-re2"
)

// Telemetry is a base-91 comment telemetry block
type Telemetry struct {
	Seq  int
	Vals []int
	// Bits is the digital channel byte, least significant bit first
	Bits string
}

var commentTelemetryRe = regexp.MustCompile(`^(.*?)\|([!-{]{4,14})\|(.*)$`)

// parseCommentTelemetry removes a |ssaa...| block from text
func parseCommentTelemetry(text string) (*Telemetry, string) {
	m := commentTelemetryRe.FindStringSubmatch(text)
	if m == nil || len(m[2])%2 != 0 {
		return nil, text
	}

	data := m[2]
	pairs := make([]int, 0, len(data)/2)
	for i := 0; i+2 <= len(data); i += 2 {
		v, err := aprspos.Base91Pair(data[i : i+2])
		if err != nil {
			return nil, text
		}
		pairs = append(pairs, v)
	}

	t := &Telemetry{Seq: pairs[0]}
	analog := pairs[1:]
	if len(analog) > 5 {
		digital := analog[5] & 0xff
		analog = analog[:5]

		var bits strings.Builder
		for i := 0; i < 8; i++ {
			if digital&(1<<i) != 0 {
				bits.WriteByte('1')
			} else {
				bits.WriteByte('0')
			}
		}
		t.Bits = bits.String()
	}
	t.Vals = analog

	return t, m[1] + m[3]
}
