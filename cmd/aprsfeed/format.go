package main

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/APRSCN/aprspos/parser"
	"github.com/lestrrat-go/strftime"
)

// printer renders decoded packets as one line each
type printer struct {
	timeFormat string
	utm        bool
}

func newPrinter(timeFormat string, utm bool) (*printer, error) {
	if _, err := strftime.New(timeFormat); err != nil {
		return nil, fmt.Errorf("invalid time format %q: %w", timeFormat, err)
	}
	return &printer{timeFormat: timeFormat, utm: utm}, nil
}

// format renders packet, received is used when the packet has no timestamp
func (p *printer) format(packet parser.Packet, received time.Time) string {
	ts := received
	if packet.Timestamp != nil {
		ts = *packet.Timestamp
	}
	when, _ := strftime.Format(p.timeFormat, ts.UTC())

	pos := packet.Position
	parts := []string{
		when,
		packet.From,
		fmt.Sprintf("%.5f,%.5f", pos.Latitude, pos.Longitude),
		pos.Symbol,
		pos.Format.String(),
	}

	if p.utm {
		if utm, err := pos.UTM(); err == nil {
			parts = append(parts, "utm="+utm)
		}
	}
	if pos.Ambiguity > 0 {
		parts = append(parts, fmt.Sprintf("ambiguity=%d", pos.Ambiguity))
	}
	if pos.Altitude != nil {
		parts = append(parts, fmt.Sprintf("alt=%.0fm", *pos.Altitude))
	}

	switch ext := pos.Extension.(type) {
	case parser.CourseSpeed:
		parts = append(parts, formatCourseSpeed(ext))
	case parser.DirectionFinding:
		parts = append(parts, formatCourseSpeed(ext.CourseSpeed), fmt.Sprintf("bearing=%d nrq=%d", ext.BearingDegrees, ext.NRQ))
	case parser.PHG:
		parts = append(parts, fmt.Sprintf("phg=%s range=%.1fkm", ext.Code, ext.RangeKm))
	case parser.Range:
		parts = append(parts, fmt.Sprintf("rng=%.1fkm", ext.Km))
	}

	if pos.Weather != nil {
		keys := make([]string, 0, len(pos.Weather))
		for k := range pos.Weather {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s=%.1f", k, pos.Weather[k]))
		}
	}
	if pos.Telemetry != nil {
		parts = append(parts, fmt.Sprintf("telemetry=%d:%v", pos.Telemetry.Seq, pos.Telemetry.Vals))
	}
	if pos.Comment != "" {
		parts = append(parts, fmt.Sprintf("%q", pos.Comment))
	}

	return strings.Join(parts, " ")
}

func formatCourseSpeed(cs parser.CourseSpeed) string {
	return fmt.Sprintf("course=%d speed=%.1fm/s", cs.CourseDegrees, cs.SpeedMetersPerSecond)
}
