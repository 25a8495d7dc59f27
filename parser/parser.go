package parser

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Packet is a parsed APRS-IS line
type Packet struct {
	Raw  string
	From string
	To   string
	Path []string
	// Type is the data type indicator
	Type           byte
	MessageCapable bool
	Timestamp      *time.Time
	RawTimestamp   string
	Position       *Position
}

// Outcome classifies what happened to a line
type Outcome int

const (
	// OutcomeDecoded is a position report decoded successfully
	OutcomeDecoded Outcome = iota
	// OutcomeFailed is a position report that could not be decoded
	OutcomeFailed
	// OutcomeUnknown is a packet of a type this package does not decode
	OutcomeUnknown
)

func (o Outcome) String() string {
	switch o {
	case OutcomeDecoded:
		return "decoded"
	case OutcomeFailed:
		return "failed"
	}
	return "unknown"
}

// ClassifyOutcome reports the outcome of a Parse call from its error
func ClassifyOutcome(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeDecoded
	case errors.Is(err, ErrUnsupportedType), errors.Is(err, ErrMalformedPacket):
		return OutcomeUnknown
	}
	return OutcomeFailed
}

// Parse parses one APRS-IS line. now anchors timestamps that carry no date.
// The returned packet keeps whatever was parsed before a failure.
func Parse(line string, now time.Time) (Packet, error) {
	packet := Packet{Raw: line}

	line = strings.Trim(line, "\r\n")
	if line == "" {
		return packet, fmt.Errorf("%w: packet is empty", ErrMalformedPacket)
	}

	head, body, ok := strings.Cut(line, ":")
	if !ok || head == "" || body == "" {
		return packet, fmt.Errorf("%w: packet head or body is empty", ErrMalformedPacket)
	}

	if err := packet.parseHeader(head); err != nil {
		return packet, err
	}

	if err := packet.parseBody(body, now); err != nil {
		return packet, err
	}

	return packet, nil
}

// parseHeader splits FROM>TO,PATH...
func (p *Packet) parseHeader(head string) error {
	from, path, ok := strings.Cut(head, ">")
	if !ok || from == "" {
		return fmt.Errorf("%w: invalid packet header", ErrMalformedPacket)
	}

	paths := strings.Split(path, ",")
	if paths[0] == "" {
		return fmt.Errorf("%w: no toCallsign in header", ErrMalformedPacket)
	}

	p.From = from
	p.To = paths[0]
	p.Path = paths[1:]
	for i := 0; i < len(p.Path); {
		if strings.TrimSpace(p.Path[i]) == "" {
			p.Path = append(p.Path[:i], p.Path[i+1:]...)
			continue
		}
		i++
	}

	return nil
}

// parseBody dispatches on the data type indicator
func (p *Packet) parseBody(body string, now time.Time) error {
	p.Type = body[0]
	body = body[1:]

	switch p.Type {
	case '!', '=':
		p.MessageCapable = p.Type == '='
	case '/', '@':
		p.MessageCapable = p.Type == '@'

		var err error
		body, err = p.parseTimestamp(body, now)
		if err != nil {
			return err
		}
	default:
		// A position may follow up to 40 bytes of leading text
		pos := strings.IndexByte(body, '!')
		if _, known := dataTypes[p.Type]; known || pos < 0 || pos >= 40 {
			return fmt.Errorf("%w: %s", ErrUnsupportedType, DataTypeName(p.Type))
		}
		body = body[pos+1:]
	}

	if body == "" {
		return fmt.Errorf("%w: empty position report", ErrMalformedPosition)
	}

	position, err := DecodePosition(body)
	if err != nil {
		return err
	}
	p.Position = &position

	return nil
}

// parseTimestamp consumes the leading 7 byte timestamp of body
func (p *Packet) parseTimestamp(body string, now time.Time) (string, error) {
	if len(body) < TimestampLen {
		return body, fmt.Errorf("%w: %q is too short", ErrMalformedTimestamp, body)
	}

	ts, err := DecodeTimestamp(body[:TimestampLen], now)
	if err != nil {
		return body, err
	}

	p.RawTimestamp = body[:TimestampLen]
	p.Timestamp = &ts

	return body[TimestampLen:], nil
}
