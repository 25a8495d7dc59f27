package parser

import "errors"

// Decode failures. Every error returned by this package wraps one of these,
// test with errors.Is.
var (
	// ErrMalformedTimestamp is a timestamp with non-digits or an unknown zone marker
	ErrMalformedTimestamp = errors.New("malformed timestamp")
	// ErrUnsupportedFormat is a local time timestamp, zulu is required
	ErrUnsupportedFormat = errors.New("local time not accepted; zulu required")
	// ErrInvalidInput is a numeric conversion outside its domain
	ErrInvalidInput = errors.New("invalid input")
	// ErrMalformedPosition is a coordinate block neither decoder accepts
	ErrMalformedPosition = errors.New("malformed position")
	// ErrUnsupportedType is a packet whose data type is not a position report
	ErrUnsupportedType = errors.New("packet type is unsupported")
	// ErrMalformedPacket is a line without a usable header or body
	ErrMalformedPacket = errors.New("malformed packet")
)
