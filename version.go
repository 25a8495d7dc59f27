package aprspos

const (
	// Name is the software name sent in the APRS-IS login line
	Name = "aprspos"
	// Version is the software version sent in the APRS-IS login line
	Version = "0.3.0"
)
