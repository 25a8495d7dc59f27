package parser

// dataTypes names every APRS data type indicator; only position reports are decoded
var dataTypes = map[byte]string{
	'!':  "position without timestamp",
	'=':  "position without timestamp, messaging",
	'/':  "position with timestamp",
	'@':  "position with timestamp, messaging",
	'#':  "raw weather report",
	'$':  "raw gps",
	'%':  "agrelo",
	'&':  "reserved",
	'(':  "unused",
	')':  "item report",
	'*':  "complete weather report",
	'+':  "reserved",
	',':  "invalid or test data",
	'-':  "unused",
	'.':  "reserved",
	':':  "message",
	';':  "object report",
	'<':  "station capabilities",
	'>':  "status report",
	'?':  "general query format",
	'T':  "telemetry report",
	'[':  "maidenhead locator beacon",
	'\\': "unused",
	']':  "unused",
	'^':  "unused",
	'_':  "positionless weather report",
	'`':  "mic-e",
	'\'': "mic-e",
	'{':  "user defined",
	'}':  "third party traffic",
}

// DataTypeName describes a data type indicator
func DataTypeName(t byte) string {
	if name, ok := dataTypes[t]; ok {
		return name
	}
	return "unknown"
}
