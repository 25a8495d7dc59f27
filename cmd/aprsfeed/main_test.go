package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/APRSCN/aprspos/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunStdin(t *testing.T) {
	input := strings.Join([]string{
		"# aprsc 2.1.14",
		"N0CALL>APRS,TCPIP*:!4903.50N/07201.75W-Test",
		"N0CALL-9>APRS:!49X3.50N/07201.75W-",
		"W1AW>APRS:>status",
		"DROP>APRS:!4903.50N/07201.75W-",
	}, "\n")

	config := filepath.Join(t.TempDir(), "aprsfeed.yaml")
	require.NoError(t, os.WriteFile(config, []byte("server:\n  drop: [\"^DROP>\"]\nlog:\n  level: debug\n"), 0o600))

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"--stdin", "--config", config, "--utm"}, strings.NewReader(input), &stdout, &stderr)

	require.Equal(t, 0, code, stderr.String())

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "N0CALL 49.05833,-72.02917 /- uncompressed utm=18N")
	assert.Contains(t, lines[0], `"Test"`)

	log := stderr.String()
	assert.Contains(t, log, "Packet received but unparseable")
	assert.Contains(t, log, "Feed summary")
	assert.Contains(t, log, "decoded=1")
	assert.Contains(t, log, "failed=1")
	assert.Contains(t, log, "unknown=1")
}

func TestRunBadFlags(t *testing.T) {
	var stdout, stderr bytes.Buffer

	assert.Equal(t, 2, run(context.Background(), []string{"--nope"}, strings.NewReader(""), &stdout, &stderr))
	assert.Equal(t, 1, run(context.Background(), []string{"--stdin", "--log-level", "loud"}, strings.NewReader(""), &stdout, &stderr))
	assert.Equal(t, 1, run(context.Background(), []string{"--config", filepath.Join(t.TempDir(), "missing.yaml")}, strings.NewReader(""), &stdout, &stderr))
	assert.Equal(t, 0, run(context.Background(), []string{"--help"}, strings.NewReader(""), &stdout, &stderr))
}

func TestPrinterFormat(t *testing.T) {
	now := time.Date(2026, time.October, 19, 8, 30, 0, 0, time.UTC)
	packet, err := parser.Parse("N0CALL>APRS:@092345z4903.50N/07201.75W_220/004g005t077wRSW", now)
	require.NoError(t, err)

	p, err := newPrinter("%Y-%m-%d %H:%M", false)
	require.NoError(t, err)

	assert.Equal(t,
		`2026-10-09 23:45 N0CALL 49.05833,-72.02917 /_ uncompressed temperature=25.0 windDirection=220.0 windGust=2.2 windSpeed=1.8 "wRSW"`,
		p.format(packet, now))
}

func TestPrinterExtensions(t *testing.T) {
	now := time.Date(2026, time.October, 19, 8, 30, 0, 0, time.UTC)
	p, err := newPrinter("%H:%M", false)
	require.NoError(t, err)

	packet, err := parser.Parse("N0CALL>APRS:=/5L!!<*e7>S]QPHG5132", now)
	require.NoError(t, err)
	assert.Equal(t, "08:30 N0CALL 49.50000,-72.75000 /> compressed alt=3049m phg=5132 range=12.8km", p.format(packet, now))

	packet, err = parser.Parse("N0CALL>APRS:!4903.  N/07201.  W>088/036/270/729", now)
	require.NoError(t, err)
	assert.Equal(t, "08:30 N0CALL 49.05833,-72.02500 /> uncompressed ambiguity=2 course=88 speed=18.5m/s bearing=270 nrq=729", p.format(packet, now))
}
