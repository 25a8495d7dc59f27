package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/APRSCN/aprspos/parser"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func observe(m *Metrics, line string) {
	packet, err := parser.Parse(line, time.Now())
	m.Observe(packet, err)
}

func TestObserve(t *testing.T) {
	m := New()

	observe(m, "N0CALL>APRS:!4903.50N/07201.75W-Test /A=001234")
	observe(m, "N0CALL>APRS:!/5L!!<*e7>7PG")
	observe(m, "N0CALL>APRS:!49X3.50N/07201.75W-")
	observe(m, "N0CALL>APRS:>status")

	assert.InDelta(t, 2, testutil.ToFloat64(m.packets.WithLabelValues("decoded")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.packets.WithLabelValues("failed")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.packets.WithLabelValues("unknown")), 0)

	assert.InDelta(t, 1, testutil.ToFloat64(m.formats.WithLabelValues("uncompressed")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.formats.WithLabelValues("compressed")), 0)

	assert.InDelta(t, 1, testutil.ToFloat64(m.fields.WithLabelValues("altitude")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.fields.WithLabelValues("extension")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.fields.WithLabelValues("comment")), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(m.fields.WithLabelValues("weather")), 0)
}

func TestHandler(t *testing.T) {
	m := New()
	observe(m, "N0CALL>APRS:!4903.50N/07201.75W-")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `aprs_packets_total{outcome="decoded"} 1`)
}
