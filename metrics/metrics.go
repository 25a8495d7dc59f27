// Package metrics counts decode outcomes for Prometheus.
package metrics

import (
	"net/http"

	"github.com/APRSCN/aprspos/parser"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the feed counters
type Metrics struct {
	registry *prometheus.Registry

	packets *prometheus.CounterVec
	formats *prometheus.CounterVec
	fields  *prometheus.CounterVec
}

// New creates the counters on their own registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		packets: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aprs_packets_total",
				Help: "Packets received, by decode outcome.",
			},
			[]string{"outcome"},
		),
		formats: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aprs_positions_total",
				Help: "Decoded positions, by coordinate format.",
			},
			[]string{"format"},
		),
		fields: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aprs_position_fields_total",
				Help: "Optional fields present in decoded positions.",
			},
			[]string{"field"},
		),
	}

	m.registry.MustRegister(m.packets, m.formats, m.fields)
	return m
}

// Observe counts one parse result
func (m *Metrics) Observe(packet parser.Packet, err error) {
	m.packets.With(prometheus.Labels{"outcome": parser.ClassifyOutcome(err).String()}).Inc()

	p := packet.Position
	if err != nil || p == nil {
		return
	}

	m.formats.With(prometheus.Labels{"format": p.Format.String()}).Inc()

	present := map[string]bool{
		"altitude":  p.Altitude != nil,
		"extension": p.Extension != nil,
		"weather":   p.Weather != nil,
		"telemetry": p.Telemetry != nil,
		"comment":   p.Comment != "",
	}
	for field, ok := range present {
		if ok {
			m.fields.With(prometheus.Labels{"field": field}).Inc()
		}
	}
}

// Registry exposes the registry for tests and custom handlers
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the metrics in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
