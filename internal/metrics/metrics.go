// Package metrics exports check results in the Prometheus text format so a
// node_exporter textfile collector can pick them up after each run.
package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/voyagen/sportsvault/internal/models"
)

// Collectors holds the gauges written for one run.
type Collectors struct {
	registry *prometheus.Registry

	StreamUp       *prometheus.GaugeVec
	StreamLatency  *prometheus.GaugeVec
	ChannelsTotal  *prometheus.GaugeVec
	LastRunSeconds prometheus.Gauge
}

// NewCollectors registers the run gauges on a fresh registry.
func NewCollectors() *Collectors {
	c := &Collectors{
		registry: prometheus.NewRegistry(),
		StreamUp: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "sportsvault_stream_up",
				Help: "Whether the last check read bytes from the stream (1) or not (0)",
			},
			[]string{"channel_id", "check_error"},
		),
		StreamLatency: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "sportsvault_stream_latency_seconds",
				Help: "Time to response headers for streams that answered 200",
			},
			[]string{"channel_id"},
		),
		ChannelsTotal: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "sportsvault_channels",
				Help: "Number of channels by pipeline stage",
			},
			[]string{"stage"},
		),
		LastRunSeconds: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "sportsvault_last_run_timestamp_seconds",
				Help: "Unix time the last run finished",
			},
		),
	}
	c.registry.MustRegister(c.StreamUp, c.StreamLatency, c.ChannelsTotal, c.LastRunSeconds)
	return c
}

// Observe records the report items and run summary.
func (c *Collectors) Observe(items []models.ReportItem, s models.RunSummary) {
	for _, it := range items {
		up := 0.0
		if it.Alive == models.LivenessAlive {
			up = 1
		}
		errTag := ""
		if it.CheckError != nil {
			errTag = *it.CheckError
		}
		id := labelValue(it.ChannelID)
		c.StreamUp.WithLabelValues(id, labelValue(errTag)).Set(up)
		if it.LatencyMs != nil {
			c.StreamLatency.WithLabelValues(id).Set(float64(*it.LatencyMs) / 1000)
		}
	}
	c.ChannelsTotal.WithLabelValues("parsed").Set(float64(s.Parsed))
	c.ChannelsTotal.WithLabelValues("selected").Set(float64(s.Selected))
	c.ChannelsTotal.WithLabelValues("alive").Set(float64(s.Alive))
	c.ChannelsTotal.WithLabelValues("dead").Set(float64(s.Dead))
	c.LastRunSeconds.Set(float64(s.FinishedAt.Unix()))
}

// labelValue replaces invalid UTF-8, which WithLabelValues rejects with a panic.
// Playlist titles are not guaranteed to be UTF-8.
func labelValue(v string) string {
	return strings.ToValidUTF8(v, "\uFFFD")
}

// WriteTextfile writes the gauges to path, replacing it atomically.
func (c *Collectors) WriteTextfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("metrics dir: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}

// WriteTextfile is a shorthand for recording one run and writing it to path.
func WriteTextfile(path string, items []models.ReportItem, s models.RunSummary) error {
	c := NewCollectors()
	c.Observe(items, s)
	return c.WriteTextfile(path)
}
