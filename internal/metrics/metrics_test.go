package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/voyagen/sportsvault/internal/models"
)

func TestObserve(t *testing.T) {
	latency := int64(250)
	noURL := models.CheckErrNoURL
	items := []models.ReportItem{
		{ChannelID: "TSports.bd", Alive: models.LivenessAlive, LatencyMs: &latency},
		{ChannelID: "Orphan", Alive: models.LivenessDead, CheckError: &noURL},
	}
	c := NewCollectors()
	c.Observe(items, models.RunSummary{Parsed: 7, Selected: 2, Alive: 1, Dead: 1, FinishedAt: time.Unix(1700000000, 0)})

	if got := testutil.ToFloat64(c.StreamUp.WithLabelValues("TSports.bd", "")); got != 1 {
		t.Errorf("stream_up TSports = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.StreamUp.WithLabelValues("Orphan", "no-url")); got != 0 {
		t.Errorf("stream_up Orphan = %v, want 0", got)
	}
	if got := testutil.ToFloat64(c.StreamLatency.WithLabelValues("TSports.bd")); got != 0.25 {
		t.Errorf("latency = %v, want 0.25", got)
	}
	if got := testutil.ToFloat64(c.ChannelsTotal.WithLabelValues("parsed")); got != 7 {
		t.Errorf("parsed = %v, want 7", got)
	}
	if got := testutil.CollectAndCount(c.StreamLatency); got != 1 {
		t.Errorf("latency series = %d, want 1", got)
	}
}

func TestWriteTextfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "textfile", "sportsvault.prom")
	items := []models.ReportItem{{ChannelID: "A", Alive: models.LivenessAlive}}
	if err := WriteTextfile(path, items, models.RunSummary{Selected: 1, Alive: 1, FinishedAt: time.Now()}); err != nil {
		t.Fatalf("WriteTextfile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), `sportsvault_stream_up{channel_id="A",check_error=""} 1`) {
		t.Errorf("unexpected textfile:\n%s", data)
	}
}

func TestObserveInvalidUTF8Labels(t *testing.T) {
	badErr := "dial tcp: lookup h\xf6st"
	items := []models.ReportItem{
		{ChannelID: "Sp\xe9cial Sports", Alive: models.LivenessDead, CheckError: &badErr},
	}
	c := NewCollectors()
	c.Observe(items, models.RunSummary{Selected: 1, Dead: 1, FinishedAt: time.Now()})

	got := testutil.ToFloat64(c.StreamUp.WithLabelValues("Sp�cial Sports", "dial tcp: lookup h�st"))
	if got != 0 {
		t.Errorf("stream_up = %v, want 0", got)
	}

	path := filepath.Join(t.TempDir(), "sportsvault.prom")
	if err := c.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile: %v", err)
	}
}
