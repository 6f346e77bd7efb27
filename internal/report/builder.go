// Package report writes the filtered playlist and the JSON channel report.
package report

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/voyagen/sportsvault/internal/models"
)

// HeaderEXTM3U is the first line of every written playlist.
const HeaderEXTM3U = "#EXTM3U"

// ErrResultCount is returned by Finalize when items and results differ in length.
var ErrResultCount = errors.New("result count does not match report items")

// Builder owns the two output files. Every write replaces the file wholesale.
type Builder struct {
	PlaylistPath string
	ReportPath   string
}

// NewBuilder returns a Builder writing to the given paths.
func NewBuilder(playlistPath, reportPath string) *Builder {
	return &Builder{PlaylistPath: playlistPath, ReportPath: reportPath}
}

// BuildInitial writes the playlist for entries and a report whose health
// fields are unset. It returns the report items for the check loop.
func (b *Builder) BuildInitial(entries []models.Entry, now time.Time) ([]models.ReportItem, error) {
	fetchedAt := now.Unix()
	items := make([]models.ReportItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, models.NewReportItem(e, fetchedAt))
	}

	if err := writeFile(b.PlaylistPath, RenderPlaylist(entries)); err != nil {
		return nil, fmt.Errorf("write playlist: %w", err)
	}
	if err := b.WriteReport(items); err != nil {
		return nil, err
	}
	return items, nil
}

// Finalize applies results to items in order and rewrites the report.
func (b *Builder) Finalize(items []models.ReportItem, results []models.CheckResult) error {
	if len(items) != len(results) {
		return fmt.Errorf("%w: %d items, %d results", ErrResultCount, len(items), len(results))
	}
	for i := range items {
		items[i].Apply(results[i])
	}
	return b.WriteReport(items)
}

// WriteReport replaces the JSON report with items.
func (b *Builder) WriteReport(items []models.ReportItem) error {
	data, err := MarshalReport(items)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := writeFile(b.ReportPath, data); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// RenderPlaylist returns the #EXTM3U text for entries, reproducing their
// directive and extra lines as parsed.
func RenderPlaylist(entries []models.Entry) []byte {
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	w.WriteString(HeaderEXTM3U + "\n")
	for _, e := range entries {
		w.WriteString(e.Directive + "\n")
		for _, line := range e.ExtraLines {
			w.WriteString(line + "\n")
		}
		if e.StreamURL != nil {
			w.WriteString(*e.StreamURL)
		}
		w.WriteString("\n")
	}
	w.Flush()
	return buf.Bytes()
}

// MarshalReport encodes items as indented JSON without escaping HTML or
// non-ASCII characters.
func MarshalReport(items []models.ReportItem) ([]byte, error) {
	if items == nil {
		items = []models.ReportItem{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(items); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// LoadReport reads a report previously written by WriteReport.
func LoadReport(path string) ([]models.ReportItem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var items []models.ReportItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("unmarshal report %s: %w", path, err)
	}
	return items, nil
}

// writeFile creates parent directories and replaces path via a temp file
// in the same directory.
func writeFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}
