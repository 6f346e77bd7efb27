package models

import "time"

// RunSummary describes one completed pipeline run.
type RunSummary struct {
	RunID        string    `json:"run_id"`
	SourceURL    string    `json:"source_url"`
	Parsed       int       `json:"parsed"`
	Selected     int       `json:"selected"`
	Alive        int       `json:"alive"`
	Dead         int       `json:"dead"`
	ReportPath   string    `json:"report_path"`
	PlaylistPath string    `json:"playlist_path"`
	StartedAt    time.Time `json:"started_at"`
	FinishedAt   time.Time `json:"finished_at"`
}
