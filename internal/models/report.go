package models

// ReportItem is one record of the JSON report, derived from a selected Entry.
// Only Alive, LatencyMs and CheckError change after the item is built.
type ReportItem struct {
	ChannelID  string   `json:"channel_id"`
	Name       string   `json:"name"`
	TvgLogo    *string  `json:"tvg-logo"`
	GroupTitle *string  `json:"group-title"`
	Stream     *string  `json:"stream"`
	ExtraLines []string `json:"extra_lines"`
	FetchedAt  int64    `json:"fetched_at"`
	Alive      Liveness `json:"alive"`
	LatencyMs  *int64   `json:"latency_ms"`
	CheckError *string  `json:"check_error"`
}

// NewReportItem builds an unchecked report item from e.
func NewReportItem(e Entry, fetchedAt int64) ReportItem {
	extra := make([]string, len(e.ExtraLines))
	copy(extra, e.ExtraLines)
	var stream *string
	if e.StreamURL != nil {
		s := *e.StreamURL
		stream = &s
	}
	return ReportItem{
		ChannelID:  e.ChannelID(),
		Name:       e.Title,
		TvgLogo:    e.attrPtr(AttrTvgLogo),
		GroupTitle: e.attrPtr(AttrGroupTitle),
		Stream:     stream,
		ExtraLines: extra,
		FetchedAt:  fetchedAt,
	}
}

// Apply records a check result on the item.
func (it *ReportItem) Apply(r CheckResult) {
	it.Alive = LivenessOf(r.Alive)
	it.LatencyMs = r.LatencyMs
	it.CheckError = r.Error
}
