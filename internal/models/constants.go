package models

// Attribute keys read from #EXTINF lines.
const (
	AttrTvgID      = "tvg-id"
	AttrTvgLogo    = "tvg-logo"
	AttrGroupTitle = "group-title"
)

// Error tags reported by the stream health check.
const (
	CheckErrNoURL   = "no-url"
	CheckErrNonHTTP = "non-http"
	CheckErrNoBytes = "no-bytes"
)
