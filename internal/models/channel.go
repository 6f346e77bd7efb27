package models

// Entry is one playlist record: an #EXTINF line, its trailing directive lines
// and the stream URL that follows them. Entries are not modified after parsing.
type Entry struct {
	Directive  string            // the #EXTINF line as read
	Attributes map[string]string // key="value" pairs from the directive
	Title      string
	ExtraLines []string // #-prefixed lines between the directive and the URL
	StreamURL  *string  // nil when no URL line preceded the next entry or EOF
}

// Attr returns the attribute value for key, or "" if it is not set.
func (e Entry) Attr(key string) string {
	return e.Attributes[key]
}

// ChannelID is the tvg-id attribute when present and non-empty, else the title.
func (e Entry) ChannelID() string {
	if id := e.Attr(AttrTvgID); id != "" {
		return id
	}
	return e.Title
}

func (e Entry) attrPtr(key string) *string {
	v, ok := e.Attributes[key]
	if !ok {
		return nil
	}
	return &v
}
