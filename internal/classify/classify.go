// Package classify decides which playlist entries are sports channels.
package classify

import (
	"strings"

	"github.com/voyagen/sportsvault/internal/models"
)

// DefaultKeyword is the token searched for when no keyword is configured.
const DefaultKeyword = "sport"

// Field names the part of an entry that matched the keyword.
type Field string

const (
	FieldNone       Field = ""
	FieldGroupTitle Field = "group-title"
	FieldTvgID      Field = "tvg-id"
	FieldTitle      Field = "title"
	FieldDirective  Field = "directive"
)

// Classifier matches a keyword case-insensitively against an entry.
type Classifier struct {
	keyword string
}

// New returns a Classifier for keyword, or for DefaultKeyword when it is blank.
func New(keyword string) Classifier {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	if keyword == "" {
		keyword = DefaultKeyword
	}
	return Classifier{keyword: keyword}
}

// Match reports the first field containing the keyword, checked in the order
// group-title, tvg-id, title, directive line.
func (c Classifier) Match(e models.Entry) (Field, bool) {
	fields := [...]struct {
		name  Field
		value string
	}{
		{FieldGroupTitle, e.Attr(models.AttrGroupTitle)},
		{FieldTvgID, e.Attr(models.AttrTvgID)},
		{FieldTitle, e.Title},
		{FieldDirective, e.Directive},
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f.value), c.keyword) {
			return f.name, true
		}
	}
	return FieldNone, false
}

// Filter returns the matching entries in their original order.
func (c Classifier) Filter(entries []models.Entry) []models.Entry {
	out := make([]models.Entry, 0, len(entries))
	for _, e := range entries {
		if _, ok := c.Match(e); ok {
			out = append(out, e)
		}
	}
	return out
}

var sports = New(DefaultKeyword)

// IsSportsEntry reports whether e looks like a sports channel.
func IsSportsEntry(e models.Entry) bool {
	_, ok := sports.Match(e)
	return ok
}
