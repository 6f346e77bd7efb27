package fetcher

import (
	"reflect"
	"strings"
	"testing"
)

const samplePlaylist = `#EXTM3U
#EXTINF:-1 tvg-id="TSports.bd" tvg-logo="https://i.imgur.com/t.png" group-title="Sports",T Sports (720p)
#EXTVLCOPT:http-referrer=https://example.com/
#EXTVLCOPT:http-user-agent=Mozilla/5.0

https://cdn.example.com/tsports/index.m3u8
#EXTINF:-1 tvg-id="ATNNews.bd" group-title="News",ATN News
https://cdn.example.com/atn/index.m3u8
stray-line-outside-any-entry
#EXTINF:-1 tvg-id="Gazi.bd",GTV
#EXTINF:-1 group-title="Sports",Orphan Sports
`

func TestParseString(t *testing.T) {
	entries := ParseString(samplePlaylist)
	if len(entries) != 4 {
		t.Fatalf("Expected 4 entries, got %d", len(entries))
	}

	first := entries[0]
	if first.Title != "T Sports (720p)" {
		t.Errorf("Title = %q", first.Title)
	}
	wantAttrs := map[string]string{
		"tvg-id":      "TSports.bd",
		"tvg-logo":    "https://i.imgur.com/t.png",
		"group-title": "Sports",
	}
	if !reflect.DeepEqual(first.Attributes, wantAttrs) {
		t.Errorf("Attributes = %v, want %v", first.Attributes, wantAttrs)
	}
	wantExtra := []string{
		"#EXTVLCOPT:http-referrer=https://example.com/",
		"#EXTVLCOPT:http-user-agent=Mozilla/5.0",
	}
	if !reflect.DeepEqual(first.ExtraLines, wantExtra) {
		t.Errorf("ExtraLines = %v, want %v", first.ExtraLines, wantExtra)
	}
	if first.StreamURL == nil || *first.StreamURL != "https://cdn.example.com/tsports/index.m3u8" {
		t.Errorf("StreamURL = %v", first.StreamURL)
	}

	if entries[1].StreamURL == nil || *entries[1].StreamURL != "https://cdn.example.com/atn/index.m3u8" {
		t.Errorf("entries[1].StreamURL = %v", entries[1].StreamURL)
	}

	// Next #EXTINF arrives before any URL line.
	if entries[2].Title != "GTV" || entries[2].StreamURL != nil {
		t.Errorf("entries[2] = %+v, want GTV without URL", entries[2])
	}
	// End of input before any URL line.
	if entries[3].Title != "Orphan Sports" || entries[3].StreamURL != nil {
		t.Errorf("entries[3] = %+v, want Orphan Sports without URL", entries[3])
	}
}

func TestParseEXTINF(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		wantTitle string
		wantAttrs map[string]string
	}{
		{
			name:      "duration and attributes",
			line:      `#EXTINF:-1 tvg-id="A.bd" group-title="Sports HD",Channel A`,
			wantTitle: "Channel A",
			wantAttrs: map[string]string{"tvg-id": "A.bd", "group-title": "Sports HD"},
		},
		{
			name:      "duration only",
			line:      `#EXTINF:-1,Plain Channel`,
			wantTitle: "Plain Channel",
			wantAttrs: map[string]string{},
		},
		{
			name:      "comma inside title",
			line:      `#EXTINF:0 tvg-name="x",Sports, Live`,
			wantTitle: "Sports, Live",
			wantAttrs: map[string]string{"tvg-name": "x"},
		},
		{
			name:      "fallback without colon",
			line:      `#EXTINF -1 tvg-id="B.bd", Fallback Title `,
			wantTitle: "Fallback Title",
			wantAttrs: map[string]string{"tvg-id": "B.bd"},
		},
		{
			name:      "no comma at all",
			line:      `#EXTINF:-1 tvg-id="C.bd"`,
			wantTitle: "",
			wantAttrs: map[string]string{},
		},
		{
			name:      "unmatched attribute text is dropped",
			line:      `#EXTINF:-1 broken=noquotes tvg-id="D.bd" other="",Title`,
			wantTitle: "Title",
			wantAttrs: map[string]string{"tvg-id": "D.bd", "other": ""},
		},
		{
			name:      "duplicate key keeps last",
			line:      `#EXTINF:-1 tvg-id="one" tvg-id="two",T`,
			wantTitle: "T",
			wantAttrs: map[string]string{"tvg-id": "two"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := parseEXTINF(strings.TrimSpace(tt.line))
			if e.Title != tt.wantTitle {
				t.Errorf("Title = %q, want %q", e.Title, tt.wantTitle)
			}
			if !reflect.DeepEqual(e.Attributes, tt.wantAttrs) {
				t.Errorf("Attributes = %v, want %v", e.Attributes, tt.wantAttrs)
			}
			if e.Directive != strings.TrimSpace(tt.line) {
				t.Errorf("Directive = %q", e.Directive)
			}
		})
	}
}

func TestParseM3UHandlesCRLF(t *testing.T) {
	input := "#EXTM3U\r\n#EXTINF:-1 group-title=\"Sports\",Sport 1\r\nhttp://a/b.m3u8\r\n"
	entries, err := ParseM3U(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseM3U: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
	if entries[0].Title != "Sport 1" {
		t.Errorf("Title = %q", entries[0].Title)
	}
	if entries[0].StreamURL == nil || *entries[0].StreamURL != "http://a/b.m3u8" {
		t.Errorf("StreamURL = %v", entries[0].StreamURL)
	}
	if !reflect.DeepEqual(entries, ParseString(input)) {
		t.Error("ParseM3U and ParseString disagree")
	}
}

func TestParseStringEmpty(t *testing.T) {
	if got := ParseString(""); len(got) != 0 {
		t.Errorf("Expected no entries, got %d", len(got))
	}
	if got := ParseString("#EXTM3U\nhttp://x/y\n"); len(got) != 0 {
		t.Errorf("Expected lines outside entries to be ignored, got %d", len(got))
	}
}
