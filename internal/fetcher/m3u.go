package fetcher

import (
	"bufio"
	"io"
	"regexp"
	"strings"

	"github.com/voyagen/sportsvault/internal/models"
)

const (
	markerEXTINF    = "#EXTINF"
	markerDirective = "#"
)

var (
	// #EXTINF:<duration> <attrs>,<title>
	reEXTINF = regexp.MustCompile(`^#EXTINF:\S*\s*(.*?)\s*,(.*)`)
	reAttr   = regexp.MustCompile(`([A-Za-z0-9_\-]+)="([^"]*)"`)
)

// ParseM3U reads an M3U playlist from r and returns its entries in source order.
// Entries without a URL line are kept with a nil StreamURL.
func ParseM3U(r io.Reader) ([]models.Entry, error) {
	scanner := bufio.NewScanner(r)
	// Handle long lines (some M3U have very long EXTINF lines).
	const maxSize = 1024 * 1024
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, maxSize)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return parseLines(lines), nil
}

// ParseString parses playlist text already held in memory.
func ParseString(text string) []models.Entry {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return parseLines(strings.Split(text, "\n"))
}

type parseState int

const (
	stateScanning parseState = iota
	stateInEntryBody
)

// parseLines walks lines with an explicit cursor. In stateScanning everything
// but an #EXTINF line is skipped; in stateInEntryBody the lines following an
// #EXTINF are consumed until a URL line is taken or the next #EXTINF is seen.
func parseLines(lines []string) []models.Entry {
	var entries []models.Entry
	var cur *models.Entry
	state := stateScanning

	for i := 0; i < len(lines); {
		line := strings.TrimSpace(lines[i])

		switch state {
		case stateScanning:
			i++
			if strings.HasPrefix(line, markerEXTINF) {
				e := parseEXTINF(line)
				cur = &e
				state = stateInEntryBody
			}

		case stateInEntryBody:
			switch {
			case line == "":
				i++
			case strings.HasPrefix(line, markerEXTINF):
				// Leave the cursor on this line so it opens the next entry.
				entries = append(entries, *cur)
				cur, state = nil, stateScanning
			case strings.HasPrefix(line, markerDirective):
				cur.ExtraLines = append(cur.ExtraLines, line)
				i++
			default:
				url := line
				cur.StreamURL = &url
				entries = append(entries, *cur)
				cur, state = nil, stateScanning
				i++
			}
		}
	}
	if cur != nil {
		entries = append(entries, *cur)
	}
	return entries
}

// parseEXTINF splits an #EXTINF line into attributes and title. Lines that do
// not fit the duration/attrs/title layout are split on their first comma.
func parseEXTINF(line string) models.Entry {
	var attrSegment, title string
	if m := reEXTINF.FindStringSubmatch(line); m != nil {
		attrSegment = strings.TrimSpace(m[1])
		title = strings.TrimSpace(m[2])
	} else if before, after, ok := strings.Cut(line, ","); ok {
		attrSegment = before
		title = strings.TrimSpace(after)
	}
	return models.Entry{
		Directive:  line,
		Attributes: parseAttributes(attrSegment),
		Title:      title,
	}
}

func parseAttributes(s string) map[string]string {
	attrs := make(map[string]string)
	for _, m := range reAttr.FindAllStringSubmatch(s, -1) {
		attrs[m[1]] = m[2]
	}
	return attrs
}
