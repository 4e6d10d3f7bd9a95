// Package media infers playlist item types from raw URLs and derives
// normalized embeddable video references.
package media

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"studylist/internal/models"
)

// InferItemType classifies a raw URL. An empty or malformed URL is a
// note (the neutral fallback), YouTube hosts are videos, GitHub repos
// and PDFs are documents, and everything else is a plain link.
func InferItemType(rawURL string) models.ItemType {
	if rawURL == "" {
		return models.ItemNote
	}

	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return models.ItemNote
	}

	host := strings.ToLower(u.Hostname())
	switch {
	case strings.Contains(host, "youtube.com"), strings.Contains(host, "youtu.be"):
		return models.ItemVideo
	case strings.Contains(host, "github.com"):
		return models.ItemDocument
	case strings.HasSuffix(strings.ToLower(u.Path), ".pdf"):
		return models.ItemDocument
	}
	return models.ItemLink
}

var durationPattern = regexp.MustCompile(`(?i)^(?:(\d+)h)?(?:(\d+)m)?(?:(\d+)s)?$`)

// ParseTimestamp converts a YouTube start-time value to total seconds.
// Accepts a bare integer or a compound duration like "1h2m3s" with any
// subset of the components. Returns 0 for values that are empty,
// unparseable, or sum to zero; a zero start time is never emitted.
func ParseTimestamp(value string) int {
	if value == "" {
		return 0
	}
	if seconds, err := strconv.Atoi(value); err == nil {
		if seconds > 0 {
			return seconds
		}
		return 0
	}

	match := durationPattern.FindStringSubmatch(value)
	if match == nil {
		return 0
	}

	total := 0
	for i, unit := range []int{3600, 60, 1} {
		if match[i+1] == "" {
			continue
		}
		n, err := strconv.Atoi(match[i+1])
		if err != nil {
			return 0
		}
		total += n * unit
	}
	return total
}

// YouTubeEmbedURL derives the canonical embed URL for a YouTube link.
// Recognized shapes: /watch?v=ID, /embed/ID, /shorts/ID, /live/ID on
// youtube.com hosts, and youtu.be/ID. Start time (t or start) and
// playlist (list) parameters carry over when present. Returns "" when no
// video id can be extracted or the URL fails to parse.
func YouTubeEmbedURL(rawURL string) string {
	if rawURL == "" {
		return ""
	}

	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return ""
	}

	host := strings.ToLower(strings.TrimPrefix(u.Hostname(), "www."))
	query := u.Query()

	var (
		videoID string
		start   int
		list    string
	)

	segments := splitPath(u.Path)

	switch {
	case strings.Contains(host, "youtube.com"):
		switch {
		case strings.HasPrefix(u.Path, "/watch"):
			videoID = query.Get("v")
			start = firstTimestamp(query, "t", "start")
			list = query.Get("list")
		case len(segments) >= 2 && segments[0] == "embed":
			videoID = segments[1]
			start = ParseTimestamp(query.Get("start"))
		case len(segments) >= 2 && segments[0] == "shorts":
			videoID = segments[1]
		case len(segments) >= 2 && segments[0] == "live":
			videoID = segments[1]
		}
	case strings.Contains(host, "youtu.be"):
		if len(segments) >= 1 {
			videoID = segments[0]
			start = firstTimestamp(query, "t", "start")
		}
		list = query.Get("list")
	}

	if videoID == "" {
		return ""
	}

	var b strings.Builder
	b.WriteString("https://www.youtube.com/embed/")
	b.WriteString(videoID)

	sep := "?"
	if start > 0 {
		b.WriteString(sep + "start=" + strconv.Itoa(start))
		sep = "&"
	}
	if list != "" {
		b.WriteString(sep + "list=" + url.QueryEscape(list))
	}
	return b.String()
}

// firstTimestamp parses the first non-empty parameter among keys.
func firstTimestamp(query url.Values, keys ...string) int {
	for _, key := range keys {
		if value := query.Get(key); value != "" {
			return ParseTimestamp(value)
		}
	}
	return 0
}

func splitPath(path string) []string {
	var segments []string
	for _, segment := range strings.Split(path, "/") {
		if segment != "" {
			segments = append(segments, segment)
		}
	}
	return segments
}
