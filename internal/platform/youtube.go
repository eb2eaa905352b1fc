package platform

import (
	"errors"
	"net/url"
	"regexp"
	"strings"
)

// ErrInvalidURL is returned for URLs that do not point at a YouTube video
var ErrInvalidURL = errors.New("invalid YouTube URL")

// Supported YouTube URL patterns
var (
	YouTubePatterns = []string{
		"youtube.com/watch?v=",
		"youtu.be/",
		"youtube.com/embed/",
		"m.youtube.com/watch?v=",
		"youtube.com/shorts/",
	}
)

// Video ID constants
const (
	VideoIDLength = 11
)

var videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// ValidateYouTubeURL reports whether raw is an http(s) URL pointing at a YouTube video
func ValidateYouTubeURL(raw string) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false
	}

	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}

	for _, pattern := range YouTubePatterns {
		if strings.Contains(raw, pattern) {
			return true
		}
	}
	return false
}

// ExtractVideoID returns the 11-character video ID from a YouTube URL,
// or "" when the URL does not carry one
func ExtractVideoID(raw string) string {
	if !ValidateYouTubeURL(raw) {
		return ""
	}

	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return ""
	}

	var candidate string
	host := strings.TrimPrefix(u.Host, "www.")
	switch {
	case host == "youtu.be":
		candidate = strings.TrimPrefix(u.Path, "/")
	case strings.HasPrefix(u.Path, "/watch"):
		candidate = u.Query().Get("v")
	case strings.HasPrefix(u.Path, "/embed/"):
		candidate = strings.TrimPrefix(u.Path, "/embed/")
	case strings.HasPrefix(u.Path, "/shorts/"):
		candidate = strings.TrimPrefix(u.Path, "/shorts/")
	}

	if i := strings.IndexAny(candidate, "/?&"); i >= 0 {
		candidate = candidate[:i]
	}
	if !videoIDPattern.MatchString(candidate) {
		return ""
	}
	return candidate
}
