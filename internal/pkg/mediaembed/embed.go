// Package mediaembed resolves raw video URLs into embeddable player URLs.
package mediaembed

import (
	"regexp"
	"strings"
)

// Source is a resolved playback source returned to the player frontend.
type Source struct {
	URL  string `json:"url"`
	Kind string `json:"kind"`
}

const (
	KindYouTube = "youtube"
	KindRuTube  = "rutube"
	KindFile    = "file"
)

var (
	youtubeIDRe = regexp.MustCompile(`(?:v=|youtu\.be/|embed/|shorts/)([A-Za-z0-9_-]{6,})`)
	rutubeIDRe  = regexp.MustCompile(`(?i)rutube\.ru/(?:video|play/embed)/([a-f0-9]{32})`)
)

// YouTubeID extracts the video id from any common YouTube URL shape.
func YouTubeID(url string) string {
	if url == "" {
		return ""
	}
	if m := youtubeIDRe.FindStringSubmatch(url); m != nil {
		return m[1]
	}
	return ""
}

// YouTubeEmbed builds the autoplaying embed URL, or "" when no id is found.
func YouTubeEmbed(url string) string {
	id := YouTubeID(url)
	if id == "" {
		return ""
	}
	return "https://www.youtube.com/embed/" + id + "?autoplay=1&playsinline=1&rel=0&modestbranding=1"
}

// RuTubeID extracts the 32-char hex video id from a RuTube URL.
func RuTubeID(url string) string {
	if url == "" {
		return ""
	}
	if m := rutubeIDRe.FindStringSubmatch(url); m != nil {
		return strings.ToLower(m[1])
	}
	return ""
}

func RuTubeEmbed(url string) string {
	id := RuTubeID(url)
	if id == "" {
		return ""
	}
	return "https://rutube.ru/play/embed/" + id + "?autoplay=1"
}

// Resolve maps a stored video URL to a playback source. Unknown hosts are
// passed through as direct files. The second return is false when the URL
// looks like a known host but no id could be extracted.
func Resolve(url string) (Source, bool) {
	u := strings.ToLower(url)
	switch {
	case strings.Contains(u, "youtu"):
		if em := YouTubeEmbed(url); em != "" {
			return Source{URL: em, Kind: KindYouTube}, true
		}
		return Source{}, false
	case strings.Contains(u, "rutube"):
		if em := RuTubeEmbed(url); em != "" {
			return Source{URL: em, Kind: KindRuTube}, true
		}
		return Source{}, false
	default:
		return Source{URL: url, Kind: KindFile}, true
	}
}
