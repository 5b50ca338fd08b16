package platform

import (
	"net/url"
	"strings"
)

// domainMarkers maps URL substrings to platforms. Ordered; first match wins.
var domainMarkers = []struct {
	marker   string
	platform Platform
}{
	{"youtube.com", YouTube},
	{"youtu.be", YouTube},
	{"instagram.com", Instagram},
	{"facebook.com", Facebook},
	{"fb.watch", Facebook},
	{"pinterest.", Pinterest},
	{"pin.it", Pinterest},
}

// Classify maps a raw URL to its platform and a canonical form of the URL.
// Short-link forms (youtu.be/<id>) are rewritten to the platform's long-form
// watch URL; all other URLs pass through unchanged. Classify is idempotent:
// classifying its own output yields the same pair.
func Classify(rawURL string) (Platform, string) {
	if canonical, ok := expandShortLink(rawURL); ok {
		return YouTube, canonical
	}

	for _, m := range domainMarkers {
		if strings.Contains(rawURL, m.marker) {
			return m.platform, rawURL
		}
	}

	return Other, rawURL
}

// expandShortLink rewrites youtu.be/<id> to the canonical watch URL,
// preserving only the video id.
func expandShortLink(rawURL string) (string, bool) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", false
	}
	if !strings.EqualFold(u.Host, "youtu.be") {
		return "", false
	}
	id := strings.Trim(u.Path, "/")
	if id == "" || strings.Contains(id, "/") {
		return "", false
	}
	return "https://www.youtube.com/watch?v=" + id, true
}
