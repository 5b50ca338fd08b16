package fetch

import (
	"net/http"
	"strings"
)

// Identity is one request identity used for an attempt against an upstream
// CDN. Attempts rotate through the identity list so a block on one user
// agent does not fail the whole operation.
type Identity struct {
	UserAgent string
}

var identities = []Identity{
	{UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"},
	{UserAgent: "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Safari/605.1.15"},
	{UserAgent: "Mozilla/5.0 (X11; Linux x86_64; rv:125.0) Gecko/20100101 Firefox/125.0"},
	{UserAgent: "Mozilla/5.0 (iPhone; CPU iPhone OS 17_4 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Mobile/15E148 Safari/604.1"},
}

// Identities returns n request identities, rotating through the known list.
func Identities(n int) []Identity {
	out := make([]Identity, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, identities[i%len(identities)])
	}
	return out
}

// cdnOrigins maps host substrings of known video CDNs to the site origin the
// CDN expects in Origin/Referer headers.
var cdnOrigins = []struct {
	marker string
	origin string
}{
	{"googlevideo.com", "https://www.youtube.com"},
	{"youtube.com", "https://www.youtube.com"},
	{"cdninstagram.com", "https://www.instagram.com"},
	{"fbcdn.net", "https://www.facebook.com"},
	{"facebook.com", "https://www.facebook.com"},
	{"pinimg.com", "https://www.pinterest.com"},
}

// applyHeaders sets the identity's browser-mimic headers on the request,
// adding Origin/Referer when the target host is a CDN that requires them.
func applyHeaders(req *http.Request, id Identity) {
	req.Header.Set("User-Agent", id.UserAgent)
	req.Header.Set("Accept", "*/*")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	host := req.URL.Host
	for _, c := range cdnOrigins {
		if strings.Contains(host, c.marker) {
			req.Header.Set("Origin", c.origin)
			req.Header.Set("Referer", c.origin+"/")
			break
		}
	}
}
