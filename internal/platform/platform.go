// Package platform classifies input URLs into known source platforms and
// canonicalizes platform-specific short-link forms. Classification is pure
// string transformation; no network access happens here.
package platform

import "fmt"

// Platform identifies a supported source platform.
type Platform string

const (
	YouTube   Platform = "youtube"
	Instagram Platform = "instagram"
	Facebook  Platform = "facebook"
	Pinterest Platform = "pinterest"
	Other     Platform = "other"
)

// String returns the string representation of the platform.
func (p Platform) String() string {
	return string(p)
}

// ManyTrack reports whether the platform's extractor typically yields many
// candidate streams per item. Many-track platforms get the full bucketed
// format list; everything else gets a best-of-each selection.
func (p Platform) ManyTrack() bool {
	return p == YouTube
}

// Parse maps a cookie-endpoint platform name to a Platform. The short form
// "insta" is accepted alongside the full names.
func Parse(name string) (Platform, error) {
	switch name {
	case "youtube":
		return YouTube, nil
	case "insta", "instagram":
		return Instagram, nil
	case "facebook":
		return Facebook, nil
	case "pinterest":
		return Pinterest, nil
	}
	return "", fmt.Errorf("unknown platform %q", name)
}
