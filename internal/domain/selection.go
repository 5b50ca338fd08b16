package domain

// FormatView is the UI-facing projection of a StreamDescriptor. Resolution is
// the height-derived label ("1080p"), falling back to the extractor's quality
// note, or "audio" for audio-only streams. Size is a human-readable byte
// count, "Unknown" when the extractor reported none.
type FormatView struct {
	FormatID   string  `json:"format_id"`
	Resolution string  `json:"resolution"`
	Ext        string  `json:"extension"`
	FormatNote string  `json:"format_note,omitempty"`
	FrameRate  float64 `json:"fps,omitempty"`
	Bitrate    float64 `json:"bitrate,omitempty"`
	Size       string  `json:"filesize"`
	URL        string  `json:"url"`
}

// Selection is the selector's output. Exactly one of the two forms is
// populated: the bucketed form (VideoFormats/AudioFormats) for many-track
// platforms, the best-of form (Muxed/VideoOnly/Audio) for sparse-track ones.
type Selection struct {
	VideoFormats []FormatView
	AudioFormats []FormatView

	Muxed     *FormatView
	VideoOnly *FormatView
	Audio     *FormatView
}

// Bucketed reports whether the selection carries the full format lists.
func (s Selection) Bucketed() bool {
	return s.VideoFormats != nil || s.AudioFormats != nil
}
