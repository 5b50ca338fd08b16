// Package domain defines the core entities of the stream resolver: raw
// stream descriptors as reported by the extractor, resolved media metadata,
// and the UI-facing selection produced by the format selector. All entities
// are request-scoped; nothing here is persisted.
package domain

// codecNone is the extractor's sentinel for "this track is absent".
const codecNone = "none"

// StreamDescriptor is one retrievable media stream as reported by the
// extractor. Numeric fields default to zero when the extractor omits them;
// a descriptor with an empty URL is unusable.
type StreamDescriptor struct {
	FormatID     string
	Ext          string
	VideoCodec   string
	AudioCodec   string
	Width        int
	Height       int
	FrameRate    float64
	VideoBitrate float64
	AudioBitrate float64
	SizeBytes    int64
	FormatNote   string
	URL          string
}

// Usable reports whether the descriptor can be fetched at all.
func (d StreamDescriptor) Usable() bool {
	return d.URL != ""
}

// HasVideo reports whether the descriptor carries a real video track.
func (d StreamDescriptor) HasVideo() bool {
	return d.VideoCodec != "" && d.VideoCodec != codecNone
}

// HasAudio reports whether the descriptor carries a real audio track.
func (d StreamDescriptor) HasAudio() bool {
	return d.AudioCodec != "" && d.AudioCodec != codecNone
}

// IsVideoOnly reports a video track with no audio.
func (d StreamDescriptor) IsVideoOnly() bool {
	return d.HasVideo() && !d.HasAudio()
}

// IsAudioOnly reports an audio track with no video.
func (d StreamDescriptor) IsAudioOnly() bool {
	return d.HasAudio() && !d.HasVideo()
}

// IsMuxed reports both tracks present in one stream.
func (d StreamDescriptor) IsMuxed() bool {
	return d.HasVideo() && d.HasAudio()
}

// MediaMetadata holds the top-level attributes of a resolved item.
type MediaMetadata struct {
	Title           string
	ThumbnailURL    string
	DurationSeconds int
	Width           int
	Height          int
	AspectRatio     string
}
