// Package selector reduces the extractor's heterogeneous format list to a
// ranked, deduplicated, UI-ready selection. Many-track platforms get the full
// bucketed list (video formats and audio formats, sorted); sparse-track
// platforms get the single best muxed, video-only, and audio candidates.
//
// The selector never fails: descriptors lacking fields sort as zero, and
// unusable descriptors (no URL) are dropped before any ranking.
package selector

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/jackxcreation/downloader-ninjaX-backend/internal/domain"
	"github.com/jackxcreation/downloader-ninjaX-backend/internal/platform"
)

// Select normalizes the raw descriptor list for the platform. It also
// resolves missing width/height on meta from the descriptors (largest width
// wins, first encountered on ties) and derives the aspect ratio.
func Select(p platform.Platform, meta *domain.MediaMetadata, formats []domain.StreamDescriptor) domain.Selection {
	resolveDimensions(meta, formats)

	usable := lo.Filter(formats, func(d domain.StreamDescriptor, _ int) bool {
		return d.Usable() && (d.HasVideo() || d.HasAudio())
	})

	if p.ManyTrack() {
		return selectBucketed(usable)
	}
	return selectBestOf(usable)
}

// resolveDimensions fills meta.Width/Height from the descriptors when the
// extractor did not report them at the top level, then derives AspectRatio.
func resolveDimensions(meta *domain.MediaMetadata, formats []domain.StreamDescriptor) {
	if meta.Width == 0 || meta.Height == 0 {
		for _, d := range formats {
			if !d.Usable() || d.Width == 0 || d.Height == 0 {
				continue
			}
			if d.Width > meta.Width {
				meta.Width = d.Width
				meta.Height = d.Height
			}
		}
	}

	if meta.Width > 0 && meta.Height > 0 {
		meta.AspectRatio = aspectRatio(meta.Width, meta.Height)
	} else {
		meta.AspectRatio = ""
	}
}

func aspectRatio(w, h int) string {
	d := gcd(w, h)
	return fmt.Sprintf("%d:%d", w/d, h/d)
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// selectBucketed partitions into audio formats (no video codec) and video
// formats (real video codec; muxed streams count as video). Video formats
// sort descending by resolution, then frame rate, then bitrate; audio
// formats descending by audio bitrate.
func selectBucketed(formats []domain.StreamDescriptor) domain.Selection {
	audio := lo.Filter(formats, func(d domain.StreamDescriptor, _ int) bool {
		return !d.HasVideo()
	})
	video := lo.Filter(formats, func(d domain.StreamDescriptor, _ int) bool {
		return d.HasVideo()
	})

	sort.SliceStable(video, func(i, j int) bool {
		ri, rj := resolutionValue(video[i]), resolutionValue(video[j])
		if ri != rj {
			return ri > rj
		}
		if video[i].FrameRate != video[j].FrameRate {
			return video[i].FrameRate > video[j].FrameRate
		}
		return video[i].VideoBitrate > video[j].VideoBitrate
	})

	sort.SliceStable(audio, func(i, j int) bool {
		return audio[i].AudioBitrate > audio[j].AudioBitrate
	})

	return domain.Selection{
		VideoFormats: views(video),
		AudioFormats: views(audio),
	}
}

// selectBestOf scans once, tracking the best muxed stream, the best stream
// with any video track, and the best audio-only stream. VideoOnly is dropped
// when it is the same stream as Muxed.
func selectBestOf(formats []domain.StreamDescriptor) domain.Selection {
	var bestMuxed, bestVideo, bestAudio *domain.StreamDescriptor

	for i := range formats {
		d := &formats[i]
		if d.IsMuxed() && (bestMuxed == nil || betterVideo(*d, *bestMuxed)) {
			bestMuxed = d
		}
		if d.HasVideo() && (bestVideo == nil || betterVideo(*d, *bestVideo)) {
			bestVideo = d
		}
		if d.IsAudioOnly() && (bestAudio == nil || d.AudioBitrate > bestAudio.AudioBitrate) {
			bestAudio = d
		}
	}

	var sel domain.Selection
	if bestMuxed != nil {
		sel.Muxed = viewPtr(*bestMuxed)
	}
	if bestVideo != nil && (bestMuxed == nil || bestVideo.URL != bestMuxed.URL) {
		sel.VideoOnly = viewPtr(*bestVideo)
	}
	if bestAudio != nil {
		sel.Audio = viewPtr(*bestAudio)
	}
	return sel
}

// betterVideo ranks by height, tie-breaking by width then bitrate.
func betterVideo(a, b domain.StreamDescriptor) bool {
	if a.Height != b.Height {
		return a.Height > b.Height
	}
	if a.Width != b.Width {
		return a.Width > b.Width
	}
	return a.VideoBitrate > b.VideoBitrate
}

// resolutionValue is the numeric sort key for a video format: the pixel
// height when known, otherwise the leading number of the quality note.
// Non-numeric notes sort as 0.
func resolutionValue(d domain.StreamDescriptor) int {
	if d.Height > 0 {
		return d.Height
	}
	return leadingInt(d.FormatNote)
}

func leadingInt(s string) int {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

func views(formats []domain.StreamDescriptor) []domain.FormatView {
	out := make([]domain.FormatView, 0, len(formats))
	for _, d := range formats {
		out = append(out, view(d))
	}
	return out
}

func viewPtr(d domain.StreamDescriptor) *domain.FormatView {
	v := view(d)
	return &v
}

func view(d domain.StreamDescriptor) domain.FormatView {
	v := domain.FormatView{
		FormatID:   d.FormatID,
		Resolution: resolutionLabel(d),
		Ext:        d.Ext,
		FormatNote: d.FormatNote,
		FrameRate:  d.FrameRate,
		URL:        d.URL,
		Size:       "Unknown",
	}
	if d.HasVideo() {
		v.Bitrate = d.VideoBitrate
	} else {
		v.Bitrate = d.AudioBitrate
	}
	if d.SizeBytes > 0 {
		v.Size = FormatSize(d.SizeBytes)
	}
	return v
}

func resolutionLabel(d domain.StreamDescriptor) string {
	if d.Height > 0 {
		return fmt.Sprintf("%dp", d.Height)
	}
	if note := strings.TrimSpace(d.FormatNote); note != "" {
		return note
	}
	return "audio"
}
