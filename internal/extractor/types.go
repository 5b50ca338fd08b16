package extractor

import "github.com/jackxcreation/downloader-ninjaX-backend/internal/domain"

// rawInfo mirrors the extractor's -J output. A playlist/carousel container
// carries Entries instead of Formats; the adapter reduces to entry 0.
type rawInfo struct {
	Title     string      `json:"title"`
	Thumbnail string      `json:"thumbnail"`
	Duration  float64     `json:"duration"`
	Width     int         `json:"width"`
	Height    int         `json:"height"`
	Formats   []rawFormat `json:"formats"`
	Entries   []rawInfo   `json:"entries"`
}

// rawFormat is one stream descriptor as the extractor reports it. Numeric
// fields are pointers because the extractor emits null for unknowns.
type rawFormat struct {
	FormatID       string   `json:"format_id"`
	Ext            string   `json:"ext"`
	VCodec         string   `json:"vcodec"`
	ACodec         string   `json:"acodec"`
	Width          *int     `json:"width"`
	Height         *int     `json:"height"`
	FPS            *float64 `json:"fps"`
	VBR            *float64 `json:"vbr"`
	ABR            *float64 `json:"abr"`
	Filesize       *int64   `json:"filesize"`
	FilesizeApprox *int64   `json:"filesize_approx"`
	FormatNote     string   `json:"format_note"`
	URL            string   `json:"url"`
}

func (f rawFormat) descriptor() domain.StreamDescriptor {
	d := domain.StreamDescriptor{
		FormatID:   f.FormatID,
		Ext:        f.Ext,
		VideoCodec: f.VCodec,
		AudioCodec: f.ACodec,
		FormatNote: f.FormatNote,
		URL:        f.URL,
	}
	if f.Width != nil {
		d.Width = *f.Width
	}
	if f.Height != nil {
		d.Height = *f.Height
	}
	if f.FPS != nil {
		d.FrameRate = *f.FPS
	}
	if f.VBR != nil {
		d.VideoBitrate = *f.VBR
	}
	if f.ABR != nil {
		d.AudioBitrate = *f.ABR
	}
	if f.Filesize != nil {
		d.SizeBytes = *f.Filesize
	} else if f.FilesizeApprox != nil {
		d.SizeBytes = *f.FilesizeApprox
	}
	return d
}

func (info rawInfo) metadata() domain.MediaMetadata {
	duration := int(info.Duration)
	if duration < 0 {
		duration = 0
	}
	return domain.MediaMetadata{
		Title:           info.Title,
		ThumbnailURL:    info.Thumbnail,
		DurationSeconds: duration,
		Width:           info.Width,
		Height:          info.Height,
	}
}
