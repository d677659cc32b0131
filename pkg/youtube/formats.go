package youtube

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/clipnova/clipnova-bot/pkg/domain"
	ytdl "github.com/kkdai/youtube/v2"
)

// minVideoHeight is the lowest resolution worth offering.
const minVideoHeight = 144

// AvailableFormats turns the raw format list into the options shown on the
// keyboard: progressive (audio+video) streams deduplicated by resolution and
// sorted high to low, plus the best audio-only stream when one exists.
func AvailableFormats(video *ytdl.Video) []domain.FormatOption {
	options := make([]domain.FormatOption, 0, 8)
	seenHeights := make(map[int]bool)

	for _, f := range video.Formats.WithAudioChannels() {
		if f.Width == 0 || f.Height == 0 {
			continue
		}
		if f.Height < minVideoHeight || seenHeights[f.Height] {
			continue
		}
		seenHeights[f.Height] = true
		options = append(options, newOption(f, domain.MediaKindVideo, video.Duration))
	}

	sort.Slice(options, func(i, j int) bool { return options[i].Height > options[j].Height })

	if audio := bestAudioFormat(video); audio != nil {
		options = append(options, newOption(*audio, domain.MediaKindAudio, video.Duration))
	}

	return options
}

func newOption(f ytdl.Format, kind domain.MediaKind, duration time.Duration) domain.FormatOption {
	size, approx := estimateSize(f, duration)

	opt := domain.FormatOption{
		Itag:        f.ItagNo,
		Kind:        kind,
		MimeType:    f.MimeType,
		Ext:         mimeToExt(f.MimeType),
		SizeBytes:   size,
		SizeApprox:  approx,
		Width:       f.Width,
		Height:      f.Height,
		BitrateKbps: bitrateFor(f) / 1000,
	}

	switch kind {
	case domain.MediaKindAudio:
		opt.Quality = "audio"
		if opt.BitrateKbps > 0 {
			opt.Quality = fmt.Sprintf("audio %dkbps", opt.BitrateKbps)
		}
		opt.Ext = "mp3" // delivered as mp3 after extraction
	default:
		opt.Quality = f.QualityLabel
		if opt.Quality == "" {
			opt.Quality = f.Quality
		}
	}

	return opt
}

func bestAudioFormat(video *ytdl.Video) *ytdl.Format {
	var best *ytdl.Format
	formats := video.Formats.WithAudioChannels()
	for i := range formats {
		f := &formats[i]
		if f.Width != 0 || f.Height != 0 {
			continue
		}
		// mp4 audio keeps the ffmpeg extraction step simple
		if !strings.HasPrefix(f.MimeType, "audio/mp4") {
			continue
		}
		if best == nil || bitrateFor(*f) > bitrateFor(*best) {
			best = f
		}
	}
	return best
}

// estimateSize prefers the reported content length and falls back to
// bitrate * duration when the extractor omits it.
func estimateSize(f ytdl.Format, duration time.Duration) (size int64, approx bool) {
	if f.ContentLength > 0 {
		return f.ContentLength, false
	}
	if bitrate := bitrateFor(f); bitrate > 0 && duration > 0 {
		return int64(bitrate) / 8 * int64(duration.Seconds()), true
	}
	return 0, true
}

func bitrateFor(f ytdl.Format) int {
	if f.Bitrate > 0 {
		return f.Bitrate
	}
	return f.AverageBitrate
}

func mimeToExt(mime string) string {
	if i := strings.Index(mime, ";"); i >= 0 {
		mime = mime[:i]
	}
	parts := strings.Split(mime, "/")
	if len(parts) != 2 {
		return "bin"
	}
	switch parts[1] {
	case "3gpp":
		return "3gp"
	case "mp4":
		if parts[0] == "audio" {
			return "m4a"
		}
		return "mp4"
	default:
		return parts[1]
	}
}
