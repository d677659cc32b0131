package domain

import "fmt"

type MediaKind string

const (
	MediaKindVideo MediaKind = "video"
	MediaKindAudio MediaKind = "audio"
)

// MaxTelegramFileSize is the Bot API upload limit for sendVideo/sendAudio.
const MaxTelegramFileSize = 50 << 20

// FormatOption is one downloadable stream offered to the user. Itag is the
// identifier the extraction library uses to address a concrete format.
type FormatOption struct {
	Itag        int
	Kind        MediaKind
	Quality     string // "720p" for video, "128kbps" for audio
	MimeType    string
	Ext         string
	SizeBytes   int64
	SizeApprox  bool
	Width       int
	Height      int
	BitrateKbps int
}

// Label renders the inline keyboard button text.
func (f FormatOption) Label() string {
	icon := "🎬"
	if f.Kind == MediaKindAudio {
		icon = "🎵"
	}
	return fmt.Sprintf("%s %s (%s)", icon, f.Quality, f.HumanSize())
}

func (f FormatOption) HumanSize() string {
	if f.SizeBytes <= 0 {
		return "N/A"
	}
	s := HumanBytes(f.SizeBytes)
	if f.SizeApprox {
		return "~" + s
	}
	return s
}

func HumanBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%dB", n)
	}
	div, exp := int64(unit), 0
	for n >= unit*div && exp < 3 {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f%s", float64(n)/float64(div), []string{"KB", "MB", "GB", "TB"}[exp])
}
