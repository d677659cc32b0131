package youtube

import (
	"testing"
	"time"

	"github.com/clipnova/clipnova-bot/pkg/domain"
	ytdl "github.com/kkdai/youtube/v2"
	"github.com/stretchr/testify/require"
)

func TestAvailableFormats(t *testing.T) {
	video := &ytdl.Video{
		Duration: 100 * time.Second,
		Formats: ytdl.FormatList{
			{
				ItagNo:        18,
				MimeType:      `video/mp4; codecs="avc1.42001E, mp4a.40.2"`,
				QualityLabel:  "360p",
				Width:         640,
				Height:        360,
				AudioChannels: 2,
				ContentLength: 10_000_000,
			},
			{
				// no content length, size estimated from bitrate
				ItagNo:        22,
				MimeType:      `video/mp4; codecs="avc1.64001F, mp4a.40.2"`,
				QualityLabel:  "720p",
				Width:         1280,
				Height:        720,
				AudioChannels: 2,
				Bitrate:       800_000,
			},
			{
				// duplicate resolution, dropped
				ItagNo:        99,
				MimeType:      `video/mp4`,
				QualityLabel:  "360p",
				Width:         640,
				Height:        360,
				AudioChannels: 2,
			},
			{
				// below the minimum resolution
				ItagNo:        17,
				MimeType:      `video/3gpp`,
				QualityLabel:  "144p",
				Width:         176,
				Height:        120,
				AudioChannels: 1,
			},
			{
				// video-only stream has no audio channels
				ItagNo:       137,
				MimeType:     `video/mp4; codecs="avc1.640028"`,
				QualityLabel: "1080p",
				Width:        1920,
				Height:       1080,
			},
			{
				ItagNo:        140,
				MimeType:      `audio/mp4; codecs="mp4a.40.2"`,
				AudioChannels: 2,
				Bitrate:       128_000,
				ContentLength: 2_000_000,
			},
			{
				// webm audio is not offered, extraction expects mp4
				ItagNo:        251,
				MimeType:      `audio/webm; codecs="opus"`,
				AudioChannels: 2,
				Bitrate:       160_000,
			},
		},
	}

	options := AvailableFormats(video)
	require.Len(t, options, 3)

	require.Equal(t, 22, options[0].Itag)
	require.Equal(t, domain.MediaKindVideo, options[0].Kind)
	require.Equal(t, "720p", options[0].Quality)
	require.Equal(t, "mp4", options[0].Ext)
	require.True(t, options[0].SizeApprox)
	require.Equal(t, int64(800_000/8*100), options[0].SizeBytes)

	require.Equal(t, 18, options[1].Itag)
	require.Equal(t, "360p", options[1].Quality)
	require.False(t, options[1].SizeApprox)
	require.Equal(t, int64(10_000_000), options[1].SizeBytes)

	require.Equal(t, 140, options[2].Itag)
	require.Equal(t, domain.MediaKindAudio, options[2].Kind)
	require.Equal(t, "audio 128kbps", options[2].Quality)
	require.Equal(t, "mp3", options[2].Ext)
}

func TestAvailableFormats_NoUsableStreams(t *testing.T) {
	video := &ytdl.Video{
		Formats: ytdl.FormatList{
			{ItagNo: 137, MimeType: `video/mp4`, Width: 1920, Height: 1080},
		},
	}
	require.Empty(t, AvailableFormats(video))
}

func TestPickFormat(t *testing.T) {
	video := &ytdl.Video{
		Formats: ytdl.FormatList{
			{ItagNo: 18, QualityLabel: "360p"},
			{ItagNo: 22, QualityLabel: "720p"},
		},
	}

	format, err := pickFormat(video, 22)
	require.NoError(t, err)
	require.Equal(t, 22, format.ItagNo)
	require.Equal(t, "720p", format.QualityLabel)

	_, err = pickFormat(video, 999)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEstimateSize(t *testing.T) {
	size, approx := estimateSize(ytdl.Format{ContentLength: 42}, time.Minute)
	require.Equal(t, int64(42), size)
	require.False(t, approx)

	size, approx = estimateSize(ytdl.Format{AverageBitrate: 80_000}, 10*time.Second)
	require.Equal(t, int64(100_000), size)
	require.True(t, approx)

	size, approx = estimateSize(ytdl.Format{}, time.Minute)
	require.Zero(t, size)
	require.True(t, approx)
}

func TestMimeToExt(t *testing.T) {
	tests := []struct {
		mime     string
		expected string
	}{
		{`video/mp4; codecs="avc1.42001E"`, "mp4"},
		{`audio/mp4; codecs="mp4a.40.2"`, "m4a"},
		{"video/webm", "webm"},
		{"video/3gpp", "3gp"},
		{"bogus", "bin"},
	}

	for _, tt := range tests {
		require.Equal(t, tt.expected, mimeToExt(tt.mime), "mimeToExt(%q)", tt.mime)
	}
}
