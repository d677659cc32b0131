package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHumanBytes(t *testing.T) {
	tests := []struct {
		n        int64
		expected string
	}{
		{0, "0B"},
		{512, "512B"},
		{1024, "1.0KB"},
		{1536, "1.5KB"},
		{12 << 20, "12.0MB"},
		{3 << 30, "3.0GB"},
		{2 << 40, "2.0TB"},
	}

	for _, tt := range tests {
		require.Equal(t, tt.expected, HumanBytes(tt.n), "HumanBytes(%d)", tt.n)
	}
}

func TestFormatOption_Label(t *testing.T) {
	tests := []struct {
		name     string
		option   FormatOption
		expected string
	}{
		{
			name:     "video with exact size",
			option:   FormatOption{Kind: MediaKindVideo, Quality: "720p", SizeBytes: 12 << 20},
			expected: "🎬 720p (12.0MB)",
		},
		{
			name:     "video with estimated size",
			option:   FormatOption{Kind: MediaKindVideo, Quality: "360p", SizeBytes: 5 << 20, SizeApprox: true},
			expected: "🎬 360p (~5.0MB)",
		},
		{
			name:     "audio",
			option:   FormatOption{Kind: MediaKindAudio, Quality: "audio 128kbps", SizeBytes: 3 << 20},
			expected: "🎵 audio 128kbps (3.0MB)",
		},
		{
			name:     "unknown size",
			option:   FormatOption{Kind: MediaKindVideo, Quality: "1080p"},
			expected: "🎬 1080p (N/A)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.option.Label())
		})
	}
}
