package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestProgress_Percent(t *testing.T) {
	tests := []struct {
		name     string
		progress Progress
		expected float64
	}{
		{"unknown total", Progress{DownloadedBytes: 100}, 0},
		{"halfway", Progress{DownloadedBytes: 50, TotalBytes: 100}, 50},
		{"complete", Progress{DownloadedBytes: 100, TotalBytes: 100}, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.InDelta(t, tt.expected, tt.progress.Percent(), 0.001)
		})
	}
}

func TestProgress_HumanSpeed(t *testing.T) {
	require.Equal(t, "N/A", Progress{}.HumanSpeed())
	require.Equal(t, "2.0KB/s", Progress{BytesPerSecond: 2048}.HumanSpeed())
	require.Equal(t, "1.5MB/s", Progress{BytesPerSecond: 1.5 * 1024 * 1024}.HumanSpeed())
}

func TestProgress_HumanETA(t *testing.T) {
	require.Equal(t, "N/A", Progress{}.HumanETA())
	require.Equal(t, "30s", Progress{ETA: 30 * time.Second}.HumanETA())
	require.Equal(t, "1m30s", Progress{ETA: 90*time.Second + 300*time.Millisecond}.HumanETA())
}
