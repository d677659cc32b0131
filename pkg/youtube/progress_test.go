package youtube

import (
	"bytes"
	"io"
	"testing"

	"github.com/clipnova/clipnova-bot/pkg/domain"
	"github.com/stretchr/testify/require"
)

func TestProgressReader_ReportsCompletion(t *testing.T) {
	payload := bytes.Repeat([]byte("x"), 1000)

	var reports []domain.Progress
	reader := newProgressReader(bytes.NewReader(payload), int64(len(payload)), func(p domain.Progress) {
		reports = append(reports, p)
	})

	written, err := io.Copy(io.Discard, reader)
	require.NoError(t, err)
	require.Equal(t, int64(len(payload)), written)

	require.NotEmpty(t, reports)
	last := reports[len(reports)-1]
	require.Equal(t, int64(len(payload)), last.DownloadedBytes)
	require.Equal(t, int64(len(payload)), last.TotalBytes)
	require.InDelta(t, 100, last.Percent(), 0.001)
}
