package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/clipnova/clipnova-bot/pkg/domain"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/require"
)

type okHTTPClient struct{}

func (okHTTPClient) Do(*http.Request) (*http.Response, error) {
	return &http.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(`{"ok":true,"result":{}}`)),
	}, nil
}

func newTestBot(t *testing.T) *bot.Bot {
	t.Helper()

	b, err := bot.New("123456:test-token", bot.WithSkipGetMe(), bot.WithHTTPClient(time.Minute, okHTTPClient{}))
	require.NoError(t, err)
	return b
}

type stubSessions struct {
	session *domain.Session
}

func (s *stubSessions) Get(int64, int) (*domain.Session, bool) {
	if s.session == nil {
		return nil, false
	}
	session := *s.session
	return &session, true
}

func (s *stubSessions) Clear(int64, int) {}

type blockingDownloader struct {
	started chan struct{}
	release chan struct{}
}

func (d *blockingDownloader) Download(context.Context, string, int, func(domain.Progress)) (string, int64, error) {
	close(d.started)
	<-d.release
	return "", 0, errors.New("stream closed")
}

type stubExtractor struct{}

func (stubExtractor) ExtractMP3(_ context.Context, inputPath string) (string, error) {
	return inputPath, nil
}

type recordingHistory struct {
	saved chan *domain.Download
}

func (h *recordingHistory) Save(_ context.Context, d *domain.Download) error {
	h.saved <- d
	return nil
}

// The download must run off the update worker: while one chat downloads for
// minutes, every other update still has to be handled.
func TestConfirmDownload_HandlerReturnsWhileDownloadRuns(t *testing.T) {
	selected := domain.FormatOption{Itag: 22, Kind: domain.MediaKindVideo, Quality: "720p"}
	sessions := &stubSessions{session: &domain.Session{
		ChatID:   1,
		URL:      "https://youtu.be/abc",
		Video:    domain.VideoInfo{ID: "abc", Title: "clip"},
		Formats:  []domain.FormatOption{selected},
		Selected: &selected,
	}}
	downloader := &blockingDownloader{started: make(chan struct{}), release: make(chan struct{})}
	history := &recordingHistory{saved: make(chan *domain.Download, 1)}

	handler := ConfirmDownload(sessions, downloader, stubExtractor{}, history)
	b := newTestBot(t)

	update := &models.Update{
		CallbackQuery: &models.CallbackQuery{
			ID:      "cb-1",
			From:    models.User{ID: 7},
			Data:    domain.ConfirmDownloadCallback,
			Message: models.MaybeInaccessibleMessage{Message: &models.Message{ID: 10, Chat: models.Chat{ID: 1}}},
		},
	}

	returned := make(chan struct{})
	go func() {
		handler(context.Background(), b, update)
		close(returned)
	}()

	select {
	case <-returned:
	case <-time.After(2 * time.Second):
		t.Fatal("handler did not return while the download was still running")
	}

	select {
	case <-downloader.started:
	case <-time.After(2 * time.Second):
		t.Fatal("download never started")
	}

	close(downloader.release)

	select {
	case record := <-history.saved:
		require.Equal(t, domain.DownloadStatusFailed, record.Status)
		require.Equal(t, "abc", record.VideoID)
	case <-time.After(2 * time.Second):
		t.Fatal("download outcome was never recorded")
	}
}
