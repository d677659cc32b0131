package handlers

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/clipnova/clipnova-bot/pkg/domain"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

type confirmDownloadSessionProvider interface {
	Get(chatID int64, topicID int) (*domain.Session, bool)
	Clear(chatID int64, topicID int)
}

type confirmDownloadDownloader interface {
	Download(ctx context.Context, rawURL string, itag int, onProgress func(domain.Progress)) (string, int64, error)
}

type confirmDownloadAudioExtractor interface {
	ExtractMP3(ctx context.Context, inputPath string) (string, error)
}

type confirmDownloadHistorySaver interface {
	Save(ctx context.Context, d *domain.Download) error
}

// ConfirmDownload handles the "Download Now" button: it downloads the
// selected stream with live progress edits, sends the file back, records the
// outcome, and cleans up.
func ConfirmDownload(
	sessions confirmDownloadSessionProvider,
	downloader confirmDownloadDownloader,
	audioExtractor confirmDownloadAudioExtractor,
	history confirmDownloadHistorySaver,
) bot.HandlerFunc {
	progressText := func(p domain.Progress) string {
		total := "?"
		if p.TotalBytes > 0 {
			total = domain.HumanBytes(p.TotalBytes)
		}
		return fmt.Sprintf(
			"📥 <b>Downloading...</b>\n\n├ Progress: <code>%.1f%%</code>\n├ Speed: <code>%s</code>\n├ Downloaded: <code>%s</code> of <code>%s</code>\n└ ETA: <code>%s</code>",
			p.Percent(), p.HumanSpeed(), domain.HumanBytes(p.DownloadedBytes), total, p.HumanETA())
	}

	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		chatID := update.CallbackQuery.Message.Message.Chat.ID
		topicID := update.CallbackQuery.Message.Message.MessageThreadID
		messageID := update.CallbackQuery.Message.Message.ID

		b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
			CallbackQueryID: update.CallbackQuery.ID,
			ShowAlert:       false,
		})

		session, ok := sessions.Get(chatID, topicID)
		if !ok || session.Selected == nil {
			b.EditMessageText(ctx, &bot.EditMessageTextParams{
				ChatID:    chatID,
				MessageID: messageID,
				Text:      "❌ Session expired. Please send the URL again.",
			})
			return
		}

		selected := *session.Selected

		slog.InfoContext(ctx, "Starting download",
			"chatID", chatID,
			"videoID", session.Video.ID,
			"itag", selected.Itag,
			"quality", selected.Quality)

		b.EditMessageText(ctx, &bot.EditMessageTextParams{
			ChatID:    chatID,
			MessageID: messageID,
			Text:      "🚀 Starting download...",
		})

		// The download can run for a long time. It must not hold the update
		// worker, or every other chat freezes until it finishes.
		go runDownload(ctx, b, sessions, downloader, audioExtractor, history, session, selected, messageID, progressText)
	}
}

func runDownload(
	ctx context.Context,
	b *bot.Bot,
	sessions confirmDownloadSessionProvider,
	downloader confirmDownloadDownloader,
	audioExtractor confirmDownloadAudioExtractor,
	history confirmDownloadHistorySaver,
	session *domain.Session,
	selected domain.FormatOption,
	messageID int,
	progressText func(domain.Progress) string,
) {
	chatID := session.ChatID
	topicID := session.TopicID

	record := &domain.Download{
		ChatID:   chatID,
		TopicID:  topicID,
		UserID:   session.UserID,
		VideoID:  session.Video.ID,
		Title:    session.Video.Title,
		Quality:  selected.Quality,
		Itag:     selected.Itag,
		MimeType: selected.MimeType,
		Kind:     selected.Kind,
	}

	t0 := time.Now()
	path, size, err := downloader.Download(ctx, session.URL, selected.Itag, func(p domain.Progress) {
		b.EditMessageText(ctx, &bot.EditMessageTextParams{
			ChatID:    chatID,
			MessageID: messageID,
			Text:      progressText(p),
			ParseMode: models.ParseModeHTML,
		})
	})
	if err != nil {
		failDownload(ctx, b, history, record, chatID, messageID, t0, err,
			"❌ Download failed. Please try again or pick another quality.")
		return
	}
	defer os.Remove(path)

	if selected.Kind == domain.MediaKindAudio {
		b.EditMessageText(ctx, &bot.EditMessageTextParams{
			ChatID:    chatID,
			MessageID: messageID,
			Text:      "🎛 Extracting audio...",
		})

		mp3Path, err := audioExtractor.ExtractMP3(ctx, path)
		if err != nil {
			failDownload(ctx, b, history, record, chatID, messageID, t0, err,
				"❌ Failed to extract audio from this video.")
			return
		}
		defer os.Remove(mp3Path)
		path = mp3Path

		if info, err := os.Stat(mp3Path); err == nil {
			size = info.Size()
		}
	}

	if size > domain.MaxTelegramFileSize {
		failDownload(ctx, b, history, record, chatID, messageID, t0, domain.ErrFileTooLarge,
			fmt.Sprintf("❌ The file is %s, above Telegram's %s upload limit.\nPlease pick a lower quality.",
				domain.HumanBytes(size), domain.HumanBytes(domain.MaxTelegramFileSize)))
		return
	}

	b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:    chatID,
		MessageID: messageID,
		Text:      "📤 Uploading to Telegram...",
	})

	if err := sendMedia(ctx, b, session, selected, path, size); err != nil {
		failDownload(ctx, b, history, record, chatID, messageID, t0, err,
			"❌ Failed to send the file. Please try again.")
		return
	}

	record.SizeBytes = size
	record.Status = domain.DownloadStatusCompleted
	record.Took = time.Since(t0)
	if err := history.Save(ctx, record); err != nil {
		slog.ErrorContext(ctx, "Failed to record download", "error", err)
	}

	sessions.Clear(chatID, topicID)

	b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:    chatID,
		MessageID: messageID,
		Text:      fmt.Sprintf("✅ Done in %s. Enjoy!", time.Since(t0).Truncate(time.Second)),
	})
}

func sendMedia(ctx context.Context, b *bot.Bot, session *domain.Session, selected domain.FormatOption, path string, size int64) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening downloaded file: %w", err)
	}
	defer file.Close()

	caption := fmt.Sprintf("✅ <b>%s</b>\n🔹 Quality: %s\n🔹 Size: %s",
		html.EscapeString(session.Video.Title), selected.Quality, domain.HumanBytes(size))

	if selected.Kind == domain.MediaKindAudio {
		_, err = b.SendAudio(ctx, &bot.SendAudioParams{
			ChatID:          session.ChatID,
			MessageThreadID: session.TopicID,
			Audio: &models.InputFileUpload{
				Filename: filepath.Base(path),
				Data:     file,
			},
			Caption:   caption,
			ParseMode: models.ParseModeHTML,
			Duration:  int(session.Video.Duration.Seconds()),
			Performer: session.Video.Author,
			Title:     session.Video.Title,
		})
		if err != nil {
			return fmt.Errorf("sending audio: %w", err)
		}
		return nil
	}

	_, err = b.SendVideo(ctx, &bot.SendVideoParams{
		ChatID:          session.ChatID,
		MessageThreadID: session.TopicID,
		Video: &models.InputFileUpload{
			Filename: filepath.Base(path),
			Data:     file,
		},
		Caption:           caption,
		ParseMode:         models.ParseModeHTML,
		Duration:          int(session.Video.Duration.Seconds()),
		Width:             selected.Width,
		Height:            selected.Height,
		SupportsStreaming: true,
	})
	if err != nil {
		return fmt.Errorf("sending video: %w", err)
	}
	return nil
}

func failDownload(
	ctx context.Context,
	b *bot.Bot,
	history confirmDownloadHistorySaver,
	record *domain.Download,
	chatID int64,
	messageID int,
	t0 time.Time,
	cause error,
	text string,
) {
	slog.ErrorContext(ctx, "Download failed", "videoID", record.VideoID, "itag", record.Itag, "error", cause)

	record.Status = domain.DownloadStatusFailed
	record.Error = cause.Error()
	record.Took = time.Since(t0)
	if err := history.Save(ctx, record); err != nil && !errors.Is(err, context.Canceled) {
		slog.ErrorContext(ctx, "Failed to record download", "error", err)
	}

	b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:    chatID,
		MessageID: messageID,
		Text:      text,
	})
}
