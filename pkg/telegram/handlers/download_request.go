package handlers

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"strconv"
	"time"

	"github.com/clipnova/clipnova-bot/pkg/domain"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/samber/lo"
)

type downloadRequestInspector interface {
	Inspect(ctx context.Context, rawURL string) (domain.VideoInfo, []domain.FormatOption, error)
}

type downloadRequestSessionSaver interface {
	Save(s *domain.Session)
}

// DownloadRequest handles messages carrying a YouTube URL: it fetches the
// metadata, shows the thumbnail, and offers the format keyboard.
func DownloadRequest(inspector downloadRequestInspector, sessions downloadRequestSessionSaver) bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		chatID := update.Message.Chat.ID
		topicID := update.Message.MessageThreadID
		url := update.Message.Text

		slog.InfoContext(ctx, "Processing video URL", "chatID", chatID, "url", url)

		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:          chatID,
			MessageThreadID: topicID,
			Text:            "🔍 Fetching video information...",
		})

		info, formats, err := inspector.Inspect(ctx, url)
		if err != nil {
			text := "❌ Failed to process this video. Please try another URL."
			switch {
			case errors.Is(err, domain.ErrNotFound):
				text = "❌ Invalid YouTube URL. Please try again."
			case errors.Is(err, domain.ErrRestricted):
				text = "❌ This video is private or restricted and cannot be downloaded."
			}
			slog.ErrorContext(ctx, "Failed to inspect video", "url", url, "error", err)
			b.SendMessage(ctx, &bot.SendMessageParams{
				ChatID:          chatID,
				MessageThreadID: topicID,
				Text:            text,
			})
			return
		}

		if len(formats) == 0 {
			b.SendMessage(ctx, &bot.SendMessageParams{
				ChatID:          chatID,
				MessageThreadID: topicID,
				Text:            "❌ No downloadable formats found for this video.",
			})
			return
		}

		var userID int64
		if update.Message.From != nil {
			userID = update.Message.From.ID
		}

		sessions.Save(&domain.Session{
			ChatID:  chatID,
			TopicID: topicID,
			UserID:  userID,
			URL:     url,
			Video:   info,
			Formats: formats,
		})

		if info.ThumbnailURL != "" {
			b.SendPhoto(ctx, &bot.SendPhotoParams{
				ChatID:          chatID,
				MessageThreadID: topicID,
				Photo:           &models.InputFileString{Data: info.ThumbnailURL},
				Caption: fmt.Sprintf("📌 <b>%s</b>\n🕒 Duration: %s",
					html.EscapeString(info.Title), info.Duration.Truncate(time.Second)),
				ParseMode: models.ParseModeHTML,
			})
		}

		buttons := lo.Map(formats, func(f domain.FormatOption, _ int) models.InlineKeyboardButton {
			return models.InlineKeyboardButton{
				Text:         f.Label(),
				CallbackData: domain.SelectFormatCallbackPrefix + strconv.Itoa(f.Itag),
			}
		})

		kb := &models.InlineKeyboardMarkup{
			InlineKeyboard: append(
				lo.Chunk(buttons, 2), // 2 buttons in a row
				[]models.InlineKeyboardButton{{Text: "❌ Cancel", CallbackData: domain.CancelCallback}},
			),
		}

		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:          chatID,
			MessageThreadID: topicID,
			Text:            "📌 Available formats (with approximate sizes):\nPlease select your preferred quality:",
			ReplyMarkup:     kb,
		})
	}
}
