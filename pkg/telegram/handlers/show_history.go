package handlers

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/clipnova/clipnova-bot/pkg/domain"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

const historyLimit = 10

type showHistoryProvider interface {
	ListRecent(ctx context.Context, chatID int64, topicID, limit int) ([]domain.Download, error)
}

// ShowHistory handles /history: the last few downloads recorded for the chat.
func ShowHistory(provider showHistoryProvider) bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		chatID := update.Message.Chat.ID
		topicID := update.Message.MessageThreadID

		downloads, err := provider.ListRecent(ctx, chatID, topicID, historyLimit)
		if err != nil {
			b.SendMessage(ctx, &bot.SendMessageParams{
				ChatID:          chatID,
				MessageThreadID: topicID,
				Text:            fmt.Sprintf("❌ Failed to load history: %s", err),
			})
			return
		}

		if len(downloads) == 0 {
			b.SendMessage(ctx, &bot.SendMessageParams{
				ChatID:          chatID,
				MessageThreadID: topicID,
				Text:            "📭 No downloads yet. Send me a YouTube link!",
			})
			return
		}

		var sb strings.Builder
		sb.WriteString("📜 <b>Recent downloads</b>\n\n")
		for _, d := range downloads {
			icon := "✅"
			if d.Status == domain.DownloadStatusFailed {
				icon = "❌"
			}
			sb.WriteString(fmt.Sprintf("%s <b>%s</b> — %s", icon, html.EscapeString(d.Title), d.Quality))
			if d.SizeBytes > 0 {
				sb.WriteString(", " + domain.HumanBytes(d.SizeBytes))
			}
			sb.WriteString(fmt.Sprintf(" (%s)\n", d.CreatedAt.Format("2006-01-02 15:04")))
		}

		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:          chatID,
			MessageThreadID: topicID,
			Text:            sb.String(),
			ParseMode:       models.ParseModeHTML,
		})
	}
}
