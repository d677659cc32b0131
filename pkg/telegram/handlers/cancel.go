package handlers

import (
	"context"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

type CancelSessionClearer interface {
	Clear(chatID int64, topicID int)
}

// Cancel handles the /cancel command.
func Cancel(clearer CancelSessionClearer) bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		chatID := update.Message.Chat.ID
		topicID := update.Message.MessageThreadID

		slog.InfoContext(ctx, "Cancelling operation", "chatID", chatID)
		clearer.Clear(chatID, topicID)

		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:          chatID,
			MessageThreadID: topicID,
			Text:            "❌ Operation cancelled.",
		})
	}
}
