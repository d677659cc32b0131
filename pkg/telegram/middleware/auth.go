package middleware

import (
	"context"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/samber/lo"
)

// Auth restricts the bot to an allowlist of user IDs. An empty allowlist
// leaves the bot open to everyone.
func Auth(authorizedUserIDs []int64) bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			if len(authorizedUserIDs) == 0 {
				next(ctx, b, update)
				return
			}

			userID, chatID, topicID := updateSender(update)
			if userID == 0 {
				return
			}

			if !lo.Contains(authorizedUserIDs, userID) {
				slog.WarnContext(ctx, "Unauthorized access attempt", "userID", userID)
				b.SendMessage(ctx, &bot.SendMessageParams{
					ChatID:          chatID,
					MessageThreadID: topicID,
					Text:            "🚫 You are not authorized to use this bot.",
				})
				return
			}

			next(ctx, b, update)
		}
	}
}

func updateSender(update *models.Update) (userID, chatID int64, topicID int) {
	switch {
	case update.Message != nil:
		if update.Message.From != nil {
			userID = update.Message.From.ID
		}
		return userID, update.Message.Chat.ID, update.Message.MessageThreadID
	case update.CallbackQuery != nil:
		msg := update.CallbackQuery.Message.Message
		if msg == nil {
			return update.CallbackQuery.From.ID, 0, 0
		}
		return update.CallbackQuery.From.ID, msg.Chat.ID, msg.MessageThreadID
	}
	return 0, 0, 0
}
