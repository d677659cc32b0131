package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Unknown is the default handler for anything that is not a command or a
// YouTube link.
func Unknown() bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		if update.Message == nil {
			return
		}
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:          update.Message.Chat.ID,
			MessageThreadID: update.Message.MessageThreadID,
			Text:            "🤔 Send me a YouTube link (youtube.com or youtu.be) and I'll download it for you. See /help.",
		})
	}
}
