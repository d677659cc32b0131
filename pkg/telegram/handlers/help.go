package handlers

import (
	"context"

	"github.com/clipnova/clipnova-bot/pkg/render"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

const helpMessage = `🛠️ **ClipNova Bot Help** 🛠️

**Available Commands**:

- /start - Show welcome message
- /help - Display this help message
- /cancel - Cancel current operation
- /history - Show your recent downloads

**How to Use**:

1. Send a YouTube URL
2. Choose your preferred format
3. Wait for download to complete`

func Help() bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:          update.Message.Chat.ID,
			MessageThreadID: update.Message.MessageThreadID,
			Text:            render.ToHTML(helpMessage),
			ParseMode:       models.ParseModeHTML,
		})
	}
}
