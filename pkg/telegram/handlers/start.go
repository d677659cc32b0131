package handlers

import (
	"context"
	"log/slog"

	"github.com/clipnova/clipnova-bot/pkg/render"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

const startMessage = `🎬 **Welcome to ClipNova Bot** 🎬

The most advanced YouTube downloader on Telegram!

✨ **Features**:

- Download videos in multiple resolutions
- Real-time progress with speed and ETA
- File size information before download
- Audio-only downloads as MP3

Send me a YouTube link to get started!`

func Start() bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		user := update.Message.From
		if user != nil {
			slog.InfoContext(ctx, "User started the bot", "userID", user.ID, "username", user.Username)
		}

		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:          update.Message.Chat.ID,
			MessageThreadID: update.Message.MessageThreadID,
			Text:            render.ToHTML(startMessage),
			ParseMode:       models.ParseModeHTML,
		})
	}
}
