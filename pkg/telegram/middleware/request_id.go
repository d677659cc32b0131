package middleware

import (
	"context"

	"github.com/clipnova/clipnova-bot/pkg/logger"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
)

// RequestID tags every update with a correlation id that the log handler
// attaches to each record.
func RequestID(next bot.HandlerFunc) bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		next(logger.WithRequestID(ctx, uuid.NewString()), b, update)
	}
}
