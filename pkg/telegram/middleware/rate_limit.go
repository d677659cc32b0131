package middleware

import (
	"context"
	"sync"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"golang.org/x/time/rate"
)

type userLimiter struct {
	mu       sync.Mutex
	limiters map[int64]*rate.Limiter
	limit    rate.Limit
	burst    int
}

func newUserLimiter(limit rate.Limit, burst int) *userLimiter {
	return &userLimiter{
		limiters: make(map[int64]*rate.Limiter),
		limit:    limit,
		burst:    burst,
	}
}

func (u *userLimiter) Allow(userID int64) bool {
	u.mu.Lock()
	defer u.mu.Unlock()

	l, ok := u.limiters[userID]
	if !ok {
		l = rate.NewLimiter(u.limit, u.burst)
		u.limiters[userID] = l
	}
	return l.Allow()
}

// RateLimit caps how many messages per minute a single user can have
// processed. Only plain messages count; pressing buttons stays free so a
// user can always finish a flow they started.
func RateLimit(perMinute int) bot.Middleware {
	limiter := newUserLimiter(rate.Limit(float64(perMinute)/60.0), perMinute)

	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			if update.Message == nil || update.Message.From == nil {
				next(ctx, b, update)
				return
			}

			if !limiter.Allow(update.Message.From.ID) {
				b.SendMessage(ctx, &bot.SendMessageParams{
					ChatID:          update.Message.Chat.ID,
					MessageThreadID: update.Message.MessageThreadID,
					Text:            "⏳ Slow down a little — you can start a few downloads per minute. Try again shortly.",
				})
				return
			}

			next(ctx, b, update)
		}
	}
}
