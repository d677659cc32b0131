package handlers

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"strconv"
	"strings"

	"github.com/clipnova/clipnova-bot/pkg/domain"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

type SelectFormatSessionProvider interface {
	Get(chatID int64, topicID int) (*domain.Session, bool)
	Save(s *domain.Session)
}

// SelectFormat handles format buttons: it records the choice and asks for
// confirmation before downloading.
func SelectFormat(sessions SelectFormatSessionProvider) bot.HandlerFunc {
	parseItag := func(data string) (int, error) {
		if !strings.HasPrefix(data, domain.SelectFormatCallbackPrefix) {
			return 0, fmt.Errorf("invalid format, expected prefix '%s'", domain.SelectFormatCallbackPrefix)
		}
		return strconv.Atoi(strings.TrimPrefix(data, domain.SelectFormatCallbackPrefix))
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
		if !ok {
			b.EditMessageText(ctx, &bot.EditMessageTextParams{
				ChatID:    chatID,
				MessageID: messageID,
				Text:      "❌ Session expired. Please send the URL again.",
			})
			return
		}

		itag, err := parseItag(update.CallbackQuery.Data)
		if err != nil {
			slog.ErrorContext(ctx, "Failed to parse format callback", "data", update.CallbackQuery.Data, "error", err)
			b.EditMessageText(ctx, &bot.EditMessageTextParams{
				ChatID:    chatID,
				MessageID: messageID,
				Text:      "❌ Invalid selection. Please try again.",
			})
			return
		}

		selected := session.FormatByItag(itag)
		if selected == nil {
			b.EditMessageText(ctx, &bot.EditMessageTextParams{
				ChatID:    chatID,
				MessageID: messageID,
				Text:      "❌ Invalid selection. Please try again.",
			})
			return
		}

		session.Selected = selected
		sessions.Save(session)

		slog.InfoContext(ctx, "Format selected", "chatID", chatID, "itag", itag, "quality", selected.Quality)

		kb := &models.InlineKeyboardMarkup{
			InlineKeyboard: [][]models.InlineKeyboardButton{
				{{Text: "✅ Download Now", CallbackData: domain.ConfirmDownloadCallback}},
				{{Text: "❌ Cancel", CallbackData: domain.CancelCallback}},
			},
		}

		b.EditMessageText(ctx, &bot.EditMessageTextParams{
			ChatID:    chatID,
			MessageID: messageID,
			Text: fmt.Sprintf("📌 <b>%s</b>\n\n🔹 Quality: %s\n🔹 Size: %s\n🔹 Format: %s\n\nWould you like to start the download?",
				html.EscapeString(session.Video.Title),
				selected.Quality,
				selected.HumanSize(),
				strings.ToUpper(selected.Ext)),
			ParseMode:   models.ParseModeHTML,
			ReplyMarkup: kb,
		})
	}
}
