package matchers

import (
	"regexp"

	"github.com/go-telegram/bot/models"
)

var youtubeURLRe = regexp.MustCompile(`(?:youtube\.com/(?:watch\?|shorts/|live/)|youtu\.be/)`)

// IsYouTubeURL matches text messages that carry a YouTube video link.
func IsYouTubeURL() func(update *models.Update) bool {
	return func(update *models.Update) bool {
		if update.Message == nil {
			return false
		}
		return youtubeURLRe.MatchString(update.Message.Text)
	}
}
