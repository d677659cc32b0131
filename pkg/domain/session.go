package domain

import "time"

const DefaultSessionTTL = 30 * time.Minute

// Session holds the state of one download conversation: the URL the user
// sent, the formats offered, and the selection made so far. A chat/topic has
// at most one session; a new URL replaces it.
type Session struct {
	ChatID     int64
	TopicID    int
	UserID     int64
	URL        string
	Video      VideoInfo
	Formats    []FormatOption
	Selected   *FormatOption
	LastUpdate time.Time
}

func (s *Session) FormatByItag(itag int) *FormatOption {
	for i := range s.Formats {
		if s.Formats[i].Itag == itag {
			return &s.Formats[i]
		}
	}
	return nil
}

func (s *Session) Expired(ttl time.Duration) bool {
	return time.Since(s.LastUpdate) > ttl
}
