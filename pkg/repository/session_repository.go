package repository

import (
	"fmt"
	"sync"
	"time"

	"github.com/clipnova/clipnova-bot/pkg/domain"
)

// sessionRepository keeps download sessions in memory. Sessions are transient
// conversation state and do not survive a restart.
type sessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]*domain.Session
	ttl      time.Duration
}

func NewSessionRepository(ttl time.Duration) *sessionRepository {
	if ttl <= 0 {
		ttl = domain.DefaultSessionTTL
	}
	return &sessionRepository{
		sessions: make(map[string]*domain.Session),
		ttl:      ttl,
	}
}

func sessionKey(chatID int64, topicID int) string {
	return fmt.Sprintf("%d:%d", chatID, topicID)
}

// Get returns a copy of the session so concurrently running handlers never
// share mutable state. Changes are published back with Save.
func (r *sessionRepository) Get(chatID int64, topicID int) (*domain.Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[sessionKey(chatID, topicID)]
	if !ok || s.Expired(r.ttl) {
		return nil, false
	}
	session := *s
	return &session, true
}

func (r *sessionRepository) Save(s *domain.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s.LastUpdate = time.Now()
	r.sessions[sessionKey(s.ChatID, s.TopicID)] = s
}

func (r *sessionRepository) Clear(chatID int64, topicID int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, sessionKey(chatID, topicID))
}

// PurgeExpired drops sessions past their TTL and reports how many were
// removed.
func (r *sessionRepository) PurgeExpired() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	purged := 0
	for key, s := range r.sessions {
		if s.Expired(r.ttl) {
			delete(r.sessions, key)
			purged++
		}
	}
	return purged
}
