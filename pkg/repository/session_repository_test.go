package repository

import (
	"testing"
	"time"

	"github.com/clipnova/clipnova-bot/pkg/domain"
	"github.com/stretchr/testify/require"
)

func TestSessionRepository_SaveAndGet(t *testing.T) {
	repo := NewSessionRepository(time.Minute)

	_, ok := repo.Get(1, 0)
	require.False(t, ok)

	repo.Save(&domain.Session{ChatID: 1, TopicID: 0, URL: "https://youtu.be/abc"})

	got, ok := repo.Get(1, 0)
	require.True(t, ok)
	require.Equal(t, "https://youtu.be/abc", got.URL)
	require.WithinDuration(t, time.Now(), got.LastUpdate, time.Second)
}

func TestSessionRepository_TopicsAreIsolated(t *testing.T) {
	repo := NewSessionRepository(time.Minute)

	repo.Save(&domain.Session{ChatID: 1, TopicID: 10, URL: "first"})
	repo.Save(&domain.Session{ChatID: 1, TopicID: 20, URL: "second"})

	got, ok := repo.Get(1, 10)
	require.True(t, ok)
	require.Equal(t, "first", got.URL)

	got, ok = repo.Get(1, 20)
	require.True(t, ok)
	require.Equal(t, "second", got.URL)
}

func TestSessionRepository_SaveReplacesSession(t *testing.T) {
	repo := NewSessionRepository(time.Minute)

	repo.Save(&domain.Session{ChatID: 1, URL: "old"})
	repo.Save(&domain.Session{ChatID: 1, URL: "new"})

	got, ok := repo.Get(1, 0)
	require.True(t, ok)
	require.Equal(t, "new", got.URL)
}

func TestSessionRepository_GetReturnsCopy(t *testing.T) {
	repo := NewSessionRepository(time.Minute)

	repo.Save(&domain.Session{ChatID: 1, Formats: []domain.FormatOption{{Itag: 22, Quality: "720p"}}})

	first, ok := repo.Get(1, 0)
	require.True(t, ok)
	second, ok := repo.Get(1, 0)
	require.True(t, ok)
	require.NotSame(t, first, second)

	// mutating one caller's copy must not leak into the stored session
	first.Selected = first.FormatByItag(22)

	third, ok := repo.Get(1, 0)
	require.True(t, ok)
	require.Nil(t, third.Selected)
}

func TestSessionRepository_Clear(t *testing.T) {
	repo := NewSessionRepository(time.Minute)

	repo.Save(&domain.Session{ChatID: 1})
	repo.Clear(1, 0)

	_, ok := repo.Get(1, 0)
	require.False(t, ok)
}

func TestSessionRepository_Expiry(t *testing.T) {
	repo := NewSessionRepository(10 * time.Millisecond)

	repo.Save(&domain.Session{ChatID: 1})
	repo.Save(&domain.Session{ChatID: 2})

	time.Sleep(20 * time.Millisecond)

	_, ok := repo.Get(1, 0)
	require.False(t, ok)

	require.Equal(t, 2, repo.PurgeExpired())
	require.Equal(t, 0, repo.PurgeExpired())
}
