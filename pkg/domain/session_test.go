package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSession_FormatByItag(t *testing.T) {
	session := &Session{
		Formats: []FormatOption{
			{Itag: 22, Quality: "720p"},
			{Itag: 18, Quality: "360p"},
			{Itag: 140, Kind: MediaKindAudio},
		},
	}

	got := session.FormatByItag(18)
	require.NotNil(t, got)
	require.Equal(t, "360p", got.Quality)

	require.Nil(t, session.FormatByItag(999))
}

func TestSession_Expired(t *testing.T) {
	session := &Session{LastUpdate: time.Now()}
	require.False(t, session.Expired(time.Minute))

	session.LastUpdate = time.Now().Add(-2 * time.Minute)
	require.True(t, session.Expired(time.Minute))
}
