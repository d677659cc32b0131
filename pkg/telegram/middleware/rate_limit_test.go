package middleware

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestUserLimiter_BurstThenBlocked(t *testing.T) {
	limiter := newUserLimiter(rate.Limit(5.0/60.0), 5)

	for i := 0; i < 5; i++ {
		require.True(t, limiter.Allow(1), "request %d should pass", i+1)
	}
	require.False(t, limiter.Allow(1))
}

func TestUserLimiter_UsersAreIndependent(t *testing.T) {
	limiter := newUserLimiter(rate.Limit(1.0/60.0), 1)

	require.True(t, limiter.Allow(1))
	require.False(t, limiter.Allow(1))

	require.True(t, limiter.Allow(2))
}
