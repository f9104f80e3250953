package jwtx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewSessionClaims(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	c := NewSessionClaims("user-1", "someusername", "Some User", time.Hour, "cine", now)

	require.Equal(t, "user-1", c.Subject)
	require.Equal(t, "cine", c.Issuer)
	require.Equal(t, "someusername", c.Username)
	require.Equal(t, "Some User", c.DisplayName)
	require.NotEmpty(t, c.ID, "jti should be populated")
	require.WithinDuration(t, now.Add(time.Hour), c.ExpiresAt.Time, time.Second)
}

func TestNewJTIUnique(t *testing.T) {
	t.Parallel()

	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		jti := NewJTI()
		_, dup := seen[jti]
		require.False(t, dup, "jti collision")
		seen[jti] = struct{}{}
	}
}

func TestValidateIssuer(t *testing.T) {
	t.Parallel()

	c := NewSessionClaims("u", "someusername", "Some User", time.Hour, "cine", time.Now().UTC())

	require.NoError(t, c.ValidateIssuer("cine"))
	require.NoError(t, c.ValidateIssuer(""), "empty expected issuer enforces nothing")
	require.ErrorIs(t, c.ValidateIssuer("other"), ErrIssuer)
}

func TestValidateExpiry(t *testing.T) {
	t.Parallel()

	t.Run("fresh token passes", func(t *testing.T) {
		c := NewSessionClaims("u", "someusername", "Some User", time.Hour, "cine", time.Now().UTC())
		require.NoError(t, c.ValidateExpiry())
	})

	t.Run("expired token fails", func(t *testing.T) {
		c := NewSessionClaims("u", "someusername", "Some User", time.Minute, "cine", time.Now().UTC().Add(-time.Hour))
		require.ErrorIs(t, c.ValidateExpiry(), ErrExpired)
	})

	t.Run("future token fails", func(t *testing.T) {
		c := NewSessionClaims("u", "someusername", "Some User", time.Hour, "cine", time.Now().UTC().Add(time.Hour))
		require.ErrorIs(t, c.ValidateExpiry(), ErrNotYetValid)
	})
}
