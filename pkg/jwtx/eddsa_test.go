package jwtx

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testIssuer = "cine-test"

func newTestKeyManager(t *testing.T) *KeyManager {
	t.Helper()

	km, err := NewEphemeralKeyManager(KeyManagerOptions{Issuer: testIssuer})
	require.NoError(t, err)
	require.True(t, km.IsReady())
	return km
}

func TestSignVerifyRoundTrip(t *testing.T) {
	km := newTestKeyManager(t)

	claims := NewSessionClaims(
		"user-123", "validuser", "Valid Name",
		time.Minute, testIssuer, time.Now().UTC(),
	)

	token, err := km.GetSigner().Sign(claims)
	require.NoError(t, err)
	require.Len(t, strings.Split(token, "."), 3, "compact JWS form")

	got, err := km.Verifier.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user-123", got.Subject)
	require.Equal(t, "validuser", got.Username)
	require.Equal(t, "Valid Name", got.DisplayName)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	km := newTestKeyManager(t)

	// Issued in the past so the expiry is already behind us.
	issued := time.Now().UTC().Add(-2 * time.Hour)
	claims := NewSessionClaims("user-123", "validuser", "Valid Name", time.Hour, testIssuer, issued)

	token, err := km.GetSigner().Sign(claims)
	require.NoError(t, err)

	_, err = km.Verifier.Verify(token)
	require.ErrorIs(t, err, ErrExpired)
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	km := newTestKeyManager(t)

	claims := NewSessionClaims("user-123", "validuser", "Valid Name", time.Minute, testIssuer, time.Now().UTC())
	token, err := km.GetSigner().Sign(claims)
	require.NoError(t, err)

	// Flip a character in the payload segment; the signature must no
	// longer verify.
	parts := strings.Split(token, ".")
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	_, err = km.Verifier.Verify(tampered)
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrExpired)
}

func TestVerifyRejectsMalformedToken(t *testing.T) {
	km := newTestKeyManager(t)

	for _, bad := range []string{"", "garbage", "a.b", "a.b.c.d"} {
		_, err := km.Verifier.Verify(bad)
		require.ErrorIs(t, err, ErrMalformed, "input %q", bad)
	}
}

func TestVerifyRejectsForeignKey(t *testing.T) {
	km := newTestKeyManager(t)
	other := newTestKeyManager(t)

	claims := NewSessionClaims("user-123", "validuser", "Valid Name", time.Minute, testIssuer, time.Now().UTC())
	token, err := other.GetSigner().Sign(claims)
	require.NoError(t, err)

	// Signed with a key this verifier has never seen.
	_, err = km.Verifier.Verify(token)
	require.ErrorIs(t, err, ErrUnknownKID)
}

func TestVerifyRejectsIssuerMismatch(t *testing.T) {
	km := newTestKeyManager(t)

	claims := NewSessionClaims("user-123", "validuser", "Valid Name", time.Minute, "someone-else", time.Now().UTC())
	token, err := km.GetSigner().Sign(claims)
	require.NoError(t, err)

	_, err = km.Verifier.Verify(token)
	require.ErrorIs(t, err, ErrIssuer)
}
