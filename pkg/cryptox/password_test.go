package cryptox

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	pepperPath := filepath.Join(os.TempDir(), "cine-test-pepper")
	SetPepperPath(pepperPath)

	os.Remove(pepperPath)
	defer os.Remove(pepperPath)

	os.Exit(m.Run())
}

func TestHashPasswordProducesPHCFormat(t *testing.T) {
	for _, password := range []string{
		"password1",
		"P@ssw0rd!#$%^&*()",
		strings.Repeat("a", 100),
	} {
		hash, err := HashPassword(password)
		require.NoError(t, err)

		require.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"))
		require.NotContains(t, hash, password, "hash must not embed the plaintext")

		parts := strings.Split(hash, "$")
		require.Len(t, parts, 6)
		require.NotEmpty(t, parts[4], "salt")
		require.NotEmpty(t, parts[5], "digest")
	}
}

func TestHashPasswordSaltsEachCall(t *testing.T) {
	first, err := HashPassword("password1")
	require.NoError(t, err)
	second, err := HashPassword("password1")
	require.NoError(t, err)

	require.NotEqual(t, first, second, "same password must hash differently per call")
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)

	t.Run("accepts matching password", func(t *testing.T) {
		require.NoError(t, VerifyPassword("correct horse battery staple", hash))
	})

	t.Run("rejects wrong password", func(t *testing.T) {
		err := VerifyPassword("wrongpass", hash)
		require.ErrorIs(t, err, ErrPasswordMismatch)
	})

	t.Run("rejects malformed hash", func(t *testing.T) {
		require.Error(t, VerifyPassword("anything", "not-a-phc-hash"))
		require.Error(t, VerifyPassword("anything", "$bcrypt$v=19$m=1,t=1,p=1$c2FsdA$aGFzaA"))
	})
}
