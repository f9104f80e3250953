package cryptox

import (
	"crypto/rand"
	"encoding/base64"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// Configuration for Argon2id hashing.
const (
	memory      = 19 * 1024 // Memory usage in KiB (19 MiB)
	iterations  = 2         // Iteration count
	parallelism = 1         // Number of threads
	keyLength   = 32        // Length of the generated hash
	saltLength  = 16        // Length of the salt
)

// pepperState guards the pepper path and its lazily loaded value so
// concurrent hashing during startup cannot race the load.
var pepperState struct {
	sync.Mutex
	path  string
	value string
}

// SetPepperPath points the hasher at the pepper file. Call before the
// first hash; changing the path afterwards forces a reload.
func SetPepperPath(file string) {
	pepperState.Lock()
	defer pepperState.Unlock()
	pepperState.path = file
	pepperState.value = ""
}

// GetPepper returns the pepper, loading or generating it on first use.
// A service that cannot read or create its pepper cannot verify any
// password, so failure here is fatal.
func GetPepper() string {
	pepperState.Lock()
	defer pepperState.Unlock()

	if pepperState.value != "" {
		return pepperState.value
	}

	value, err := loadOrGeneratePepper(pepperState.path)
	if err != nil {
		slog.Error("failed to load or generate pepper", slog.Any("err", err))
		os.Exit(1)
	}
	pepperState.value = value

	return value
}

// loadOrGeneratePepper reads the pepper file, creating it with fresh
// random bytes when it does not exist yet.
func loadOrGeneratePepper(path string) (string, error) {
	path = filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return "", err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		raw := make([]byte, keyLength)
		if _, err := rand.Read(raw); err != nil {
			return "", err
		}
		generated := base64.RawURLEncoding.EncodeToString(raw)

		if err := os.WriteFile(path, []byte(generated), 0600); err != nil {
			return "", err
		}
		return generated, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	return string(raw), nil
}
