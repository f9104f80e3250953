package app

import (
	"log/slog"

	"github.com/OlleroRaul/proyecto-final-cine/pkg/jwtx"
)

// InitSessionKeys creates the KeyManager for session tokens. Keys are
// ephemeral: generated on startup and held in memory only, so every
// outstanding session is invalidated when the service restarts.
func InitSessionKeys(cfg Config, logger *slog.Logger) (*jwtx.KeyManager, error) {
	keyManager, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{
		Issuer:  cfg.Issuer,
		NumKeys: cfg.NumKeys,
	})
	if err != nil {
		return nil, err
	}

	logger.Info("generated ephemeral signing keys",
		"num_keys", keyManager.NumSigners(),
		"issuer", cfg.Issuer,
	)
	logger.Warn("all existing tokens are now invalid due to key rotation on startup")

	return keyManager, nil
}
