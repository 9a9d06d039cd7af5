package app

import (
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/tripplan/pkg/cryptox"
	"github.com/aussiebroadwan/tripplan/pkg/jwtx"
)

// InitSessionKeys loads the session signing key.
//
// With a SigningKeyFile the key is sealed with the master key and reused
// across restarts, so issued sessions stay valid for their full 30 days.
// Without one the key lives in memory and every restart signs everyone out.
func InitSessionKeys(cfg Config, logger *slog.Logger) (*jwtx.KeyManager, error) {
	if cfg.MasterKeyPath != "" {
		cryptox.SetMasterKeyPath(cfg.MasterKeyPath)
		logger.Info("master key path configured", "path", cfg.MasterKeyPath)
	}

	if cfg.SigningKeyFile == "" {
		logger.Warn("no signing key file configured, sessions will not survive a restart")
	}

	km, err := jwtx.NewKeyManager(jwtx.KeyManagerOptions{
		Issuer:  cfg.Issuer,
		KeyFile: cfg.SigningKeyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session keys: %w", err)
	}

	logger.Info("session signing key ready",
		"issuer", cfg.Issuer,
		"persistent", cfg.SigningKeyFile != "",
		"ttl", cfg.SessionTTL,
	)
	return km, nil
}
