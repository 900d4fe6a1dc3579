package providers

import (
	"github.com/samber/do/v2"

	"github.com/launchdeckapp/launchdeck-server/internal/auth"
	"github.com/launchdeckapp/launchdeck-server/internal/config"
	"github.com/launchdeckapp/launchdeck-server/internal/logger"
)

// ProvideTokenService provides the PASETO token service. The signing key is
// loaded from the data directory, or generated on first run.
func ProvideTokenService(i do.Injector) (*auth.TokenService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	keyHex, err := auth.LoadOrGenerateKey(cfg.Storage.DataPath)
	if err != nil {
		return nil, err
	}

	log.Info("Auth key ready", "token_duration", cfg.Auth.AccessTokenDuration)

	return auth.NewTokenService(keyHex, cfg.Auth.AccessTokenDuration)
}
