package hub

import (
	"github.com/portside/httpmeta/config"
	"github.com/portside/httpmeta/hub/executor"
	"github.com/portside/httpmeta/hub/route"
)

type Option func(*config.Config)

func WithExternalController(externalController string) Option {
	return func(cfg *config.Config) {
		cfg.General.ExternalController = externalController
	}
}

func WithSecret(secret string) Option {
	return func(cfg *config.Config) {
		cfg.General.Secret = secret
	}
}

// Parse call at the beginning of httpmeta
func Parse(configFile string, options ...Option) error {
	cfg, err := executor.ParseWithPath(configFile)
	if err != nil {
		return err
	}

	for _, option := range options {
		option(cfg)
	}

	if cfg.General.ExternalController != "" {
		go route.Start(cfg.General.ExternalController, cfg.General.Secret)
	}

	executor.ApplyConfig(cfg)
	return nil
}
