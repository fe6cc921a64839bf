package config

import "time"

const (
	defaultTokenIssuer   = "tasktrack"
	defaultTokenDuration = 30 * time.Minute
	defaultHTTPAddress   = "localhost:8080"
	defaultAvatarDir     = "./avatars"
)

// applyDefaults fills in safe defaults for fields that may legitimately be
// omitted. Secrets and the database DSN have no defaults — they must be
// supplied explicitly and are checked by [StructuredConfig.validate].
func (cfg *StructuredConfig) applyDefaults() {
	if cfg.App.TokenIssuer == "" {
		cfg.App.TokenIssuer = defaultTokenIssuer
	}
	if cfg.App.TokenDuration == 0 {
		cfg.App.TokenDuration = defaultTokenDuration
	}
	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = defaultHTTPAddress
	}
	if cfg.Storage.Files.AvatarDir == "" {
		cfg.Storage.Files.AvatarDir = defaultAvatarDir
	}
}

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.TokenSignKey == "" {
		return ErrInvalidAppConfigs
	}

	if cfg.App.TokenDuration <= 0 {
		return ErrInvalidAppConfigs
	}

	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	return nil
}
