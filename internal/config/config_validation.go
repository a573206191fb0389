// SPDX-License-Identifier: Apache-2.0

package config

import "time"

const (
	defaultHTTPAddress          = ":8080"
	defaultTokenIssuer          = "feiyue"
	defaultSessionTokenDuration = 14 * 24 * time.Hour
	defaultClaimTokenDuration   = 24 * time.Hour
	defaultRequestTimeout       = 30 * time.Second
)

// applyDefaults fills zero-valued fields that have sensible defaults.
// Secrets have no defaults; their absence fails validation instead.
func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = defaultHTTPAddress
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = defaultRequestTimeout
	}
	if cfg.Auth.TokenIssuer == "" {
		cfg.Auth.TokenIssuer = defaultTokenIssuer
	}
	if cfg.Auth.SessionTokenDuration == 0 {
		cfg.Auth.SessionTokenDuration = defaultSessionTokenDuration
	}
	if cfg.Auth.ClaimTokenDuration == 0 {
		cfg.Auth.ClaimTokenDuration = defaultClaimTokenDuration
	}
}

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.Auth.TokenSignKey == "" {
		return ErrInvalidAuthConfigs
	}

	if cfg.Vault.EncryptionKey == "" || cfg.Vault.DigestKey == "" {
		return ErrInvalidVaultConfigs
	}

	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	return nil
}
