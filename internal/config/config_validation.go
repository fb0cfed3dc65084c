// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
	"strings"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or an error joining every
// violated rule otherwise.
func (cfg *StructuredConfig) validate() error {
	var errs []error

	if cfg.Storage.DB.DSN == "" {
		errs = append(errs, fmt.Errorf("%w: empty database DSN", ErrInvalidStorageConfigs))
	} else if !isSupportedDSN(cfg.Storage.DB.DSN) {
		errs = append(errs, fmt.Errorf("%w: unsupported DSN scheme", ErrInvalidStorageConfigs))
	}

	if cfg.App.TokenSignKey == "" || cfg.App.TokenIssuer == "" || cfg.App.TokenDuration <= 0 {
		errs = append(errs, fmt.Errorf("%w: token sign key, issuer and duration are required", ErrInvalidAppConfigs))
	}

	if cfg.Server.HTTPAddress == "" && cfg.Server.GRPCAddress == "" {
		errs = append(errs, fmt.Errorf("%w: no listen address", ErrInvalidServerConfigs))
	}
	if cfg.Server.RequestTimeout < 0 {
		errs = append(errs, fmt.Errorf("%w: negative request timeout", ErrInvalidServerConfigs))
	}

	if cfg.Mail.RelayURL != "" && cfg.Mail.From == "" {
		errs = append(errs, fmt.Errorf("%w: sender address is required with a relay", ErrInvalidMailConfigs))
	}

	return errors.Join(errs...)
}

// MailEnabled reports whether outbound email is configured.
func (cfg *StructuredConfig) MailEnabled() bool {
	return cfg.Mail.RelayURL != ""
}

func isSupportedDSN(dsn string) bool {
	for _, prefix := range []string{"postgres://", "postgresql://", "sqlite://"} {
		if strings.HasPrefix(dsn, prefix) {
			return true
		}
	}
	return false
}
