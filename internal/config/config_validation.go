// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// A custodian address given without an auth token or a data-key name cannot
// produce a working Transit client, so the combination is rejected here
// rather than at the first failing request.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Custodian.Address != "" {
		if cfg.Custodian.Token == "" || cfg.Custodian.DataKeyID == "" {
			return ErrInvalidCustodianConfigs
		}
	}

	if cfg.App.TokenDuration < 0 {
		return ErrInvalidAppConfigs
	}

	return nil
}
