package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidCustodianConfigs indicates invalid key custodian settings
	// (for example, an address without a token or a data-key name).
	ErrInvalidCustodianConfigs = errors.New("invalid custodian configuration")
	// ErrInvalidAppConfigs indicates invalid application-level settings
	// (for example, a negative token duration).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
)
