package config

import (
	"fmt"
	"strings"

	"liquidgov/crypto"
)

// MaxDelegationDepth bounds the configured chain length.
const MaxDelegationDepth = uint32(1 << 16)

var logLevels = map[string]struct{}{
	"debug": {}, "info": {}, "warn": {}, "warning": {}, "error": {},
}

// Validate checks the configuration for values the runtime cannot honour.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("config must not be nil")
	}
	if _, err := crypto.HasherByName(c.Governance.Hasher); err != nil {
		return fmt.Errorf("governance: %w", err)
	}
	if c.Governance.DelegationDepth == 0 || c.Governance.DelegationDepth > MaxDelegationDepth {
		return fmt.Errorf("governance: delegation depth must be in [1, %d]", MaxDelegationDepth)
	}
	if _, ok := logLevels[strings.ToLower(strings.TrimSpace(c.Logging.Level))]; !ok {
		return fmt.Errorf("logging: unknown level %q", c.Logging.Level)
	}
	if c.Logging.MaxSizeMB < 0 || c.Logging.MaxBackups < 0 {
		return fmt.Errorf("logging: rotation limits must not be negative")
	}
	if c.Telemetry.Enabled() {
		if strings.TrimSpace(c.Logging.Service) == "" {
			return fmt.Errorf("telemetry: logging.Service is required as the service name")
		}
		if strings.TrimSpace(c.Telemetry.Endpoint) == "" {
			return fmt.Errorf("telemetry: endpoint must be provided")
		}
	}
	return nil
}
