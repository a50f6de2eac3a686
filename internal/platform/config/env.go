// Package config holds the small shared pieces of CLI configuration:
// env-tag parsing for NOIR_-prefixed variables and the fatal-exit helper
// the entry points share.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// ParseEnv fills target from its env tags.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
