package config

import (
	"errors"
	"fmt"
)

// ValidateConfig checks that the configuration is usable before the server
// starts. The JWT secret is the only setting with no safe default.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}
	if cfg.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if cfg.ServerPort == "" {
		return errors.New("server port must not be empty")
	}
	if cfg.DBHost == "" || cfg.DBPort == "" || cfg.DBName == "" {
		return fmt.Errorf("incomplete database configuration: host=%q port=%q name=%q",
			cfg.DBHost, cfg.DBPort, cfg.DBName)
	}
	return nil
}
