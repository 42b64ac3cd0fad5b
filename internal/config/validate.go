package config

import (
	"errors"
	"fmt"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Dataset.validate(); err != nil {
		return fmt.Errorf("dataset: %w", err)
	}

	if c.Seeder.BatchSize <= 0 {
		return fmt.Errorf("seeder: batch_size must be > 0 (got %d)", c.Seeder.BatchSize)
	}
	if c.Seeder.Timeout <= 0 {
		return fmt.Errorf("seeder: timeout must be > 0 (got %v)", c.Seeder.Timeout)
	}

	if c.Database.MaxConns < 1 {
		return fmt.Errorf("database: max_conns must be >= 1 (got %d)", c.Database.MaxConns)
	}
	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("database: min_conns (%d) must not exceed max_conns (%d)", c.Database.MinConns, c.Database.MaxConns)
	}

	return nil
}

// RequireDatabase reports an error when no database DSN is configured.
// Commands that only read the source files do not call it.
func (c *Config) RequireDatabase() error {
	if c.Database.DSN == "" {
		return errors.New("database.dsn is required (set DATABASE_DSN)")
	}
	return nil
}

func (d *DatasetConfig) validate() error {
	if d.IDSPath == "" {
		return errors.New("ids_path is required")
	}
	if d.RadicalsPath == "" {
		return errors.New("radicals_path is required")
	}
	if d.ReadingsPath == "" {
		return errors.New("readings_path is required")
	}
	if d.CommentMarker == "" {
		return errors.New("comment_marker must not be empty")
	}
	if d.Workers < 1 {
		return fmt.Errorf("workers must be >= 1 (got %d)", d.Workers)
	}
	if !IsToneErrorPolicy(d.OnToneError) {
		return fmt.Errorf("on_tone_error must be one of %v (got %q)", toneErrorPolicies, d.OnToneError)
	}
	return nil
}
