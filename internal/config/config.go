package config

import (
	"slices"
	"time"
)

// Tone error policies for DatasetConfig.OnToneError.
const (
	ToneErrorAbort = "abort"
	ToneErrorSkip  = "skip"
)

var toneErrorPolicies = []string{ToneErrorAbort, ToneErrorSkip}

// Config is the root application configuration.
type Config struct {
	Dataset  DatasetConfig  `yaml:"dataset"`
	Database DatabaseConfig `yaml:"database"`
	Seeder   SeederConfig   `yaml:"seeder"`
	Log      LogConfig      `yaml:"log"`
}

// DatasetConfig locates the three source files and controls enrichment.
type DatasetConfig struct {
	IDSPath       string `yaml:"ids_path"       env:"DATASET_IDS_PATH"`
	RadicalsPath  string `yaml:"radicals_path"  env:"DATASET_RADICALS_PATH"`
	ReadingsPath  string `yaml:"readings_path"  env:"DATASET_READINGS_PATH"`
	CommentMarker string `yaml:"comment_marker" env:"DATASET_COMMENT_MARKER" env-default:"#"`
	Workers       int    `yaml:"workers"        env:"DATASET_WORKERS"        env-default:"1"`
	OnToneError   string `yaml:"on_tone_error"  env:"DATASET_ON_TONE_ERROR"  env-default:"abort"`
}

// SkipToneErrors reports whether unparseable readings are dropped instead of
// aborting the load.
func (c DatasetConfig) SkipToneErrors() bool {
	return c.OnToneError == ToneErrorSkip
}

// DatabaseConfig holds PostgreSQL connection settings.
// The DSN is only required by commands that touch the database. Defaults
// suit a short-lived CLI: seed writes through a single transaction and query
// issues two statements, so the pool stays small and keeps no idle floor.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	ApplicationName string        `yaml:"application_name"   env:"DATABASE_APPLICATION_NAME"   env-default:"idsload"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"4"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"0"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"30m"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"1m"`
}

// SeederConfig holds settings of the persist pipeline.
type SeederConfig struct {
	BatchSize int           `yaml:"batch_size" env:"SEEDER_BATCH_SIZE" env-default:"500"`
	DryRun    bool          `yaml:"dry_run"    env:"SEEDER_DRY_RUN"`
	Timeout   time.Duration `yaml:"timeout"    env:"SEEDER_TIMEOUT"    env-default:"30m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// IsToneErrorPolicy reports whether s is a known tone error policy.
func IsToneErrorPolicy(s string) bool {
	return slices.Contains(toneErrorPolicies, s)
}
