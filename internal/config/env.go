// Package config loads the forge's runtime settings from the environment and
// its balance policies from YAML.
package config

import (
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/KirkDiggler/rpg-progression/internal/errors"
	"github.com/KirkDiggler/rpg-progression/internal/logger"
)

// EnvPrefix prefixes every variable the forge reads
const EnvPrefix = "FORGE_"

// Config is the runtime configuration
type Config struct {
	Redis RedisConfig   `envPrefix:"REDIS_"`
	Cache CacheConfig   `envPrefix:"CACHE_"`
	Log   logger.Config `envPrefix:"LOG_"`

	// PoliciesFile points at a YAML balance file; empty uses the built in policies
	PoliciesFile string `env:"POLICIES_FILE"`
	// Seed makes item rolls reproducible when non zero
	Seed uint64 `env:"SEED"`
	// MaxGrantXP caps the xp of one enhancement
	MaxGrantXP uint64 `env:"MAX_GRANT_XP" envDefault:"100000000"`
}

// RedisConfig configures the item store
type RedisConfig struct {
	Addr     string `env:"ADDR" envDefault:"localhost:6379"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB"`
	PoolSize int    `env:"POOL_SIZE" envDefault:"10"`
	UseTLS   bool   `env:"TLS"`
}

// CacheConfig configures the item read cache. A zero size disables it.
type CacheConfig struct {
	Size int           `env:"SIZE" envDefault:"1024"`
	TTL  time.Duration `env:"TTL" envDefault:"5m"`
}

// Validate validates the config
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRequired("redis.addr", c.Redis.Addr, vb)
	errors.ValidateNonNegative("redis.db", int64(c.Redis.DB), vb)
	errors.ValidateNonNegative("redis.pool_size", int64(c.Redis.PoolSize), vb)
	errors.ValidateNonNegative("cache.size", int64(c.Cache.Size), vb)
	if c.MaxGrantXP == 0 {
		vb.Field("max_grant_xp", "must be positive")
	}
	if c.Cache.TTL < 0 {
		vb.Fieldf("cache.ttl", "must not be negative, got %s", c.Cache.TTL)
	}
	if err := vb.Build(); err != nil {
		return err
	}

	if err := c.Log.Validate(); err != nil {
		return errors.Wrap(err, "invalid log config")
	}
	return nil
}

// LoadDotEnv loads variables from the given files, or .env when none are
// given. Missing files are ignored; variables already set win.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return errors.Wrapf(err, "failed to load %s", f)
		}
	}
	return nil
}

// Load reads FORGE_ prefixed variables into a validated Config
func Load() (*Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse environment")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
