package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vancomm/minesweeper/internal/mines"
)

const (
	ModeDevelopment = "development"
	ModeProduction  = "production"

	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
)

type Config struct {
	Mode     string      `yaml:"mode"`
	Addr     string      `yaml:"addr"`
	Game     GameConfig  `yaml:"game"`
	Log      LogConfig   `yaml:"log"`
	Store    StoreConfig `yaml:"store"`
	Postgres Database    `yaml:"postgres"`
	Redis    Redis       `yaml:"redis"`
	JWT      JWTConfig   `yaml:"jwt"`
}

type GameConfig struct {
	DimSize    int    `yaml:"dim_size"`
	NumBombs   int    `yaml:"num_bombs"`
	Seed       uint64 `yaml:"seed"` // 0 picks a random seed
	MaxDimSize int    `yaml:"max_dim_size"`
}

func (g GameConfig) Params() mines.Params {
	return mines.Params{DimSize: g.DimSize, NumBombs: g.NumBombs}
}

// CheckDimSize rejects boards wider than MaxDimSize. Board memory grows
// with the square of the side length.
func (g GameConfig) CheckDimSize(dimSize int) error {
	if dimSize > g.MaxDimSize {
		return fmt.Errorf(
			"%w: dim_size must be at most %d, got %d",
			mines.ErrInvalidConfiguration, g.MaxDimSize, dimSize,
		)
	}
	return nil
}

type StoreConfig struct {
	Driver     string   `yaml:"driver"`
	SessionTTL Duration `yaml:"session_ttl"`
}

// Default returns the configuration used when no file or env overrides it.
func Default() *Config {
	return &Config{
		Mode: ModeProduction,
		Addr: ":8080",
		Game: GameConfig{
			DimSize:    10,
			NumBombs:   10,
			MaxDimSize: 100,
		},
		Log: LogConfig{
			Level:      "",
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
		},
		Store: StoreConfig{
			Driver:     StoreMemory,
			SessionTTL: Duration{24 * time.Hour},
		},
		Postgres: Database{
			Host:    "localhost",
			Port:    5432,
			SSLMode: "disable",
		},
		Redis: Redis{
			Addr:   "localhost:6379",
			Prefix: "mines:",
		},
		JWT: JWTConfig{
			TokenLifetime: Duration{24 * time.Hour},
		},
	}
}

// Load reads the YAML file at path on top of [Default] and then applies
// environment overrides. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c Config) Development() bool {
	return c.Mode == ModeDevelopment
}

func (c Config) Validate() error {
	var errs []error
	if c.Mode != ModeDevelopment && c.Mode != ModeProduction {
		errs = append(errs, fmt.Errorf("unknown mode %q", c.Mode))
	}
	if err := c.Game.Params().Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Game.MaxDimSize < 1 {
		errs = append(errs, fmt.Errorf("game.max_dim_size must be positive"))
	} else if err := c.Game.CheckDimSize(c.Game.DimSize); err != nil {
		errs = append(errs, err)
	}
	switch c.Store.Driver {
	case StoreMemory, StorePostgres, StoreRedis:
	default:
		errs = append(errs, fmt.Errorf("unknown store driver %q", c.Store.Driver))
	}
	if c.Store.SessionTTL.Duration < 0 {
		errs = append(errs, fmt.Errorf("store.session_ttl must not be negative"))
	}
	return errors.Join(errs...)
}

// Fields lists the settings worth logging at start-up. Secrets are left out.
func (c Config) Fields() map[string]any {
	return map[string]any{
		"mode":          c.Mode,
		"addr":          c.Addr,
		"dim_size":      c.Game.DimSize,
		"num_bombs":     c.Game.NumBombs,
		"max_dim_size":  c.Game.MaxDimSize,
		"log_level":     c.Log.Level,
		"log_file":      c.Log.File,
		"store":         c.Store.Driver,
		"session_ttl":   c.Store.SessionTTL.String(),
		"pg_host":       c.Postgres.Host,
		"pg_port":       c.Postgres.Port,
		"pg_db_name":    c.Postgres.DBName,
		"redis_addr":    c.Redis.Addr,
		"jwt_lifetime":  c.JWT.TokenLifetime.String(),
		"jwt_from_file": c.JWT.SecretFile != "",
	}
}

type Duration struct{ time.Duration }

// [Duration] implements [yaml.Marshaler]
func (d Duration) MarshalYAML() (any, error) {
	return d.String(), nil
}

// [Duration] implements [yaml.Unmarshaler]
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err == nil {
		if v, err := time.ParseDuration(s); err == nil {
			d.Duration = v
			return nil
		}
	}
	var n int64
	if err := value.Decode(&n); err != nil {
		return fmt.Errorf("invalid duration %q", value.Value)
	}
	d.Duration = time.Duration(n)
	return nil
}
