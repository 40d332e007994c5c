package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

func lookupInt(key string, dst *int) error {
	s, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("unable to convert %s to int: %w", key, err)
	}
	*dst = v
	return nil
}

func lookupString(key string, dst *string) {
	if s, ok := os.LookupEnv(key); ok {
		*dst = s
	}
}

// applyEnv overrides file settings with whatever env variables are set.
func (c *Config) applyEnv() error {
	lookupString("MINES_MODE", &c.Mode)
	if development, ok := os.LookupEnv("DEVELOPMENT"); ok && development != "0" {
		c.Mode = ModeDevelopment
	}
	lookupString("MINES_ADDR", &c.Addr)

	if err := lookupInt("MINES_DIM_SIZE", &c.Game.DimSize); err != nil {
		return err
	}
	if err := lookupInt("MINES_NUM_BOMBS", &c.Game.NumBombs); err != nil {
		return err
	}
	if err := lookupInt("MINES_MAX_DIM_SIZE", &c.Game.MaxDimSize); err != nil {
		return err
	}
	if s, ok := os.LookupEnv("MINES_SEED"); ok {
		seed, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return fmt.Errorf("unable to convert MINES_SEED to uint64: %w", err)
		}
		c.Game.Seed = seed
	}

	lookupString("MINES_LOG_LEVEL", &c.Log.Level)
	lookupString("MINES_LOG_FILE", &c.Log.File)

	lookupString("MINES_STORE", &c.Store.Driver)
	if s, ok := os.LookupEnv("MINES_SESSION_TTL"); ok {
		ttl, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("unable to parse MINES_SESSION_TTL: %w", err)
		}
		c.Store.SessionTTL.Duration = ttl
	}

	if err := c.Postgres.applyEnv(); err != nil {
		return err
	}
	if err := c.Redis.applyEnv(); err != nil {
		return err
	}
	c.JWT.applyEnv()

	return nil
}
