package config

import "github.com/redis/go-redis/v9"

type Redis struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
}

func (c *Redis) applyEnv() error {
	lookupString("REDIS_ADDR", &c.Addr)
	lookupString("REDIS_PASSWORD", &c.Password)
	lookupString("REDIS_PREFIX", &c.Prefix)
	return lookupInt("REDIS_DB", &c.DB)
}

func (c Redis) Options() *redis.Options {
	return &redis.Options{
		Addr:     c.Addr,
		Password: c.Password,
		DB:       c.DB,
	}
}
