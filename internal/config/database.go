package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Database struct {
	URL          string `yaml:"url"` // takes precedence over the fields below
	Username     string `yaml:"user"`
	Password     string `yaml:"password"`
	PasswordFile string `yaml:"password_file"`
	Host         string `yaml:"host"`
	Port         uint16 `yaml:"port"`
	DBName       string `yaml:"db_name"`
	SSLMode      string `yaml:"sslmode"`
}

func (c *Database) applyEnv() error {
	lookupString("DATABASE_URL", &c.URL)
	lookupString("POSTGRES_USER", &c.Username)
	lookupString("POSTGRES_PASSWORD", &c.Password)
	lookupString("POSTGRES_PASSWORD_FILE", &c.PasswordFile)
	lookupString("POSTGRES_HOST", &c.Host)
	lookupString("POSTGRES_DB", &c.DBName)
	lookupString("POSTGRES_SSLMODE", &c.SSLMode)

	var port int
	if err := lookupInt("POSTGRES_PORT", &port); err != nil {
		return err
	}
	if port != 0 {
		c.Port = uint16(port)
	}
	return nil
}

func (c Database) loadPassword() (string, error) {
	if c.Password != "" || c.PasswordFile == "" {
		return c.Password, nil
	}
	data, err := os.ReadFile(c.PasswordFile)
	if err != nil {
		return "", fmt.Errorf("unable to read from password file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// ConnString returns a postgres:// URL usable by both pgx and migrate.
func (c Database) ConnString() (string, error) {
	if c.URL != "" {
		return c.URL, nil
	}
	if c.Username == "" {
		return "", fmt.Errorf("no DATABASE_URL or POSTGRES_USER env variable set")
	}
	if c.DBName == "" {
		return "", fmt.Errorf("no POSTGRES_DB env variable set")
	}
	password, err := c.loadPassword()
	if err != nil {
		return "", fmt.Errorf("unable to load password: %w", err)
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		url.QueryEscape(c.Username),
		url.QueryEscape(password),
		c.Host,
		c.Port,
		c.DBName,
		c.SSLMode,
	), nil
}

func (c Database) PgxpoolConfig() (*pgxpool.Config, error) {
	connString, err := c.ConnString()
	if err != nil {
		return nil, err
	}
	return pgxpool.ParseConfig(connString)
}
