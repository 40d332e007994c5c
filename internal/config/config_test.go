package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper/internal/mines"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DEVELOPMENT", "0")
	t.Setenv("MINES_STORE", StoreMemory)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, mines.Params{DimSize: 10, NumBombs: 10}, cfg.Game.Params())
	assert.Equal(t, 100, cfg.Game.MaxDimSize)
	assert.Equal(t, StoreMemory, cfg.Store.Driver)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFileAndEnv(t *testing.T) {
	path := writeFile(t, "mines.yaml", `
mode: development
addr: ":9090"
game:
  dim_size: 16
  num_bombs: 40
  seed: 7
store:
  driver: redis
  session_ttl: 15m
redis:
  addr: "cache:6379"
jwt:
  token_lifetime: 3600000000000
`)
	t.Setenv("DEVELOPMENT", "0")
	t.Setenv("MINES_NUM_BOMBS", "50")
	t.Setenv("MINES_MAX_DIM_SIZE", "32")
	t.Setenv("REDIS_DB", "2")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.Development())
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, 16, cfg.Game.DimSize)
	assert.Equal(t, 50, cfg.Game.NumBombs)
	assert.Equal(t, uint64(7), cfg.Game.Seed)
	assert.Equal(t, 32, cfg.Game.MaxDimSize)
	assert.Equal(t, StoreRedis, cfg.Store.Driver)
	assert.Equal(t, 15*time.Minute, cfg.Store.SessionTTL.Duration)
	assert.Equal(t, "cache:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, "mines:", cfg.Redis.Prefix)
	assert.Equal(t, time.Hour, cfg.JWT.TokenLifetime.Duration)
	assert.NoError(t, cfg.Validate())
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "bad.yaml", "store:\n  session_ttl: soon\n"))
	assert.Error(t, err)

	t.Setenv("MINES_DIM_SIZE", "ten")
	_, err = Load("")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Game.NumBombs = 100
	cfg.Store.Driver = "sqlite"
	cfg.Mode = "staging"

	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, mines.ErrInvalidConfiguration)
	assert.Contains(t, err.Error(), "sqlite")
	assert.Contains(t, err.Error(), "staging")
}

func TestValidateMaxDimSize(t *testing.T) {
	cfg := Default()
	cfg.Game.MaxDimSize = 8
	err := cfg.Validate()
	assert.ErrorIs(t, err, mines.ErrInvalidConfiguration)
	assert.Contains(t, err.Error(), "at most 8")

	cfg.Game.MaxDimSize = 0
	assert.ErrorContains(t, cfg.Validate(), "max_dim_size")

	g := GameConfig{MaxDimSize: 50}
	assert.NoError(t, g.CheckDimSize(50))
	assert.ErrorIs(t, g.CheckDimSize(20000000), mines.ErrInvalidConfiguration)
}

func TestDatabaseConnString(t *testing.T) {
	db := Database{
		Username:     "mines",
		PasswordFile: writeFile(t, "pw", "p@ss word\n"),
		Host:         "db",
		Port:         5433,
		DBName:       "minesweeper",
		SSLMode:      "disable",
	}
	url, err := db.ConnString()
	require.NoError(t, err)
	assert.Equal(t, "postgres://mines:p%40ss+word@db:5433/minesweeper?sslmode=disable", url)

	db.URL = "postgres://other"
	url, err = db.ConnString()
	require.NoError(t, err)
	assert.Equal(t, "postgres://other", url)

	_, err = Database{}.ConnString()
	assert.Error(t, err)
}

func TestJWTSessionToken(t *testing.T) {
	j, err := NewJWT(JWTConfig{Secret: "secret", TokenLifetime: Duration{time.Hour}})
	require.NoError(t, err)

	token, err := j.SessionToken("abc", time.Now())
	require.NoError(t, err)

	id, err := j.ParseSessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, "abc", id)

	other, err := NewJWT(JWTConfig{Secret: "other"})
	require.NoError(t, err)
	_, err = other.ParseSessionToken(token)
	assert.Error(t, err)

	expired, err := j.SessionToken("abc", time.Now().Add(-2*time.Hour))
	require.NoError(t, err)
	_, err = j.ParseSessionToken(expired)
	assert.Error(t, err)

	_, err = NewJWT(JWTConfig{})
	assert.Error(t, err)

	fromFile, err := NewJWT(JWTConfig{SecretFile: writeFile(t, "secret", "secret\n")})
	require.NoError(t, err)
	id, err = fromFile.ParseSessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, "abc", id)
}

func TestNewLogger(t *testing.T) {
	cfg := Default()
	log, err := cfg.NewLogger()
	require.NoError(t, err)
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, log.Formatter)

	cfg.Mode = ModeDevelopment
	cfg.Log.File = filepath.Join(t.TempDir(), "mines.log")
	log, err = cfg.NewLogger()
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, log.Formatter)
	assert.NotEmpty(t, log.Hooks[logrus.DebugLevel])

	cfg.Log.Level = "loud"
	_, err = cfg.NewLogger()
	assert.Error(t, err)
}
