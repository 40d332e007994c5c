package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "minesweeper"

var ErrTokenSubject = errors.New("token has no subject")

type JWTConfig struct {
	Secret        string   `yaml:"secret"`
	SecretFile    string   `yaml:"secret_file"`
	TokenLifetime Duration `yaml:"token_lifetime"`
}

func (c *JWTConfig) applyEnv() {
	lookupString("JWT_SECRET", &c.Secret)
	lookupString("JWT_SECRET_FILE", &c.SecretFile)
}

func (c JWTConfig) loadSecret() ([]byte, error) {
	if c.Secret != "" {
		return []byte(c.Secret), nil
	}
	if c.SecretFile == "" {
		return nil, fmt.Errorf("no JWT_SECRET or JWT_SECRET_FILE env variable set")
	}
	data, err := os.ReadFile(c.SecretFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read JWT secret: %w", err)
	}
	secret := strings.TrimSpace(string(data))
	if secret == "" {
		return nil, fmt.Errorf("JWT secret file %s is empty", c.SecretFile)
	}
	return []byte(secret), nil
}

// JWT signs and checks the tokens that grant access to one game session.
type JWT struct {
	secret        []byte
	signingMethod jwt.SigningMethod
	tokenLifetime time.Duration
}

func NewJWT(c JWTConfig) (*JWT, error) {
	secret, err := c.loadSecret()
	if err != nil {
		return nil, err
	}

	j := &JWT{
		secret:        secret,
		signingMethod: jwt.SigningMethodHS256,
		tokenLifetime: c.TokenLifetime.Duration,
	}

	return j, nil
}

func (j *JWT) SessionToken(sessionID string, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Issuer:   tokenIssuer,
		Subject:  sessionID,
		IssuedAt: jwt.NewNumericDate(now),
	}
	if j.tokenLifetime > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(j.tokenLifetime))
	}
	return jwt.NewWithClaims(j.signingMethod, claims).SignedString(j.secret)
}

// ParseSessionToken validates tokenString and returns the session id it
// was issued for.
func (j *JWT) ParseSessionToken(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(t *jwt.Token) (interface{}, error) {
			return j.secret, nil
		},
		jwt.WithValidMethods([]string{j.signingMethod.Alg()}),
		jwt.WithIssuer(tokenIssuer),
	)
	if err != nil {
		return "", err
	}
	if claims.Subject == "" {
		return "", ErrTokenSubject
	}
	return claims.Subject, nil
}
