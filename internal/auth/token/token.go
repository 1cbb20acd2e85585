// Package token issues and verifies signed, time-limited bearer tokens.
package token

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sovna/taskhub/internal/platform/config"
	apperrors "github.com/sovna/taskhub/internal/platform/errors"
)

const signingMethod = "HS256"

// tokenEnv holds raw env values before post-parse validation.
type tokenEnv struct {
	Secret string        `env:"TASKHUB_TOKEN_SECRET"`
	TTL    time.Duration `env:"TASKHUB_TOKEN_TTL" envDefault:"30m"`
}

// Config defines how access tokens are issued and verified.
type Config struct {
	Secret []byte
	TTL    time.Duration
	Now    func() time.Time
}

// LoadConfigFromEnv reads token configuration. The secret is required;
// everything downstream fails closed without it.
func LoadConfigFromEnv() (Config, error) {
	var raw tokenEnv
	if err := config.ParseEnv(&raw); err != nil {
		return Config{}, fmt.Errorf("parse token env: %w", err)
	}
	secret := strings.TrimSpace(raw.Secret)
	if secret == "" {
		return Config{}, fmt.Errorf("TASKHUB_TOKEN_SECRET is required")
	}
	if raw.TTL <= 0 {
		return Config{}, fmt.Errorf("TASKHUB_TOKEN_TTL must be positive")
	}
	return Config{
		Secret: []byte(secret),
		TTL:    raw.TTL,
		Now:    time.Now,
	}, nil
}

// Service signs and verifies bearer tokens with a process-wide secret.
type Service struct {
	config Config
}

// NewService builds a token service from config.
func NewService(config Config) (*Service, error) {
	if len(config.Secret) == 0 {
		return nil, errors.New("token secret is required")
	}
	if config.TTL <= 0 {
		return nil, errors.New("token ttl must be positive")
	}
	if config.Now == nil {
		config.Now = time.Now
	}
	return &Service{config: config}, nil
}

// Issue encodes subject into a signed token expiring after the configured TTL.
func (s *Service) Issue(subject string) (string, error) {
	if strings.TrimSpace(subject) == "" {
		return "", errors.New("subject is required")
	}
	now := s.config.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.config.TTL)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.config.Secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the encoded subject.
// Any ambiguity (malformed token, wrong algorithm, bad signature, missing
// claims) maps to a token-invalid error; only a good signature with a past
// expiry maps to token-expired.
func (s *Service) Verify(tokenString string) (string, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return "", apperrors.New(apperrors.CodeTokenInvalid, "token is required")
	}

	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		return s.config.Secret, nil
	},
		jwt.WithValidMethods([]string{signingMethod}),
		jwt.WithTimeFunc(func() time.Time { return s.config.Now().UTC() }),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", mapJWTError(err)
	}

	if strings.TrimSpace(claims.Subject) == "" {
		return "", apperrors.New(apperrors.CodeTokenInvalid, "token subject is required")
	}
	return claims.Subject, nil
}

// mapJWTError translates jwt library errors to application errors.
func mapJWTError(err error) error {
	if errors.Is(err, jwt.ErrTokenExpired) {
		return apperrors.New(apperrors.CodeTokenExpired, "token is expired")
	}
	if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
		return apperrors.New(apperrors.CodeTokenInvalid, "token signature is invalid")
	}
	if errors.Is(err, jwt.ErrTokenUnverifiable) {
		return apperrors.New(apperrors.CodeTokenInvalid, "token alg is invalid")
	}
	return apperrors.New(apperrors.CodeTokenInvalid, "token is invalid")
}
