// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"identity/config"
	domainerrors "identity/internal/domain/errors"
	"identity/internal/domain/service"
	"identity/internal/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// minSecretLength is the HS256 key size in bytes.
const minSecretLength = 32

// jwtService is a concrete implementation of the TokenService interface using HS256 JWTs.
type jwtService struct {
	cfg config.JWTConfig
	key []byte
	now func() time.Time
}

// Option customizes a jwtService.
type Option func(*jwtService)

// WithClock replaces the time source used for iat, exp and expiry checks.
func WithClock(now func() time.Time) Option {
	return func(s *jwtService) {
		s.now = now
	}
}

// NewJWTService is the Fx constructor. It copies the jwt section so later
// changes to the config value do not leak into the codec.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	return NewTokenCodec(cfg.JWT)
}

// NewTokenCodec builds a codec from an explicit configuration value.
func NewTokenCodec(cfg config.JWTConfig, opts ...Option) (service.TokenService, error) {
	if len(cfg.Secret) < minSecretLength {
		return nil, domainerrors.ErrConfiguration.WithDetails("jwt secret must be at least 32 bytes")
	}
	if cfg.AccessTTL <= 0 || cfg.RefreshTTL <= 0 {
		return nil, domainerrors.ErrConfiguration.WithDetails("jwt ttl values must be positive")
	}

	s := &jwtService{
		cfg: cfg,
		key: []byte(cfg.Secret),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Issue signs a token for subject.
func (s *jwtService) Issue(subject string, claims *service.Claims, ttl time.Duration, purpose service.TokenPurpose) (string, error) {
	if ttl <= 0 {
		return "", errors.Errorf("token ttl must be positive, got %s", ttl)
	}

	var out service.Claims
	switch purpose {
	case service.PurposeRefresh:
		out.Type = string(service.PurposeRefresh)
	case service.PurposeAccess:
		if claims != nil {
			out = *claims
			out.Type = ""
		}
	default:
		return "", errors.Errorf("unknown token purpose: %s", purpose)
	}

	now := s.now()
	out.RegisteredClaims = jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   subject,
		Issuer:    s.cfg.Issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &out).SignedString(s.key)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}

	return signed, nil
}

// Parse fully validates a token.
func (s *jwtService) Parse(token string) (*service.Claims, error) {
	claims, err := s.parse(token, jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domainerrors.ErrTokenExpired.WrapMessage("parse token")
		}

		return nil, domainerrors.ErrTokenInvalid.WithDetails(err.Error())
	}

	return claims, nil
}

// IsExpired reads exp as ordinary claim data after checking the signature.
func (s *jwtService) IsExpired(token string) (bool, error) {
	claims, err := s.parse(token, jwt.WithoutClaimsValidation())
	if err != nil {
		return false, domainerrors.ErrTokenInvalid.WithDetails(err.Error())
	}
	if claims.ExpiresAt == nil {
		return false, domainerrors.ErrTokenInvalid.WithDetails("token has no exp claim")
	}

	return !s.now().Before(claims.ExpiresAt.Time), nil
}

// ExtractSubject returns the subject of a valid token.
func (s *jwtService) ExtractSubject(token string) (string, error) {
	claims, err := s.Parse(token)
	if err != nil {
		return "", err
	}

	return claims.Subject, nil
}

// ExtractAllClaims returns the claims of a valid token.
func (s *jwtService) ExtractAllClaims(token string) (*service.Claims, error) {
	return s.Parse(token)
}

// HashToken returns the hex SHA-256 digest of token.
func (s *jwtService) HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))

	return hex.EncodeToString(sum[:])
}

func (s *jwtService) AccessTTL() time.Duration {
	return s.cfg.AccessTTL
}

func (s *jwtService) RefreshTTL() time.Duration {
	return s.cfg.RefreshTTL
}

func (s *jwtService) parse(token string, extra ...jwt.ParserOption) (*service.Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	}
	if s.cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.cfg.Issuer))
	}
	opts = append(opts, extra...)

	claims := new(service.Claims)
	_, err := jwt.NewParser(opts...).ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.key, nil
	})
	if err != nil {
		return nil, err
	}

	return claims, nil
}
