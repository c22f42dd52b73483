package identity

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/lorenzwed/lorenzwed/pkg/models"
)

type JWTSignerConfig struct {
	Secret string
	TTL    time.Duration
}

type jwtClaims struct {
	CustomerID uint `json:"cid"`
	jwt.RegisteredClaims
}

// JWTSigner issues HS256 JSON Web Tokens.
type JWTSigner struct {
	secret []byte
	ttl    time.Duration
}

func NewJWTSigner(config JWTSignerConfig) JWTSigner {
	if config.TTL <= 0 {
		config.TTL = SessionTTL
	}

	return JWTSigner{
		secret: []byte(config.Secret),
		ttl:    config.TTL,
	}
}

func (s JWTSigner) Sign(claims Claims) (string, error) {
	expiresAt := claims.ExpiresAt

	if expiresAt.IsZero() {
		expiresAt = time.Now().Add(s.ttl)
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, &jwtClaims{
		CustomerID: claims.CustomerID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	})

	signed, err := tok.SignedString(s.secret)

	if err != nil {
		return "", fmt.Errorf("error signing session token: %w", err)
	}

	return signed, nil
}

func (s JWTSigner) Verify(token string) (Claims, error) {
	if token == "" {
		return Claims{}, models.NewUserError(models.ErrUnauthorized, "no session")
	}

	parsed, err := jwt.ParseWithClaims(
		token,
		&jwtClaims{},
		func(t *jwt.Token) (any, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)

	if err != nil {
		return Claims{}, models.NewUserError(models.ErrUnauthorized, "invalid session")
	}

	c, ok := parsed.Claims.(*jwtClaims)

	if !ok || !parsed.Valid {
		return Claims{}, models.NewUserError(models.ErrUnauthorized, "invalid session")
	}

	return checkClaims(Claims{
		CustomerID: c.CustomerID,
		ExpiresAt:  c.ExpiresAt.Time,
	})
}
