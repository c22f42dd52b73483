package identity

import (
	"crypto/sha512"
	"fmt"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/lorenzwed/lorenzwed/pkg/models"
)

type SecureCookieSignerConfig struct {
	Secret string
	TTL    time.Duration
}

// SecureCookieSigner signs claims with HMAC using gorilla/securecookie.
type SecureCookieSigner struct {
	codec *securecookie.SecureCookie
	ttl   time.Duration
}

func NewSecureCookieSigner(config SecureCookieSignerConfig) SecureCookieSigner {
	if config.TTL <= 0 {
		config.TTL = SessionTTL
	}

	hashKey := sha512.Sum512([]byte(config.Secret))

	codec := securecookie.New(hashKey[:], nil)
	codec.MaxAge(int(config.TTL / time.Second))
	codec.SetSerializer(securecookie.JSONEncoder{})

	return SecureCookieSigner{
		codec: codec,
		ttl:   config.TTL,
	}
}

func (s SecureCookieSigner) Sign(claims Claims) (string, error) {
	if claims.ExpiresAt.IsZero() {
		claims.ExpiresAt = time.Now().Add(s.ttl).UTC()
	}

	token, err := s.codec.Encode(SessionCookieName, claims)

	if err != nil {
		return "", fmt.Errorf("error signing session: %w", err)
	}

	return token, nil
}

func (s SecureCookieSigner) Verify(token string) (Claims, error) {
	var (
		claims Claims
	)

	if token == "" {
		return Claims{}, models.NewUserError(models.ErrUnauthorized, "no session")
	}

	if err := s.codec.Decode(SessionCookieName, token, &claims); err != nil {
		return Claims{}, models.NewUserError(models.ErrUnauthorized, "invalid session")
	}

	return checkClaims(claims)
}
