package identity

import (
	"time"

	"github.com/lorenzwed/lorenzwed/pkg/models"
)

const (
	SessionCookieName = "customer_session"
	SessionTTL        = 7 * 24 * time.Hour
)

// Claims is everything a session token carries.
type Claims struct {
	CustomerID uint      `json:"cid"`
	ExpiresAt  time.Time `json:"exp"`
}

/*
Signer mints and verifies stateless session tokens. Verify fails with
models.ErrUnauthorized for tampered, expired or incomplete tokens.
*/
type Signer interface {
	Sign(claims Claims) (string, error)
	Verify(token string) (Claims, error)
}

func NewClaims(customerID uint, ttl time.Duration) Claims {
	return Claims{
		CustomerID: customerID,
		ExpiresAt:  time.Now().Add(ttl).UTC(),
	}
}

func checkClaims(claims Claims) (Claims, error) {
	if claims.CustomerID == 0 {
		return Claims{}, models.NewUserError(models.ErrUnauthorized, "session is missing a customer")
	}

	if !claims.ExpiresAt.IsZero() && time.Now().After(claims.ExpiresAt) {
		return Claims{}, models.NewUserError(models.ErrUnauthorized, "session expired")
	}

	return claims, nil
}
