package identity

import (
	"net/http"
	"time"

	"github.com/adampresley/adamgokit/httphelpers"
)

func NewSessionCookie(token string, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(SessionTTL / time.Second),
		Expires:  time.Now().Add(SessionTTL),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func ExpiredSessionCookie(secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

/*
TokenFromRequest reads the session cookie. When allowBearer is set, a request
without the cookie may present the same token as an Authorization bearer.
*/
func TokenFromRequest(r *http.Request, allowBearer bool) string {
	if c, err := r.Cookie(SessionCookieName); err == nil && c.Value != "" {
		return c.Value
	}

	if !allowBearer {
		return ""
	}

	token, err := httphelpers.GetAuthorizationBearer(r)

	if err != nil {
		return ""
	}

	return token
}
