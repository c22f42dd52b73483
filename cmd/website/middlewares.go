package main

import (
	"crypto/subtle"
	"net/http"

	"github.com/lorenzwed/lorenzwed/cmd/website/internal/respond"
	"github.com/lorenzwed/lorenzwed/cmd/website/internal/viewmodels"
	"github.com/lorenzwed/lorenzwed/pkg/identity"
	"github.com/lorenzwed/lorenzwed/pkg/models"
	"github.com/lorenzwed/lorenzwed/pkg/services"
)

const adminSecretHeader = "X-Admin-Secret"

/*
newCustomerSessionMiddleware rejects requests without a valid session token
and puts the session's customer id on the request context. Bearer tokens are
only read when allowBearer is set.
*/
func newCustomerSessionMiddleware(authService services.AuthServicer, allowBearer bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			customerID, err := authService.Authorize(identity.TokenFromRequest(r, allowBearer))

			if err != nil {
				respond.Error(w, r, models.NewUserError(models.ErrUnauthorized, "please log in"))
				return
			}

			ctx := viewmodels.WithCustomerID(r.Context(), customerID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

/*
newAdminSecretMiddleware compares the X-Admin-Secret header to the configured
secret in constant time. An empty configured secret locks every admin route.
*/
func newAdminSecretMiddleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			supplied := r.Header.Get(adminSecretHeader)

			if secret == "" || subtle.ConstantTimeCompare([]byte(supplied), []byte(secret)) != 1 {
				respond.Error(w, r, models.NewUserError(models.ErrForbidden, "invalid admin secret"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
