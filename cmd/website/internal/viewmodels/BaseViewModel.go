package viewmodels

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
)

type contextKey string

const customerIDKey contextKey = "customerID"

func WithCustomerID(ctx context.Context, customerID uint) context.Context {
	return context.WithValue(ctx, customerIDKey, customerID)
}

// GetCustomerIDFromContext returns 0 when the request carries no session.
func GetCustomerIDFromContext(r *http.Request) uint {
	if result, ok := r.Context().Value(customerIDKey).(uint); ok {
		return result
	}

	return 0
}

// GetIDFromPath reads a positive id from a path segment only, never from the query or form.
func GetIDFromPath(r *http.Request, name string) (uint, bool) {
	id, err := strconv.ParseUint(r.PathValue(name), 10, 64)

	if err != nil || id == 0 {
		return 0, false
	}

	return uint(id), true
}

func PhotoURL(albumID uint, filename string) string {
	return fmt.Sprintf("/uploads/albums/%d/%s", albumID, filename)
}

func ThumbnailURL(albumID uint, filename string) string {
	return fmt.Sprintf("/uploads/albums/%d/thumbnails/%s", albumID, filename)
}

type OKResponse struct {
	OK bool `json:"ok"`
}

type CreatedResponse struct {
	OK bool `json:"ok"`
	ID uint `json:"id"`
}
