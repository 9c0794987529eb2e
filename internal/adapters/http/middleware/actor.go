package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/linkmart/admin-api/internal/app/pipeline"
)

const headerAdminID = "X-Admin-ID"

// Actor returns middleware that reads the authenticated admin's ID from the
// X-Admin-ID header (set by the authenticating proxy in front of this
// service) and installs it in the request context for audit attribution.
// Requests without the header, or with a malformed ID, proceed without an
// actor and produce system-attributed audit records.
func Actor() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if raw := r.Header.Get(headerAdminID); raw != "" {
				if id, err := uuid.Parse(raw); err == nil {
					r = r.WithContext(pipeline.WithActor(r.Context(), id))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
