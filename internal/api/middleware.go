// internal/api/middleware.go
package api

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type requestIDKeyType string

const (
	requestIDHeader                  = "X-Request-ID"
	requestIDKey    requestIDKeyType = "request_id"
)

// requestIDMiddleware propagates the caller's request id or generates
// one, echoing it back on the response.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set(requestIDHeader, id)
		ctx := context.WithValue(r.Context(), requestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestID returns the id assigned to this request, if any.
func RequestID(r *http.Request) string {
	if v := r.Context().Value(requestIDKey); v != nil {
		return v.(string)
	}
	return ""
}
