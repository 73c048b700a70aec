package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/thenoetrevino/lineage/internal/identity"
)

// UserHeader names the request header carrying the caller's uid
const UserHeader = "X-User-ID"

// identify attaches the caller's identity to the request context
func (s *Server) identify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := identity.Identity{UID: s.defaultUser}
		if uid := strings.TrimSpace(r.Header.Get(UserHeader)); uid != "" {
			id = identity.Identity{UID: uid, Authenticated: true}
		}
		next.ServeHTTP(w, r.WithContext(identity.WithIdentity(r.Context(), id)))
	})
}

// requestLogger logs one line per request
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Wrap response writer to capture status code
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)
		s.metrics.IncRequests()

		s.logger.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
			"remote_addr", r.RemoteAddr,
		)
	})
}

func uidFrom(r *http.Request) string {
	id, _ := identity.FromContext(r.Context())
	return id.UID
}
