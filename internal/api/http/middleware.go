package http

import (
	"context"
	"net/http"
)

// originContextKey is a private type to avoid context value collisions.
type originContextKey struct{}

// baseOriginMiddleware infers the request's base origin and stashes it in
// the context. Scheme is https only when the forwarded-protocol header says
// so (the service itself runs behind a TLS-terminating proxy); host is taken
// verbatim from the Host header. A missing host is a client error.
func baseOriginMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Host == "" {
			writeErrorMessage(w, http.StatusBadRequest, "Missing Host header")

			return
		}

		scheme := "http"
		if r.Header.Get("X-Forwarded-Proto") == "https" {
			scheme = "https"
		}

		ctx := context.WithValue(r.Context(), originContextKey{}, scheme+"://"+r.Host)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// originFromContext returns the base origin the middleware computed.
func originFromContext(ctx context.Context) string {
	origin, _ := ctx.Value(originContextKey{}).(string)

	return origin
}
