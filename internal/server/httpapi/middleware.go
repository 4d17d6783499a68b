package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"

	"github.com/imironov/notekeeper/internal/server/auth"
)

type ctxKey string

const identityKey ctxKey = "identity"

// Identity is the authenticated caller, decoded from a verified token.
// It lives only for the duration of one request.
type Identity struct {
	UserID   string
	Username string
}

// IdentityFromContext returns the identity stored by withAuth.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

const bearerPrefix = "Bearer "

// withAuth gates a protected route. A missing or malformed Authorization
// header, a bad signature, and an expired token all produce the same 401
// body, and the wrapped handler is never invoked. The response deliberately
// does not say which check failed.
func (s *Server) withAuth(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		header := r.Header.Get("Authorization")
		if header == "" || !strings.HasPrefix(header, bearerPrefix) {
			writeError(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		claims, err := auth.ParseToken(strings.TrimPrefix(header, bearerPrefix), s.jwtSecret)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		identity := Identity{UserID: claims.UserID, Username: claims.Username}
		ctx := context.WithValue(r.Context(), identityKey, identity)
		next(w, r.WithContext(ctx), p)
	}
}

// withCORS applies a permissive CORS policy: every response is
// browser-reachable from any origin.
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
		next.ServeHTTP(w, r)
	})
}
