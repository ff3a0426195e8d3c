package middleware

import (
	"context"
	"net/http"
	"strings"

	"storefront/internal/auth"

	"github.com/rs/zerolog"
)

const claimsKey contextKey = "claims"

// Authenticate verifies a Bearer token when one is present and stores the
// claims in the request context. Requests without a token pass through
// anonymously; the Require* guards decide what needs an identity.
func Authenticate(tokens *auth.Tokens, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			tokenString, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				unauthorised(w)
				return
			}

			claims, err := tokens.Verify(tokenString)
			if err != nil {
				logger.Warn().Err(err).Str("path", r.URL.Path).Msg("invalid token")
				unauthorised(w)
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireUser rejects requests without an authenticated identity.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if UserClaims(r.Context()) == nil {
			unauthorised(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireManager rejects requests unless the identity carries the manager
// flag.
func RequireManager(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := UserClaims(r.Context())
		if claims == nil {
			unauthorised(w)
			return
		}
		if !claims.IsManager {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"error": "FORBIDDEN", "message": "manager access required"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// UserClaims extracts the verified claims placed by Authenticate, nil for an
// anonymous request.
func UserClaims(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(claimsKey).(*auth.Claims)
	return claims
}

func unauthorised(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error": "UNAUTHORIZED", "message": "authentication required"}`))
}
