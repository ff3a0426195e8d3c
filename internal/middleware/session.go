package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// SessionCookie is the cookie carrying the anonymous session id.
const SessionCookie = "cart_session"

type contextKey string

const sessionIDKey contextKey = "session_id"

// Session ensures every request carries a session id. An existing valid
// cookie is reused; otherwise a fresh id is issued and set on the response.
// The id lives in the request context for downstream handlers.
func Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sessionID string
		if cookie, err := r.Cookie(SessionCookie); err == nil {
			if _, err := uuid.Parse(cookie.Value); err == nil {
				sessionID = cookie.Value
			}
		}
		if sessionID == "" {
			sessionID = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookie,
				Value:    sessionID,
				Path:     "/",
				MaxAge:   60 * 60 * 24 * 14,
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := context.WithValue(r.Context(), sessionIDKey, sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SessionID extracts the session id placed by Session. The empty string
// means the middleware did not run.
func SessionID(ctx context.Context) string {
	id, _ := ctx.Value(sessionIDKey).(string)
	return id
}
