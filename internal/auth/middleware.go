package auth

import (
	"log"
	"net/http"
	"strings"

	"todolist-backend/internal/domain"
	"todolist-backend/internal/repository"
)

// SessionCookie is the cookie the sign-in flow stores the session
// token in. A bearer Authorization header takes precedence.
const SessionCookie = "session"

// RequireSession resolves the caller's session and rejects anonymous
// requests with 401 before any handler runs. On the first request for
// an unseen user id the user row is provisioned, mirroring what the
// sign-in adapter does.
func RequireSession(verifier *Verifier, users repository.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := tokenFromRequest(r)
			if raw == "" {
				respondUnauthorized(w)
				return
			}

			session, err := verifier.ParseToken(raw)
			if err != nil {
				respondUnauthorized(w)
				return
			}

			err = users.Ensure(r.Context(), &domain.User{
				ID:        session.UserID,
				Name:      session.Name,
				AvatarURL: session.AvatarURL,
			})
			if err != nil {
				log.Printf("Error ensuring user %s exists: %v", session.UserID, err)
				w.Header().Set("Content-Type", "application/json; charset=utf-8")
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(`{"error":"Internal server error"}`))
				return
			}

			next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), *session)))
		})
	}
}

func tokenFromRequest(r *http.Request) string {
	if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		return cookie.Value
	}
	return ""
}

func respondUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"Authentication required"}`))
}
