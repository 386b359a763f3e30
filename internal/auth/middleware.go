package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
)

// SessionCookie is read when no Authorization header is sent.
const SessionCookie = "session_token"

// Middleware rejects requests without a valid bearer token or session cookie.
func (v *Verifier) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := v.Verify(tokenFromRequest(r))
		if err != nil {
			slog.DebugContext(r.Context(), "rejected request", "path", r.URL.Path, "error", err)

			w.Header().Set("WWW-Authenticate", "Bearer")
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)

			if err := json.NewEncoder(w).Encode(map[string]string{"error": "could not validate credentials"}); err != nil {
				slog.Error("failed to encode response", "error", err)
			}

			return
		}

		next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
	})
}

func tokenFromRequest(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		scheme, token, ok := strings.Cut(h, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}

		return ""
	}

	if c, err := r.Cookie(SessionCookie); err == nil {
		return c.Value
	}

	return ""
}
