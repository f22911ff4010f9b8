package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/iudanet/bigako/internal/server/handlers"
	"github.com/iudanet/bigako/internal/server/session"
	"github.com/iudanet/bigako/pkg/api"
)

// AuthMiddleware создает session guard: пропускает запрос дальше только
// при валидном токене сессии в cookie. Без валидного токена — 401 и
// никаких побочных эффектов.
func AuthMiddleware(logger *slog.Logger, sessions *session.Registry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(handlers.SessionCookieName)
			if err != nil {
				logger.Warn("missing session cookie", "path", r.URL.Path)
				unauthorized(logger, w)
				return
			}

			username, ok := sessions.Resolve(cookie.Value)
			if !ok {
				logger.Warn("unknown session token", "path", r.URL.Path)
				unauthorized(logger, w)
				return
			}

			// Добавляем username в контекст
			ctx := context.WithValue(r.Context(), handlers.UsernameKey, username)

			logger.Debug("user authenticated", "username", username)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// unauthorized отвечает 401 с JSON телом
func unauthorized(logger *slog.Logger, w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)

	resp := api.StatusResponse{Success: false, Error: "unauthorized"}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Error("failed to encode unauthorized response", "error", err)
	}
}
