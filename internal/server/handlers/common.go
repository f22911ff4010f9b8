package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/iudanet/bigako/pkg/api"
)

// SessionCookieName имя cookie с токеном сессии
const SessionCookieName = "session"

// contextKey тип для ключей контекста
type contextKey string

// UsernameKey ключ для хранения username в контексте
const UsernameKey contextKey = "username"

// GetUsername извлекает username аутентифицированного пользователя из
// контекста запроса (устанавливается session guard middleware)
func GetUsername(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(UsernameKey).(string)
	return username, ok
}

// sendJSON отправляет JSON ответ
func sendJSON(logger *slog.Logger, w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

// sendError отправляет JSON ответ с ошибкой
func sendError(logger *slog.Logger, w http.ResponseWriter, message string, statusCode int) {
	resp := api.StatusResponse{
		Success: false,
		Error:   message,
	}
	sendJSON(logger, w, resp, statusCode)
}

// sendSuccess отправляет JSON ответ об успешной операции
func sendSuccess(logger *slog.Logger, w http.ResponseWriter, statusCode int) {
	sendJSON(logger, w, api.StatusResponse{Success: true}, statusCode)
}
