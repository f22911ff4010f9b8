package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/iudanet/bigako/internal/server/auth"
	"github.com/iudanet/bigako/internal/server/session"
	"github.com/iudanet/bigako/internal/server/storage"
	"github.com/iudanet/bigako/internal/validation"
)

// AuthHandler обрабатывает запросы регистрации и авторизации
type AuthHandler struct {
	logger   *slog.Logger
	auth     *auth.Service
	sessions *session.Registry
}

// NewAuthHandler создает новый handler для авторизации
func NewAuthHandler(logger *slog.Logger, authService *auth.Service, sessions *session.Registry) *AuthHandler {
	return &AuthHandler{
		logger:   logger,
		auth:     authService,
		sessions: sessions,
	}
}

// Register обрабатывает POST /api/register
// Тело: form-encoded username и password
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		h.sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	// Валидация полей
	if err := validation.ValidateUsername(username); err != nil {
		h.logger.WarnContext(ctx, "invalid username", slog.String("username", username), slog.Any("error", err))
		h.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := validation.ValidatePassword(password); err != nil {
		h.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.auth.Register(ctx, username, password); err != nil {
		if errors.Is(err, storage.ErrUserAlreadyExists) {
			h.logger.WarnContext(ctx, "user already exists", slog.String("username", username))
			h.sendError(w, "username already exists", http.StatusConflict)
			return
		}
		h.logger.ErrorContext(ctx, "failed to register user", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "user registered successfully", slog.String("username", username))

	h.sendSuccess(w, http.StatusCreated)
}

// Login обрабатывает POST /api/login
// При успехе выдает токен сессии и ставит HttpOnly cookie
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		h.sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	if username == "" || password == "" {
		h.sendError(w, "username and password are required", http.StatusBadRequest)
		return
	}

	ok, err := h.auth.Verify(ctx, username, password)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to verify credentials", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if !ok {
		// Неизвестный пользователь и неверный пароль дают одинаковый ответ
		h.logger.WarnContext(ctx, "login failed", slog.String("username", username))
		h.sendError(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := h.sessions.Issue(username)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to issue session token", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
	})

	h.logger.InfoContext(ctx, "user logged in successfully", slog.String("username", username))

	h.sendSuccess(w, http.StatusOK)
}

// Logout обрабатывает POST /api/logout
// Отзывает токен сессии и сбрасывает cookie
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		h.sessions.Revoke(cookie.Value)
	}

	// Сбрасываем cookie у клиента
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
	})

	if username, ok := GetUsername(ctx); ok {
		h.logger.InfoContext(ctx, "user logged out", slog.String("username", username))
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *AuthHandler) sendError(w http.ResponseWriter, message string, statusCode int) {
	sendError(h.logger, w, message, statusCode)
}

func (h *AuthHandler) sendSuccess(w http.ResponseWriter, statusCode int) {
	sendSuccess(h.logger, w, statusCode)
}
