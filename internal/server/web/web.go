// Package web serves the embedded UI pages and static assets.
// Это внешний потребитель ядра: страницы ходят в /api/* через fetch,
// сами по себе состояния не имеют.
package web

import (
	"embed"
	"log/slog"
	"net/http"

	"github.com/iudanet/bigako/internal/server/handlers"
	"github.com/iudanet/bigako/internal/server/session"
)

//go:embed static
var staticFS embed.FS

// Handler отдает HTML страницы и статику
type Handler struct {
	logger   *slog.Logger
	sessions *session.Registry
}

// NewHandler создает handler страниц
func NewHandler(logger *slog.Logger, sessions *session.Registry) *Handler {
	return &Handler{
		logger:   logger,
		sessions: sessions,
	}
}

// Index обрабатывает GET /
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	h.serveStatic(w, "static/index.html", "text/html; charset=utf-8")
}

// Login обрабатывает GET /login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	h.serveStatic(w, "static/login.html", "text/html; charset=utf-8")
}

// Register обрабатывает GET /register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	h.serveStatic(w, "static/register.html", "text/html; charset=utf-8")
}

// Messenger обрабатывает GET /messenger
// Страница доступна только с валидной сессией, иначе redirect на /login
func (h *Handler) Messenger(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(handlers.SessionCookieName)
	if err != nil {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}
	if _, ok := h.sessions.Resolve(cookie.Value); !ok {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	h.serveStatic(w, "static/messenger.html", "text/html; charset=utf-8")
}

// Style обрабатывает GET /style.css
func (h *Handler) Style(w http.ResponseWriter, r *http.Request) {
	h.serveStatic(w, "static/style.css", "text/css; charset=utf-8")
}

// Script обрабатывает GET /script.js
func (h *Handler) Script(w http.ResponseWriter, r *http.Request) {
	h.serveStatic(w, "static/script.js", "application/javascript; charset=utf-8")
}

// serveStatic отдает embedded файл с указанным Content-Type
func (h *Handler) serveStatic(w http.ResponseWriter, name, contentType string) {
	data, err := staticFS.ReadFile(name)
	if err != nil {
		h.logger.Error("failed to read embedded asset", slog.String("name", name), slog.Any("error", err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.logger.Warn("failed to write asset", slog.String("name", name), slog.Any("error", err))
	}
}
