package handlers

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/iudanet/bigako/internal/models"
	"github.com/iudanet/bigako/internal/server/files"
	"github.com/iudanet/bigako/internal/server/messages"
	"github.com/iudanet/bigako/internal/server/multipart"
	"github.com/iudanet/bigako/pkg/api"
)

// uploadBodyLimit жесткий предел на тело multipart запроса: сам файл
// (до 50 MiB) плюс запас на boundary, заголовки частей и текстовое поле
const uploadBodyLimit = multipart.MaxFileSize + 1<<20

// MessageHandler обрабатывает отправку и чтение сообщений
type MessageHandler struct {
	logger   *slog.Logger
	messages *messages.Service
	files    *files.Store
}

// NewMessageHandler создает новый handler для сообщений
func NewMessageHandler(logger *slog.Logger, msgService *messages.Service, fileStore *files.Store) *MessageHandler {
	return &MessageHandler{
		logger:   logger,
		messages: msgService,
		files:    fileStore,
	}
}

// Post обрабатывает POST /api/message
// Принимает либо form-encoded текст, либо multipart тело с файлом
// и необязательным текстом
func (h *MessageHandler) Post(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	username, ok := GetUsername(ctx)
	if !ok {
		h.logger.ErrorContext(ctx, "username not found in context")
		h.sendError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	contentType := r.Header.Get("Content-Type")
	if strings.Contains(contentType, "multipart/form-data") {
		h.postFile(w, r, username, contentType)
		return
	}

	h.postText(w, r, username)
}

// postText сохраняет обычное текстовое сообщение
func (h *MessageHandler) postText(w http.ResponseWriter, r *http.Request, username string) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		h.sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	body := r.PostFormValue("message")
	if body == "" {
		h.sendError(w, "message cannot be empty", http.StatusBadRequest)
		return
	}

	id, err := h.messages.Append(ctx, username, body, models.KindText, nil, nil)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to append message", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "message posted",
		slog.String("username", username),
		slog.Int64("message_id", id))

	h.sendSuccess(w, http.StatusOK)
}

// postFile декодирует multipart тело, сохраняет вложение и создает
// файловое сообщение
func (h *MessageHandler) postFile(w http.ResponseWriter, r *http.Request, username, contentType string) {
	ctx := r.Context()

	// Извлекаем boundary из Content-Type
	_, boundary, found := strings.Cut(contentType, "boundary=")
	if !found || boundary == "" {
		h.sendError(w, "malformed upload", http.StatusBadRequest)
		return
	}
	boundary = strings.Trim(boundary, `"`)

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, uploadBodyLimit))
	if err != nil {
		// MaxBytesReader обрывает чтение на превышении предела
		h.logger.WarnContext(ctx, "upload body too large", slog.String("username", username))
		h.sendError(w, "file too large", http.StatusRequestEntityTooLarge)
		return
	}

	file, text, err := multipart.Parse(body, boundary)
	if err != nil {
		h.logger.WarnContext(ctx, "failed to decode multipart body", slog.Any("error", err))
		h.sendError(w, "malformed upload", http.StatusBadRequest)
		return
	}
	if file == nil {
		h.sendError(w, "malformed upload", http.StatusBadRequest)
		return
	}

	// Проверяем размер до сохранения: слишком большие файлы отклоняются,
	// а не обрезаются
	if len(file.Data) > multipart.MaxFileSize {
		h.logger.WarnContext(ctx, "file too large",
			slog.String("username", username),
			slog.Int("size", len(file.Data)))
		h.sendError(w, "file too large", http.StatusRequestEntityTooLarge)
		return
	}

	key, err := h.files.Save(file.Filename, file.Data)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to store attachment", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if text == "" {
		text = "Shared a file"
	}

	size := int64(len(file.Data))
	id, err := h.messages.Append(ctx, username, text, models.KindFile, &key, &size)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to append file message", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "file message posted",
		slog.String("username", username),
		slog.Int64("message_id", id),
		slog.String("attachment_key", key),
		slog.Int64("size", size))

	h.sendSuccess(w, http.StatusOK)
}

// List обрабатывает GET /api/messages?limit=N
// Возвращает последние сообщения в хронологическом порядке
func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 0 {
			h.sendError(w, "invalid limit parameter", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	msgs, err := h.messages.Recent(ctx, limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to read recent messages", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	resp := api.MessagesResponse{
		Messages: make([]api.Message, 0, len(msgs)),
	}
	for _, msg := range msgs {
		resp.Messages = append(resp.Messages, api.Message{
			ID:        msg.ID,
			Username:  msg.Username,
			Message:   msg.Body,
			Type:      msg.Kind,
			FileName:  msg.AttachmentName,
			FileSize:  msg.AttachmentSize,
			Timestamp: msg.CreatedAt,
		})
	}

	sendJSON(h.logger, w, resp, http.StatusOK)
}

// UserInfo обрабатывает GET /api/userinfo
func (h *MessageHandler) UserInfo(w http.ResponseWriter, r *http.Request) {
	username, ok := GetUsername(r.Context())
	if !ok {
		h.sendError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	sendJSON(h.logger, w, api.UserInfoResponse{Username: username}, http.StatusOK)
}

func (h *MessageHandler) sendError(w http.ResponseWriter, message string, statusCode int) {
	sendError(h.logger, w, message, statusCode)
}

func (h *MessageHandler) sendSuccess(w http.ResponseWriter, statusCode int) {
	sendSuccess(h.logger, w, statusCode)
}
