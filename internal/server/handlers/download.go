package handlers

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/iudanet/bigako/internal/server/files"
	"github.com/iudanet/bigako/internal/server/storage"
)

// DownloadHandler отдает сохраненные вложения
type DownloadHandler struct {
	logger *slog.Logger
	files  *files.Store
}

// NewDownloadHandler создает новый handler для скачивания вложений
func NewDownloadHandler(logger *slog.Logger, fileStore *files.Store) *DownloadHandler {
	return &DownloadHandler{
		logger: logger,
		files:  fileStore,
	}
}

// Download обрабатывает GET /download/{key}
// Отдает сырые байты вложения; исходное имя файла восстанавливается
// отбрасыванием uniqueness-префикса ключа
func (h *DownloadHandler) Download(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	key := r.PathValue("key")

	f, err := h.files.Open(key)
	if err != nil {
		if errors.Is(err, storage.ErrAttachmentNotFound) {
			http.NotFound(w, r)
			return
		}
		h.logger.ErrorContext(ctx, "failed to open attachment", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to stat attachment", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", files.DisplayName(key)))
	w.Header().Set("Content-Length", strconv.FormatInt(info.Size(), 10))

	if _, err := io.Copy(w, f); err != nil {
		h.logger.WarnContext(ctx, "failed to send attachment", slog.Any("error", err))
	}
}
