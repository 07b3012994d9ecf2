package handler

import (
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
)

// PageHandler serves the landing page.
//
// The page is read once at startup and kept in memory; a missing page is a
// startup error rather than a 404 on every visit.
type PageHandler struct {
	index  []byte
	logger *slog.Logger
}

// NewPageHandler loads index.html from views.
func NewPageHandler(views fs.FS, logger *slog.Logger) (*PageHandler, error) {
	index, err := fs.ReadFile(views, "index.html")
	if err != nil {
		return nil, fmt.Errorf("reading landing page: %w", err)
	}
	return &PageHandler{index: index, logger: logger}, nil
}

// HandleIndex serves GET /.
func (h *PageHandler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(h.index); err != nil {
		h.logger.Warn("failed to write landing page", slog.String("error", err.Error()))
	}
}
