package api

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/acamacho/portfolio-backend/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// uiHandler serves the single-page dashboard shell behind the route guard.
// The built frontend is expected under STATIC_DIR; without one (e.g. API-only
// deployments behind a separate frontend host) it degrades to a placeholder.
type uiHandler struct {
	logger    zerolog.Logger
	indexPath string
}

func newUIHandler(c map[string]string) uiHandler {
	staticDir := config.GetString(c, "STATIC_DIR", "static")

	return uiHandler{
		logger:    log.With().Str("handlerName", "uiHandler").Logger(),
		indexPath: filepath.Join(staticDir, "index.html"),
	}
}

func (h uiHandler) serveShell() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := os.Stat(h.indexPath); err == nil {
			http.ServeFile(w, r, h.indexPath)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte("<!doctype html><title>Portfolio</title><p>Frontend build not deployed.</p>"))
	}
}
