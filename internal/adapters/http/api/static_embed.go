package api

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static/*
var apiStaticFS embed.FS

// dashboardFS exposes a sub-filesystem rooted at static/.
var dashboardFS fs.FS = func() fs.FS {
	sub, err := fs.Sub(apiStaticFS, "static")
	if err != nil {
		return apiStaticFS
	}
	return sub
}()

// pageHandler serves the embedded dashboard page.
type pageHandler struct{}

func newPageHandler() *pageHandler {
	return &pageHandler{}
}

// HandleDashboard handles GET /dashboard requests with an HTML page that
// renders the scored leads and feature importances from the JSON API.
func (h *pageHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	http.ServeFileFS(w, r, dashboardFS, "dashboard.html")
}
