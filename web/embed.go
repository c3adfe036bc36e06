// Package web embeds the built Pathlight frontend (dist/) and serves it as a
// single-page application. Client-side routes like /dashboard or
// /coach resolve to index.html; real files under dist/ are served as-is.
//
// In development, use the Vite dev server instead; dist/ only needs to hold
// the production build.
package web

import (
	"embed"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
)

//go:embed all:dist
var distFS embed.FS

// SPAHandler returns an http.Handler for the embedded frontend. Paths that
// match an embedded file are served directly; everything else falls back to
// index.html so the client router can take over.
func SPAHandler() http.Handler {
	assets, err := fs.Sub(distFS, "dist")
	if err != nil {
		panic("web: dist sub filesystem: " + err.Error())
	}

	fileServer := http.FileServer(http.FS(assets))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(r.URL.Path, "/")
		if name == "" {
			name = "index.html"
		}

		f, err := assets.Open(name)
		if err != nil {
			// No such asset, hand the route to the SPA.
			r.URL.Path = "/"
			fileServer.ServeHTTP(w, r)
			return
		}
		if cerr := f.Close(); cerr != nil {
			slog.Debug("web: close embedded file", "path", name, "error", cerr)
		}
		fileServer.ServeHTTP(w, r)
	})
}
