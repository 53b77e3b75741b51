// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/danielhkuo/mister-vote/middleware"
	"github.com/danielhkuo/mister-vote/models"
	"github.com/danielhkuo/mister-vote/standings"
)

type CandidateHandler struct {
	standings *standings.Service
}

func NewCandidateHandler(db *sql.DB) *CandidateHandler {
	return &CandidateHandler{standings: standings.New(db)}
}

// List handles GET /api/candidates
func (h *CandidateHandler) List(w http.ResponseWriter, r *http.Request) {
	candidates, err := h.standings.ListCandidates(r.Context())
	if err != nil {
		writeError(w, err, "")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, candidates)
}

// ListByCategory handles GET /api/candidates/{category}
func (h *CandidateHandler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	candidates, err := h.standings.ListByCategory(r.Context(), r.PathValue("category"))
	if err != nil {
		writeError(w, err, "")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, candidates)
}

// Ranking handles GET /api/ranking
func (h *CandidateHandler) Ranking(w http.ResponseWriter, r *http.Request) {
	ranking, err := h.standings.Ranking(r.Context())
	if err != nil {
		writeError(w, err, "")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, ranking)
}

// Stats handles GET /api/stats
func (h *CandidateHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.standings.Stats(r.Context())
	if err != nil {
		writeError(w, err, "")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, stats)
}

// Health handles GET /api/health
func (h *CandidateHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.standings.Ping(r.Context()); err != nil {
		middleware.JSONResponse(w, http.StatusInternalServerError, models.HealthResponse{
			Status:   "unhealthy",
			Database: "disconnected",
		})
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.HealthResponse{
		Status:   "healthy",
		Database: "connected",
	})
}

// Static serves the front-end bundle from dir. "/" resolves to index.html;
// no directory is ever listed.
func Static(dir string) http.HandlerFunc {
	root := staticFS{files: http.Dir(dir)}
	files := http.FileServer(root)
	return func(w http.ResponseWriter, r *http.Request) {
		// FileServer redirects */index.html to the directory
		if strings.HasSuffix(r.URL.Path, "/index.html") {
			serveStaticFile(w, r, root, r.URL.Path)
			return
		}
		files.ServeHTTP(w, r)
	}
}

// staticFS hides every directory except the root, so FileServer answers
// 404 instead of a listing.
type staticFS struct {
	files http.FileSystem
}

func (s staticFS) Open(name string) (http.File, error) {
	f, err := s.files.Open(name)
	if err != nil {
		return nil, err
	}
	if name == "/" {
		return f, nil
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if info.IsDir() {
		f.Close()
		return nil, fs.ErrNotExist
	}
	return f, nil
}

func serveStaticFile(w http.ResponseWriter, r *http.Request, root http.FileSystem, name string) {
	f, err := root.Open(path.Clean(name))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		http.NotFound(w, r)
		return
	}
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}
