package web

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/pstaylor-patrick/substack2remarkable/internal/apperr"
	"github.com/pstaylor-patrick/substack2remarkable/internal/library"
	"github.com/pstaylor-patrick/substack2remarkable/internal/render"
)

// Handler holds the preview route handlers.
type Handler struct {
	lib      *library.Library
	renderer *render.Renderer
	static   http.Handler
}

// NewHandler creates a Handler serving documents from lib. Requests that are
// not markdown documents are served as plain static files from root.
func NewHandler(lib *library.Library, renderer *render.Renderer, root string) *Handler {
	return &Handler{
		lib:      lib,
		renderer: renderer,
		static:   http.FileServer(http.Dir(root)),
	}
}

// docPath extracts the requested path relative to the library root,
// decoding any percent-encoding.
func docPath(r *http.Request) string {
	raw := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return decoded
}

// Index handles GET /: a freshly scanned listing of every article. Nothing
// is cached; the tree is rescanned on each request.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	entries, err := h.lib.Scan()
	if err != nil {
		slog.Error("index scan failed", slog.String("error", err.Error()))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	rows := make([]render.IndexEntry, len(entries))
	for i, e := range entries {
		rows[i] = render.IndexEntry{
			Name:    e.Name,
			DocHref: e.DocPath,
			PDFHref: e.PDFPath,
		}
	}
	writeHTML(w, http.StatusOK, h.renderer.RenderIndex(rows))
}

// Document handles GET /*. A path ending in the markup extension is rendered
// to HTML when the file exists; everything else, including a missing
// markdown path, falls through to plain static serving so absent documents
// 404 exactly like any other missing file.
func (h *Handler) Document(w http.ResponseWriter, r *http.Request) {
	p := docPath(r)
	if !strings.HasSuffix(p, library.DocExt) || !h.lib.Exists(p) {
		h.static.ServeHTTP(w, r)
		return
	}

	data, err := h.lib.Read(p)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			h.static.ServeHTTP(w, r)
			return
		}
		slog.Error("document read failed", slog.String("path", p), slog.String("error", err.Error()))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeHTML(w, http.StatusOK, h.renderer.Render(string(data), library.Stem(p)))
}
