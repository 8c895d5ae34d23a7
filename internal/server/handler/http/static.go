package http

import (
	"bytes"
	"io/fs"
	"net/http"
	"os"
	"strings"
	"time"
)

// indexFile is served for every GET that matches no asset.
const indexFile = "index.html"

// StaticHandler serves the prebuilt frontend from Assets. Requests for a
// file that exists are served as-is; anything else gets index.html so that
// client-side routes resolve. Without an index.html the fallback is a 404.
type StaticHandler struct {
	Assets fs.FS
}

// NewStaticHandler serves the directory dir.
func NewStaticHandler(dir string) *StaticHandler {
	return &StaticHandler{Assets: os.DirFS(dir)}
}

func (h *StaticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/")
	if name != "" && fs.ValidPath(name) {
		if st, err := fs.Stat(h.Assets, name); err == nil && !st.IsDir() {
			http.FileServer(http.FS(h.Assets)).ServeHTTP(w, r)
			return
		}
	}

	index, err := fs.ReadFile(h.Assets, indexFile)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	http.ServeContent(w, r, indexFile, time.Time{}, bytes.NewReader(index))
}
