package proxy

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// StaticHandler serves the built client bundle. Paths that do not resolve to
// a file fall back to index.html so client-side routing keeps working after
// a full page reload.
type StaticHandler struct {
	dir string
	fs  http.Handler
}

// NewStaticHandler creates a [StaticHandler] rooted at dir.
func NewStaticHandler(dir string) *StaticHandler {
	return &StaticHandler{
		dir: dir,
		fs:  http.FileServer(http.Dir(dir)),
	}
}

func (h *StaticHandler) Routes() []string {
	return []string{"/"}
}

func (h *StaticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	name := filepath.Join(h.dir, filepath.Clean("/"+strings.TrimPrefix(r.URL.Path, "/")))
	if info, err := os.Stat(name); err == nil && !info.IsDir() {
		h.fs.ServeHTTP(w, r)
		return
	}

	http.ServeFile(w, r, filepath.Join(h.dir, "index.html"))
}
