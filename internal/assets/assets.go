// Package assets serves the static front-end: the single index page and
// any named file under a small set of top-level content "objects"
// (html, css, js, ...), exactly as the original static file server did.
package assets

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// Server serves files out of a root directory with exactly two routes:
// "/" for the index page, and "/files/{object}/{file_name}" for
// everything else.
type Server struct {
	root string
}

// New returns a Server rooted at dir (the directory containing a
// "files/" subtree).
func New(dir string) *Server {
	return &Server{root: dir}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/" {
		s.serveFile(w, filepath.Join(s.root, "files", "html", "index.html"), "text/html")
		return
	}

	object, fileName, ok := parseFilesPath(r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}
	s.serveFile(w, filepath.Join(s.root, "files", object, fileName), "text/"+object)
}

// parseFilesPath extracts {object} and {file_name} from a request path
// shaped like "/files/{object}/{file_name}".
func parseFilesPath(path string) (object, fileName string, ok bool) {
	const prefix = "/files/"
	if !strings.HasPrefix(path, prefix) {
		return "", "", false
	}
	rest := strings.TrimPrefix(path, prefix)
	parts := strings.SplitN(rest, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

func (s *Server) serveFile(w http.ResponseWriter, path, contentType string) {
	data, err := os.ReadFile(path)
	if err != nil {
		http.NotFound(w, nil)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Write(data)
}
