package assets

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestServesIndexAtRoot(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "files", "html", "index.html"), "<html>hi</html>")

	s := New(dir)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "<html>hi</html>", rec.Body.String())
	require.Equal(t, "text/html", rec.Header().Get("Content-Type"))
}

func TestServesNamedFileWithObjectContentType(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "files", "css", "main.css"), "body{}")

	s := New(dir)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/files/css/main.css", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "body{}", rec.Body.String())
	require.Equal(t, "text/css", rec.Header().Get("Content-Type"))
}

func TestMissingFileIs404(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/files/css/missing.css", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMalformedFilesPathIs404(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/files/css", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}
