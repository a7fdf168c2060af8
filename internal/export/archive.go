package export

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// Archive keeps a copy of every successful export on disk so clients can
// re-download past runs.
type Archive struct {
	dir string
}

// NewArchive creates an archive rooted at dir.
func NewArchive(dir string) *Archive {
	if err := os.MkdirAll(dir, 0755); err != nil {
		slog.Error("create export dir", "error", err, "dir", dir)
	}
	return &Archive{dir: dir}
}

// Save writes one export bundle and returns its download path.
func (a *Archive) Save(exportID string, data []byte) (string, error) {
	name := exportID + ".geojson"
	if err := os.WriteFile(filepath.Join(a.dir, name), data, 0644); err != nil {
		return "", fmt.Errorf("write export file: %w", err)
	}
	return "/exports/" + name, nil
}

// Serve returns the GET handler for /exports/{name}.
func (a *Archive) Serve() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(r.URL.Path, "/exports/")
		if name == "" || strings.Contains(name, "/") || strings.Contains(name, "..") {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}

		path := filepath.Join(a.dir, name)
		if _, err := os.Stat(path); err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/geo+json")
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
		http.ServeFile(w, r, path)
	})
}
