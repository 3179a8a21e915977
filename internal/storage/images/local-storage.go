package images

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
)

// LocalStorage writes images into the directory the site serves statically.
type LocalStorage struct {
	dir       string
	urlPrefix string
}

func NewLocalStorage(dir, urlPrefix string) *LocalStorage {
	if urlPrefix == "" {
		urlPrefix = "/"
	}
	return &LocalStorage{dir: dir, urlPrefix: urlPrefix}
}

// Save writes body to a temporary file and renames it into place so readers
// never see a partial image.
func (l *LocalStorage) Save(_ context.Context, fileName, _ string, body io.Reader) (string, error) {
	if fileName != filepath.Base(fileName) {
		return "", fmt.Errorf("invalid image file name %q", fileName)
	}
	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return "", fmt.Errorf("create image dir: %w", err)
	}

	tmp, err := os.CreateTemp(l.dir, "."+fileName+".*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err = io.Copy(tmp, body); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write %s: %w", fileName, err)
	}
	if err = tmp.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", fileName, err)
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return "", fmt.Errorf("chmod %s: %w", fileName, err)
	}
	if err = os.Rename(tmp.Name(), filepath.Join(l.dir, fileName)); err != nil {
		return "", fmt.Errorf("rename %s: %w", fileName, err)
	}
	return path.Join(l.urlPrefix, fileName), nil
}
