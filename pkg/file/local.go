package file

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage stores files under a single base directory. All paths are
// confined to baseDir to prevent traversal.
type LocalStorage struct {
	baseDir string
	baseURL string
}

// NewLocalStorage creates the base directory if needed and returns a
// Storage rooted there. baseURL is the public prefix files are served from.
func NewLocalStorage(baseDir, baseURL string) (*LocalStorage, error) {
	if baseDir == "" {
		return nil, ErrInvalidConfig
	}

	absBaseDir, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("%w: resolve base dir: %v", ErrInvalidConfig, err)
	}

	if err := os.MkdirAll(absBaseDir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create base dir: %v", ErrSaveFailed, err)
	}

	if baseURL != "" && !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	return &LocalStorage{baseDir: absBaseDir, baseURL: baseURL}, nil
}

// Save implements Storage.
func (s *LocalStorage) Save(ctx context.Context, fh *multipart.FileHeader, path string) (*File, error) {
	if fh == nil {
		return nil, ErrNilFileHeader
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	absPath, err := s.resolvePath(path)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}

	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: open upload: %v", ErrSaveFailed, err)
	}
	defer func() { _ = src.Close() }()

	dst, err := os.OpenFile(absPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("%w: create file: %v", ErrSaveFailed, err)
	}
	defer func() { _ = dst.Close() }()

	size, err := io.Copy(dst, src)
	if err != nil {
		_ = os.Remove(absPath)
		return nil, fmt.Errorf("%w: write: %v", ErrSaveFailed, err)
	}

	mimeType, _ := DetectMIMEType(fh)

	return &File{
		Filename: filepath.Base(absPath),
		Size:     size,
		MIMEType: mimeType,
		URL:      s.URL(path),
		Path:     path,
	}, nil
}

// Delete implements Storage.
func (s *LocalStorage) Delete(ctx context.Context, path string) error {
	absPath, err := s.resolvePath(path)
	if err != nil {
		return err
	}
	if err := os.Remove(absPath); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Exists implements Storage.
func (s *LocalStorage) Exists(ctx context.Context, path string) bool {
	absPath, err := s.resolvePath(path)
	if err != nil {
		return false
	}
	_, err = os.Stat(absPath)
	return err == nil
}

// URL implements Storage.
func (s *LocalStorage) URL(path string) string {
	return s.baseURL + strings.TrimPrefix(filepath.ToSlash(path), "/")
}

// resolvePath joins path with the base directory and rejects escapes.
func (s *LocalStorage) resolvePath(path string) (string, error) {
	absPath := filepath.Join(s.baseDir, filepath.Clean("/"+path))
	if !strings.HasPrefix(absPath, s.baseDir+string(os.PathSeparator)) && absPath != s.baseDir {
		return "", ErrPathTraversal
	}
	return absPath, nil
}
