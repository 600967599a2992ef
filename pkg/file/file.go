package file

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"regexp"
	"strings"
)

// File describes a stored object.
type File struct {
	Filename string
	Size     int64
	MIMEType string
	URL      string
	Path     string
}

// Storage is implemented by the local-disk and S3 backends.
type Storage interface {
	// Save stores the uploaded file under path and returns its metadata.
	Save(ctx context.Context, fh *multipart.FileHeader, path string) (*File, error)
	// Delete removes a stored file. Deleting a missing file is not an error.
	Delete(ctx context.Context, path string) error
	// Exists reports whether a file is present at path.
	Exists(ctx context.Context, path string) bool
	// URL returns the public URL for a stored path.
	URL(path string) string
}

var imageMIMETypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// IsImage reports whether the upload is an image, checking content sniffing
// first and falling back to the extension. The dual check stops renamed
// binaries from passing as images.
func IsImage(fh *multipart.FileHeader) bool {
	if fh == nil {
		return false
	}

	if mimeType, err := DetectMIMEType(fh); err == nil && mimeType != "" {
		if imageMIMETypes[mimeType] {
			return true
		}
		// SVG and friends sniff as text/xml; only the extension knows.
		if !strings.HasPrefix(mimeType, "image/") && mimeType != "application/octet-stream" {
			return false
		}
	}

	return imageExtensions[strings.ToLower(filepath.Ext(fh.Filename))]
}

// DetectMIMEType sniffs the content type from the first 512 bytes.
func DetectMIMEType(fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer func() { _ = src.Close() }()

	buf := make([]byte, 512)
	n, err := src.Read(buf)
	if err != nil && err != io.EOF {
		return "", err
	}

	mimeType := http.DetectContentType(buf[:n])
	// Strip parameters like "; charset=utf-8"
	if idx := strings.Index(mimeType, ";"); idx != -1 {
		mimeType = strings.TrimSpace(mimeType[:idx])
	}
	return mimeType, nil
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// SanitizeFilename strips directory components and characters that are not
// filesystem-safe.
func SanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = unsafeFilenameChars.ReplaceAllString(name, "_")
	if name == "" || name == "." || name == ".." {
		return "upload"
	}
	return name
}
