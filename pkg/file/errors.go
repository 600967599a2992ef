package file

import "errors"

var (
	// ErrInvalidConfig indicates incomplete storage configuration.
	ErrInvalidConfig = errors.New("file: invalid storage config")

	// ErrNilFileHeader indicates a nil multipart file header.
	ErrNilFileHeader = errors.New("file: nil file header")

	// ErrNotAnImage indicates the upload failed image validation.
	ErrNotAnImage = errors.New("file: not an image")

	// ErrPathTraversal indicates the requested path escapes the base directory.
	ErrPathTraversal = errors.New("file: path escapes storage root")

	// ErrFileNotFound indicates the object does not exist.
	ErrFileNotFound = errors.New("file: not found")

	// ErrAccessDenied indicates the storage backend rejected credentials.
	ErrAccessDenied = errors.New("file: access denied")

	// ErrSaveFailed indicates the write to the backend failed.
	ErrSaveFailed = errors.New("file: save failed")
)
