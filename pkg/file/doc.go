// Package file stores uploaded files on local disk or S3-compatible object
// storage behind a common Storage interface.
//
// The service uses it for profile pictures only, so the surface is small:
// save, delete, existence check, and public URL resolution, with image MIME
// validation helpers for handlers.
package file
