package filestorage

import (
	"mime/multipart"
)

// FileStorage defines the interface for file storage operations
type FileStorage interface {
	// Save stores the upload under subDir and returns its public path
	Save(fileHeader *multipart.FileHeader, subDir string) (string, error)

	// Delete removes a file by the public path returned from Save
	Delete(publicPath string) error

	// FullPath resolves a public path to its location on disk
	FullPath(publicPath string) (string, error)
}
