package filestorage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yigit/consultdesk/internal/pkg/logger"
)

// PublicPrefix is the URL prefix under which stored files are served
const PublicPrefix = "/uploads"

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// LocalStorage handles saving files to the local filesystem.
type LocalStorage struct {
	basePath string
	now      func() time.Time
}

// NewLocalStorage creates a LocalStorage rooted at basePath, creating it if needed.
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{
		basePath: basePath,
		now:      time.Now,
	}, nil
}

// BasePath returns the storage root on disk
func (ls *LocalStorage) BasePath() string {
	return ls.basePath
}

// SanitizeFilename reduces an uploaded filename to a safe base name
func SanitizeFilename(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	base = strings.Join(strings.Fields(base), "-")
	base = unsafeFilenameChars.ReplaceAllString(base, "")
	base = strings.TrimLeft(base, ".")
	if base == "" {
		return "file"
	}
	return base
}

// Save stores the upload as <unix-millis>-<sanitized name> under subDir
func (ls *LocalStorage) Save(fileHeader *multipart.FileHeader, subDir string) (string, error) {
	if fileHeader == nil {
		return "", errors.New("no file provided")
	}

	src, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	subDir = path.Clean("/" + filepath.ToSlash(subDir))[1:]
	dir := filepath.Join(ls.basePath, filepath.FromSlash(subDir))
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", dir).Msg("Failed to create subdirectory")
		return "", fmt.Errorf("failed to create subdirectory: %w", err)
	}

	name := fmt.Sprintf("%d-%s", ls.now().UnixMilli(), SanitizeFilename(fileHeader.Filename))
	dst, err := os.OpenFile(filepath.Join(dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, os.ErrExist) {
		// Same millisecond and same name
		name = fmt.Sprintf("%d-%s-%s", ls.now().UnixMilli(), uuid.NewString()[:8], SanitizeFilename(fileHeader.Filename))
		dst, err = os.OpenFile(filepath.Join(dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	}
	if err != nil {
		logger.Error().Err(err).Str("dir", dir).Msg("Failed to create destination file")
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}

	dstPath := dst.Name()
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		_ = os.Remove(dstPath)
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to copy uploaded file content")
		return "", fmt.Errorf("failed to save file content: %w", err)
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("failed to flush file content: %w", err)
	}

	publicPath := path.Join(PublicPrefix, subDir, name)
	logger.Debug().Str("filename", fileHeader.Filename).Str("publicPath", publicPath).Msg("File saved")
	return publicPath, nil
}

// FullPath resolves a public path to a file under the storage root
func (ls *LocalStorage) FullPath(publicPath string) (string, error) {
	rel := strings.TrimPrefix(filepath.ToSlash(publicPath), PublicPrefix)
	rel = path.Clean("/" + rel)
	if rel == "/" {
		return "", fmt.Errorf("invalid file path: %q", publicPath)
	}
	return filepath.Join(ls.basePath, filepath.FromSlash(rel[1:])), nil
}

// Delete removes a stored file. A file that is already gone counts as deleted.
func (ls *LocalStorage) Delete(publicPath string) error {
	if publicPath == "" {
		return nil
	}

	physicalPath, err := ls.FullPath(publicPath)
	if err != nil {
		return err
	}

	if err := os.Remove(physicalPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Warn().Str("path", physicalPath).Msg("File to delete does not exist")
			return nil
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}

	logger.Debug().Str("path", physicalPath).Msg("File deleted")
	return nil
}
