package filestorage

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/yigit/consultdesk/internal/pkg/apperrors"
)

// UploadPolicy restricts what an upload endpoint accepts
type UploadPolicy struct {
	MaxBytes   int64
	Extensions []string
	MIMETypes  []string
}

// DocumentUploadPolicy accepts scanned images, PDFs and office documents
func DocumentUploadPolicy(maxBytes int64) UploadPolicy {
	return UploadPolicy{
		MaxBytes:   maxBytes,
		Extensions: []string{".jpeg", ".jpg", ".png", ".pdf", ".doc", ".docx", ".xls", ".xlsx"},
		MIMETypes: []string{
			"image/jpeg",
			"image/png",
			"application/pdf",
			"application/msword",
			"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
			"application/vnd.ms-excel",
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			"application/x-ole-storage",
			"application/zip",
		},
	}
}

// CSVUploadPolicy accepts comma separated text files
func CSVUploadPolicy(maxBytes int64) UploadPolicy {
	return UploadPolicy{
		MaxBytes:   maxBytes,
		Extensions: []string{".csv"},
		MIMETypes:  []string{"text/csv", "text/plain"},
	}
}

// Validate checks size, extension and sniffed content type of an upload
func (p UploadPolicy) Validate(fileHeader *multipart.FileHeader) error {
	if fileHeader == nil {
		return apperrors.NewCustomError(apperrors.ErrFileRequired, "Please upload a file")
	}
	if p.MaxBytes > 0 && fileHeader.Size > p.MaxBytes {
		return apperrors.NewCustomError(apperrors.ErrFileTooLarge,
			fmt.Sprintf("File exceeds the %d MB limit", p.MaxBytes>>20))
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !contains(p.Extensions, ext) {
		return apperrors.NewCustomError(apperrors.ErrFileTypeNotAllowed,
			fmt.Sprintf("File extension %q is not allowed", ext))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	detected, err := mimetype.DetectReader(file)
	if err != nil {
		return fmt.Errorf("failed to detect file type: %w", err)
	}

	for m := detected; m != nil; m = m.Parent() {
		if contains(p.MIMETypes, strings.SplitN(m.String(), ";", 2)[0]) {
			return nil
		}
	}
	return apperrors.NewCustomError(apperrors.ErrFileTypeNotAllowed,
		fmt.Sprintf("File content type %s is not allowed", detected.String()))
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
