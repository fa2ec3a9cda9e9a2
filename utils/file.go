package utils

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// UploadPath returns the directory uploaded documents are stored in.
func UploadPath() string {
	if p := os.Getenv("UPLOAD_PATH"); p != "" {
		return p
	}
	return "./uploads"
}

// EnsureUploadDir creates the upload directory if it does not exist.
func EnsureUploadDir() error {
	return os.MkdirAll(UploadPath(), os.ModePerm)
}

// StoredFilename derives a unique on-disk name for an uploaded file,
// keeping only the original extension. Uploaded names are untrusted and
// never used as paths.
func StoredFilename(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return uuid.NewString() + ext
}
