package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/kvenkat9889/latish-Offboarding-Module/internal/models"
)

// FileStore manages uploaded document blobs on the local filesystem. Blobs
// are staged during request handling and promoted into the served uploads
// directory only after the intake transaction commits, so a failed intake
// never leaves an orphan under /uploads.
type FileStore struct {
	uploadDir  string
	stagingDir string
	logger     *logrus.Logger
}

// NewFileStore creates a FileStore, creating both directories if needed
func NewFileStore(uploadDir, stagingDir string, logger *logrus.Logger) (*FileStore, error) {
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	if err := os.MkdirAll(stagingDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create staging directory: %w", err)
	}

	return &FileStore{
		uploadDir:  uploadDir,
		stagingDir: stagingDir,
		logger:     logger,
	}, nil
}

// Stage copies an uploaded file into the staging area and computes the final
// path its database row will reference: <unix-ms-timestamp>-<original-name>.
func (s *FileStore) Stage(header *multipart.FileHeader) (models.DocumentUpload, error) {
	src, err := header.Open()
	if err != nil {
		return models.DocumentUpload{}, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	stagedPath := filepath.Join(s.stagingDir, uuid.NewString())
	dst, err := os.Create(stagedPath)
	if err != nil {
		return models.DocumentUpload{}, fmt.Errorf("failed to create staged file: %w", err)
	}

	written, err := io.Copy(dst, src)
	closeErr := dst.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(stagedPath)
		return models.DocumentUpload{}, fmt.Errorf("failed to write staged file: %w", err)
	}

	fileName := SanitizeFileName(header.Filename)
	return models.DocumentUpload{
		FileName:    fileName,
		ContentType: header.Header.Get("Content-Type"),
		Size:        written,
		StagedPath:  stagedPath,
		FinalPath:   filepath.Join(s.uploadDir, fmt.Sprintf("%d-%s", time.Now().UnixMilli(), fileName)),
	}, nil
}

// Promote moves committed blobs from staging into the uploads directory
func (s *FileStore) Promote(docs []models.DocumentUpload) {
	for _, doc := range docs {
		if err := os.Rename(doc.StagedPath, doc.FinalPath); err != nil {
			s.logger.WithError(err).WithField("path", doc.FinalPath).Error("Failed to promote staged upload")
		}
	}
}

// Discard removes the staged blobs of a failed intake
func (s *FileStore) Discard(docs []models.DocumentUpload) {
	for _, doc := range docs {
		if err := os.Remove(doc.StagedPath); err != nil && !os.IsNotExist(err) {
			s.logger.WithError(err).WithField("path", doc.StagedPath).Warn("Failed to discard staged upload")
		}
	}
}

// Remove deletes one served blob. A missing file is treated as already
// removed; failures are logged and swallowed so cleanup cannot abort the
// caller's transaction.
func (s *FileStore) Remove(path string) {
	err := os.Remove(path)
	switch {
	case err == nil:
	case os.IsNotExist(err):
		s.logger.WithField("path", path).Info("File already removed")
	default:
		s.logger.WithError(err).WithField("path", path).Error("Failed to remove file")
	}
}

// SanitizeFileName strips path components and NUL bytes from an uploaded
// file name
func SanitizeFileName(name string) string {
	cleaned := strings.TrimSpace(filepath.Base(name))
	cleaned = strings.ReplaceAll(cleaned, "\x00", "")
	if cleaned == "" || cleaned == "." || cleaned == string(filepath.Separator) {
		return "document.bin"
	}
	return cleaned
}
