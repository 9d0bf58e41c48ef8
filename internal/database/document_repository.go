package database

import (
	"database/sql"
	"fmt"

	"github.com/kvenkat9889/latish-Offboarding-Module/internal/apperror"
	"github.com/kvenkat9889/latish-Offboarding-Module/internal/models"
)

// DocumentRepository handles database operations for uploaded document metadata
type DocumentRepository struct {
	db DB
}

// NewDocumentRepository creates a new DocumentRepository
func NewDocumentRepository(db DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// GetByID retrieves the metadata of one uploaded document
func (r *DocumentRepository) GetByID(id int64) (*models.StoredDocument, error) {
	query := `
		SELECT id, file_name, file_path, file_type
		FROM project_documents
		WHERE id = $1
	`

	doc := &models.StoredDocument{}
	err := r.db.QueryRow(query, id).Scan(&doc.ID, &doc.FileName, &doc.FilePath, &doc.FileType)
	if err == sql.ErrNoRows {
		return nil, apperror.New(apperror.CodeNotFound, "file not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch document: %w", err)
	}

	return doc, nil
}
