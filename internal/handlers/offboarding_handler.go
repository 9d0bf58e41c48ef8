package handlers

import (
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/kvenkat9889/latish-Offboarding-Module/internal/apperror"
	"github.com/kvenkat9889/latish-Offboarding-Module/internal/database"
	"github.com/kvenkat9889/latish-Offboarding-Module/internal/models"
	"github.com/kvenkat9889/latish-Offboarding-Module/internal/services"
)

// allowedDocumentTypes are the content types accepted for projectDocs uploads
var allowedDocumentTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"text/plain": true,
	"image/jpeg": true,
	"image/png":  true,
}

// OffboardingHandler serves the offboarding intake and HR dashboard endpoints
type OffboardingHandler struct {
	submissionRepo *database.SubmissionRepository
	employeeRepo   *database.EmployeeRepository
	documentRepo   *database.DocumentRepository
	fileStore      *services.FileStore
	maxFileSize    int64
	maxFiles       int
	logger         *logrus.Logger
}

// NewOffboardingHandler creates a new OffboardingHandler
func NewOffboardingHandler(
	submissionRepo *database.SubmissionRepository,
	employeeRepo *database.EmployeeRepository,
	documentRepo *database.DocumentRepository,
	fileStore *services.FileStore,
	maxFileSize int64,
	maxFiles int,
	logger *logrus.Logger,
) *OffboardingHandler {
	return &OffboardingHandler{
		submissionRepo: submissionRepo,
		employeeRepo:   employeeRepo,
		documentRepo:   documentRepo,
		fileStore:      fileStore,
		maxFileSize:    maxFileSize,
		maxFiles:       maxFiles,
		logger:         logger,
	}
}

// respondError maps a classified error onto the HTTP boundary. Unclassified
// failures log the cause and return a generic body.
func (h *OffboardingHandler) respondError(c *gin.Context, err error) {
	switch apperror.GetCode(err) {
	case apperror.CodeValidation:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case apperror.CodeNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case apperror.CodeConflict:
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.logger.WithError(err).Error("Request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// Submit accepts a multipart offboarding form: five JSON-encoded sections plus
// up to maxFiles attachments under projectDocs. Attachments are staged on disk,
// the submission is written in one transaction, and staged blobs are promoted
// into the served uploads directory only after commit.
// POST /api/offboarding/submit
func (h *OffboardingHandler) Submit(c *gin.Context) {
	form, err := h.decodeForm(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if err := form.Validate(); err != nil {
		h.respondError(c, apperror.Wrap(apperror.CodeValidation, err.Error(), err))
		return
	}

	files, err := h.collectFiles(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	docs := make([]models.DocumentUpload, 0, len(files))
	for _, header := range files {
		doc, stageErr := h.fileStore.Stage(header)
		if stageErr != nil {
			h.fileStore.Discard(docs)
			h.respondError(c, stageErr)
			return
		}
		docs = append(docs, doc)
	}

	if err := h.submissionRepo.Create(form, docs); err != nil {
		h.fileStore.Discard(docs)
		h.respondError(c, err)
		return
	}

	h.fileStore.Promote(docs)

	h.logger.WithFields(logrus.Fields{
		"submission_id": form.SubmissionDetails.SubmissionID,
		"emp_id":        form.PersonalInfo.EmpID,
		"documents":     len(docs),
		"hardware":      len(form.Assets.Hardware),
	}).Info("Offboarding submission stored")

	c.JSON(http.StatusCreated, gin.H{
		"message":      "Offboarding submission successful",
		"submissionId": form.SubmissionDetails.SubmissionID,
	})
}

// decodeForm parses the five JSON-encoded multipart fields into a typed form
func (h *OffboardingHandler) decodeForm(c *gin.Context) (*models.SubmissionForm, error) {
	form := &models.SubmissionForm{}
	sections := []struct {
		field string
		dest  interface{}
	}{
		{"personalInfo", &form.PersonalInfo},
		{"projectDetails", &form.ProjectDetails},
		{"assets", &form.Assets},
		{"documentation", &form.Documentation},
		{"submissionDetails", &form.SubmissionDetails},
	}

	for _, section := range sections {
		raw := c.PostForm(section.field)
		if raw == "" {
			return nil, apperror.Newf(apperror.CodeValidation, "%s is required", section.field)
		}
		if err := json.Unmarshal([]byte(raw), section.dest); err != nil {
			return nil, apperror.Newf(apperror.CodeValidation, "%s is not valid JSON", section.field)
		}
	}

	return form, nil
}

// collectFiles validates the projectDocs attachments against the count, size
// and content-type limits before anything touches disk
func (h *OffboardingHandler) collectFiles(c *gin.Context) ([]*multipart.FileHeader, error) {
	multipartForm, err := c.MultipartForm()
	if err != nil {
		return nil, apperror.New(apperror.CodeValidation, "invalid multipart payload")
	}

	files := multipartForm.File["projectDocs"]
	if len(files) > h.maxFiles {
		return nil, apperror.Newf(apperror.CodeValidation, "at most %d documents are allowed", h.maxFiles)
	}

	for _, header := range files {
		if header.Size > h.maxFileSize {
			return nil, apperror.Newf(apperror.CodeValidation,
				"%s exceeds the %dMB size limit", services.SanitizeFileName(header.Filename), h.maxFileSize/(1024*1024))
		}
		contentType := header.Header.Get("Content-Type")
		if !allowedDocumentTypes[contentType] {
			return nil, apperror.Newf(apperror.CodeValidation,
				"%s has unsupported type %s", services.SanitizeFileName(header.Filename), contentType)
		}
	}

	return files, nil
}

// ListSubmissions returns the denormalized dashboard read model
// GET /api/offboarding/submissions
func (h *OffboardingHandler) ListSubmissions(c *gin.Context) {
	records, err := h.submissionRepo.List()
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, records)
}

// UpdateStatusRequest is the body of the status update endpoint
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus sets the workflow status of one submission
// PATCH /api/offboarding/submissions/:submissionId/status
func (h *OffboardingHandler) UpdateStatus(c *gin.Context) {
	submissionRef := c.Param("submissionId")

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, apperror.New(apperror.CodeValidation, "status is required"))
		return
	}

	if err := h.submissionRepo.UpdateStatus(submissionRef, req.Status); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Submission status updated to %s", req.Status)})
}

// DeleteSubmissionsRequest is the body of the bulk delete endpoint
type DeleteSubmissionsRequest struct {
	SubmissionIDs []string `json:"submissionIds"`
}

// DeleteSubmissions removes the given submissions, their child rows, uploaded
// blobs and employee records
// DELETE /api/offboarding/submissions
func (h *OffboardingHandler) DeleteSubmissions(c *gin.Context) {
	var req DeleteSubmissionsRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.SubmissionIDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "submissionIds must be a non-empty array"})
		return
	}

	deleted, err := h.submissionRepo.Delete(req.SubmissionIDs)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.logger.WithFields(logrus.Fields{
		"requested": len(req.SubmissionIDs),
		"deleted":   deleted,
	}).Info("Submissions deleted")

	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("%d submissions deleted", deleted)})
}

// DownloadFile streams one uploaded document with its original name and type
// GET /api/offboarding/files/:fileId
func (h *OffboardingHandler) DownloadFile(c *gin.Context) {
	fileID, err := strconv.ParseInt(c.Param("fileId"), 10, 64)
	if err != nil {
		h.respondError(c, apperror.New(apperror.CodeValidation, "fileId must be numeric"))
		return
	}

	doc, err := h.documentRepo.GetByID(fileID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if _, err := os.Stat(doc.FilePath); err != nil {
		h.respondError(c, apperror.New(apperror.CodeNotFound, "file not found"))
		return
	}

	c.Header("Content-Type", doc.FileType)
	c.FileAttachment(doc.FilePath, doc.FileName)
}

// CheckDuplicateRequest is the body of the duplicate pre-check endpoint
type CheckDuplicateRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value" binding:"required"`
}

// CheckDuplicate reports whether an identity field value is already taken
// POST /api/offboarding/check-duplicate
func (h *OffboardingHandler) CheckDuplicate(c *gin.Context) {
	var req CheckDuplicateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, apperror.New(apperror.CodeValidation, "field and value are required"))
		return
	}

	exists, err := h.employeeRepo.FieldExists(req.Field, req.Value)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"isDuplicate": exists})
}
