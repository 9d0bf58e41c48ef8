package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/kvenkat9889/latish-Offboarding-Module/internal/apperror"
	"github.com/kvenkat9889/latish-Offboarding-Module/internal/models"
)

// FileRemover removes an uploaded blob from disk during bulk delete.
// Implementations are best-effort: a missing blob counts as removed and
// failures are logged, never returned, so disk cleanup cannot abort the
// delete transaction.
type FileRemover interface {
	Remove(path string)
}

// SubmissionRepository handles the transactional submission lifecycle
type SubmissionRepository struct {
	db    *sqlx.DB
	files FileRemover
}

// NewSubmissionRepository creates a new SubmissionRepository
func NewSubmissionRepository(db *sqlx.DB, files FileRemover) *SubmissionRepository {
	return &SubmissionRepository{db: db, files: files}
}

// Create persists a validated submission across all six tables in one
// transaction. Document rows reference the final upload paths; the caller
// promotes the staged blobs only after this returns nil. No partial
// submission survives a failure at any step.
func (r *SubmissionRepository) Create(form *models.SubmissionForm, docs []models.DocumentUpload) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var conflicts int
	err = tx.Get(&conflicts,
		`SELECT COUNT(*) FROM employee_info WHERE emp_id = $1 OR contact_number = $2 OR personal_email = $3`,
		form.PersonalInfo.EmpID, form.PersonalInfo.ContactNumber, form.PersonalInfo.PersonalEmail,
	)
	if err != nil {
		return fmt.Errorf("failed to check duplicate identity: %w", err)
	}
	if conflicts > 0 {
		return apperror.New(apperror.CodeConflict, "duplicate employee id, contact number, or email found")
	}

	var employeeID int64
	err = tx.QueryRowx(`
		INSERT INTO employee_info (full_name, emp_id, position, department, last_working_day, contact_number, personal_email)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		form.PersonalInfo.FullName,
		form.PersonalInfo.EmpID,
		form.PersonalInfo.Position,
		form.PersonalInfo.Department,
		form.PersonalInfo.LastDay,
		form.PersonalInfo.ContactNumber,
		form.PersonalInfo.PersonalEmail,
	).Scan(&employeeID)
	if err != nil {
		return fmt.Errorf("failed to create employee record: %w", err)
	}

	var submissionID int64
	err = tx.QueryRowx(`
		INSERT INTO submission_details (employee_id, submission_id, submission_date, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		employeeID,
		form.SubmissionDetails.SubmissionID,
		form.SubmissionDetails.SubmissionDate,
		form.SubmissionDetails.Status,
	).Scan(&submissionID)
	if err != nil {
		return fmt.Errorf("failed to create submission record: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO project_details (submission_id, active_projects, handover_person)
		VALUES ($1, $2, $3)`,
		submissionID, form.ProjectDetails.ActiveProjects, form.ProjectDetails.HandoverPerson,
	)
	if err != nil {
		return fmt.Errorf("failed to create project details: %w", err)
	}

	for _, doc := range docs {
		_, err = tx.Exec(`
			INSERT INTO project_documents (submission_id, file_name, file_path, file_size, file_type)
			VALUES ($1, $2, $3, $4, $5)`,
			submissionID, doc.FileName, doc.FinalPath, doc.Size, doc.ContentType,
		)
		if err != nil {
			return fmt.Errorf("failed to create document record: %w", err)
		}
	}

	for _, hardware := range form.Assets.Hardware {
		_, err = tx.Exec(`
			INSERT INTO assets (submission_id, hardware_type)
			VALUES ($1, $2)`,
			submissionID, hardware,
		)
		if err != nil {
			return fmt.Errorf("failed to create asset record: %w", err)
		}
	}

	if strings.TrimSpace(form.Assets.AdditionalAssets) != "" {
		_, err = tx.Exec(`
			INSERT INTO additional_assets (submission_id, description)
			VALUES ($1, $2)`,
			submissionID, form.Assets.AdditionalAssets,
		)
		if err != nil {
			return fmt.Errorf("failed to create additional assets record: %w", err)
		}
	}

	_, err = tx.Exec(`
		INSERT INTO documentation (submission_id, repositories, access_credentials, knowledge_base, data_privacy_consent)
		VALUES ($1, $2, $3, $4, $5)`,
		submissionID,
		form.Documentation.Repositories,
		form.Documentation.AccessCredentials,
		form.Documentation.KnowledgeBase,
		form.Documentation.DataPrivacyConsent,
	)
	if err != nil {
		return fmt.Errorf("failed to create documentation record: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit submission: %w", err)
	}

	return nil
}

// List returns every submission joined with its employee snapshot and child
// sections, newest submission date first. Documents and hardware are
// aggregated by the database so empty aggregates arrive as [] rather than
// null; missing child rows keep their fields null.
func (r *SubmissionRepository) List() ([]models.SubmissionRecord, error) {
	query := `
		SELECT
			s.submission_id AS submission_ref,
			s.submission_date,
			s.status,
			e.full_name,
			e.emp_id,
			e.position,
			e.department,
			e.last_working_day,
			e.contact_number,
			e.personal_email,
			p.active_projects,
			p.handover_person,
			d.repositories,
			d.access_credentials,
			d.knowledge_base,
			d.data_privacy_consent,
			aa.description AS additional_assets,
			COALESCE((
				SELECT json_agg(json_build_object(
					'id', pd.id,
					'name', pd.file_name,
					'path', pd.file_path,
					'size', pd.file_size,
					'type', pd.file_type
				))
				FROM project_documents pd
				WHERE pd.submission_id = s.id
			), '[]'::json) AS project_docs,
			COALESCE((
				SELECT json_agg(a.hardware_type)
				FROM assets a
				WHERE a.submission_id = s.id
			), '[]'::json) AS hardware
		FROM submission_details s
		JOIN employee_info e ON s.employee_id = e.id
		LEFT JOIN project_details p ON s.id = p.submission_id
		LEFT JOIN documentation d ON s.id = d.submission_id
		LEFT JOIN additional_assets aa ON s.id = aa.submission_id
		ORDER BY s.submission_date DESC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch submissions: %w", err)
	}
	defer rows.Close()

	records := []models.SubmissionRecord{}
	for rows.Next() {
		record, err := scanSubmissionRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read submissions: %w", err)
	}

	return records, nil
}

func scanSubmissionRecord(rows *sql.Rows) (models.SubmissionRecord, error) {
	var (
		record             models.SubmissionRecord
		submissionDate     sql.NullTime
		position           sql.NullString
		department         sql.NullString
		lastWorkingDay     sql.NullTime
		activeProjects     sql.NullString
		handoverPerson     sql.NullString
		repositories       sql.NullString
		accessCredentials  sql.NullString
		knowledgeBase      sql.NullString
		dataPrivacyConsent sql.NullBool
		additionalAssets   sql.NullString
		projectDocsJSON    []byte
		hardwareJSON       []byte
	)

	err := rows.Scan(
		&record.SubmissionDetails.SubmissionID,
		&submissionDate,
		&record.SubmissionDetails.Status,
		&record.PersonalInfo.FullName,
		&record.PersonalInfo.EmpID,
		&position,
		&department,
		&lastWorkingDay,
		&record.PersonalInfo.ContactNumber,
		&record.PersonalInfo.PersonalEmail,
		&activeProjects,
		&handoverPerson,
		&repositories,
		&accessCredentials,
		&knowledgeBase,
		&dataPrivacyConsent,
		&additionalAssets,
		&projectDocsJSON,
		&hardwareJSON,
	)
	if err != nil {
		return record, fmt.Errorf("failed to scan submission: %w", err)
	}

	if submissionDate.Valid {
		record.SubmissionDetails.SubmissionDate = submissionDate.Time.Format("2006-01-02")
	}
	record.PersonalInfo.Position = position.String
	record.PersonalInfo.Department = department.String
	if lastWorkingDay.Valid {
		record.PersonalInfo.LastDay = lastWorkingDay.Time.Format("2006-01-02")
	}

	record.ProjectDetails.ActiveProjects = nullableString(activeProjects)
	record.ProjectDetails.HandoverPerson = nullableString(handoverPerson)
	record.Documentation.Repositories = nullableString(repositories)
	record.Documentation.AccessCredentials = nullableString(accessCredentials)
	record.Documentation.KnowledgeBase = nullableString(knowledgeBase)
	if dataPrivacyConsent.Valid {
		record.Documentation.DataPrivacyConsent = &dataPrivacyConsent.Bool
	}
	record.Assets.AdditionalAssets = nullableString(additionalAssets)

	if err := json.Unmarshal(projectDocsJSON, &record.ProjectDetails.ProjectDocs); err != nil {
		return record, fmt.Errorf("failed to decode project documents: %w", err)
	}
	if record.ProjectDetails.ProjectDocs == nil {
		record.ProjectDetails.ProjectDocs = []models.ProjectDocument{}
	}

	if err := json.Unmarshal(hardwareJSON, &record.Assets.Hardware); err != nil {
		return record, fmt.Errorf("failed to decode hardware list: %w", err)
	}
	if record.Assets.Hardware == nil {
		record.Assets.Hardware = []string{}
	}

	return record, nil
}

func nullableString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	value := s.String
	return &value
}

// UpdateStatus sets the workflow status of the submission with the given
// external reference and refreshes its updated timestamp.
func (r *SubmissionRepository) UpdateStatus(submissionRef, status string) error {
	var id int64
	err := r.db.QueryRow(`
		UPDATE submission_details
		SET status = $1, updated_at = CURRENT_TIMESTAMP
		WHERE submission_id = $2
		RETURNING id`,
		status, submissionRef,
	).Scan(&id)
	if err == sql.ErrNoRows {
		return apperror.New(apperror.CodeNotFound, "submission not found")
	}
	if err != nil {
		return fmt.Errorf("failed to update submission status: %w", err)
	}

	return nil
}

// referenceMatch normalizes stored references the same way NormalizeReference
// normalizes inputs, so lookups tolerate whitespace and control characters on
// either side.
const referenceMatch = `UPPER(TRIM(REGEXP_REPLACE(submission_id, '[\r\n\t]', '', 'g')))`

// NormalizeReference prepares an external submission reference for matching:
// surrounding whitespace is trimmed, embedded CR/LF/TAB characters stripped,
// and the result uppercased for case-insensitive comparison.
func NormalizeReference(ref string) string {
	ref = strings.TrimSpace(ref)
	ref = strings.NewReplacer("\r", "", "\n", "", "\t", "").Replace(ref)
	return strings.ToUpper(ref)
}

// Delete removes every submission matching the given external references,
// together with its child rows, uploaded blobs and employee record, inside a
// serializable transaction. Blob removal is best-effort and already-removed
// blobs are not restored on rollback. Returns the number of submission rows
// actually deleted; unknown references delete nothing and do not error.
func (r *SubmissionRepository) Delete(refs []string) (int, error) {
	normalized := make([]string, 0, len(refs))
	for _, ref := range refs {
		if n := NormalizeReference(ref); n != "" {
			normalized = append(normalized, n)
		}
	}
	if len(normalized) == 0 {
		return 0, nil
	}

	tx, err := r.db.Beginx()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`SET TRANSACTION ISOLATION LEVEL SERIALIZABLE`); err != nil {
		return 0, fmt.Errorf("failed to set isolation level: %w", err)
	}

	var filePaths []string
	err = tx.Select(&filePaths, `
		SELECT pd.file_path
		FROM project_documents pd
		WHERE pd.submission_id IN (
			SELECT id FROM submission_details WHERE `+referenceMatch+` = ANY($1)
		)`,
		pq.Array(normalized),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve document paths: %w", err)
	}

	for _, path := range filePaths {
		r.files.Remove(path)
	}

	rows, err := tx.Query(`
		DELETE FROM submission_details
		WHERE `+referenceMatch+` = ANY($1)
		RETURNING employee_id`,
		pq.Array(normalized),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to delete submissions: %w", err)
	}

	var employeeIDs []int64
	for rows.Next() {
		var employeeID int64
		if err := rows.Scan(&employeeID); err != nil {
			rows.Close()
			return 0, fmt.Errorf("failed to scan deleted submission: %w", err)
		}
		employeeIDs = append(employeeIDs, employeeID)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return 0, fmt.Errorf("failed to read deleted submissions: %w", err)
	}
	rows.Close()

	if len(employeeIDs) > 0 {
		if _, err := tx.Exec(`DELETE FROM employee_info WHERE id = ANY($1)`, pq.Array(employeeIDs)); err != nil {
			return 0, fmt.Errorf("failed to delete employee records: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit delete transaction: %w", err)
	}

	return len(employeeIDs), nil
}
