package database

import (
	"fmt"

	"github.com/kvenkat9889/latish-Offboarding-Module/internal/apperror"
)

// identityColumns whitelists the duplicate-check fields the API exposes.
// Anything outside this map is rejected before touching the database.
var identityColumns = map[string]string{
	"empId":         "emp_id",
	"contactNumber": "contact_number",
	"personalEmail": "personal_email",
}

// EmployeeRepository handles database operations for employee identity records
type EmployeeRepository struct {
	db DB
}

// NewEmployeeRepository creates a new EmployeeRepository
func NewEmployeeRepository(db DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

// FieldExists reports whether any employee already holds the given value in
// the given identity field. The check does not lock or reserve the value.
func (r *EmployeeRepository) FieldExists(field, value string) (bool, error) {
	column, ok := identityColumns[field]
	if !ok {
		return false, apperror.Newf(apperror.CodeValidation, "unknown identity field: %s", field)
	}

	var count int
	query := fmt.Sprintf(`SELECT COUNT(*) FROM employee_info WHERE %s = $1`, column)
	if err := r.db.Get(&count, query, value); err != nil {
		return false, fmt.Errorf("failed to check %s: %w", column, err)
	}

	return count > 0, nil
}
