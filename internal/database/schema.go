package database

import "fmt"

// schemaStatements bootstrap the offboarding tables. Statements are idempotent
// so the service can start against a fresh database. Child tables cascade on
// submission delete; employee rows are removed explicitly by the delete
// transaction because the FK points the other way.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS employee_info (
		id SERIAL PRIMARY KEY,
		full_name TEXT NOT NULL,
		emp_id TEXT NOT NULL UNIQUE,
		position TEXT,
		department TEXT,
		last_working_day DATE NOT NULL,
		contact_number TEXT NOT NULL UNIQUE,
		personal_email TEXT NOT NULL UNIQUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS submission_details (
		id SERIAL PRIMARY KEY,
		employee_id INTEGER NOT NULL REFERENCES employee_info(id) ON DELETE CASCADE,
		submission_id TEXT NOT NULL UNIQUE,
		submission_date DATE NOT NULL,
		status TEXT NOT NULL DEFAULT 'Pending',
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS project_details (
		id SERIAL PRIMARY KEY,
		submission_id INTEGER NOT NULL REFERENCES submission_details(id) ON DELETE CASCADE,
		active_projects TEXT,
		handover_person TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS project_documents (
		id SERIAL PRIMARY KEY,
		submission_id INTEGER NOT NULL REFERENCES submission_details(id) ON DELETE CASCADE,
		file_name TEXT NOT NULL,
		file_path TEXT NOT NULL,
		file_size BIGINT NOT NULL,
		file_type TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS assets (
		id SERIAL PRIMARY KEY,
		submission_id INTEGER NOT NULL REFERENCES submission_details(id) ON DELETE CASCADE,
		hardware_type TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS additional_assets (
		id SERIAL PRIMARY KEY,
		submission_id INTEGER NOT NULL REFERENCES submission_details(id) ON DELETE CASCADE,
		description TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS documentation (
		id SERIAL PRIMARY KEY,
		submission_id INTEGER NOT NULL REFERENCES submission_details(id) ON DELETE CASCADE,
		repositories TEXT,
		access_credentials TEXT,
		knowledge_base TEXT,
		data_privacy_consent BOOLEAN NOT NULL DEFAULT FALSE
	)`,
}

// EnsureSchema applies the offboarding schema at startup
func EnsureSchema(db DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}
	return nil
}
