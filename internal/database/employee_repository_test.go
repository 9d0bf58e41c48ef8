package database

import (
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kvenkat9889/latish-Offboarding-Module/internal/apperror"
)

func TestFieldExists(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewEmployeeRepository(sqlx.NewDb(db, "sqlmock"))

	t.Run("Value Taken", func(t *testing.T) {
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM employee_info WHERE emp_id`).
			WithArgs("EMP-2041").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		exists, err := repo.FieldExists("empId", "EMP-2041")
		require.NoError(t, err)
		assert.True(t, exists)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Value Free", func(t *testing.T) {
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM employee_info WHERE personal_email`).
			WithArgs("jane@example.com").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		exists, err := repo.FieldExists("personalEmail", "jane@example.com")
		require.NoError(t, err)
		assert.False(t, exists)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Unknown Field", func(t *testing.T) {
		exists, err := repo.FieldExists("fullName", "Jane Perera")
		require.Error(t, err)
		assert.False(t, exists)
		assert.Equal(t, apperror.CodeValidation, apperror.GetCode(err))

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database Error", func(t *testing.T) {
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM employee_info WHERE contact_number`).
			WithArgs("94712345678").
			WillReturnError(fmt.Errorf("database error"))

		exists, err := repo.FieldExists("contactNumber", "94712345678")
		assert.Error(t, err)
		assert.False(t, exists)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
