package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validForm() SubmissionForm {
	return SubmissionForm{
		PersonalInfo: PersonalInfo{
			FullName:      "Jane Perera",
			EmpID:         "EMP-2041",
			Position:      "Engineer",
			Department:    "Platform",
			LastDay:       "2026-09-30",
			ContactNumber: "+94 71 234 5678",
			PersonalEmail: "Jane.Perera@Example.com",
		},
		ProjectDetails: ProjectDetails{
			ActiveProjects: "Billing migration",
			HandoverPerson: "S. Silva",
		},
		Assets: Assets{
			Hardware:         []string{"Laptop", "Access Card"},
			AdditionalAssets: "Monitor stand",
		},
		Documentation: Documentation{
			Repositories:       "github.com/example/billing",
			AccessCredentials:  "Revoked",
			KnowledgeBase:      "Confluence",
			DataPrivacyConsent: true,
		},
		SubmissionDetails: SubmissionDetails{
			SubmissionID:   "OFF-1001",
			SubmissionDate: "2026-08-31",
		},
	}
}

func TestSubmissionFormValidate(t *testing.T) {
	t.Run("Valid Form Normalizes Identity", func(t *testing.T) {
		form := validForm()
		require.NoError(t, form.Validate())

		assert.Equal(t, "EMP-2041", form.PersonalInfo.EmpID)
		assert.Equal(t, "94712345678", form.PersonalInfo.ContactNumber)
		assert.Equal(t, "jane.perera@example.com", form.PersonalInfo.PersonalEmail)
	})

	t.Run("Defaults Status To Pending", func(t *testing.T) {
		form := validForm()
		require.NoError(t, form.Validate())
		assert.Equal(t, "Pending", form.SubmissionDetails.Status)
	})

	t.Run("Keeps Explicit Status", func(t *testing.T) {
		form := validForm()
		form.SubmissionDetails.Status = "Approved"
		require.NoError(t, form.Validate())
		assert.Equal(t, "Approved", form.SubmissionDetails.Status)
	})

	t.Run("Missing Full Name", func(t *testing.T) {
		form := validForm()
		form.PersonalInfo.FullName = "  "
		err := form.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "fullName")
	})

	t.Run("Invalid Employee ID", func(t *testing.T) {
		form := validForm()
		form.PersonalInfo.EmpID = "EMP 2041"
		assert.Error(t, form.Validate())
	})

	t.Run("Invalid Contact Number", func(t *testing.T) {
		form := validForm()
		form.PersonalInfo.ContactNumber = "12345"
		assert.Error(t, form.Validate())
	})

	t.Run("Invalid Email", func(t *testing.T) {
		form := validForm()
		form.PersonalInfo.PersonalEmail = "not-an-email"
		assert.Error(t, form.Validate())
	})

	t.Run("Invalid Last Day", func(t *testing.T) {
		form := validForm()
		form.PersonalInfo.LastDay = "30/09/2026"
		err := form.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "lastDay")
	})

	t.Run("Missing Submission ID", func(t *testing.T) {
		form := validForm()
		form.SubmissionDetails.SubmissionID = ""
		err := form.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "submissionId")
	})

	t.Run("Invalid Submission Date", func(t *testing.T) {
		form := validForm()
		form.SubmissionDetails.SubmissionDate = "yesterday"
		err := form.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "submissionDate")
	})

	t.Run("Blank Hardware Entry", func(t *testing.T) {
		form := validForm()
		form.Assets.Hardware = []string{"Laptop", "  "}
		err := form.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "hardware")
	})

	t.Run("No Hardware Is Fine", func(t *testing.T) {
		form := validForm()
		form.Assets.Hardware = nil
		assert.NoError(t, form.Validate())
	})
}
