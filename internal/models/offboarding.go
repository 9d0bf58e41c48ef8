package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/kvenkat9889/latish-Offboarding-Module/pkg/validator"
)

// PersonalInfo is the identity section of the offboarding form. EmpID,
// ContactNumber and PersonalEmail are each unique across all employees.
type PersonalInfo struct {
	FullName      string `json:"fullName"`
	EmpID         string `json:"empId"`
	Position      string `json:"position"`
	Department    string `json:"department"`
	LastDay       string `json:"lastDay"`
	ContactNumber string `json:"contactNumber"`
	PersonalEmail string `json:"personalEmail"`
}

// ProjectDetails is the handover section of the offboarding form
type ProjectDetails struct {
	ActiveProjects string `json:"activeProjects"`
	HandoverPerson string `json:"handoverPerson"`
}

// Assets is the hardware-return section of the offboarding form
type Assets struct {
	Hardware         []string `json:"hardware"`
	AdditionalAssets string   `json:"additionalAssets"`
}

// Documentation is the compliance section of the offboarding form
type Documentation struct {
	Repositories       string `json:"repositories"`
	AccessCredentials  string `json:"accessCredentials"`
	KnowledgeBase      string `json:"knowledgeBase"`
	DataPrivacyConsent bool   `json:"dataPrivacyConsent"`
}

// SubmissionDetails carries the caller-supplied submission metadata.
// SubmissionID is the external reference used in URLs and delete requests,
// distinct from the internal row id.
type SubmissionDetails struct {
	SubmissionID   string `json:"submissionId"`
	SubmissionDate string `json:"submissionDate"`
	Status         string `json:"status"`
}

// SubmissionForm is the complete typed offboarding submission assembled from
// the five JSON-encoded multipart fields.
type SubmissionForm struct {
	PersonalInfo      PersonalInfo
	ProjectDetails    ProjectDetails
	Assets            Assets
	Documentation     Documentation
	SubmissionDetails SubmissionDetails
}

var identity = validator.NewIdentityValidator()

// Validate validates the form at the service boundary. Identity fields are
// normalized in place (trimmed id, digits-only contact, lowercased email).
func (f *SubmissionForm) Validate() error {
	if strings.TrimSpace(f.PersonalInfo.FullName) == "" {
		return fmt.Errorf("fullName is required")
	}

	empID, err := identity.ValidateEmployeeID(f.PersonalInfo.EmpID)
	if err != nil {
		return err
	}
	f.PersonalInfo.EmpID = empID

	contact, err := identity.ValidateContactNumber(f.PersonalInfo.ContactNumber)
	if err != nil {
		return err
	}
	f.PersonalInfo.ContactNumber = contact

	email, err := identity.ValidateEmail(f.PersonalInfo.PersonalEmail)
	if err != nil {
		return err
	}
	f.PersonalInfo.PersonalEmail = email

	if err := validateDate("lastDay", f.PersonalInfo.LastDay); err != nil {
		return err
	}

	if strings.TrimSpace(f.SubmissionDetails.SubmissionID) == "" {
		return fmt.Errorf("submissionId is required")
	}
	if err := validateDate("submissionDate", f.SubmissionDetails.SubmissionDate); err != nil {
		return err
	}
	if f.SubmissionDetails.Status == "" {
		f.SubmissionDetails.Status = "Pending"
	}

	for _, hw := range f.Assets.Hardware {
		if strings.TrimSpace(hw) == "" {
			return fmt.Errorf("hardware entries must not be empty")
		}
	}

	return nil
}

func validateDate(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", field)
	}
	if _, err := time.Parse("2006-01-02", value); err != nil {
		return fmt.Errorf("%s must be a date in YYYY-MM-DD format", field)
	}
	return nil
}

// ProjectDocument is one uploaded attachment as rendered on the dashboard
type ProjectDocument struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Path string `json:"path"`
	Size int64  `json:"size"`
	Type string `json:"type"`
}

// ProjectDetailsView is the handover section of a dashboard entry. Pointer
// fields stay null when the submission has no project_details row.
type ProjectDetailsView struct {
	ActiveProjects *string           `json:"activeProjects"`
	HandoverPerson *string           `json:"handoverPerson"`
	ProjectDocs    []ProjectDocument `json:"projectDocs"`
}

// AssetsView is the hardware section of a dashboard entry. Hardware is always
// a sequence, empty when nothing was returned.
type AssetsView struct {
	Hardware         []string `json:"hardware"`
	AdditionalAssets *string  `json:"additionalAssets"`
}

// DocumentationView is the compliance section of a dashboard entry
type DocumentationView struct {
	Repositories       *string `json:"repositories"`
	AccessCredentials  *string `json:"accessCredentials"`
	KnowledgeBase      *string `json:"knowledgeBase"`
	DataPrivacyConsent *bool   `json:"dataPrivacyConsent"`
}

// SubmissionRecord is one denormalized dashboard entry: the submission joined
// with its employee snapshot and child sections, newest first.
type SubmissionRecord struct {
	SubmissionDetails SubmissionDetails  `json:"submissionDetails"`
	PersonalInfo      PersonalInfo       `json:"personalInfo"`
	ProjectDetails    ProjectDetailsView `json:"projectDetails"`
	Assets            AssetsView         `json:"assets"`
	Documentation     DocumentationView  `json:"documentation"`
}
