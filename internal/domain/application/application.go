package application

import (
	"time"

	"github.com/jihan212/BUBT-DX/internal/common"
)

type Status string

const (
	StatusPending   Status = "Pending"
	StatusReviewed  Status = "Reviewed"
	StatusInterview Status = "Interview"
	StatusAccepted  Status = "Accepted"
	StatusRejected  Status = "Rejected"
)

// Application is a student's bid for one posting. Student name and email are
// snapshotted at apply time so later profile edits do not rewrite history.
type Application struct {
	ID           common.UUID `json:"id"`
	JobID        common.UUID `json:"jobId"`
	StudentID    common.UUID `json:"studentId"`
	StudentName  string      `json:"studentName"`
	StudentEmail string      `json:"studentEmail"`
	AppliedDate  common.Date `json:"appliedDate"`
	Status       Status      `json:"status"`
	CoverLetter  string      `json:"coverLetter,omitempty"`
	CreatedAt    time.Time   `json:"-"`
	UpdatedAt    time.Time   `json:"-"`
}

// StudentEntry is the projection returned when a student lists their own
// applications across postings.
type StudentEntry struct {
	JobID       common.UUID `json:"jobId"`
	JobTitle    string      `json:"jobTitle"`
	Company     string      `json:"company"`
	AppliedDate common.Date `json:"appliedDate"`
	Status      Status      `json:"status"`
}

// Applicant enriches an application with live profile fields for the
// recruiter's triage view.
type Applicant struct {
	Application
	StudentMajor          string   `json:"studentMajor"`
	StudentResume         string   `json:"studentResume"`
	StudentSkills         []string `json:"studentSkills"`
	StudentGPA            string   `json:"studentGpa,omitempty"`
	StudentGraduationYear int      `json:"studentGraduationYear,omitempty"`
}
