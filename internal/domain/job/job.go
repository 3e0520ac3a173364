package job

import (
	"time"

	"github.com/jihan212/BUBT-DX/internal/common"
	"github.com/jihan212/BUBT-DX/internal/domain/application"
)

type Type string

const (
	TypeFullTime   Type = "Full-time"
	TypePartTime   Type = "Part-time"
	TypeContract   Type = "Contract"
	TypeInternship Type = "Internship"
)

func ValidType(t Type) bool {
	switch t {
	case TypeFullTime, TypePartTime, TypeContract, TypeInternship:
		return true
	default:
		return false
	}
}

// Job is a posting owned by one recruiter. Applications are embedded in the
// JSON shape the clients consume; PostedBy never changes after creation.
type Job struct {
	ID                  common.UUID               `json:"id"`
	Title               string                    `json:"title"`
	Company             string                    `json:"company"`
	Description         string                    `json:"description"`
	Requirements        string                    `json:"requirements"`
	Benefits            string                    `json:"benefits,omitempty"`
	Department          string                    `json:"department,omitempty"`
	Type                Type                      `json:"type"`
	Location            string                    `json:"location"`
	Salary              string                    `json:"salary,omitempty"`
	Skills              []string                  `json:"skills"`
	PostedBy            common.UUID               `json:"postedBy"`
	PostedDate          common.Date               `json:"postedDate"`
	ApplicationDeadline *common.Date              `json:"applicationDeadline"`
	Applications        []application.Application `json:"applications"`
	CreatedAt           time.Time                 `json:"-"`
	UpdatedAt           time.Time                 `json:"-"`
}

// Update carries the mutable posting fields. Owner, identifier and embedded
// applications are deliberately absent.
type Update struct {
	Title               string       `json:"title"`
	Company             string       `json:"company"`
	Description         string       `json:"description"`
	Requirements        string       `json:"requirements"`
	Benefits            string       `json:"benefits"`
	Department          string       `json:"department"`
	Type                Type         `json:"type"`
	Location            string       `json:"location"`
	Salary              string       `json:"salary"`
	Skills              []string     `json:"skills"`
	ApplicationDeadline *common.Date `json:"applicationDeadline"`
}
