package user

import (
	"strings"
	"time"

	"github.com/jihan212/BUBT-DX/internal/common"
)

type Role string

const (
	RoleStudent   Role = "student"
	RoleRecruiter Role = "recruiter"
	RoleAdmin     Role = "admin"
)

type Certificate struct {
	Name          string       `json:"name"`
	Issuer        string       `json:"issuer,omitempty"`
	IssueDate     *common.Date `json:"issueDate,omitempty"`
	ExpiryDate    *common.Date `json:"expiryDate,omitempty"`
	CredentialID  string       `json:"credentialId,omitempty"`
	CredentialURL string       `json:"credentialUrl,omitempty"`
}

type Project struct {
	Name         string       `json:"name"`
	Description  string       `json:"description,omitempty"`
	Technologies []string     `json:"technologies,omitempty"`
	ProjectURL   string       `json:"projectUrl,omitempty"`
	GithubURL    string       `json:"githubUrl,omitempty"`
	StartDate    *common.Date `json:"startDate,omitempty"`
	EndDate      *common.Date `json:"endDate,omitempty"`
	Current      bool         `json:"current,omitempty"`
}

type Experience struct {
	Title       string       `json:"title"`
	Company     string       `json:"company,omitempty"`
	Type        string       `json:"type,omitempty"`
	Location    string       `json:"location,omitempty"`
	StartDate   *common.Date `json:"startDate,omitempty"`
	EndDate     *common.Date `json:"endDate,omitempty"`
	Current     bool         `json:"current,omitempty"`
	Description string       `json:"description,omitempty"`
}

type SocialLinks struct {
	Github    string `json:"github,omitempty"`
	Linkedin  string `json:"linkedin,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Medium    string `json:"medium,omitempty"`
	Portfolio string `json:"portfolio,omitempty"`
	Website   string `json:"website,omitempty"`
}

type User struct {
	ID           common.UUID `json:"id"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"-"`
	Name         string      `json:"name"`
	Role         Role        `json:"role"`

	// student fields
	Major           string        `json:"major,omitempty"`
	GraduationYear  int           `json:"graduationYear,omitempty"`
	Resume          string        `json:"resume,omitempty"`
	Phone           string        `json:"phone,omitempty"`
	Skills          []string      `json:"skills"`
	GPA             string        `json:"gpa,omitempty"`
	Certificates    []Certificate `json:"certificates,omitempty"`
	Projects        []Project     `json:"projects,omitempty"`
	Experience      []Experience  `json:"experience,omitempty"`
	SocialLinks     SocialLinks   `json:"socialLinks,omitempty"`
	ProfileComplete bool          `json:"profileComplete"`

	// recruiter fields
	Company  string `json:"company,omitempty"`
	Position string `json:"position,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RecomputeProfileComplete derives the completeness flag for students.
// Non-students always carry false.
func (u *User) RecomputeProfileComplete() {
	if u.Role != RoleStudent {
		u.ProfileComplete = false
		return
	}
	u.ProfileComplete = strings.TrimSpace(u.Name) != "" &&
		strings.TrimSpace(u.Major) != "" &&
		u.GraduationYear != 0 &&
		strings.TrimSpace(u.Resume) != ""
}
