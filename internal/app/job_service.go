package app

import (
	"context"
	"strings"

	"github.com/jihan212/BUBT-DX/internal/common"
	"github.com/jihan212/BUBT-DX/internal/domain/analytics"
	"github.com/jihan212/BUBT-DX/internal/domain/application"
	"github.com/jihan212/BUBT-DX/internal/domain/job"
	"github.com/jihan212/BUBT-DX/internal/domain/user"
)

type JobService struct {
	repo      job.Repository
	users     user.Repository
	analytics analytics.Repository
}

func NewJobService(repo job.Repository, users user.Repository, analytics analytics.Repository) *JobService {
	return &JobService{repo: repo, users: users, analytics: analytics}
}

func (s *JobService) Create(ctx context.Context, j job.Job) (*job.Job, error) {
	fields := map[string]string{}
	if strings.TrimSpace(j.Title) == "" {
		fields["title"] = "title is required"
	}
	if strings.TrimSpace(j.Company) == "" {
		fields["company"] = "company is required"
	}
	if strings.TrimSpace(j.Description) == "" {
		fields["description"] = "description is required"
	}
	if strings.TrimSpace(j.Requirements) == "" {
		fields["requirements"] = "requirements are required"
	}
	if strings.TrimSpace(j.Location) == "" {
		fields["location"] = "location is required"
	}
	if j.Type == "" {
		fields["type"] = "type is required"
	} else if !job.ValidType(j.Type) {
		fields["type"] = "type must be Full-time, Part-time, Contract, or Internship"
	}
	if len(fields) > 0 {
		return nil, common.NewValidationError("invalid job", fields)
	}
	poster, err := s.users.GetByID(ctx, j.PostedBy)
	if err != nil {
		return nil, err
	}
	if poster.Role != user.RoleRecruiter {
		return nil, common.NewError(common.CodeForbidden, "only recruiters can post jobs", nil)
	}
	if j.Skills == nil {
		j.Skills = []string{}
	}
	created, err := s.repo.Create(ctx, j)
	if err != nil {
		return nil, err
	}
	_ = s.analytics.Create(ctx, analytics.Event{Name: "job.created", UserID: &j.PostedBy, Payload: analyticsPayload(ctx, map[string]string{"job_id": created.ID.String()})})
	return created, nil
}

// Get serves a posting to any caller but scopes the embedded applications to
// the viewer: the owning recruiter and admins see the full list, a student
// only their own entry, everyone else none.
func (s *JobService) Get(ctx context.Context, id common.UUID, actorID common.UUID, actorRole user.Role) (*job.Job, error) {
	j, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	restrictApplications(j, actorID, actorRole)
	return j, nil
}

func (s *JobService) List(ctx context.Context, recruiterID *common.UUID, actorID common.UUID, actorRole user.Role) ([]job.Job, error) {
	var items []job.Job
	var err error
	if recruiterID != nil {
		items, err = s.repo.ListByRecruiter(ctx, *recruiterID)
	} else {
		items, err = s.repo.List(ctx)
	}
	if err != nil {
		return nil, err
	}
	for i := range items {
		restrictApplications(&items[i], actorID, actorRole)
	}
	return items, nil
}

func restrictApplications(j *job.Job, actorID common.UUID, actorRole user.Role) {
	switch {
	case actorRole == user.RoleAdmin:
	case actorRole == user.RoleRecruiter && j.PostedBy == actorID:
	case actorRole == user.RoleStudent:
		own := []application.Application{}
		for _, app := range j.Applications {
			if app.StudentID == actorID {
				own = append(own, app)
			}
		}
		j.Applications = own
	default:
		j.Applications = []application.Application{}
	}
}

// Update applies the mutable fields only; owner, identifier and embedded
// applications cannot be touched through this path.
func (s *JobService) Update(ctx context.Context, id common.UUID, upd job.Update, actorID common.UUID) (*job.Job, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.PostedBy != actorID {
		return nil, common.NewError(common.CodeForbidden, "job belongs to another recruiter", nil)
	}
	if upd.Title != "" {
		current.Title = upd.Title
	}
	if upd.Company != "" {
		current.Company = upd.Company
	}
	if upd.Description != "" {
		current.Description = upd.Description
	}
	if upd.Requirements != "" {
		current.Requirements = upd.Requirements
	}
	if upd.Benefits != "" {
		current.Benefits = upd.Benefits
	}
	if upd.Department != "" {
		current.Department = upd.Department
	}
	if upd.Type != "" {
		if !job.ValidType(upd.Type) {
			return nil, common.NewValidationError("invalid job", map[string]string{"type": "type must be Full-time, Part-time, Contract, or Internship"})
		}
		current.Type = upd.Type
	}
	if upd.Location != "" {
		current.Location = upd.Location
	}
	if upd.Salary != "" {
		current.Salary = upd.Salary
	}
	if upd.Skills != nil {
		current.Skills = upd.Skills
	}
	if upd.ApplicationDeadline != nil {
		current.ApplicationDeadline = upd.ApplicationDeadline
	}
	updated, err := s.repo.Update(ctx, *current)
	if err != nil {
		return nil, err
	}
	_ = s.analytics.Create(ctx, analytics.Event{Name: "job.updated", UserID: &actorID, Payload: analyticsPayload(ctx, map[string]string{"job_id": updated.ID.String()})})
	return updated, nil
}

// Delete removes the posting and, through the storage cascade, every
// application embedded in it.
func (s *JobService) Delete(ctx context.Context, id common.UUID, actorID common.UUID) error {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if current.PostedBy != actorID {
		return common.NewError(common.CodeForbidden, "job belongs to another recruiter", nil)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	_ = s.analytics.Create(ctx, analytics.Event{Name: "job.deleted", UserID: &actorID, Payload: analyticsPayload(ctx, map[string]string{"job_id": id.String()})})
	return nil
}
