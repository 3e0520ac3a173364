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

type ApplicationService struct {
	repo      application.Repository
	jobs      job.Repository
	users     user.Repository
	analytics analytics.Repository
}

func NewApplicationService(repo application.Repository, jobs job.Repository, users user.Repository, analytics analytics.Repository) *ApplicationService {
	return &ApplicationService{repo: repo, jobs: jobs, users: users, analytics: analytics}
}

// Apply snapshots the student's name and email into the application; later
// profile edits never rewrite past applications.
func (s *ApplicationService) Apply(ctx context.Context, jobID, studentID common.UUID, coverLetter string) (*application.Application, error) {
	if _, err := s.jobs.GetByID(ctx, jobID); err != nil {
		return nil, err
	}
	student, err := s.users.GetByID(ctx, studentID)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, common.NewError(common.CodeNotFound, "student not found", nil)
		}
		return nil, err
	}
	if student.Role != user.RoleStudent {
		return nil, common.NewError(common.CodeForbidden, "only students can apply", nil)
	}
	if _, err := s.repo.FindByJobAndStudent(ctx, jobID, studentID); err == nil {
		return nil, common.NewError(common.CodeConflict, "already applied for this job", nil)
	} else if !common.Is(err, common.CodeNotFound) {
		return nil, err
	}
	app := application.Application{
		JobID:        jobID,
		StudentID:    studentID,
		StudentName:  student.Name,
		StudentEmail: student.Email,
		Status:       application.StatusPending,
		CoverLetter:  strings.TrimSpace(coverLetter),
	}
	created, err := s.repo.Create(ctx, app)
	if err != nil {
		return nil, err
	}
	_ = s.analytics.Create(ctx, analytics.Event{Name: "application.created", UserID: &studentID, Payload: analyticsPayload(ctx, map[string]string{"application_id": created.ID.String(), "job_id": jobID.String()})})
	return created, nil
}

// UpdateStatus moves an application along the pipeline. Only the recruiter
// owning the posting may move it, the target status must be a known value,
// and Accepted/Rejected are terminal. Re-sending the current status is a
// no-op update so retried requests stay harmless.
func (s *ApplicationService) UpdateStatus(ctx context.Context, jobID, applicationID common.UUID, status application.Status, actorID common.UUID) (*application.Application, error) {
	j, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if j.PostedBy != actorID {
		return nil, common.NewError(common.CodeForbidden, "job belongs to another recruiter", nil)
	}
	app, err := s.repo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app.JobID != jobID {
		return nil, common.NewError(common.CodeNotFound, "application not found", nil)
	}
	if !isKnownStatus(status) {
		return nil, common.NewValidationError("invalid status", map[string]string{"status": "status must be Pending, Reviewed, Interview, Accepted, or Rejected"})
	}
	if status == app.Status {
		return app, nil
	}
	if isFinalStatus(app.Status) {
		return nil, common.NewValidationError("invalid status transition", map[string]string{"status": "application status is final"})
	}
	if !isAllowedTransition(app.Status, status) {
		return nil, common.NewValidationError("invalid status transition", map[string]string{"status": "cannot move from " + string(app.Status) + " to " + string(status)})
	}
	updated, err := s.repo.UpdateStatus(ctx, applicationID, status)
	if err != nil {
		return nil, err
	}
	_ = s.analytics.Create(ctx, analytics.Event{Name: "application.status_changed", UserID: &actorID, Payload: analyticsPayload(ctx, map[string]string{"application_id": applicationID.String(), "status": string(status)})})
	return updated, nil
}

func (s *ApplicationService) ListByStudent(ctx context.Context, studentID common.UUID) ([]application.StudentEntry, error) {
	return s.repo.ListByStudent(ctx, studentID)
}

func (s *ApplicationService) ListByJob(ctx context.Context, jobID common.UUID, actorID common.UUID, actorRole user.Role) ([]application.Applicant, error) {
	j, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if actorRole != user.RoleAdmin && j.PostedBy != actorID {
		return nil, common.NewError(common.CodeForbidden, "job belongs to another recruiter", nil)
	}
	return s.repo.ListByJob(ctx, jobID)
}

func isAllowedTransition(from, to application.Status) bool {
	switch from {
	case application.StatusPending:
		return to == application.StatusReviewed || to == application.StatusInterview || to == application.StatusRejected
	case application.StatusReviewed:
		return to == application.StatusInterview || to == application.StatusAccepted || to == application.StatusRejected
	case application.StatusInterview:
		return to == application.StatusAccepted || to == application.StatusRejected
	default:
		return false
	}
}

func isFinalStatus(status application.Status) bool {
	return status == application.StatusAccepted || status == application.StatusRejected
}

func isKnownStatus(status application.Status) bool {
	switch status {
	case application.StatusPending, application.StatusReviewed, application.StatusInterview, application.StatusAccepted, application.StatusRejected:
		return true
	default:
		return false
	}
}
