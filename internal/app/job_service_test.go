package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jihan212/BUBT-DX/internal/common"
	"github.com/jihan212/BUBT-DX/internal/domain/application"
	"github.com/jihan212/BUBT-DX/internal/domain/job"
	"github.com/jihan212/BUBT-DX/internal/domain/user"
)

func newJobFixture(t *testing.T) (*JobService, *fakeUserRepo, *user.User) {
	t.Helper()
	users := newFakeUserRepo()
	recruiter, err := users.Create(context.Background(), user.User{
		Email: "rick@acme.com",
		Name:  "Rick Ruiter",
		Role:  user.RoleRecruiter,
	})
	require.NoError(t, err)
	return NewJobService(newFakeJobRepo(), users, &recordingAnalyticsRepo{}), users, recruiter
}

func validJob(postedBy common.UUID) job.Job {
	return job.Job{
		Title:        "Backend Engineer",
		Company:      "Acme",
		Description:  "Build services",
		Requirements: "Go",
		Location:     "Dhaka",
		Type:         job.TypeFullTime,
		PostedBy:     postedBy,
	}
}

func TestJobServiceCreate(t *testing.T) {
	service, _, recruiter := newJobFixture(t)

	created, err := service.Create(context.Background(), validJob(recruiter.ID))
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.NotEmpty(t, created.PostedDate)
	require.NotNil(t, created.Skills)
	require.Empty(t, created.Applications)
}

func TestJobServiceCreate_MissingFields(t *testing.T) {
	service, _, recruiter := newJobFixture(t)

	j := validJob(recruiter.ID)
	j.Title = ""
	j.Location = ""
	_, err := service.Create(context.Background(), j)
	require.True(t, common.Is(err, common.CodeValidation))
}

func TestJobServiceCreate_BadType(t *testing.T) {
	service, _, recruiter := newJobFixture(t)

	j := validJob(recruiter.ID)
	j.Type = job.Type("Freelance")
	_, err := service.Create(context.Background(), j)
	require.True(t, common.Is(err, common.CodeValidation))
}

func TestJobServiceCreate_StudentCannotPost(t *testing.T) {
	service, users, _ := newJobFixture(t)
	student, err := users.Create(context.Background(), user.User{
		Email: "jane@student.bubt.edu",
		Name:  "Jane Doe",
		Role:  user.RoleStudent,
	})
	require.NoError(t, err)

	_, err = service.Create(context.Background(), validJob(student.ID))
	require.True(t, common.Is(err, common.CodeForbidden))
}

func TestJobServiceList_FilterByRecruiter(t *testing.T) {
	service, users, recruiter := newJobFixture(t)
	other, err := users.Create(context.Background(), user.User{
		Email: "other@corp.com",
		Name:  "Olive Other",
		Role:  user.RoleRecruiter,
	})
	require.NoError(t, err)

	_, err = service.Create(context.Background(), validJob(recruiter.ID))
	require.NoError(t, err)
	_, err = service.Create(context.Background(), validJob(other.ID))
	require.NoError(t, err)

	all, err := service.List(context.Background(), nil, "", "")
	require.NoError(t, err)
	require.Len(t, all, 2)

	mine, err := service.List(context.Background(), &recruiter.ID, recruiter.ID, user.RoleRecruiter)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, recruiter.ID, mine[0].PostedBy)
}

func TestJobServiceGet_ScopesApplicationsToViewer(t *testing.T) {
	users := newFakeUserRepo()
	jobs := newFakeJobRepo()
	service := NewJobService(jobs, users, &recordingAnalyticsRepo{})

	recruiter, err := users.Create(context.Background(), user.User{
		Email: "rick@acme.com",
		Name:  "Rick Ruiter",
		Role:  user.RoleRecruiter,
	})
	require.NoError(t, err)
	student, err := users.Create(context.Background(), user.User{
		Email: "jane@student.bubt.edu",
		Name:  "Jane Doe",
		Role:  user.RoleStudent,
	})
	require.NoError(t, err)

	created, err := service.Create(context.Background(), validJob(recruiter.ID))
	require.NoError(t, err)

	jobs.mu.Lock()
	jobs.byID[created.ID].Applications = []application.Application{
		{ID: common.NewUUID(), JobID: created.ID, StudentID: student.ID, StudentEmail: student.Email, CoverLetter: "keen to join"},
		{ID: common.NewUUID(), JobID: created.ID, StudentID: common.NewUUID(), StudentEmail: "omar@student.bubt.edu"},
	}
	jobs.mu.Unlock()

	anonymous, err := service.Get(context.Background(), created.ID, "", "")
	require.NoError(t, err)
	require.Empty(t, anonymous.Applications)

	asStudent, err := service.Get(context.Background(), created.ID, student.ID, user.RoleStudent)
	require.NoError(t, err)
	require.Len(t, asStudent.Applications, 1)
	require.Equal(t, student.ID, asStudent.Applications[0].StudentID)

	otherRecruiter, err := service.Get(context.Background(), created.ID, common.NewUUID(), user.RoleRecruiter)
	require.NoError(t, err)
	require.Empty(t, otherRecruiter.Applications)

	asOwner, err := service.Get(context.Background(), created.ID, recruiter.ID, user.RoleRecruiter)
	require.NoError(t, err)
	require.Len(t, asOwner.Applications, 2)

	asAdmin, err := service.Get(context.Background(), created.ID, common.NewUUID(), user.RoleAdmin)
	require.NoError(t, err)
	require.Len(t, asAdmin.Applications, 2)

	listed, err := service.List(context.Background(), nil, "", "")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.Empty(t, listed[0].Applications)
}

func TestJobServiceUpdate_OwnerOnly(t *testing.T) {
	service, users, recruiter := newJobFixture(t)
	created, err := service.Create(context.Background(), validJob(recruiter.ID))
	require.NoError(t, err)

	other, err := users.Create(context.Background(), user.User{
		Email: "other@corp.com",
		Name:  "Olive Other",
		Role:  user.RoleRecruiter,
	})
	require.NoError(t, err)

	_, err = service.Update(context.Background(), created.ID, job.Update{Title: "New Title"}, other.ID)
	require.True(t, common.Is(err, common.CodeForbidden))

	updated, err := service.Update(context.Background(), created.ID, job.Update{Title: "New Title"}, recruiter.ID)
	require.NoError(t, err)
	require.Equal(t, "New Title", updated.Title)
	require.Equal(t, recruiter.ID, updated.PostedBy)
}

func TestJobServiceUpdate_EmptyFieldsLeaveValues(t *testing.T) {
	service, _, recruiter := newJobFixture(t)
	created, err := service.Create(context.Background(), validJob(recruiter.ID))
	require.NoError(t, err)

	updated, err := service.Update(context.Background(), created.ID, job.Update{Salary: "80k"}, recruiter.ID)
	require.NoError(t, err)
	require.Equal(t, created.Title, updated.Title)
	require.Equal(t, "80k", updated.Salary)
}

func TestJobServiceDelete_OwnerOnly(t *testing.T) {
	service, users, recruiter := newJobFixture(t)
	created, err := service.Create(context.Background(), validJob(recruiter.ID))
	require.NoError(t, err)

	other, err := users.Create(context.Background(), user.User{
		Email: "other@corp.com",
		Name:  "Olive Other",
		Role:  user.RoleRecruiter,
	})
	require.NoError(t, err)

	err = service.Delete(context.Background(), created.ID, other.ID)
	require.True(t, common.Is(err, common.CodeForbidden))

	require.NoError(t, service.Delete(context.Background(), created.ID, recruiter.ID))

	_, err = service.Get(context.Background(), created.ID, recruiter.ID, user.RoleRecruiter)
	require.True(t, common.Is(err, common.CodeNotFound))
}
