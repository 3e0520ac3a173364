package app

import (
	"context"
	"sync"
	"time"

	"github.com/jihan212/BUBT-DX/internal/common"
	"github.com/jihan212/BUBT-DX/internal/domain/analytics"
	"github.com/jihan212/BUBT-DX/internal/domain/application"
	"github.com/jihan212/BUBT-DX/internal/domain/auth"
	"github.com/jihan212/BUBT-DX/internal/domain/job"
	"github.com/jihan212/BUBT-DX/internal/domain/user"
)

type fakeUserRepo struct {
	mu      sync.Mutex
	byEmail map[string]*user.User
	byID    map[common.UUID]*user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byEmail: make(map[string]*user.User),
		byID:    make(map[common.UUID]*user.User),
	}
}

func (r *fakeUserRepo) Create(ctx context.Context, u user.User) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[u.Email]; ok {
		return nil, common.NewError(common.CodeConflict, "user already exists with this email", nil)
	}
	u.ID = common.NewUUID()
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	stored := u
	r.byEmail[u.Email] = &stored
	r.byID[u.ID] = &stored
	return cloneUser(&stored), nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id common.UUID) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	account := r.byID[id]
	if account == nil {
		return nil, common.NewError(common.CodeNotFound, "user not found", nil)
	}
	return cloneUser(account), nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	account := r.byEmail[email]
	if account == nil {
		return nil, common.NewError(common.CodeNotFound, "user not found", nil)
	}
	return cloneUser(account), nil
}

func (r *fakeUserRepo) List(ctx context.Context) ([]user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := make([]user.User, 0, len(r.byID))
	for _, account := range r.byID {
		items = append(items, *cloneUser(account))
	}
	return items, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, u user.User) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing := r.byID[u.ID]
	if existing == nil {
		return nil, common.NewError(common.CodeNotFound, "user not found", nil)
	}
	u.UpdatedAt = time.Now().UTC()
	stored := u
	r.byID[u.ID] = &stored
	r.byEmail[u.Email] = &stored
	return cloneUser(&stored), nil
}

func cloneUser(account *user.User) *user.User {
	copied := *account
	copied.Skills = append([]string(nil), account.Skills...)
	return &copied
}

type fakeJobRepo struct {
	mu   sync.Mutex
	byID map[common.UUID]*job.Job

	// mirrors the ON DELETE CASCADE from the applications foreign key
	cascade *fakeApplicationRepo
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{byID: make(map[common.UUID]*job.Job)}
}

func (r *fakeJobRepo) Create(ctx context.Context, j job.Job) (*job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j.ID = common.NewUUID()
	now := time.Now().UTC()
	j.PostedDate = common.NewDate(now)
	j.CreatedAt = now
	j.UpdatedAt = now
	j.Applications = []application.Application{}
	stored := j
	r.byID[j.ID] = &stored
	return cloneJob(&stored), nil
}

func (r *fakeJobRepo) GetByID(ctx context.Context, id common.UUID) (*job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j := r.byID[id]
	if j == nil {
		return nil, common.NewError(common.CodeNotFound, "job not found", nil)
	}
	return cloneJob(j), nil
}

func (r *fakeJobRepo) List(ctx context.Context) ([]job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := make([]job.Job, 0, len(r.byID))
	for _, j := range r.byID {
		items = append(items, *cloneJob(j))
	}
	return items, nil
}

func (r *fakeJobRepo) ListByRecruiter(ctx context.Context, recruiterID common.UUID) ([]job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := []job.Job{}
	for _, j := range r.byID {
		if j.PostedBy == recruiterID {
			items = append(items, *cloneJob(j))
		}
	}
	return items, nil
}

func (r *fakeJobRepo) Update(ctx context.Context, j job.Job) (*job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing := r.byID[j.ID]
	if existing == nil {
		return nil, common.NewError(common.CodeNotFound, "job not found", nil)
	}
	j.UpdatedAt = time.Now().UTC()
	stored := j
	r.byID[j.ID] = &stored
	return cloneJob(&stored), nil
}

func (r *fakeJobRepo) Delete(ctx context.Context, id common.UUID) error {
	r.mu.Lock()
	if r.byID[id] == nil {
		r.mu.Unlock()
		return common.NewError(common.CodeNotFound, "job not found", nil)
	}
	delete(r.byID, id)
	r.mu.Unlock()
	if r.cascade != nil {
		r.cascade.deleteByJob(id)
	}
	return nil
}

func cloneJob(j *job.Job) *job.Job {
	copied := *j
	copied.Skills = append([]string{}, j.Skills...)
	copied.Applications = append([]application.Application(nil), j.Applications...)
	return &copied
}

type fakeApplicationRepo struct {
	mu   sync.Mutex
	byID map[common.UUID]*application.Application
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{byID: make(map[common.UUID]*application.Application)}
}

func (r *fakeApplicationRepo) Create(ctx context.Context, app application.Application) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.JobID == app.JobID && existing.StudentID == app.StudentID {
			return nil, common.NewError(common.CodeConflict, "already applied for this job", nil)
		}
	}
	app.ID = common.NewUUID()
	now := time.Now().UTC()
	app.AppliedDate = common.NewDate(now)
	app.CreatedAt = now
	app.UpdatedAt = now
	stored := app
	r.byID[app.ID] = &stored
	copied := stored
	return &copied, nil
}

func (r *fakeApplicationRepo) GetByID(ctx context.Context, id common.UUID) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	app := r.byID[id]
	if app == nil {
		return nil, common.NewError(common.CodeNotFound, "application not found", nil)
	}
	copied := *app
	return &copied, nil
}

func (r *fakeApplicationRepo) FindByJobAndStudent(ctx context.Context, jobID, studentID common.UUID) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, app := range r.byID {
		if app.JobID == jobID && app.StudentID == studentID {
			copied := *app
			return &copied, nil
		}
	}
	return nil, common.NewError(common.CodeNotFound, "application not found", nil)
}

func (r *fakeApplicationRepo) ListByJob(ctx context.Context, jobID common.UUID) ([]application.Applicant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := []application.Applicant{}
	for _, app := range r.byID {
		if app.JobID == jobID {
			items = append(items, application.Applicant{Application: *app})
		}
	}
	return items, nil
}

func (r *fakeApplicationRepo) ListByStudent(ctx context.Context, studentID common.UUID) ([]application.StudentEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := []application.StudentEntry{}
	for _, app := range r.byID {
		if app.StudentID == studentID {
			items = append(items, application.StudentEntry{
				JobID:       app.JobID,
				AppliedDate: app.AppliedDate,
				Status:      app.Status,
			})
		}
	}
	return items, nil
}

func (r *fakeApplicationRepo) deleteByJob(jobID common.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, app := range r.byID {
		if app.JobID == jobID {
			delete(r.byID, id)
		}
	}
}

func (r *fakeApplicationRepo) UpdateStatus(ctx context.Context, id common.UUID, status application.Status) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	app := r.byID[id]
	if app == nil {
		return nil, common.NewError(common.CodeNotFound, "application not found", nil)
	}
	app.Status = status
	app.UpdatedAt = time.Now().UTC()
	copied := *app
	return &copied, nil
}

type fakeRefreshTokenRepo struct {
	mu     sync.Mutex
	tokens map[string]auth.RefreshToken
}

func newFakeRefreshTokenRepo() *fakeRefreshTokenRepo {
	return &fakeRefreshTokenRepo{tokens: make(map[string]auth.RefreshToken)}
}

func (r *fakeRefreshTokenRepo) Store(ctx context.Context, token auth.RefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[token.Token] = token
	return nil
}

func (r *fakeRefreshTokenRepo) GetByToken(ctx context.Context, token string) (*auth.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	value, ok := r.tokens[token]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "refresh token not found", nil)
	}
	copied := value
	return &copied, nil
}

func (r *fakeRefreshTokenRepo) Revoke(ctx context.Context, token string, revokedAtUnix int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	value, ok := r.tokens[token]
	if !ok {
		return common.NewError(common.CodeNotFound, "refresh token not found", nil)
	}
	revokedAt := time.Unix(revokedAtUnix, 0).UTC()
	value.RevokedAt = &revokedAt
	r.tokens[token] = value
	return nil
}

func (r *fakeRefreshTokenRepo) RevokeAll(ctx context.Context, userID common.UUID, revokedAtUnix int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	revokedAt := time.Unix(revokedAtUnix, 0).UTC()
	for key, value := range r.tokens {
		if value.UserID == userID {
			value.RevokedAt = &revokedAt
			r.tokens[key] = value
		}
	}
	return nil
}

func (r *fakeRefreshTokenRepo) DeleteExpired(ctx context.Context, beforeUnix int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cutoff := time.Unix(beforeUnix, 0).UTC()
	for key, value := range r.tokens {
		if value.ExpiresAt.Before(cutoff) {
			delete(r.tokens, key)
		}
	}
	return nil
}

type recordingAnalyticsRepo struct {
	mu     sync.Mutex
	events []analytics.Event
}

func (r *recordingAnalyticsRepo) Create(ctx context.Context, event analytics.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *recordingAnalyticsRepo) Overview(ctx context.Context) (*analytics.Overview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return &analytics.Overview{EventsLastWeek: len(r.events), ApplicationsByStatus: map[string]int{}}, nil
}

func (r *recordingAnalyticsRepo) names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.events))
	for _, event := range r.events {
		names = append(names, event.Name)
	}
	return names
}
