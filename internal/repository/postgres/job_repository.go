package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"github.com/jihan212/BUBT-DX/internal/common"
	"github.com/jihan212/BUBT-DX/internal/domain/application"
	"github.com/jihan212/BUBT-DX/internal/domain/job"
)

const jobColumns = `id, title, company, description, requirements, benefits, department, job_type, location, salary,
	skills, posted_by, posted_date, application_deadline, created_at, updated_at`

type JobRepository struct {
	db *sql.DB
}

func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{db: db}
}

func (r *JobRepository) Create(ctx context.Context, j job.Job) (*job.Job, error) {
	j.ID = common.NewUUID()
	now := time.Now().UTC()
	j.PostedDate = common.NewDate(now)
	j.CreatedAt = now
	j.UpdatedAt = now
	var deadline any
	if j.ApplicationDeadline != nil {
		deadline = j.ApplicationDeadline.Time()
	}
	_, err := r.db.ExecContext(ctx, `INSERT INTO jobs (id, title, company, description, requirements, benefits, department, job_type, location, salary,
		skills, posted_by, posted_date, application_deadline, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		j.ID, j.Title, j.Company, j.Description, j.Requirements, j.Benefits, j.Department, j.Type, j.Location, j.Salary,
		pq.Array(j.Skills), j.PostedBy, j.PostedDate.Time(), deadline, j.CreatedAt, j.UpdatedAt)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to create job", err)
	}
	j.Applications = []application.Application{}
	return &j, nil
}

func (r *JobRepository) GetByID(ctx context.Context, id common.UUID) (*job.Job, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
	j, err := scanJob(row)
	if err != nil {
		return nil, err
	}
	if err := r.attachApplications(ctx, []*job.Job{j}); err != nil {
		return nil, err
	}
	return j, nil
}

func (r *JobRepository) List(ctx context.Context) ([]job.Job, error) {
	return r.list(ctx, `SELECT `+jobColumns+` FROM jobs ORDER BY posted_date DESC, created_at DESC`)
}

func (r *JobRepository) ListByRecruiter(ctx context.Context, recruiterID common.UUID) ([]job.Job, error) {
	return r.list(ctx, `SELECT `+jobColumns+` FROM jobs WHERE posted_by = $1 ORDER BY posted_date DESC, created_at DESC`, recruiterID)
}

func (r *JobRepository) list(ctx context.Context, query string, args ...any) ([]job.Job, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list jobs", err)
	}
	defer rows.Close()
	var items []job.Job
	var refs []*job.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *j)
	}
	for i := range items {
		refs = append(refs, &items[i])
	}
	if err := r.attachApplications(ctx, refs); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *JobRepository) Update(ctx context.Context, j job.Job) (*job.Job, error) {
	j.UpdatedAt = time.Now().UTC()
	var deadline any
	if j.ApplicationDeadline != nil {
		deadline = j.ApplicationDeadline.Time()
	}
	result, err := r.db.ExecContext(ctx, `UPDATE jobs SET title = $1, company = $2, description = $3, requirements = $4, benefits = $5,
		department = $6, job_type = $7, location = $8, salary = $9, skills = $10, application_deadline = $11, updated_at = $12
		WHERE id = $13`,
		j.Title, j.Company, j.Description, j.Requirements, j.Benefits, j.Department, j.Type, j.Location, j.Salary,
		pq.Array(j.Skills), deadline, j.UpdatedAt, j.ID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update job", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return nil, common.NewError(common.CodeNotFound, "job not found", sql.ErrNoRows)
	}
	return r.GetByID(ctx, j.ID)
}

// Delete removes the posting; the applications foreign key cascades, so the
// embedded applications go with it.
func (r *JobRepository) Delete(ctx context.Context, id common.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to delete job", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return common.NewError(common.CodeNotFound, "job not found", sql.ErrNoRows)
	}
	return nil
}

func scanJob(row rowScanner) (*job.Job, error) {
	var j job.Job
	var postedDate time.Time
	var deadline sql.NullTime
	err := row.Scan(&j.ID, &j.Title, &j.Company, &j.Description, &j.Requirements, &j.Benefits, &j.Department, &j.Type,
		&j.Location, &j.Salary, pq.Array(&j.Skills), &j.PostedBy, &postedDate, &deadline, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "job not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load job", err)
	}
	j.PostedDate = common.NewDate(postedDate)
	if deadline.Valid {
		d := common.NewDate(deadline.Time)
		j.ApplicationDeadline = &d
	}
	if j.Skills == nil {
		j.Skills = []string{}
	}
	j.Applications = []application.Application{}
	return &j, nil
}

func (r *JobRepository) attachApplications(ctx context.Context, jobs []*job.Job) error {
	if len(jobs) == 0 {
		return nil
	}
	ids := make([]string, 0, len(jobs))
	byID := make(map[common.UUID]*job.Job, len(jobs))
	for _, j := range jobs {
		ids = append(ids, j.ID.String())
		byID[j.ID] = j
	}
	rows, err := r.db.QueryContext(ctx, `SELECT `+applicationColumns+` FROM applications
		WHERE job_id = ANY($1) ORDER BY applied_date DESC, created_at DESC`, pq.Array(ids))
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to list applications", err)
	}
	defer rows.Close()
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return err
		}
		if j, ok := byID[app.JobID]; ok {
			j.Applications = append(j.Applications, *app)
		}
	}
	return nil
}
