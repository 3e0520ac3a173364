package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"github.com/jihan212/BUBT-DX/internal/common"
	"github.com/jihan212/BUBT-DX/internal/domain/application"
)

const applicationColumns = `id, job_id, student_id, student_name, student_email, applied_date, status, cover_letter, created_at, updated_at`

type ApplicationRepository struct {
	db *sql.DB
}

func NewApplicationRepository(db *sql.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

// Create relies on the (job_id, student_id) unique constraint as the atomic
// duplicate guard; the service-level pre-check only exists for a friendlier
// message.
func (r *ApplicationRepository) Create(ctx context.Context, app application.Application) (*application.Application, error) {
	app.ID = common.NewUUID()
	now := time.Now().UTC()
	app.AppliedDate = common.NewDate(now)
	app.CreatedAt = now
	app.UpdatedAt = now
	_, err := r.db.ExecContext(ctx, `INSERT INTO applications (id, job_id, student_id, student_name, student_email, applied_date, status, cover_letter, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		app.ID, app.JobID, app.StudentID, app.StudentName, app.StudentEmail, app.AppliedDate.Time(), app.Status, app.CoverLetter, app.CreatedAt, app.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.NewError(common.CodeConflict, "already applied for this job", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to create application", err)
	}
	return &app, nil
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id common.UUID) (*application.Application, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id)
	return scanApplication(row)
}

func (r *ApplicationRepository) FindByJobAndStudent(ctx context.Context, jobID, studentID common.UUID) (*application.Application, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+applicationColumns+` FROM applications WHERE job_id = $1 AND student_id = $2`, jobID, studentID)
	return scanApplication(row)
}

func (r *ApplicationRepository) ListByJob(ctx context.Context, jobID common.UUID) ([]application.Applicant, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT a.id, a.job_id, a.student_id, a.student_name, a.student_email, a.applied_date, a.status, a.cover_letter, a.created_at, a.updated_at,
		u.major, u.resume, u.skills, u.gpa, u.graduation_year
		FROM applications a
		JOIN users u ON u.id = a.student_id
		WHERE a.job_id = $1
		ORDER BY a.applied_date DESC, a.created_at DESC`, jobID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list applications", err)
	}
	defer rows.Close()
	items := []application.Applicant{}
	for rows.Next() {
		var item application.Applicant
		var appliedDate time.Time
		var graduationYear sql.NullInt64
		if err := rows.Scan(&item.ID, &item.JobID, &item.StudentID, &item.StudentName, &item.StudentEmail, &appliedDate,
			&item.Status, &item.CoverLetter, &item.CreatedAt, &item.UpdatedAt,
			&item.StudentMajor, &item.StudentResume, pq.Array(&item.StudentSkills), &item.StudentGPA, &graduationYear); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan application", err)
		}
		item.AppliedDate = common.NewDate(appliedDate)
		if graduationYear.Valid {
			item.StudentGraduationYear = int(graduationYear.Int64)
		}
		if item.StudentSkills == nil {
			item.StudentSkills = []string{}
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *ApplicationRepository) ListByStudent(ctx context.Context, studentID common.UUID) ([]application.StudentEntry, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT a.job_id, j.title, j.company, a.applied_date, a.status
		FROM applications a
		JOIN jobs j ON j.id = a.job_id
		WHERE a.student_id = $1
		ORDER BY a.applied_date DESC, a.created_at DESC`, studentID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list student applications", err)
	}
	defer rows.Close()
	items := []application.StudentEntry{}
	for rows.Next() {
		var item application.StudentEntry
		var appliedDate time.Time
		if err := rows.Scan(&item.JobID, &item.JobTitle, &item.Company, &appliedDate, &item.Status); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan student application", err)
		}
		item.AppliedDate = common.NewDate(appliedDate)
		items = append(items, item)
	}
	return items, nil
}

func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id common.UUID, status application.Status) (*application.Application, error) {
	updatedAt := time.Now().UTC()
	result, err := r.db.ExecContext(ctx, `UPDATE applications SET status = $1, updated_at = $2 WHERE id = $3`, status, updatedAt, id)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update application", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return nil, common.NewError(common.CodeNotFound, "application not found", sql.ErrNoRows)
	}
	return r.GetByID(ctx, id)
}

func scanApplication(row rowScanner) (*application.Application, error) {
	var app application.Application
	var appliedDate time.Time
	err := row.Scan(&app.ID, &app.JobID, &app.StudentID, &app.StudentName, &app.StudentEmail, &appliedDate,
		&app.Status, &app.CoverLetter, &app.CreatedAt, &app.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "application not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load application", err)
	}
	app.AppliedDate = common.NewDate(appliedDate)
	return &app, nil
}
