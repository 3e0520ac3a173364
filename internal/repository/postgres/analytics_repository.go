package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/jihan212/BUBT-DX/internal/common"
	"github.com/jihan212/BUBT-DX/internal/domain/analytics"
	"github.com/jihan212/BUBT-DX/internal/domain/application"
	"github.com/jihan212/BUBT-DX/internal/domain/user"
)

type AnalyticsRepository struct {
	db *sql.DB
}

func NewAnalyticsRepository(db *sql.DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

func (r *AnalyticsRepository) Create(ctx context.Context, event analytics.Event) error {
	payload, err := json.Marshal(event.Payload)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to encode event payload", err)
	}
	var userID any
	if event.UserID != nil {
		userID = event.UserID.String()
	}
	_, err = r.db.ExecContext(ctx, `INSERT INTO events (id, name, user_id, payload, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		common.NewUUID(), event.Name, userID, payload, time.Now().UTC())
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to store event", err)
	}
	return nil
}

func (r *AnalyticsRepository) Overview(ctx context.Context) (*analytics.Overview, error) {
	overview := &analytics.Overview{ApplicationsByStatus: map[string]int{}}
	row := r.db.QueryRowContext(ctx, `SELECT
		count(*),
		count(*) FILTER (WHERE role = $1),
		count(*) FILTER (WHERE role = $2)
		FROM users`, user.RoleStudent, user.RoleRecruiter)
	if err := row.Scan(&overview.TotalUsers, &overview.Students, &overview.Recruiters); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to count users", err)
	}
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM jobs`).Scan(&overview.TotalJobs); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to count jobs", err)
	}
	rows, err := r.db.QueryContext(ctx, `SELECT status, count(*) FROM applications GROUP BY status`)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to count applications", err)
	}
	defer rows.Close()
	for _, status := range []application.Status{application.StatusPending, application.StatusReviewed, application.StatusInterview, application.StatusAccepted, application.StatusRejected} {
		overview.ApplicationsByStatus[string(status)] = 0
	}
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan application counts", err)
		}
		overview.ApplicationsByStatus[status] = count
		overview.TotalApplications += count
	}
	weekAgo := time.Now().UTC().AddDate(0, 0, -7)
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM events WHERE created_at >= $1`, weekAgo).Scan(&overview.EventsLastWeek); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to count events", err)
	}
	return overview, nil
}
