package analytics

import (
	"context"
	"time"

	"github.com/jihan212/BUBT-DX/internal/common"
)

type Event struct {
	ID        common.UUID
	Name      string
	UserID    *common.UUID
	Payload   map[string]string
	CreatedAt time.Time
}

// Overview is the aggregate snapshot served to the administrator dashboard.
type Overview struct {
	TotalUsers           int            `json:"totalUsers"`
	Students             int            `json:"students"`
	Recruiters           int            `json:"recruiters"`
	TotalJobs            int            `json:"totalJobs"`
	TotalApplications    int            `json:"totalApplications"`
	ApplicationsByStatus map[string]int `json:"applicationsByStatus"`
	EventsLastWeek       int            `json:"eventsLastWeek"`
}

type Repository interface {
	Create(ctx context.Context, event Event) error
	Overview(ctx context.Context) (*Overview, error)
}
