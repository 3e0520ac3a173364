package application

import (
	"context"

	"github.com/jihan212/BUBT-DX/internal/common"
)

type Repository interface {
	Create(ctx context.Context, app Application) (*Application, error)
	GetByID(ctx context.Context, id common.UUID) (*Application, error)
	FindByJobAndStudent(ctx context.Context, jobID, studentID common.UUID) (*Application, error)
	ListByJob(ctx context.Context, jobID common.UUID) ([]Applicant, error)
	ListByStudent(ctx context.Context, studentID common.UUID) ([]StudentEntry, error)
	UpdateStatus(ctx context.Context, id common.UUID, status Status) (*Application, error)
}
