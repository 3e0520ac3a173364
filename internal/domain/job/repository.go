package job

import (
	"context"

	"github.com/jihan212/BUBT-DX/internal/common"
)

type Repository interface {
	Create(ctx context.Context, j Job) (*Job, error)
	GetByID(ctx context.Context, id common.UUID) (*Job, error)
	List(ctx context.Context) ([]Job, error)
	ListByRecruiter(ctx context.Context, recruiterID common.UUID) ([]Job, error)
	Update(ctx context.Context, j Job) (*Job, error)
	Delete(ctx context.Context, id common.UUID) error
}
