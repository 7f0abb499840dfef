package contract

import (
	"context"

	"gradaid-be/internal/entity"
	"gradaid-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ApplicationRepository interface {
	Create(ctx context.Context, application *entity.Application) error
	Update(ctx context.Context, application *entity.Application) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Application, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Application, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// CountByStatus groups the user's applications by status for the dashboard.
	CountByStatus(ctx context.Context, userId uuid.UUID) (map[string]int64, error)
}
