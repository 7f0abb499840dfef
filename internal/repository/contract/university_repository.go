package contract

import (
	"context"

	"gradaid-be/internal/entity"
	"gradaid-be/internal/repository/specification"

	"github.com/google/uuid"
)

type UniversityRepository interface {
	Create(ctx context.Context, university *entity.University) error
	Update(ctx context.Context, university *entity.University) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.University, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.University, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

type ProgramRepository interface {
	Create(ctx context.Context, program *entity.Program) error
	Update(ctx context.Context, program *entity.Program) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Program, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Program, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
