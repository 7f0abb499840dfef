package unitofwork

import (
	"context"

	"gradaid-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	CreditRepository() contract.CreditRepository
	ActivityRepository() contract.ActivityRepository
	UniversityRepository() contract.UniversityRepository
	ProgramRepository() contract.ProgramRepository
	ApplicationRepository() contract.ApplicationRepository
	DocumentRepository() contract.DocumentRepository
}
