package service

import (
	"context"
	"fmt"
	"time"

	"gradaid-be/internal/apperror"
	"gradaid-be/internal/dto"
	"gradaid-be/internal/entity"
	"gradaid-be/internal/repository/specification"
	"gradaid-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

const (
	universityListCacheKey = "universities:all"
	catalogCacheTTL        = 10 * time.Minute
)

type IUniversityService interface {
	CreateUniversity(ctx context.Context, req *dto.CreateUniversityRequest) (*dto.UniversityResponse, error)
	ListUniversities(ctx context.Context, country string) ([]*dto.UniversityResponse, error)
	GetUniversity(ctx context.Context, id uuid.UUID) (*dto.UniversityResponse, error)
	DeleteUniversity(ctx context.Context, id uuid.UUID) error

	CreateProgram(ctx context.Context, universityId uuid.UUID, req *dto.CreateProgramRequest) (*dto.ProgramResponse, error)
	ListPrograms(ctx context.Context, universityId uuid.UUID) ([]*dto.ProgramResponse, error)
}

// universityService serves the shared catalog. Reads dominate writes by a wide
// margin, so unfiltered list results sit in an in-process TTL cache that every
// catalog write invalidates.
type universityService struct {
	uowFactory unitofwork.RepositoryFactory
	cache      *gocache.Cache
}

func NewUniversityService(uowFactory unitofwork.RepositoryFactory) IUniversityService {
	return &universityService{
		uowFactory: uowFactory,
		cache:      gocache.New(catalogCacheTTL, 2*catalogCacheTTL),
	}
}

func (s *universityService) CreateUniversity(ctx context.Context, req *dto.CreateUniversityRequest) (*dto.UniversityResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.UniversityRepository().FindOne(ctx, specification.Filter("name", req.Name))
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.Conflict("university already exists")
	}

	university := &entity.University{
		Name:    req.Name,
		Country: req.Country,
		City:    req.City,
		Ranking: req.Ranking,
		Website: req.Website,
	}
	if err := uow.UniversityRepository().Create(ctx, university); err != nil {
		return nil, err
	}

	s.cache.Delete(universityListCacheKey)
	return toUniversityResponse(university), nil
}

func (s *universityService) ListUniversities(ctx context.Context, country string) ([]*dto.UniversityResponse, error) {
	if country == "" {
		if cached, ok := s.cache.Get(universityListCacheKey); ok {
			return cached.([]*dto.UniversityResponse), nil
		}
	}

	specs := []specification.Specification{specification.OrderBy{Field: "name", Desc: false}}
	if country != "" {
		specs = append(specs, specification.Filter("country", country))
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	universities, err := uow.UniversityRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.UniversityResponse, len(universities))
	for i, u := range universities {
		res[i] = toUniversityResponse(u)
	}

	if country == "" {
		s.cache.Set(universityListCacheKey, res, gocache.DefaultExpiration)
	}
	return res, nil
}

func (s *universityService) GetUniversity(ctx context.Context, id uuid.UUID) (*dto.UniversityResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	university, err := uow.UniversityRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if university == nil {
		return nil, apperror.NotFound("university not found")
	}
	return toUniversityResponse(university), nil
}

func (s *universityService) DeleteUniversity(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	university, err := uow.UniversityRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if university == nil {
		return apperror.NotFound("university not found")
	}
	if err := uow.UniversityRepository().Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Delete(universityListCacheKey)
	return nil
}

func (s *universityService) CreateProgram(ctx context.Context, universityId uuid.UUID, req *dto.CreateProgramRequest) (*dto.ProgramResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	university, err := uow.UniversityRepository().FindOne(ctx, specification.ByID{ID: universityId})
	if err != nil {
		return nil, err
	}
	if university == nil {
		return nil, apperror.NotFound("university not found")
	}

	program := &entity.Program{
		UniversityId: universityId,
		Name:         req.Name,
		Degree:       req.Degree,
		Department:   req.Department,
		Deadline:     req.Deadline,
		Requirements: req.Requirements,
		TuitionNote:  req.TuitionNote,
	}
	if err := uow.ProgramRepository().Create(ctx, program); err != nil {
		return nil, err
	}

	s.cache.Delete(programCacheKey(universityId))
	return toProgramResponse(program), nil
}

func (s *universityService) ListPrograms(ctx context.Context, universityId uuid.UUID) ([]*dto.ProgramResponse, error) {
	key := programCacheKey(universityId)
	if cached, ok := s.cache.Get(key); ok {
		return cached.([]*dto.ProgramResponse), nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	programs, err := uow.ProgramRepository().FindAll(ctx,
		specification.Filter("university_id", universityId),
		specification.OrderBy{Field: "name", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.ProgramResponse, len(programs))
	for i, p := range programs {
		res[i] = toProgramResponse(p)
	}
	s.cache.Set(key, res, gocache.DefaultExpiration)
	return res, nil
}

func programCacheKey(universityId uuid.UUID) string {
	return fmt.Sprintf("programs:%s", universityId)
}

func toUniversityResponse(u *entity.University) *dto.UniversityResponse {
	return &dto.UniversityResponse{
		Id:      u.Id,
		Name:    u.Name,
		Country: u.Country,
		City:    u.City,
		Ranking: u.Ranking,
		Website: u.Website,
	}
}

func toProgramResponse(p *entity.Program) *dto.ProgramResponse {
	return &dto.ProgramResponse{
		Id:           p.Id,
		UniversityId: p.UniversityId,
		Name:         p.Name,
		Degree:       p.Degree,
		Department:   p.Department,
		Deadline:     p.Deadline,
		Requirements: p.Requirements,
		TuitionNote:  p.TuitionNote,
	}
}
