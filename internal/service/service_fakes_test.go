package service

import (
	"context"

	"gradaid-be/internal/entity"
	"gradaid-be/internal/repository/specification"

	"github.com/google/uuid"
)

// Additional fake repositories backed by the shared ledgerState. Matching
// covers the specifications the services actually use; ordering and paging
// specs are ignored.

type fakeUserRepo struct{ uow *fakeUow }

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	user.Id = uuid.New()
	cp := *user
	r.uow.current().users[user.Id] = &cp
	return nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	cp := *user
	r.uow.current().users[user.Id] = &cp
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.uow.current().users, id)
	return nil
}

func (r *fakeUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	for _, u := range r.uow.current().users {
		if userMatches(u, specs) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.uow.current().users {
		if userMatches(u, specs) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	users, _ := r.FindAll(ctx, specs...)
	return int64(len(users)), nil
}

func userMatches(u *entity.User, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if u.Id != s.ID {
				return false
			}
		case specification.FilterBy:
			if s.Field == "email" && u.Email != s.Value.(string) {
				return false
			}
		}
	}
	return true
}

type fakeUniversityRepo struct{ uow *fakeUow }

func (r *fakeUniversityRepo) Create(ctx context.Context, university *entity.University) error {
	university.Id = uuid.New()
	cp := *university
	r.uow.current().universities[university.Id] = &cp
	return nil
}

func (r *fakeUniversityRepo) Update(ctx context.Context, university *entity.University) error {
	cp := *university
	r.uow.current().universities[university.Id] = &cp
	return nil
}

func (r *fakeUniversityRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.uow.current().universities, id)
	return nil
}

func (r *fakeUniversityRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.University, error) {
	for _, u := range r.uow.current().universities {
		if universityMatches(u, specs) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUniversityRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.University, error) {
	var out []*entity.University
	for _, u := range r.uow.current().universities {
		if universityMatches(u, specs) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUniversityRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	universities, _ := r.FindAll(ctx, specs...)
	return int64(len(universities)), nil
}

func universityMatches(u *entity.University, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if u.Id != s.ID {
				return false
			}
		case specification.FilterBy:
			switch s.Field {
			case "name":
				if u.Name != s.Value.(string) {
					return false
				}
			case "country":
				if u.Country != s.Value.(string) {
					return false
				}
			}
		}
	}
	return true
}

type fakeProgramRepo struct{ uow *fakeUow }

func (r *fakeProgramRepo) Create(ctx context.Context, program *entity.Program) error {
	program.Id = uuid.New()
	cp := *program
	r.uow.current().programs[program.Id] = &cp
	return nil
}

func (r *fakeProgramRepo) Update(ctx context.Context, program *entity.Program) error {
	cp := *program
	r.uow.current().programs[program.Id] = &cp
	return nil
}

func (r *fakeProgramRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.uow.current().programs, id)
	return nil
}

func (r *fakeProgramRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Program, error) {
	for _, p := range r.uow.current().programs {
		if programMatches(p, specs) {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProgramRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Program, error) {
	var out []*entity.Program
	for _, p := range r.uow.current().programs {
		if programMatches(p, specs) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProgramRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	programs, _ := r.FindAll(ctx, specs...)
	return int64(len(programs)), nil
}

func programMatches(p *entity.Program, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if p.Id != s.ID {
				return false
			}
		case specification.FilterBy:
			if s.Field == "university_id" && p.UniversityId != s.Value.(uuid.UUID) {
				return false
			}
		}
	}
	return true
}

type fakeApplicationRepo struct{ uow *fakeUow }

func (r *fakeApplicationRepo) Create(ctx context.Context, application *entity.Application) error {
	application.Id = uuid.New()
	cp := *application
	r.uow.current().applications[application.Id] = &cp
	return nil
}

func (r *fakeApplicationRepo) Update(ctx context.Context, application *entity.Application) error {
	cp := *application
	r.uow.current().applications[application.Id] = &cp
	return nil
}

func (r *fakeApplicationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.uow.current().applications, id)
	return nil
}

func (r *fakeApplicationRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Application, error) {
	for _, a := range r.uow.current().applications {
		if applicationMatches(a, specs) {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeApplicationRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Application, error) {
	var out []*entity.Application
	for _, a := range r.uow.current().applications {
		if applicationMatches(a, specs) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeApplicationRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	applications, _ := r.FindAll(ctx, specs...)
	return int64(len(applications)), nil
}

func (r *fakeApplicationRepo) CountByStatus(ctx context.Context, userId uuid.UUID) (map[string]int64, error) {
	out := make(map[string]int64)
	for _, a := range r.uow.current().applications {
		if a.UserId == userId {
			out[string(a.Status)]++
		}
	}
	return out, nil
}

func applicationMatches(a *entity.Application, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if a.Id != s.ID {
				return false
			}
		case specification.UserOwnedBy:
			if a.UserId != s.UserID {
				return false
			}
		case specification.FilterBy:
			if s.Field == "program_id" && a.ProgramId != s.Value.(uuid.UUID) {
				return false
			}
		case specification.DeadlineBefore:
			if a.Deadline == nil {
				return false
			}
		}
	}
	return true
}

type fakeDocumentRepo struct{ uow *fakeUow }

func (r *fakeDocumentRepo) Create(ctx context.Context, document *entity.Document) error {
	document.Id = uuid.New()
	cp := *document
	r.uow.current().documents[document.Id] = &cp
	return nil
}

func (r *fakeDocumentRepo) Update(ctx context.Context, document *entity.Document) error {
	cp := *document
	r.uow.current().documents[document.Id] = &cp
	return nil
}

func (r *fakeDocumentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.uow.current().documents, id)
	return nil
}

func (r *fakeDocumentRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Document, error) {
	for _, d := range r.uow.current().documents {
		if documentMatches(d, specs) {
			cp := *d
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeDocumentRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Document, error) {
	var out []*entity.Document
	for _, d := range r.uow.current().documents {
		if documentMatches(d, specs) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *fakeDocumentRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	documents, _ := r.FindAll(ctx, specs...)
	return int64(len(documents)), nil
}

func documentMatches(d *entity.Document, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if d.Id != s.ID {
				return false
			}
		case specification.UserOwnedBy:
			if d.UserId != s.UserID {
				return false
			}
		case specification.FilterBy:
			if s.Field == "application_id" && d.ApplicationId != s.Value.(uuid.UUID) {
				return false
			}
		}
	}
	return true
}
