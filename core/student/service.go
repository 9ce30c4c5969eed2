package student

import (
	"context"
	"time"

	"github.com/trezcool/alama/core"
)

var (
	// errors
	ErrNotFound     = core.NewNotFoundError("student not found")
	ErrNumberExists = core.NewConflictError("a student with this number already exists")
	ErrHasGrades    = core.NewConflictError("this student has grades and cannot be deleted")
)

type (
	Repository interface {
		CreateStudent(ctx context.Context, s Student) (Student, error)
		QueryAllStudents(ctx context.Context) ([]Student, error)
		GetStudentByID(ctx context.Context, id int) (Student, error)
		UpdateStudent(ctx context.Context, s Student) (Student, error)
		// DeleteStudentByID removes the student; the store's FK policy guards
		// it and a still-referenced student yields ErrHasGrades.
		DeleteStudentByID(ctx context.Context, id int) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, ns NewStudent) (Student, error) {
	dob, err := time.Parse(dobLayout, ns.DateOfBirth)
	if err != nil {
		return Student{}, core.NewValidationError(err, core.FieldError{Field: "date_of_birth", Error: "invalid date"})
	}
	now := time.Now().UTC()
	s := Student{
		Number:      ns.Number,
		FirstName:   ns.FirstName,
		LastName:    ns.LastName,
		Email:       ns.Email,
		DateOfBirth: dob,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return svc.repo.CreateStudent(ctx, s)
}

func (svc *Service) QueryAll(ctx context.Context) ([]Student, error) {
	return svc.repo.QueryAllStudents(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id int) (Student, error) {
	return svc.repo.GetStudentByID(ctx, id)
}

func (svc *Service) Update(ctx context.Context, id int, us UpdateStudent) (Student, error) {
	s, err := svc.repo.GetStudentByID(ctx, id)
	if err != nil {
		return Student{}, err
	}
	if us.Email.Valid {
		s.Email = us.Email.String
	}
	s.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateStudent(ctx, s)
}

func (svc *Service) Delete(ctx context.Context, id int) error {
	return svc.repo.DeleteStudentByID(ctx, id)
}
