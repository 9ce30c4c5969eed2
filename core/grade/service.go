package grade

import (
	"context"
	"time"

	"github.com/trezcool/alama/core"
	"github.com/trezcool/alama/core/course"
	"github.com/trezcool/alama/core/student"
)

var (
	// errors
	ErrNotFound      = core.NewNotFoundError("grade not found")
	ErrAlreadyExists = core.NewConflictError("a grade already exists for this student, course, semester and academic year")
)

type (
	Repository interface {
		CreateGrade(ctx context.Context, g Grade) (Grade, error)
		QueryAllGrades(ctx context.Context) ([]Grade, error)
		GetGradeByID(ctx context.Context, id int) (Grade, error)
		QueryGradesByStudent(ctx context.Context, studentID int) ([]Grade, error)
		UpdateGrade(ctx context.Context, g Grade) (Grade, error)
		DeleteGradeByID(ctx context.Context, id int) error
	}

	Service struct {
		repo     Repository
		students student.Repository
		courses  course.Repository
	}
)

func NewService(repo Repository, students student.Repository, courses course.Repository) *Service {
	return &Service{repo: repo, students: students, courses: courses}
}

// validateReferences confirms the referenced entities exist before any write.
// The student is checked first so that a missing student is the reported error
// even when the course is missing too.
func (svc *Service) validateReferences(ctx context.Context, studentID, courseID int) error {
	if _, err := svc.students.GetStudentByID(ctx, studentID); err != nil {
		return err
	}
	if _, err := svc.courses.GetCourseByID(ctx, courseID); err != nil {
		return err
	}
	return nil
}

func (svc *Service) Create(ctx context.Context, ng NewGrade) (Grade, error) {
	if err := svc.validateReferences(ctx, ng.StudentID, ng.CourseID); err != nil {
		return Grade{}, err
	}
	now := time.Now().UTC()
	g := Grade{
		StudentID:    ng.StudentID,
		CourseID:     ng.CourseID,
		Score:        ng.Score,
		Semester:     ng.Semester,
		AcademicYear: ng.AcademicYear,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	// the store's unique constraint on (student, course, semester, academic year)
	// is the arbiter for concurrent conflicting creates; the repository
	// translates its violation to ErrAlreadyExists.
	return svc.repo.CreateGrade(ctx, g)
}

func (svc *Service) QueryAll(ctx context.Context) ([]Grade, error) {
	return svc.repo.QueryAllGrades(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id int) (Grade, error) {
	return svc.repo.GetGradeByID(ctx, id)
}

// QueryByStudent returns the student's grades. An unknown student simply has
// no grades; no existence check is made.
func (svc *Service) QueryByStudent(ctx context.Context, studentID int) ([]Grade, error) {
	return svc.repo.QueryGradesByStudent(ctx, studentID)
}

func (svc *Service) Update(ctx context.Context, id int, ug UpdateGrade) (Grade, error) {
	g, err := svc.repo.GetGradeByID(ctx, id)
	if err != nil {
		return Grade{}, err
	}
	if ug.Score.Valid {
		g.Score = ug.Score.Float64
	}
	if ug.Semester.Valid {
		g.Semester = ug.Semester.String
	}
	if ug.AcademicYear.Valid {
		g.AcademicYear = ug.AcademicYear.String
	}
	g.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateGrade(ctx, g)
}

func (svc *Service) Delete(ctx context.Context, id int) error {
	return svc.repo.DeleteGradeByID(ctx, id)
}
