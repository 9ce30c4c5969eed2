package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/trezcool/alama/core"
	"github.com/trezcool/alama/core/course"
)

type courseRepository struct {
	db *sqlx.DB
}

var _ course.Repository = (*courseRepository)(nil) // interface compliance check

func NewCourseRepository(db *sqlx.DB) *courseRepository {
	return &courseRepository{db: db}
}

func (repo courseRepository) CreateCourse(ctx context.Context, c course.Course) (course.Course, error) {
	query := `
		INSERT INTO courses (code, name, credits, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := repo.db.QueryRowContext(
		ctx, query,
		c.Code, c.Name, c.Credits, c.Description, c.CreatedAt, c.UpdatedAt,
	).Scan(&c.ID)
	if err != nil {
		if isUniqueViolation(err, "courses_code_key") {
			return course.Course{}, course.ErrCodeExists
		}
		return course.Course{}, core.NewInternalError("course creation failed", err)
	}
	return c, nil
}

func (repo courseRepository) QueryAllCourses(ctx context.Context) ([]course.Course, error) {
	query := `
		SELECT id, code, name, credits, description, created_at, updated_at
		FROM courses
		ORDER BY id`
	courses := make([]course.Course, 0)
	if err := repo.db.SelectContext(ctx, &courses, query); err != nil {
		return nil, core.NewInternalError("course lookup failed", err)
	}
	return courses, nil
}

func (repo courseRepository) GetCourseByID(ctx context.Context, id int) (course.Course, error) {
	query := `
		SELECT id, code, name, credits, description, created_at, updated_at
		FROM courses
		WHERE id = $1`
	var c course.Course
	if err := repo.db.GetContext(ctx, &c, query, id); err != nil {
		if err == sql.ErrNoRows {
			return course.Course{}, course.ErrNotFound
		}
		return course.Course{}, core.NewInternalError("course lookup failed", err)
	}
	return c, nil
}
