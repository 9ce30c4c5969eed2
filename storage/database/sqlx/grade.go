package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/trezcool/alama/core"
	"github.com/trezcool/alama/core/grade"
)

const gradeTupleConstraint = "grades_student_course_semester_year_key"

type gradeRepository struct {
	db *sqlx.DB
}

var _ grade.Repository = (*gradeRepository)(nil) // interface compliance check

func NewGradeRepository(db *sqlx.DB) *gradeRepository {
	return &gradeRepository{db: db}
}

func (repo gradeRepository) CreateGrade(ctx context.Context, g grade.Grade) (grade.Grade, error) {
	query := `
		INSERT INTO grades (student_id, course_id, score, semester, academic_year, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	err := repo.db.QueryRowContext(
		ctx, query,
		g.StudentID, g.CourseID, g.Score, g.Semester, g.AcademicYear, g.CreatedAt, g.UpdatedAt,
	).Scan(&g.ID)
	if err != nil {
		if isUniqueViolation(err, gradeTupleConstraint) {
			return grade.Grade{}, grade.ErrAlreadyExists
		}
		return grade.Grade{}, core.NewInternalError("grade creation failed", err)
	}
	return g, nil
}

func (repo gradeRepository) QueryAllGrades(ctx context.Context) ([]grade.Grade, error) {
	query := `
		SELECT id, student_id, course_id, score, semester, academic_year, created_at, updated_at
		FROM grades
		ORDER BY id`
	grades := make([]grade.Grade, 0)
	if err := repo.db.SelectContext(ctx, &grades, query); err != nil {
		return nil, core.NewInternalError("grade lookup failed", err)
	}
	return grades, nil
}

func (repo gradeRepository) GetGradeByID(ctx context.Context, id int) (grade.Grade, error) {
	query := `
		SELECT id, student_id, course_id, score, semester, academic_year, created_at, updated_at
		FROM grades
		WHERE id = $1`
	var g grade.Grade
	if err := repo.db.GetContext(ctx, &g, query, id); err != nil {
		if err == sql.ErrNoRows {
			return grade.Grade{}, grade.ErrNotFound
		}
		return grade.Grade{}, core.NewInternalError("grade lookup failed", err)
	}
	return g, nil
}

func (repo gradeRepository) QueryGradesByStudent(ctx context.Context, studentID int) ([]grade.Grade, error) {
	query := `
		SELECT id, student_id, course_id, score, semester, academic_year, created_at, updated_at
		FROM grades
		WHERE student_id = $1
		ORDER BY id`
	grades := make([]grade.Grade, 0)
	if err := repo.db.SelectContext(ctx, &grades, query, studentID); err != nil {
		return nil, core.NewInternalError("grade lookup failed", err)
	}
	return grades, nil
}

func (repo gradeRepository) UpdateGrade(ctx context.Context, g grade.Grade) (grade.Grade, error) {
	query := `
		UPDATE grades
		SET score = $2, semester = $3, academic_year = $4, updated_at = $5
		WHERE id = $1`
	res, err := repo.db.ExecContext(ctx, query, g.ID, g.Score, g.Semester, g.AcademicYear, g.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, gradeTupleConstraint) {
			return grade.Grade{}, grade.ErrAlreadyExists
		}
		return grade.Grade{}, core.NewInternalError("grade update failed", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return grade.Grade{}, core.NewInternalError("grade update failed", err)
	} else if n == 0 {
		return grade.Grade{}, grade.ErrNotFound
	}
	return g, nil
}

func (repo gradeRepository) DeleteGradeByID(ctx context.Context, id int) error {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM grades WHERE id = $1`, id)
	if err != nil {
		return core.NewInternalError("grade deletion failed", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return core.NewInternalError("grade deletion failed", err)
	} else if n == 0 {
		return grade.ErrNotFound
	}
	return nil
}
