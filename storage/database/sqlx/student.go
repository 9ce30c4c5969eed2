package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/trezcool/alama/core"
	"github.com/trezcool/alama/core/student"
)

type studentRepository struct {
	db *sqlx.DB
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *sqlx.DB) *studentRepository {
	return &studentRepository{db: db}
}

func (repo studentRepository) CreateStudent(ctx context.Context, s student.Student) (student.Student, error) {
	query := `
		INSERT INTO students (number, first_name, last_name, email, date_of_birth, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	err := repo.db.QueryRowContext(
		ctx, query,
		s.Number, s.FirstName, s.LastName, s.Email, s.DateOfBirth, s.CreatedAt, s.UpdatedAt,
	).Scan(&s.ID)
	if err != nil {
		if isUniqueViolation(err, "students_number_key") {
			return student.Student{}, student.ErrNumberExists
		}
		return student.Student{}, core.NewInternalError("student creation failed", err)
	}
	return s, nil
}

func (repo studentRepository) QueryAllStudents(ctx context.Context) ([]student.Student, error) {
	query := `
		SELECT id, number, first_name, last_name, email, date_of_birth, created_at, updated_at
		FROM students
		ORDER BY id`
	students := make([]student.Student, 0)
	if err := repo.db.SelectContext(ctx, &students, query); err != nil {
		return nil, core.NewInternalError("student lookup failed", err)
	}
	return students, nil
}

func (repo studentRepository) GetStudentByID(ctx context.Context, id int) (student.Student, error) {
	query := `
		SELECT id, number, first_name, last_name, email, date_of_birth, created_at, updated_at
		FROM students
		WHERE id = $1`
	var s student.Student
	if err := repo.db.GetContext(ctx, &s, query, id); err != nil {
		if err == sql.ErrNoRows {
			return student.Student{}, student.ErrNotFound
		}
		return student.Student{}, core.NewInternalError("student lookup failed", err)
	}
	return s, nil
}

func (repo studentRepository) UpdateStudent(ctx context.Context, s student.Student) (student.Student, error) {
	query := `
		UPDATE students
		SET email = $2, updated_at = $3
		WHERE id = $1`
	res, err := repo.db.ExecContext(ctx, query, s.ID, s.Email, s.UpdatedAt)
	if err != nil {
		return student.Student{}, core.NewInternalError("student update failed", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return student.Student{}, core.NewInternalError("student update failed", err)
	} else if n == 0 {
		return student.Student{}, student.ErrNotFound
	}
	return s, nil
}

func (repo studentRepository) DeleteStudentByID(ctx context.Context, id int) error {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		// the grades FK restricts the delete while grades reference the student
		if isFKViolation(err) {
			return student.ErrHasGrades
		}
		return core.NewInternalError("student deletion failed", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return core.NewInternalError("student deletion failed", err)
	} else if n == 0 {
		return student.ErrNotFound
	}
	return nil
}
