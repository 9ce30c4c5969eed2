package database

import (
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

// schema is applied idempotently at startup. The unique constraint on grades
// is the arbiter for concurrent conflicting creates; uniqueness is never
// enforced with an in-process lock.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS students (
		id            SERIAL PRIMARY KEY,
		number        TEXT NOT NULL UNIQUE,
		first_name    TEXT NOT NULL,
		last_name     TEXT NOT NULL,
		email         TEXT NOT NULL,
		date_of_birth DATE NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL,
		updated_at    TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS courses (
		id          SERIAL PRIMARY KEY,
		code        TEXT NOT NULL UNIQUE,
		name        TEXT NOT NULL,
		credits     INT NOT NULL CHECK (credits > 0),
		description TEXT NOT NULL DEFAULT '',
		created_at  TIMESTAMPTZ NOT NULL,
		updated_at  TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS grades (
		id            SERIAL PRIMARY KEY,
		student_id    INT NOT NULL REFERENCES students (id),
		course_id     INT NOT NULL REFERENCES courses (id),
		score         NUMERIC(5,2) NOT NULL CHECK (score >= 0 AND score <= 100),
		semester      TEXT NOT NULL,
		academic_year TEXT NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL,
		updated_at    TIMESTAMPTZ NOT NULL,
		CONSTRAINT grades_student_course_semester_year_key
			UNIQUE (student_id, course_id, semester, academic_year)
	)`,
	`CREATE INDEX IF NOT EXISTS grades_student_id_idx ON grades (student_id)`,
	`CREATE INDEX IF NOT EXISTS grades_course_id_idx ON grades (course_id)`,
	`CREATE INDEX IF NOT EXISTS grades_academic_year_idx ON grades (academic_year)`,
}

// EnsureSchema creates the tables and indexes if they do not exist yet.
func EnsureSchema(db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return errors.Wrap(err, "applying schema")
		}
	}
	return nil
}
