package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/trezcool/alama/core"
	"github.com/trezcool/alama/core/stats"
)

// statsRepository pushes the aggregations down to the store; the contract is
// on the result, not the execution strategy.
type statsRepository struct {
	db *sqlx.DB
}

var _ stats.Repository = (*statsRepository)(nil) // interface compliance check

func NewStatsRepository(db *sqlx.DB) *statsRepository {
	return &statsRepository{db: db}
}

func (repo statsRepository) QueryCourseStats(
	ctx context.Context,
	courseID int,
	academicYear string,
	passThreshold float64,
) (stats.CourseStats, error) {
	query := `
		SELECT c.id AS course_id, c.code AS course_code, c.name AS course_name,
		       AVG(g.score) AS average, MIN(g.score) AS min, MAX(g.score) AS max,
		       COUNT(g.id) AS student_count,
		       AVG(CASE WHEN g.score >= $2 THEN 100.0 ELSE 0.0 END) AS success_rate
		FROM grades g
		JOIN courses c ON c.id = g.course_id
		WHERE g.course_id = $1`
	args := []interface{}{courseID, passThreshold}
	if academicYear != "" {
		query += ` AND g.academic_year = $3`
		args = append(args, academicYear)
	}
	query += ` GROUP BY c.id, c.code, c.name`

	var cs stats.CourseStats
	if err := repo.db.GetContext(ctx, &cs, query, args...); err != nil {
		if err == sql.ErrNoRows {
			return stats.CourseStats{}, stats.ErrNoCourseGrades
		}
		return stats.CourseStats{}, core.NewInternalError("course stats computation failed", err)
	}
	return cs, nil
}

func (repo statsRepository) QueryStudentGrades(
	ctx context.Context,
	studentID int,
	academicYear string,
) ([]stats.StudentGrade, error) {
	query := `
		SELECT g.id AS grade_id, c.id AS course_id, c.code AS course_code, c.name AS course_name,
		       c.credits AS credits, g.score, g.semester, g.academic_year
		FROM grades g
		JOIN courses c ON c.id = g.course_id
		WHERE g.student_id = $1`
	args := []interface{}{studentID}
	if academicYear != "" {
		query += ` AND g.academic_year = $2`
		args = append(args, academicYear)
	}
	query += `
		ORDER BY g.academic_year,
		         CASE g.semester WHEN 'Fall' THEN 0 WHEN 'Spring' THEN 1 ELSE 2 END,
		         c.code`

	grades := make([]stats.StudentGrade, 0)
	if err := repo.db.SelectContext(ctx, &grades, query, args...); err != nil {
		return nil, core.NewInternalError("student stats computation failed", err)
	}
	return grades, nil
}

func (repo statsRepository) QueryGlobalStats(
	ctx context.Context,
	academicYear string,
	passThreshold float64,
) (stats.GlobalStats, error) {
	query := `
		SELECT COALESCE(AVG(g.score), 0) AS average,
		       COUNT(DISTINCT g.student_id) AS student_count,
		       COUNT(DISTINCT g.course_id) AS course_count,
		       0.0 AS average_success_rate
		FROM grades g`
	args := make([]interface{}, 0, 1)
	if academicYear != "" {
		query += ` WHERE g.academic_year = $1`
		args = append(args, academicYear)
	}

	var gs stats.GlobalStats
	if err := repo.db.GetContext(ctx, &gs, query, args...); err != nil {
		return stats.GlobalStats{}, core.NewInternalError("global stats computation failed", err)
	}

	// mean of per-course success rates, not the global pass rate: a small
	// course weighs as much as a large one.
	rateQuery := `
		SELECT COALESCE(AVG(rate), 0)
		FROM (
			SELECT AVG(CASE WHEN score >= $1 THEN 100.0 ELSE 0.0 END) AS rate
			FROM grades`
	rateArgs := []interface{}{passThreshold}
	if academicYear != "" {
		rateQuery += ` WHERE academic_year = $2`
		rateArgs = append(rateArgs, academicYear)
	}
	rateQuery += `
			GROUP BY course_id
		) course_rates`

	if err := repo.db.GetContext(ctx, &gs.AverageSuccessRate, rateQuery, rateArgs...); err != nil {
		return stats.GlobalStats{}, core.NewInternalError("global stats computation failed", err)
	}
	return gs, nil
}
