package dummydb

import (
	"context"
	"sort"

	"github.com/trezcool/alama/core/grade"
	"github.com/trezcool/alama/core/stats"
)

type statsRepository struct {
	db *DB
}

var _ stats.Repository = (*statsRepository)(nil) // interface compliance check

func NewStatsRepository(db *DB) stats.Repository {
	return &statsRepository{db: db}
}

func (repo *statsRepository) matchingGrades(courseID, studentID int, academicYear string) []grade.Grade {
	repo.db.grade.RLock()
	defer repo.db.grade.RUnlock()

	grades := make([]grade.Grade, 0)
	for _, g := range repo.db.grade.table {
		if courseID != 0 && g.CourseID != courseID {
			continue
		}
		if studentID != 0 && g.StudentID != studentID {
			continue
		}
		if academicYear != "" && g.AcademicYear != academicYear {
			continue
		}
		grades = append(grades, *g)
	}
	return grades
}

func (repo *statsRepository) QueryCourseStats(
	_ context.Context,
	courseID int,
	academicYear string,
	passThreshold float64,
) (stats.CourseStats, error) {
	grades := repo.matchingGrades(courseID, 0, academicYear)
	if len(grades) == 0 {
		return stats.CourseStats{}, stats.ErrNoCourseGrades
	}

	repo.db.course.RLock()
	c, ok := repo.db.course.table[courseID]
	repo.db.course.RUnlock()
	if !ok {
		return stats.CourseStats{}, stats.ErrNoCourseGrades
	}

	cs := stats.CourseStats{
		CourseID:     c.ID,
		CourseCode:   c.Code,
		CourseName:   c.Name,
		Min:          grades[0].Score,
		Max:          grades[0].Score,
		StudentCount: len(grades),
	}
	var total, passed float64
	for _, g := range grades {
		total += g.Score
		if g.Score < cs.Min {
			cs.Min = g.Score
		}
		if g.Score > cs.Max {
			cs.Max = g.Score
		}
		if g.Score >= passThreshold {
			passed++
		}
	}
	cs.Average = total / float64(len(grades))
	cs.SuccessRate = passed / float64(len(grades)) * 100
	return cs, nil
}

func (repo *statsRepository) QueryStudentGrades(
	_ context.Context,
	studentID int,
	academicYear string,
) ([]stats.StudentGrade, error) {
	grades := repo.matchingGrades(0, studentID, academicYear)

	repo.db.course.RLock()
	defer repo.db.course.RUnlock()

	joined := make([]stats.StudentGrade, 0, len(grades))
	for _, g := range grades {
		c, ok := repo.db.course.table[g.CourseID]
		if !ok {
			continue
		}
		joined = append(joined, stats.StudentGrade{
			GradeID:      g.ID,
			CourseID:     c.ID,
			CourseCode:   c.Code,
			CourseName:   c.Name,
			Credits:      c.Credits,
			Score:        g.Score,
			Semester:     g.Semester,
			AcademicYear: g.AcademicYear,
		})
	}
	sort.Slice(joined, func(i, j int) bool {
		if joined[i].AcademicYear != joined[j].AcademicYear {
			return joined[i].AcademicYear < joined[j].AcademicYear
		}
		if joined[i].Semester != joined[j].Semester {
			return grade.SemesterRank(joined[i].Semester) < grade.SemesterRank(joined[j].Semester)
		}
		return joined[i].CourseCode < joined[j].CourseCode
	})
	return joined, nil
}

func (repo *statsRepository) QueryGlobalStats(
	_ context.Context,
	academicYear string,
	passThreshold float64,
) (stats.GlobalStats, error) {
	grades := repo.matchingGrades(0, 0, academicYear)
	if len(grades) == 0 {
		return stats.GlobalStats{}, nil
	}

	students := make(map[int]struct{})
	byCourse := make(map[int][]grade.Grade)
	var total float64
	for _, g := range grades {
		total += g.Score
		students[g.StudentID] = struct{}{}
		byCourse[g.CourseID] = append(byCourse[g.CourseID], g)
	}

	var rateSum float64
	for _, courseGrades := range byCourse {
		var passed float64
		for _, g := range courseGrades {
			if g.Score >= passThreshold {
				passed++
			}
		}
		rateSum += passed / float64(len(courseGrades)) * 100
	}

	return stats.GlobalStats{
		Average:            total / float64(len(grades)),
		StudentCount:       len(students),
		CourseCount:        len(byCourse),
		AverageSuccessRate: rateSum / float64(len(byCourse)),
	}, nil
}
