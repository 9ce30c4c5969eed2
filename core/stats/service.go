package stats

import (
	"context"
	"sort"

	"github.com/trezcool/alama/core"
	"github.com/trezcool/alama/core/grade"
)

var (
	// errors; an academic-year filter matching nothing is treated identically
	// to "no data at all": explicit absence beats all-zero statistics.
	ErrNoCourseGrades  = core.NewNotFoundError("no grades found for this course")
	ErrNoStudentGrades = core.NewNotFoundError("no grades found for this student")
	ErrNoGrades        = core.NewNotFoundError("no grades recorded")
)

type (
	Repository interface {
		// QueryCourseStats aggregates over a course's grades, optionally
		// scoped to an academic year. A course with zero matching grades
		// yields ErrNoCourseGrades.
		QueryCourseStats(ctx context.Context, courseID int, academicYear string, passThreshold float64) (CourseStats, error)
		// QueryStudentGrades returns the student's grades joined with their
		// courses, optionally scoped to an academic year.
		QueryStudentGrades(ctx context.Context, studentID int, academicYear string) ([]StudentGrade, error)
		// QueryGlobalStats aggregates over all grades, optionally scoped to an
		// academic year. No matching grades yields ErrNoGrades.
		QueryGlobalStats(ctx context.Context, academicYear string, passThreshold float64) (GlobalStats, error)
	}

	Service struct {
		repo Repository
		conf *core.Config
	}
)

func NewService(repo Repository, conf *core.Config) *Service {
	return &Service{repo: repo, conf: conf}
}

func (svc *Service) CourseStats(ctx context.Context, courseID int, academicYear string) (CourseStats, error) {
	cs, err := svc.repo.QueryCourseStats(ctx, courseID, academicYear, svc.conf.Stats.PassThreshold)
	if err != nil {
		return CourseStats{}, err
	}
	if cs.StudentCount == 0 {
		return CourseStats{}, ErrNoCourseGrades
	}
	cs.Average = core.Round2(cs.Average)
	cs.SuccessRate = core.Round2(cs.SuccessRate)
	return cs, nil
}

// StudentSemesterStats groups the student's grades by semester, ordered
// chronologically, with per-semester averages and credit subtotals.
func (svc *Service) StudentSemesterStats(ctx context.Context, studentID int, academicYear string) ([]SemesterStats, error) {
	grades, err := svc.repo.QueryStudentGrades(ctx, studentID, academicYear)
	if err != nil {
		return nil, err
	}
	if len(grades) == 0 {
		return nil, ErrNoStudentGrades
	}

	groups := GroupBySemester(grades, svc.conf.Stats.PassThreshold)
	semStats := make([]SemesterStats, 0, len(groups))
	for _, grp := range groups {
		semStats = append(semStats, grp.SemesterStats)
	}
	return semStats, nil
}

func (svc *Service) GlobalStats(ctx context.Context, academicYear string) (GlobalStats, error) {
	gs, err := svc.repo.QueryGlobalStats(ctx, academicYear, svc.conf.Stats.PassThreshold)
	if err != nil {
		return GlobalStats{}, err
	}
	if gs.StudentCount == 0 {
		return GlobalStats{}, ErrNoGrades
	}
	gs.Average = core.Round2(gs.Average)
	gs.AverageSuccessRate = core.Round2(gs.AverageSuccessRate)
	return gs, nil
}

// GroupBySemester folds joined grade rows into per-semester groups ordered
// chronologically: academic year ascending, then Fall, Spring, Summer.
// The transcript assembler reuses it so that transcript subtotals and the
// student-semester stats view cannot drift apart.
func GroupBySemester(grades []StudentGrade, passThreshold float64) []SemesterGroup {
	type key struct {
		year     string
		semester string
	}

	bySemester := make(map[key][]StudentGrade)
	keys := make([]key, 0)
	for _, g := range grades {
		k := key{g.AcademicYear, g.Semester}
		if _, ok := bySemester[k]; !ok {
			keys = append(keys, k)
		}
		bySemester[k] = append(bySemester[k], g)
	}

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year < keys[j].year
		}
		return grade.SemesterRank(keys[i].semester) < grade.SemesterRank(keys[j].semester)
	})

	groups := make([]SemesterGroup, 0, len(keys))
	for _, k := range keys {
		grp := SemesterGroup{
			SemesterStats: SemesterStats{
				AcademicYear: k.year,
				Semester:     k.semester,
			},
			Grades: bySemester[k],
		}
		var total float64
		for _, g := range grp.Grades {
			total += g.Score
			grp.CreditsAttempted += g.Credits
			if g.Score >= passThreshold {
				grp.CreditsValidated += g.Credits
			}
		}
		grp.CourseCount = len(grp.Grades)
		grp.Average = core.Round2(total / float64(grp.CourseCount))
		groups = append(groups, grp)
	}
	return groups
}
