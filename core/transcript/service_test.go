package transcript_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/alama/core"
	"github.com/trezcool/alama/core/course"
	"github.com/trezcool/alama/core/grade"
	"github.com/trezcool/alama/core/stats"
	"github.com/trezcool/alama/core/student"
	"github.com/trezcool/alama/core/transcript"
	"github.com/trezcool/alama/storage/database/dummy"
)

type fixtures struct {
	studentRepo student.Repository
	courseRepo  course.Repository
	gradeRepo   grade.Repository
	statsSvc    *stats.Service
	svc         *transcript.Service
}

func setup(t *testing.T) *fixtures {
	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	conf := &core.Config{Stats: core.StatsConfig{PassThreshold: 50}}
	studentRepo := dummydb.NewStudentRepository(db)
	statsRepo := dummydb.NewStatsRepository(db)
	return &fixtures{
		studentRepo: studentRepo,
		courseRepo:  dummydb.NewCourseRepository(db),
		gradeRepo:   dummydb.NewGradeRepository(db),
		statsSvc:    stats.NewService(statsRepo, conf),
		svc:         transcript.NewService(studentRepo, statsRepo, conf),
	}
}

func (f *fixtures) student(t *testing.T, number string) student.Student {
	now := time.Now().UTC()
	std, err := f.studentRepo.CreateStudent(context.Background(), student.Student{
		Number:      number,
		FirstName:   "Grace",
		LastName:    "Hopper",
		Email:       number + "@test.cd",
		DateOfBirth: time.Date(1999, 12, 9, 0, 0, 0, 0, time.UTC),
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		t.Fatalf("student() failed: %v", err)
	}
	return std
}

func (f *fixtures) course(t *testing.T, code string, credits int) course.Course {
	now := time.Now().UTC()
	c, err := f.courseRepo.CreateCourse(context.Background(), course.Course{
		Code:      code,
		Name:      "Course " + code,
		Credits:   credits,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("course() failed: %v", err)
	}
	return c
}

func (f *fixtures) grade(t *testing.T, std student.Student, crs course.Course, score float64, semester, year string) {
	now := time.Now().UTC()
	_, err := f.gradeRepo.CreateGrade(context.Background(), grade.Grade{
		StudentID:    std.ID,
		CourseID:     crs.ID,
		Score:        score,
		Semester:     semester,
		AcademicYear: year,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		t.Fatalf("grade() failed: %v", err)
	}
}

func TestService_Build(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	std := f.student(t, "STD001")
	math := f.course(t, "MATH101", 5)
	phy := f.course(t, "PHY201", 3)

	f.grade(t, std, math, 60, grade.SemesterFall, "2024-2025")
	f.grade(t, std, phy, 40, grade.SemesterFall, "2024-2025")
	f.grade(t, std, math, 90, grade.SemesterSpring, "2024-2025")

	tr, err := f.svc.Build(ctx, std.ID, "")
	require.NoError(t, err)
	assert.NotEmpty(t, tr.Ref)
	assert.Equal(t, std.ID, tr.Student.ID)
	require.Len(t, tr.Groups, 2)

	// (60+40+90)/3
	assert.Equal(t, 63.33, tr.Summary.Average)
	assert.Equal(t, 13, tr.Summary.CreditsAttempted)
	assert.Equal(t, 10, tr.Summary.CreditsValidated)

	assert.Equal(t, "transcript_STD001.pdf", tr.Filename())

	t.Run("each build gets a fresh document ref", func(t *testing.T) {
		tr2, err := f.svc.Build(ctx, std.ID, "")
		require.NoError(t, err)
		assert.NotEqual(t, tr.Ref, tr2.Ref)
	})

	t.Run("subtotals agree with the student stats view", func(t *testing.T) {
		semStats, err := f.statsSvc.StudentSemesterStats(ctx, std.ID, "")
		require.NoError(t, err)
		require.Len(t, semStats, len(tr.Groups))
		for i, grp := range tr.Groups {
			assert.Equal(t, semStats[i], grp.SemesterStats)
		}
	})

	t.Run("academic year filter is carried on the document", func(t *testing.T) {
		filtered, err := f.svc.Build(ctx, std.ID, "2024-2025")
		require.NoError(t, err)
		assert.Equal(t, "2024-2025", filtered.AcademicYear)
		assert.Len(t, filtered.Groups, 2)
	})

	t.Run("unknown student", func(t *testing.T) {
		_, err := f.svc.Build(ctx, 404, "")
		assert.Equal(t, student.ErrNotFound, err)
	})

	t.Run("student without grades", func(t *testing.T) {
		other := f.student(t, "STD002")
		_, err := f.svc.Build(ctx, other.ID, "")
		assert.Equal(t, stats.ErrNoStudentGrades, err)
	})

	t.Run("filter matching nothing", func(t *testing.T) {
		_, err := f.svc.Build(ctx, std.ID, "2019-2020")
		assert.Equal(t, stats.ErrNoStudentGrades, err)
	})
}

func TestTranscript_Render(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	std := f.student(t, "STD001")
	math := f.course(t, "MATH101", 5)
	f.grade(t, std, math, 75, grade.SemesterFall, "2024-2025")

	tr, err := f.svc.Build(ctx, std.ID, "")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tr.Render(&buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")), "rendered document is not a PDF")
	assert.Greater(t, buf.Len(), 500)
}
