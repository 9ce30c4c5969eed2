package grade_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/alama/core/course"
	"github.com/trezcool/alama/core/grade"
	"github.com/trezcool/alama/core/student"
	"github.com/trezcool/alama/storage/database/dummy"
)

func setup(t *testing.T) (*grade.Service, student.Repository, course.Repository) {
	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	studentRepo := dummydb.NewStudentRepository(db)
	courseRepo := dummydb.NewCourseRepository(db)
	gradeRepo := dummydb.NewGradeRepository(db)
	svc := grade.NewService(gradeRepo, studentRepo, courseRepo)
	return svc, studentRepo, courseRepo
}

func createStudent(t *testing.T, repo student.Repository, number string) student.Student {
	now := time.Now().UTC()
	std, err := repo.CreateStudent(context.Background(), student.Student{
		Number:      number,
		FirstName:   "Ada",
		LastName:    "Lovelace",
		Email:       number + "@test.cd",
		DateOfBirth: time.Date(2000, 6, 15, 0, 0, 0, 0, time.UTC),
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		t.Fatalf("createStudent() failed: %v", err)
	}
	return std
}

func createCourse(t *testing.T, repo course.Repository, code string, credits int) course.Course {
	now := time.Now().UTC()
	c, err := repo.CreateCourse(context.Background(), course.Course{
		Code:      code,
		Name:      "Course " + code,
		Credits:   credits,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("createCourse() failed: %v", err)
	}
	return c
}

func TestService_Create(t *testing.T) {
	svc, studentRepo, courseRepo := setup(t)
	ctx := context.Background()

	std := createStudent(t, studentRepo, "STD001")
	crs := createCourse(t, courseRepo, "MATH101", 5)

	ng := grade.NewGrade{
		StudentID:    std.ID,
		CourseID:     crs.ID,
		Score:        72.5,
		Semester:     grade.SemesterFall,
		AcademicYear: "2024-2025",
	}
	g, err := svc.Create(ctx, ng)
	require.NoError(t, err)
	assert.NotZero(t, g.ID)
	assert.Equal(t, 72.5, g.Score)
	assert.Equal(t, grade.SemesterFall, g.Semester)
	assert.False(t, g.CreatedAt.IsZero())

	t.Run("unknown student", func(t *testing.T) {
		bad := ng
		bad.StudentID = 404
		_, err := svc.Create(ctx, bad)
		assert.Equal(t, student.ErrNotFound, err)
	})

	t.Run("unknown course", func(t *testing.T) {
		bad := ng
		bad.CourseID = 404
		_, err := svc.Create(ctx, bad)
		assert.Equal(t, course.ErrNotFound, err)
	})

	t.Run("both unknown reports student", func(t *testing.T) {
		bad := ng
		bad.StudentID = 404
		bad.CourseID = 404
		_, err := svc.Create(ctx, bad)
		assert.Equal(t, student.ErrNotFound, err)
	})

	t.Run("duplicate tuple conflicts", func(t *testing.T) {
		dup := ng
		dup.Score = 90 // score does not discriminate the tuple
		_, err := svc.Create(ctx, dup)
		assert.Equal(t, grade.ErrAlreadyExists, err)
	})

	t.Run("same tuple in another semester passes", func(t *testing.T) {
		other := ng
		other.Semester = grade.SemesterSpring
		_, err := svc.Create(ctx, other)
		assert.NoError(t, err)
	})
}

func TestService_Update(t *testing.T) {
	svc, studentRepo, courseRepo := setup(t)
	ctx := context.Background()

	std := createStudent(t, studentRepo, "STD001")
	crs := createCourse(t, courseRepo, "MATH101", 5)

	g, err := svc.Create(ctx, grade.NewGrade{
		StudentID:    std.ID,
		CourseID:     crs.ID,
		Score:        40,
		Semester:     grade.SemesterFall,
		AcademicYear: "2024-2025",
	})
	require.NoError(t, err)

	t.Run("partial update leaves absent fields untouched", func(t *testing.T) {
		updated, err := svc.Update(ctx, g.ID, grade.UpdateGrade{Score: null.Float64From(65)})
		require.NoError(t, err)
		assert.Equal(t, 65.0, updated.Score)
		assert.Equal(t, grade.SemesterFall, updated.Semester)
		assert.Equal(t, "2024-2025", updated.AcademicYear)
	})

	t.Run("unknown grade", func(t *testing.T) {
		_, err := svc.Update(ctx, 404, grade.UpdateGrade{Score: null.Float64From(65)})
		assert.Equal(t, grade.ErrNotFound, err)
	})

	t.Run("update into existing tuple conflicts", func(t *testing.T) {
		g2, err := svc.Create(ctx, grade.NewGrade{
			StudentID:    std.ID,
			CourseID:     crs.ID,
			Score:        80,
			Semester:     grade.SemesterSpring,
			AcademicYear: "2024-2025",
		})
		require.NoError(t, err)

		_, err = svc.Update(ctx, g2.ID, grade.UpdateGrade{Semester: null.StringFrom(grade.SemesterFall)})
		assert.Equal(t, grade.ErrAlreadyExists, err)
	})
}

func TestService_QueryByStudent(t *testing.T) {
	svc, studentRepo, courseRepo := setup(t)
	ctx := context.Background()

	std := createStudent(t, studentRepo, "STD001")
	other := createStudent(t, studentRepo, "STD002")
	crs := createCourse(t, courseRepo, "MATH101", 5)

	_, err := svc.Create(ctx, grade.NewGrade{
		StudentID:    std.ID,
		CourseID:     crs.ID,
		Score:        55,
		Semester:     grade.SemesterFall,
		AcademicYear: "2024-2025",
	})
	require.NoError(t, err)

	grades, err := svc.QueryByStudent(ctx, std.ID)
	require.NoError(t, err)
	assert.Len(t, grades, 1)

	// a student without grades gets an empty list, not an error
	grades, err = svc.QueryByStudent(ctx, other.ID)
	require.NoError(t, err)
	assert.Empty(t, grades)

	// same for an unknown student
	grades, err = svc.QueryByStudent(ctx, 404)
	require.NoError(t, err)
	assert.Empty(t, grades)
}

func TestService_Delete(t *testing.T) {
	svc, studentRepo, courseRepo := setup(t)
	ctx := context.Background()

	std := createStudent(t, studentRepo, "STD001")
	crs := createCourse(t, courseRepo, "MATH101", 5)

	g, err := svc.Create(ctx, grade.NewGrade{
		StudentID:    std.ID,
		CourseID:     crs.ID,
		Score:        55,
		Semester:     grade.SemesterFall,
		AcademicYear: "2024-2025",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, g.ID))
	_, err = svc.GetByID(ctx, g.ID)
	assert.Equal(t, grade.ErrNotFound, err)

	assert.Equal(t, grade.ErrNotFound, svc.Delete(ctx, g.ID))
}
