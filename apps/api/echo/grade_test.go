package echoapi

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/alama/core/grade"
)

func Test_gradeApi_create(t *testing.T) {
	env := setup(t)

	std := env.createStudent(t, "STD001")
	crs := env.createCourse(t, "MATH101", 5)

	newGrade := func(studentID, courseID int, score float64, semester, year string) []byte {
		return marchallObj(t, grade.NewGrade{
			StudentID:    studentID,
			CourseID:     courseID,
			Score:        score,
			Semester:     semester,
			AcademicYear: year,
		})
	}

	rec := env.do(http.MethodPost, "/v1/grades", newGrade(std.ID, crs.ID, 72.5, grade.SemesterFall, "2024-2025"))
	require.Equal(t, http.StatusCreated, rec.Code)

	var g grade.Grade
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &g))
	assert.NotZero(t, g.ID)
	assert.Equal(t, 72.5, g.Score)

	tests := []httpTest{
		{
			name: "unknown student", method: http.MethodPost, path: "/v1/grades",
			body:     newGrade(404, crs.ID, 50, grade.SemesterFall, "2024-2025"),
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: "student not found"}),
		},
		{
			name: "unknown course", method: http.MethodPost, path: "/v1/grades",
			body:     newGrade(std.ID, 404, 50, grade.SemesterFall, "2024-2025"),
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: "course not found"}),
		},
		{
			name: "both unknown reports student", method: http.MethodPost, path: "/v1/grades",
			body:     newGrade(404, 404, 50, grade.SemesterFall, "2024-2025"),
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: "student not found"}),
		},
		{
			name: "score out of range", method: http.MethodPost, path: "/v1/grades",
			body:     newGrade(std.ID, crs.ID, 101, grade.SemesterFall, "2024-2025"),
			wantCode: http.StatusBadRequest,
		},
		{
			name: "invalid semester", method: http.MethodPost, path: "/v1/grades",
			body:     newGrade(std.ID, crs.ID, 50, "Winter", "2024-2025"),
			wantCode: http.StatusBadRequest,
		},
		{
			name: "invalid academic year", method: http.MethodPost, path: "/v1/grades",
			body:     newGrade(std.ID, crs.ID, 50, grade.SemesterFall, "2024-2026"),
			wantCode: http.StatusBadRequest,
		},
		{
			name: "duplicate tuple", method: http.MethodPost, path: "/v1/grades",
			body:     newGrade(std.ID, crs.ID, 90, grade.SemesterFall, "2024-2025"),
			wantCode: http.StatusConflict,
			wantData: marchallObj(t, httpErr{Error: "a grade already exists for this student, course, semester and academic year"}),
		},
		{
			name: "same course another semester", method: http.MethodPost, path: "/v1/grades",
			body:     newGrade(std.ID, crs.ID, 90, grade.SemesterSpring, "2024-2025"),
			wantCode: http.StatusCreated,
		},
	}
	env.runTable(t, tests)
}

func Test_gradeApi_queryByStudent(t *testing.T) {
	env := setup(t)

	std := env.createStudent(t, "STD001")
	crs := env.createCourse(t, "MATH101", 5)
	g := env.createGrade(t, std, crs, 65, grade.SemesterFall, "2024-2025")

	tests := []httpTest{
		{name: "with grades", path: "/v1/students/1/grades", wantData: marchallObj(t, []grade.Grade{g})},
		// an unknown student simply has no grades
		{name: "unknown student", path: "/v1/students/404/grades", wantData: []byte("[]")},
	}
	env.runTable(t, tests)
}

func Test_gradeApi_update(t *testing.T) {
	env := setup(t)

	std := env.createStudent(t, "STD001")
	crs := env.createCourse(t, "MATH101", 5)
	env.createGrade(t, std, crs, 40, grade.SemesterFall, "2024-2025")
	env.createGrade(t, std, crs, 80, grade.SemesterSpring, "2024-2025")

	rec := env.do(http.MethodPut, "/v1/grades/1", []byte(`{"score": 55}`))
	require.Equal(t, http.StatusOK, rec.Code)

	var g grade.Grade
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &g))
	assert.Equal(t, 55.0, g.Score)
	assert.Equal(t, grade.SemesterFall, g.Semester) // untouched

	tests := []httpTest{
		{
			name: "not found", method: http.MethodPut, path: "/v1/grades/404",
			body: []byte(`{"score": 55}`), wantCode: http.StatusNotFound,
		},
		{
			name: "score out of range", method: http.MethodPut, path: "/v1/grades/1",
			body: []byte(`{"score": -1}`), wantCode: http.StatusBadRequest,
		},
		{
			name: "invalid semester", method: http.MethodPut, path: "/v1/grades/1",
			body: []byte(`{"semester": "Winter"}`), wantCode: http.StatusBadRequest,
		},
		{
			name: "update into existing tuple", method: http.MethodPut, path: "/v1/grades/2",
			body:     []byte(`{"semester": "Fall"}`),
			wantCode: http.StatusConflict,
		},
	}
	env.runTable(t, tests)
}

func Test_gradeApi_destroy(t *testing.T) {
	env := setup(t)

	std := env.createStudent(t, "STD001")
	crs := env.createCourse(t, "MATH101", 5)
	env.createGrade(t, std, crs, 65, grade.SemesterFall, "2024-2025")

	rec := env.do(http.MethodDelete, "/v1/grades/1")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.Bytes())

	tests := []httpTest{
		{name: "already deleted", method: http.MethodDelete, path: "/v1/grades/1", wantCode: http.StatusNotFound},
		{name: "never existed", method: http.MethodDelete, path: "/v1/grades/404", wantCode: http.StatusNotFound},
	}
	env.runTable(t, tests)
}
