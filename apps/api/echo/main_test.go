package echoapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io/ioutil"
	"log"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/alama/core"
	"github.com/trezcool/alama/core/course"
	"github.com/trezcool/alama/core/grade"
	"github.com/trezcool/alama/core/stats"
	"github.com/trezcool/alama/core/student"
	"github.com/trezcool/alama/core/transcript"
	logsvc "github.com/trezcool/alama/services/logger"
	"github.com/trezcool/alama/storage/database/dummy"
)

type testEnv struct {
	app *Server

	studentRepo student.Repository
	courseRepo  course.Repository
	gradeRepo   grade.Repository
}

func setup(t *testing.T) *testEnv {
	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}

	conf := &core.Config{
		TestMode: true,
		Env:      "TEST",
		Stats:    core.StatsConfig{PassThreshold: 50},
	}

	studentRepo := dummydb.NewStudentRepository(db)
	courseRepo := dummydb.NewCourseRepository(db)
	gradeRepo := dummydb.NewGradeRepository(db)
	statsRepo := dummydb.NewStatsRepository(db)

	validate := validator.New()
	translator := newTestTranslator(t)
	core.InitValidators(validate, translator)
	grade.InitValidators(validate, translator)

	app := NewServer(
		ServerDeps{
			Conf:           conf,
			Logger:         logsvc.NewStdLogger(log.New(ioutil.Discard, "", 0)),
			StudentSvc:     student.NewService(studentRepo),
			CourseSvc:      course.NewService(courseRepo),
			GradeSvc:       grade.NewService(gradeRepo, studentRepo, courseRepo),
			StatsSvc:       stats.NewService(statsRepo, conf),
			TranscriptSvc:  transcript.NewService(studentRepo, statsRepo, conf),
			Validate:       validate,
			Translator:     translator,
			DisableReqLogs: true,
		},
	)

	return &testEnv{
		app:         app,
		studentRepo: studentRepo,
		courseRepo:  courseRepo,
		gradeRepo:   gradeRepo,
	}
}

func newTestTranslator(t *testing.T) ut.Translator {
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	translator, ok := uni.GetTranslator("en")
	if !ok {
		t.Fatal("newTestTranslator(): no en translator")
	}
	return translator
}

// Fixtures

func (env *testEnv) createStudent(t *testing.T, number string) student.Student {
	now := time.Now().UTC()
	std, err := env.studentRepo.CreateStudent(context.Background(), student.Student{
		Number:      number,
		FirstName:   "Alan",
		LastName:    "Turing",
		Email:       number + "@test.cd",
		DateOfBirth: time.Date(2002, 6, 23, 0, 0, 0, 0, time.UTC),
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		t.Fatalf("createStudent() failed: %v", err)
	}
	return std
}

func (env *testEnv) createCourse(t *testing.T, code string, credits int) course.Course {
	now := time.Now().UTC()
	crs, err := env.courseRepo.CreateCourse(context.Background(), course.Course{
		Code:      code,
		Name:      "Course " + code,
		Credits:   credits,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("createCourse() failed: %v", err)
	}
	return crs
}

func (env *testEnv) createGrade(
	t *testing.T,
	std student.Student,
	crs course.Course,
	score float64,
	semester, year string,
) grade.Grade {
	now := time.Now().UTC()
	g, err := env.gradeRepo.CreateGrade(context.Background(), grade.Grade{
		StudentID:    std.ID,
		CourseID:     crs.ID,
		Score:        score,
		Semester:     semester,
		AcademicYear: year,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		t.Fatalf("createGrade() failed: %v", err)
	}
	return g
}

// Request plumbing

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	wantCode int
	wantData []byte
}

func (env *testEnv) do(method, path string, data ...[]byte) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	env.app.ServeHTTP(rec, req)
	return rec
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj(): %v", err)
	}
	return data
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

func (env *testEnv) runTable(t *testing.T, tests []httpTest) {
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			method := tt.method
			if method == "" {
				method = http.MethodGet
			}
			if tt.wantCode == 0 {
				tt.wantCode = http.StatusOK
			}
			rec := env.do(method, tt.path, tt.body)
			checkCodeAndData(t, tt, rec)
		})
	}
}
