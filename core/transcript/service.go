package transcript

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/trezcool/alama/core"
	"github.com/trezcool/alama/core/stats"
	"github.com/trezcool/alama/core/student"
)

type (
	// Transcript is the fully validated, ready-to-render document. Building it
	// performs every lookup that can fail with a NotFound, so rendering can
	// start only once the caller has committed to a success response.
	Transcript struct {
		Ref          string // document reference number
		AcademicYear string // empty when unfiltered
		Student      student.Student
		Groups       []stats.SemesterGroup
		Summary      Summary
	}

	// Summary is the cumulative trailer: overall average and credit totals
	// across every semester on the document.
	Summary struct {
		Average          float64
		CreditsAttempted int
		CreditsValidated int
	}

	Service struct {
		students student.Repository
		grades   stats.Repository
		conf     *core.Config
	}
)

func NewService(students student.Repository, grades stats.Repository, conf *core.Config) *Service {
	return &Service{students: students, grades: grades, conf: conf}
}

// Build looks up the student and their grade history and assembles the
// document model. All NotFound outcomes surface here, before any byte of the
// document exists.
func (svc *Service) Build(ctx context.Context, studentID int, academicYear string) (Transcript, error) {
	std, err := svc.students.GetStudentByID(ctx, studentID)
	if err != nil {
		return Transcript{}, err
	}

	grades, err := svc.grades.QueryStudentGrades(ctx, studentID, academicYear)
	if err != nil {
		return Transcript{}, err
	}
	if len(grades) == 0 {
		return Transcript{}, stats.ErrNoStudentGrades
	}

	groups := stats.GroupBySemester(grades, svc.conf.Stats.PassThreshold)

	var total float64
	summary := Summary{}
	for _, g := range grades {
		total += g.Score
	}
	for _, grp := range groups {
		summary.CreditsAttempted += grp.CreditsAttempted
		summary.CreditsValidated += grp.CreditsValidated
	}
	summary.Average = core.Round2(total / float64(len(grades)))

	return Transcript{
		Ref:          uuid.New().String(),
		AcademicYear: academicYear,
		Student:      std,
		Groups:       groups,
		Summary:      summary,
	}, nil
}

// Filename suggests a download name for the rendered document.
func (tr Transcript) Filename() string {
	return fmt.Sprintf("transcript_%s.pdf", tr.Student.Number)
}
