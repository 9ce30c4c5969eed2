package grade

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/alama/core"
)

// Semesters
const (
	SemesterFall   = "Fall"
	SemesterSpring = "Spring"
	SemesterSummer = "Summer"
)

var Semesters = []string{SemesterFall, SemesterSpring, SemesterSummer}

// semesterRanks orders semesters chronologically within an academic year
// "YYY1-YYY2": Fall runs in YYY1, Spring and Summer in YYY2.
var semesterRanks = map[string]int{
	SemesterFall:   0,
	SemesterSpring: 1,
	SemesterSummer: 2,
}

func SemesterRank(semester string) int {
	return semesterRanks[semester]
}

func IsValidSemester(semester string) bool {
	_, ok := semesterRanks[semester]
	return ok
}

type Grade struct {
	ID           int       `db:"id" json:"id"`
	StudentID    int       `db:"student_id" json:"student_id"`
	CourseID     int       `db:"course_id" json:"course_id"`
	Score        float64   `db:"score" json:"score"`
	Semester     string    `db:"semester" json:"semester"`
	AcademicYear string    `db:"academic_year" json:"academic_year"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"` // UTC
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"` // UTC
}

type NewGrade struct {
	StudentID    int     `json:"student_id" validate:"required,gt=0"`
	CourseID     int     `json:"course_id" validate:"required,gt=0"`
	Score        float64 `json:"score" validate:"min=0,max=100"`
	Semester     string  `json:"semester" validate:"required,semester"`
	AcademicYear string  `json:"academic_year" validate:"required,academicyear"`
}

func (ng *NewGrade) Validate(validate *validator.Validate) error {
	ng.Semester = core.CleanString(ng.Semester)
	ng.AcademicYear = core.CleanString(ng.AcademicYear)
	return validate.Struct(ng)
}

// UpdateGrade carries the mutable fields; absent fields are left untouched.
type UpdateGrade struct {
	Score        null.Float64 `json:"score"`
	Semester     null.String  `json:"semester"`
	AcademicYear null.String  `json:"academic_year"`
}

func (ug *UpdateGrade) Validate(validate *validator.Validate) error {
	var flds []core.FieldError
	if ug.Score.Valid {
		if ug.Score.Float64 < 0 || ug.Score.Float64 > 100 {
			flds = append(flds, core.FieldError{Field: "score", Error: "score must be between 0 and 100"})
		}
	}
	if ug.Semester.Valid {
		ug.Semester.String = core.CleanString(ug.Semester.String)
		if !IsValidSemester(ug.Semester.String) {
			flds = append(flds, core.FieldError{Field: "semester", Error: invalidSemesterText})
		}
	}
	if ug.AcademicYear.Valid {
		ug.AcademicYear.String = core.CleanString(ug.AcademicYear.String)
		if !academicYearRegex.MatchString(ug.AcademicYear.String) || !yearsAreConsecutive(ug.AcademicYear.String) {
			flds = append(flds, core.FieldError{Field: "academic_year", Error: invalidAcademicYearText})
		}
	}
	if len(flds) > 0 {
		return core.NewValidationError(nil, flds...)
	}
	return nil
}
