package stats

type CourseStats struct {
	CourseID     int     `db:"course_id" json:"course_id"`
	CourseCode   string  `db:"course_code" json:"course_code"`
	CourseName   string  `db:"course_name" json:"course_name"`
	Average      float64 `db:"average" json:"average"`
	Min          float64 `db:"min" json:"min"`
	Max          float64 `db:"max" json:"max"`
	StudentCount int     `db:"student_count" json:"student_count"`
	SuccessRate  float64 `db:"success_rate" json:"success_rate"` // percentage of grades at or above the pass threshold
}

type SemesterStats struct {
	AcademicYear     string  `json:"academic_year"`
	Semester         string  `json:"semester"`
	Average          float64 `json:"average"`
	CreditsAttempted int     `json:"credits_attempted"`
	CreditsValidated int     `json:"credits_validated"`
	CourseCount      int     `json:"course_count"`
}

type GlobalStats struct {
	Average            float64 `db:"average" json:"average"`
	StudentCount       int     `db:"student_count" json:"student_count"`
	CourseCount        int     `db:"course_count" json:"course_count"`
	AverageSuccessRate float64 `db:"average_success_rate" json:"average_success_rate"` // mean of per-course success rates
}

// StudentGrade is a grade joined with its course: the unit every per-semester
// computation (stats and transcripts alike) runs on.
type StudentGrade struct {
	GradeID      int     `db:"grade_id" json:"grade_id"`
	CourseID     int     `db:"course_id" json:"course_id"`
	CourseCode   string  `db:"course_code" json:"course_code"`
	CourseName   string  `db:"course_name" json:"course_name"`
	Credits      int     `db:"credits" json:"credits"`
	Score        float64 `db:"score" json:"score"`
	Semester     string  `db:"semester" json:"semester"`
	AcademicYear string  `db:"academic_year" json:"academic_year"`
}

// SemesterGroup is a semester's grades together with their subtotals.
type SemesterGroup struct {
	SemesterStats
	Grades []StudentGrade `json:"grades"`
}
