package transcript

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/trezcool/alama/core"
	"github.com/trezcool/alama/core/stats"
)

const (
	titleText = "Academic Transcript"

	colCodeW    = 30.0
	colCourseW  = 90.0
	colCreditsW = 25.0
	colScoreW   = 25.0

	lineH = 7.0
)

// Render composes the document and writes it into w as pages are emitted.
// Callers must have finished validation before calling: by the time Render
// fails, bytes may already have crossed the wire.
func (tr Transcript) Render(w io.Writer) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(titleText, false)
	pdf.SetAuthor("Alama", false)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("Document ref: %s", tr.Ref), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "R", false, 0, "")
	})
	pdf.AddPage()

	tr.renderHeader(pdf)
	for _, grp := range tr.Groups {
		tr.renderSemester(pdf, grp)
	}
	tr.renderSummary(pdf)

	if err := pdf.Output(w); err != nil {
		return core.NewInternalError("transcript generation failed", err)
	}
	return nil
}

func (tr Transcript) renderHeader(pdf *gofpdf.Fpdf) {
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, titleText, "", 1, "C", false, 0, "")
	if tr.AcademicYear != "" {
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 6, fmt.Sprintf("Academic year %s", tr.AcademicYear), "", 1, "C", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Student: %s", tr.Student.FullName()), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Student number: %s", tr.Student.Number), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Date of birth: %s", tr.Student.DateOfBirth.Format("2006-01-02")), "", 1, "L", false, 0, "")
	pdf.Ln(4)
}

func (tr Transcript) renderSemester(pdf *gofpdf.Fpdf, grp stats.SemesterGroup) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 9, fmt.Sprintf("%s - %s", grp.AcademicYear, grp.Semester), "B", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(colCodeW, lineH, "Code", "", 0, "L", false, 0, "")
	pdf.CellFormat(colCourseW, lineH, "Course", "", 0, "L", false, 0, "")
	pdf.CellFormat(colCreditsW, lineH, "Credits", "", 0, "R", false, 0, "")
	pdf.CellFormat(colScoreW, lineH, "Score", "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, g := range grp.Grades {
		pdf.CellFormat(colCodeW, lineH, g.CourseCode, "", 0, "L", false, 0, "")
		pdf.CellFormat(colCourseW, lineH, g.CourseName, "", 0, "L", false, 0, "")
		pdf.CellFormat(colCreditsW, lineH, fmt.Sprintf("%d", g.Credits), "", 0, "R", false, 0, "")
		pdf.CellFormat(colScoreW, lineH, fmt.Sprintf("%.2f", g.Score), "", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "I", 10)
	subtotal := fmt.Sprintf(
		"Average %.2f - %d/%d credits validated - %d courses",
		grp.Average, grp.CreditsValidated, grp.CreditsAttempted, grp.CourseCount,
	)
	pdf.CellFormat(0, lineH, subtotal, "T", 1, "R", false, 0, "")
	pdf.Ln(4)
}

func (tr Transcript) renderSummary(pdf *gofpdf.Fpdf) {
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 9, "Cumulative summary", "B", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 7, fmt.Sprintf("Overall average: %.2f", tr.Summary.Average), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7,
		fmt.Sprintf("Validated credits: %d/%d", tr.Summary.CreditsValidated, tr.Summary.CreditsAttempted),
		"", 1, "L", false, 0, "")
}
