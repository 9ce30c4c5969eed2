package grade

import (
	"regexp"
	"strconv"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/alama/core"
)

var (
	// custom validation tags & texts
	semesterTag         = "semester"
	invalidSemesterText = "semester must be one of Fall, Spring or Summer"

	academicYearTag         = "academicyear"
	invalidAcademicYearText = `academic year must be two consecutive years in the form "2021-2022"`
	academicYearRegex       = regexp.MustCompile(`^\d{4}-\d{4}$`)
)

// InitValidators registers the grade-specific validators.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(semesterTag, semesterValidation)
	core.RegisterCustomTranslation(validate, translator, semesterTag, invalidSemesterText)

	_ = validate.RegisterValidation(academicYearTag, academicYearValidation)
	core.RegisterCustomTranslation(validate, translator, academicYearTag, invalidAcademicYearText)
}

func semesterValidation(fl validator.FieldLevel) bool {
	return IsValidSemester(fl.Field().String())
}

func academicYearValidation(fl validator.FieldLevel) bool {
	year := fl.Field().String()
	return academicYearRegex.MatchString(year) && yearsAreConsecutive(year)
}

func yearsAreConsecutive(year string) bool {
	parts := strings.SplitN(year, "-", 2)
	if len(parts) != 2 {
		return false
	}
	first, err1 := strconv.Atoi(parts[0])
	second, err2 := strconv.Atoi(parts[1])
	return err1 == nil && err2 == nil && second == first+1
}
