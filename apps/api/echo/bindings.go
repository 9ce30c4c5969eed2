package echoapi

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/alama/core"
)

var academicYearParam = "academicYear"

// intParam parses a positive integer path parameter.
func intParam(ctx echo.Context, name string) (int, error) {
	v, err := strconv.Atoi(ctx.Param(name))
	if err != nil || v <= 0 {
		return 0, core.NewValidationError(nil, core.FieldError{Field: name, Error: "must be a positive integer"})
	}
	return v, nil
}

// academicYearFilter reads the optional academic-year query filter.
// Empty means unfiltered.
func academicYearFilter(ctx echo.Context) string {
	return core.CleanString(ctx.QueryParam(academicYearParam))
}
