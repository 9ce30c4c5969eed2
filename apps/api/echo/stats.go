package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/alama/core/stats"
)

type statsApi struct {
	svc *stats.Service
}

func registerStatsAPI(g *echo.Group, svc *stats.Service) {
	api := statsApi{svc: svc}

	sg := g.Group("/stats")
	sg.GET("/courses/:id", api.courseStats)
	sg.GET("/students/:id", api.studentStats)
	sg.GET("/global", api.globalStats)
}

// Handlers

func (api *statsApi) courseStats(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}

	cs, err := api.svc.CourseStats(ctx.Request().Context(), id, academicYearFilter(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, cs)
}

func (api *statsApi) studentStats(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}

	semStats, err := api.svc.StudentSemesterStats(ctx.Request().Context(), id, academicYearFilter(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, semStats)
}

func (api *statsApi) globalStats(ctx echo.Context) error {
	gs, err := api.svc.GlobalStats(ctx.Request().Context(), academicYearFilter(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, gs)
}
