package echoapi

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/alama/core/transcript"
)

type transcriptApi struct {
	svc *transcript.Service
}

func registerTranscriptAPI(g *echo.Group, svc *transcript.Service) {
	api := transcriptApi{svc: svc}
	g.GET("/students/:id/transcript", api.download)
}

// download builds the transcript first so that every NotFound surfaces before
// the response is committed, then streams the document into the response
// writer as pages are composed.
func (api *transcriptApi) download(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}

	tr, err := api.svc.Build(ctx.Request().Context(), id, academicYearFilter(ctx))
	if err != nil {
		return err
	}

	res := ctx.Response()
	res.Header().Set(echo.HeaderContentType, "application/pdf")
	res.Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", tr.Filename()))
	res.Header().Set("X-Document-Ref", tr.Ref)
	res.WriteHeader(http.StatusOK)

	if err = tr.Render(res); err != nil {
		// the response is committed; the error handler can only log this
		return err
	}
	res.Flush()
	return nil
}
