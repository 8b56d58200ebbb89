package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/tayariapp/tayari/core"
	"github.com/tayariapp/tayari/core/session"
)

type adminApi struct {
	svc session.Service
}

func registerAdminAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc session.Service) {
	api := adminApi{svc: svc}

	ag := g.Group("/admin", jwt, adminMiddleware())
	ag.GET("/submissions", api.querySubmissions)
	ag.GET("/submissions/:id", api.retrieveSubmission)
}

// Handlers

func (api *adminApi) querySubmissions(ctx echo.Context) error {
	search := core.CleanString(ctx.QueryParam("search"), true /* lower */)

	subs, stats, err := api.svc.ListSubmissions(ctx.Request().Context(), search)
	if err != nil {
		return errors.Wrap(err, "querying submissions")
	}
	if subs == nil {
		subs = []session.Submission{}
	}
	return ctx.JSON(http.StatusOK, SubmissionListResponse{Submissions: subs, Stats: stats})
}

func (api *adminApi) retrieveSubmission(ctx echo.Context) error {
	sub, err := api.svc.GetSubmission(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == session.ErrSubmissionNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting submission")
	}
	return ctx.JSON(http.StatusOK, sub)
}

type SubmissionListResponse struct {
	Submissions []session.Submission `json:"submissions"`
	Stats       session.ListStats    `json:"stats"`
}
