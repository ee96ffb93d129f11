package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/elimu/core/history"
)

type historyApi struct {
	svc      *history.Service
	validate *validator.Validate
}

func registerHistoryAPI(g *echo.Group, auth echo.MiddlewareFunc, svc *history.Service, validate *validator.Validate) {
	api := historyApi{svc: svc, validate: validate}

	hg := g.Group("/history", auth)
	hg.GET("/queries", api.queries)
	hg.GET("/queries/stats", api.queryStats)
	hg.GET("/exports", api.exports)
}

// Handlers

// queries lists the analyzed queries of the caller, or all of them when auth is disabled.
func (api *historyApi) queries(ctx echo.Context) error {
	var filter history.QueryFilter
	if err := ctx.Bind(&filter); err != nil {
		return errors.Wrap(err, "binding to QueryFilter")
	}
	if err := filter.Validate(api.validate); err != nil {
		return err
	}
	filter.UserID = requester(ctx).ID

	recs, err := api.svc.Queries(ctx.Request().Context(), filter)
	if err != nil {
		return errors.Wrap(err, "querying query records")
	}
	return ctx.JSON(http.StatusOK, recs)
}

func (api *historyApi) queryStats(ctx echo.Context) error {
	stats, err := api.svc.QueryStats(ctx.Request().Context(), requester(ctx).ID)
	if err != nil {
		return errors.Wrap(err, "counting query records")
	}
	return ctx.JSON(http.StatusOK, stats)
}

func (api *historyApi) exports(ctx echo.Context) error {
	var filter history.ExportFilter
	if err := ctx.Bind(&filter); err != nil {
		return errors.Wrap(err, "binding to ExportFilter")
	}
	if err := filter.Validate(api.validate); err != nil {
		return err
	}
	filter.UserID = requester(ctx).ID

	recs, err := api.svc.Exports(ctx.Request().Context(), filter)
	if err != nil {
		return errors.Wrap(err, "querying export records")
	}
	return ctx.JSON(http.StatusOK, recs)
}
