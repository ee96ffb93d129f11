package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/elimu/core/assistant"
)

type assistantApi struct {
	svc      assistant.ServiceInterface
	validate *validator.Validate
}

func registerAssistantAPI(g *echo.Group, auth echo.MiddlewareFunc, svc assistant.ServiceInterface, validate *validator.Validate) {
	api := assistantApi{svc: svc, validate: validate}

	g.GET("/catalog", api.catalog)

	ag := g.Group("/assistant", auth)
	ag.POST("/analyze", api.analyze)
	ag.POST("/reply", api.reply)
}

// Handlers

func (api *assistantApi) catalog(ctx echo.Context) error {
	// templates and resources are not part of the JSON view
	return ctx.JSON(http.StatusOK, api.svc.Catalog())
}

func (api *assistantApi) analyze(ctx echo.Context) error {
	var data assistant.Query
	if err := api.bind(ctx, &data); err != nil {
		return err
	}
	analysis := api.svc.Analyze(ctx.Request().Context(), data.Query, requester(ctx))
	return ctx.JSON(http.StatusOK, analysis)
}

func (api *assistantApi) reply(ctx echo.Context) error {
	var data assistant.Query
	if err := api.bind(ctx, &data); err != nil {
		return err
	}
	reply := api.svc.Reply(ctx.Request().Context(), data.Query, requester(ctx))
	return ctx.JSON(http.StatusOK, reply)
}

func (api *assistantApi) bind(ctx echo.Context, data *assistant.Query) error {
	if err := ctx.Bind(data); err != nil {
		return errors.Wrap(err, "binding to Query")
	}
	return api.validate.Struct(data)
}
