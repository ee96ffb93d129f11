package echoapi

import (
	"context"
	"net/http"
	"net/mail"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/elimu/core"
	"github.com/trezcool/elimu/core/export"
)

type exportApi struct {
	svc      *export.Service
	validate *validator.Validate
	logger   core.Logger
}

func registerExportAPI(g *echo.Group, auth echo.MiddlewareFunc, svc *export.Service, validate *validator.Validate, logger core.Logger) {
	api := exportApi{svc: svc, validate: validate, logger: logger}

	cg := g.Group("/chats", auth)
	cg.POST("/export", api.download)
	cg.POST("/archive", api.archive)
	cg.POST("/export/email", api.email)
}

// Handlers

// download sends the rendered transcript back as an attachment.
func (api *exportApi) download(ctx echo.Context) error {
	data, err := api.bind(ctx)
	if err != nil {
		return err
	}

	var file export.File
	dst := export.SinkFunc(func(_ context.Context, f export.File) error {
		file = f
		return nil
	})
	res := api.svc.ExportLargeChat(ctx.Request().Context(), dst, data.Format, api.messages(data), data.Title, requester(ctx), api.progress(ctx))
	if !res.Success {
		return ctx.JSON(http.StatusInternalServerError, res)
	}

	ctx.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+file.Name+`"`)
	return ctx.Blob(http.StatusOK, file.ContentType, file.Data)
}

// archive saves the rendered transcript to the configured storage.
func (api *exportApi) archive(ctx echo.Context) error {
	data, err := api.bind(ctx)
	if err != nil {
		return err
	}

	res := api.svc.Export(ctx.Request().Context(), data.Format, api.messages(data), data.Title, requester(ctx))
	if !res.Success {
		return ctx.JSON(http.StatusInternalServerError, res)
	}
	return ctx.JSON(http.StatusCreated, res)
}

func (api *exportApi) email(ctx echo.Context) error {
	var data export.EmailRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to EmailRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	to := mail.Address{Name: data.Name, Address: data.Email}
	res := api.svc.Email(ctx.Request().Context(), to, data.Format, data.Messages, data.Title, requester(ctx))
	if !res.Success {
		return ctx.JSON(http.StatusInternalServerError, res)
	}
	return ctx.JSON(http.StatusAccepted, res)
}

func (api *exportApi) bind(ctx echo.Context) (export.Request, error) {
	var data export.Request
	if err := ctx.Bind(&data); err != nil {
		return data, errors.Wrap(err, "binding to Request")
	}
	if err := data.Validate(api.validate); err != nil {
		return data, err
	}
	return data, nil
}

func (api *exportApi) messages(data export.Request) []export.Message {
	if !data.StartDate.Valid && !data.EndDate.Valid {
		return data.Messages
	}
	return export.FilterMessagesByDateRange(data.Messages, data.StartDate, data.EndDate)
}

func (api *exportApi) progress(ctx echo.Context) export.ProgressFunc {
	return func(percent float64) {
		api.logger.Debug("exporting chat", map[string]interface{}{
			"request_id": ctx.Response().Header().Get(echo.HeaderXRequestID),
			"progress":   percent,
		})
	}
}
