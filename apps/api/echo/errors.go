package echoapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/trezcool/elimu/core"
)

type errorHandler struct {
	logger         core.Logger
	translator     ut.Translator
	signalShutdown func()
}

// newAppHTTPErrorHandler returns the echo.HTTPErrorHandler of the API.
// signalShutdown is called whenever a handler fails with a core shutdown error.
func newAppHTTPErrorHandler(logger core.Logger, translator ut.Translator, signalShutdown func()) echo.HTTPErrorHandler {
	h := &errorHandler{logger: logger, translator: translator, signalShutdown: signalShutdown}
	return h.handle
}

func (h *errorHandler) handle(err error, ctx echo.Context) {
	code, body := h.response(err)

	if code == http.StatusInternalServerError {
		h.logger.Error("handling request", errors.WithMessage(err, ctx.Request().Method+" "+ctx.Path()), requester(ctx))
		if core.IsShutdown(err) {
			h.signalShutdown()
		}
		if ctx.Echo().Debug {
			body = err.Error()
		}
	}
	if msg, ok := body.(string); ok {
		body = echo.Map{"error": msg}
	}

	if ctx.Response().Committed {
		return
	}
	if ctx.Request().Method == http.MethodHead {
		err = ctx.NoContent(code)
	} else {
		err = ctx.JSON(code, body)
	}
	if err != nil {
		ctx.Echo().Logger.Error(err)
	}
}

// response maps err to a status code and a body: either a message or a map of field errors.
func (h *errorHandler) response(err error) (int, interface{}) {
	var (
		httpErr  *echo.HTTPError
		fldErrs  validator.ValidationErrors
		validErr *core.ValidationError
	)
	switch {
	case errors.As(err, &httpErr):
		return httpErrorResponse(httpErr)
	case errors.As(err, &fldErrs):
		return http.StatusBadRequest, core.TranslateValidationErrors(fldErrs, h.translator)
	case errors.As(err, &validErr):
		if fields := validErr.FieldMap(); fields != nil {
			return http.StatusBadRequest, fields
		}
		return http.StatusBadRequest, validErr.Error()
	}
	return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
}

func httpErrorResponse(err *echo.HTTPError) (int, interface{}) {
	// a missing token is reported as a bad request by the JWT middleware
	if err == middleware.ErrJWTMissing {
		return http.StatusUnauthorized, err.Message
	}
	if inner, ok := err.Internal.(*echo.HTTPError); ok {
		err = inner
	}
	return err.Code, err.Message
}
