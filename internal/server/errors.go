package server

import (
	"errors"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"

	"github.com/nfrund/fatura/internal/middleware"
	"github.com/nfrund/fatura/web/src/templates/pages"
)

// setupErrorHandling installs the HTTP error handler. echo.HTTPError values
// keep their status; anything else is a 500 logged with its stack trace.
func setupErrorHandling(e *echo.Echo) {
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		logger := middleware.FromContext(c.Request().Context())

		var he *echo.HTTPError
		if !errors.As(err, &he) {
			logger.Error("Internal Server Error (Unhandled)",
				"error", err,
				"stack_trace", string(debug.Stack()),
			)
			respond(c, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
			return
		}

		if he.Internal != nil {
			logger.Debug("Request failed", "status", he.Code, "error", he.Internal)
		}

		if he.Code == http.StatusNotFound && wantsPage(c) {
			if rerr := c.Render(http.StatusNotFound, "", pages.NotFoundPage()); rerr == nil {
				return
			}
		}

		msg, ok := he.Message.(string)
		if !ok {
			msg = http.StatusText(he.Code)
		}
		respond(c, he.Code, msg)
	}
}

// wantsPage reports whether the request is a plain browser navigation, as
// opposed to an htmx or script request.
func wantsPage(c echo.Context) bool {
	req := c.Request()
	return req.Method == http.MethodGet && req.Header.Get("HX-Request") == ""
}

func respond(c echo.Context, code int, msg string) {
	var err error
	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.String(code, msg)
	}
	if err != nil {
		middleware.FromContext(c.Request().Context()).Error("Failed to write error response", "error", err)
	}
}
