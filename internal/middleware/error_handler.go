package middleware

import (
	"net/http"

	"eventify/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ErrorHandler is the echo-level fallback for errors that escape a handler
// (bad routes, bind panics recovered by echo, unhandled returns).
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "internal server error"

	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if msg, ok := he.Message.(string); ok {
			message = msg
		}
	}

	if code >= http.StatusInternalServerError {
		logger.Error("unhandled request error",
			"method", c.Request().Method,
			"path", c.Path(),
			"error", err,
		)
	}

	_ = c.JSON(code, map[string]interface{}{
		"message": message,
	})
}
