// Package respond implements the uniform JSON envelope every endpoint
// returns: {"success": bool, "message"|"error": string, "data"?: ...} plus
// optional operation-specific top-level fields.
package respond

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Envelope is the base response shape. Operation-specific fields are merged
// in by the Fields helpers.
type Envelope map[string]interface{}

// Success writes a success envelope with a message.
func Success(c echo.Context, code int, message string) error {
	return c.JSON(code, Envelope{"success": true, "message": message})
}

// SuccessData writes a success envelope carrying a data payload.
func SuccessData(c echo.Context, code int, message string, data interface{}) error {
	return c.JSON(code, Envelope{"success": true, "message": message, "data": data})
}

// SuccessFields writes a success envelope with extra top-level fields
// (created ids, affected-row counts, and similar).
func SuccessFields(c echo.Context, code int, message string, fields Envelope) error {
	env := Envelope{"success": true, "message": message}
	for k, v := range fields {
		env[k] = v
	}
	return c.JSON(code, env)
}

// Fail writes a failure envelope under the "error" key.
func Fail(c echo.Context, code int, errMsg string) error {
	return c.JSON(code, Envelope{"success": false, "error": errMsg})
}

// FailMessage writes a failure envelope under the "message" key. The auth
// and health-check endpoints report failures this way.
func FailMessage(c echo.Context, code int, message string) error {
	return c.JSON(code, Envelope{"success": false, "message": message})
}

// HTTPErrorHandler returns an echo error handler that converts every
// unhandled error into the failure envelope, so no exit path produces a
// non-JSON body. Internal error detail is logged, never sent to the caller.
func HTTPErrorHandler(logger zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		msg := "internal server error"
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if m, ok := he.Message.(string); ok {
				msg = m
			} else {
				msg = http.StatusText(code)
			}
		} else {
			logger.Error().Err(err).Str("path", c.Request().URL.Path).Msg("unhandled error")
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, Envelope{"success": false, "error": msg})
	}
}
