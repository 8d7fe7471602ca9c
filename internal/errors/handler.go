package errors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that renders every failure
// as an ErrorResponse envelope. Causes of 5xx responses are logged and never sent
// to the client.
func NewHTTPErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := resolve(err)
		if status >= http.StatusInternalServerError {
			logger.Error("request failed",
				zap.Error(err),
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
			)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, body)
		}
		if err != nil {
			logger.Error("write error response", zap.Error(err))
		}
	}
}

func resolve(err error) (int, ErrorResponse) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		switch msg := he.Message.(type) {
		case ErrorResponse:
			return he.Code, msg
		case *ErrorResponse:
			return he.Code, *msg
		case string:
			return he.Code, ErrorResponse{Error: msg}
		default:
			if he.Code >= http.StatusInternalServerError {
				return he.Code, ErrorResponse{Error: "internal server error", Code: "INTERNAL_ERROR"}
			}
			return he.Code, ErrorResponse{Error: fmt.Sprint(msg)}
		}
	}

	httpErr := MapErrorToHTTP(err)
	return httpErr.StatusCode, httpErr.ToErrorResponse()
}
