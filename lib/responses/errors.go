package responses

import (
	"errors"
	"net/http"

	"github.com/getAlby/votehub.go/common"
	"github.com/getAlby/votehub.go/lib/registry"
	"github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error          bool   `json:"error"`
	Code           int    `json:"code"`
	Message        string `json:"message"`
	HttpStatusCode int    `json:"-"`
}

var GeneralServerError = ErrorResponse{
	Error:          true,
	Code:           6,
	Message:        "Something went wrong. Please try again later",
	HttpStatusCode: 500,
}

var BadArgumentsError = ErrorResponse{
	Error:          true,
	Code:           8,
	Message:        "Bad arguments",
	HttpStatusCode: 400,
}

var BadAuthError = ErrorResponse{
	Error:          true,
	Code:           1,
	Message:        "bad auth",
	HttpStatusCode: 401,
}

var EventNotFoundError = ErrorResponse{
	Error:          true,
	Code:           2,
	Message:        "event not found",
	HttpStatusCode: 404,
}

var InvalidBudgetError = ErrorResponse{
	Error:          true,
	Code:           4,
	Message:        "estimated budget must be an unsigned integer below 2^128",
	HttpStatusCode: 400,
}

var InvalidEventError = ErrorResponse{
	Error:          true,
	Code:           5,
	Message:        "title or description too long",
	HttpStatusCode: 400,
}

var OverflowError = ErrorResponse{
	Error:          true,
	Code:           3,
	Message:        "counter overflow",
	HttpStatusCode: 409,
}

// RegistryError maps a registry error to its response. Unknown errors map
// to GeneralServerError.
func RegistryError(err error) ErrorResponse {
	switch {
	case errors.Is(err, registry.ErrEventNotFound):
		return EventNotFoundError
	case errors.Is(err, registry.ErrInvalidBudget):
		return InvalidBudgetError
	case errors.Is(err, registry.ErrInvalidEvent):
		return InvalidEventError
	case errors.Is(err, registry.ErrOverflow):
		return OverflowError
	default:
		return GeneralServerError
	}
}

func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	c.Logger().Error(err)
	if hub := sentryecho.GetHubFromContext(c); hub != nil && isErrAllowedForSentry(err) {
		hub.WithScope(func(scope *sentry.Scope) {
			scope.SetExtra(common.CallerContextKey, c.Get(common.CallerContextKey))
			hub.CaptureException(err)
		})
	}
	if he, ok := err.(*echo.HTTPError); ok {
		c.JSON(he.Code, he.Message)
	} else {
		c.JSON(http.StatusInternalServerError, GeneralServerError)
	}
}

func isErrAllowedForSentry(err error) bool {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if msg, ok := he.Message.(echo.Map); ok {
			if code, ok := msg["code"].(int); ok && code == BadAuthError.Code {
				return false
			}
		}
		if he.Code == http.StatusUnauthorized {
			return false
		}
	}
	return true
}
