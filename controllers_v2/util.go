package v2controllers

import (
	"errors"
	"strconv"

	"github.com/getAlby/votehub.go/common"
	"github.com/getAlby/votehub.go/lib/registry"
	"github.com/labstack/echo/v4"
)

var errInvalidEventID = errors.New("event id must be an integer")

// callContext builds the registry call context for an authenticated request.
func callContext(c echo.Context) registry.CallContext {
	caller, _ := c.Get(common.CallerContextKey).(string)
	return registry.CallContext{Caller: caller}
}

func eventIDParam(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, errInvalidEventID
	}
	return id, nil
}
