package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/shashiranjanraj/ecobazaar/app/services"
	"github.com/shashiranjanraj/ecobazaar/pkg/ctx"
	"github.com/shashiranjanraj/ecobazaar/pkg/logger"
)

// fail maps a service error onto the HTTP taxonomy: validation 422 is
// handled by BindJSON before the service runs, business failures land on
// 400/403/404/409, credential failures on 401, everything else is a 500
// with the detail kept out of the response body.
func fail(c *ctx.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.NotFound(err.Error())
	case errors.Is(err, services.ErrConflict):
		c.Error(http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrForbidden):
		c.Forbidden(err.Error())
	case errors.Is(err, services.ErrUnauthorized):
		c.Unauthorized(err.Error())
	case errors.Is(err, services.ErrInvalid):
		c.Error(http.StatusBadRequest, err.Error())
	default:
		logger.WithCtx(c.Context()).Error("request failed", "error", err)
		c.Error(http.StatusInternalServerError, "Internal Server Error")
	}
}

// idParam parses the {id} path parameter.
func idParam(c *ctx.Context) (uint, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		c.Error(http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return uint(id), true
}
