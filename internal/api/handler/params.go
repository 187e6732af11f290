package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/sirpyerre/pantry-api/internal/core/ports"
)

// pathID parses a positive integer path parameter.
func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" must be a positive integer")
	}
	return id, nil
}

// listOptions reads the optional skip and limit query parameters. A missing
// limit means no limit.
func listOptions(c echo.Context) (ports.ListOptions, error) {
	var skip, limit int
	err := echo.QueryParamsBinder(c).
		Int("skip", &skip).
		Int("limit", &limit).
		BindError()
	if err != nil {
		return ports.ListOptions{}, echo.NewHTTPError(http.StatusBadRequest, "skip and limit must be integers")
	}
	if skip < 0 || limit < 0 {
		return ports.ListOptions{}, echo.NewHTTPError(http.StatusBadRequest, "skip and limit must not be negative")
	}
	return ports.ListOptions{Offset: skip, Limit: limit}, nil
}

// bindAndValidate decodes the JSON body into req and runs the struct validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	return nil
}
