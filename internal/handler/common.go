package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// parseID parses the :id path parameter. Handlers answer 404 on failure
// since a non-numeric id can never name an existing row.
func parseID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}
