package controller

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// Paging reads from/size with the boundary defaults 0/10. size is
// capped at 100.
func Paging(c echo.Context) (int, int, bool) {
	from, size := 0, 10
	if raw := c.QueryParam("from"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			return 0, 0, false
		}
		from = v
	}
	if raw := c.QueryParam("size"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > 100 {
			return 0, 0, false
		}
		size = v
	}
	return from, size, true
}
