package request

import (
	"log/slog"
	"net/http"
	"strconv"

	"shareit/app/echoServer/controller"
	requestsvc "shareit/service/request"
	"shareit/util/errs"

	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc requestsvc.Service
	Log *slog.Logger
}

// POST /requests
func (h *Controller) Create(c echo.Context) error {
	var req CreateRequestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid JSON"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	uid, _ := c.Get("user_id").(int64)

	out, err := h.Svc.Create(c.Request().Context(), uid, req.Description)
	if err != nil {
		return h.fail(c, "request create", err)
	}
	return c.JSON(http.StatusOK, out)
}

// GET /requests
func (h *Controller) Own(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)

	out, err := h.Svc.Own(c.Request().Context(), uid)
	if err != nil {
		return h.fail(c, "request own list", err)
	}
	return c.JSON(http.StatusOK, out)
}

// GET /requests/all
func (h *Controller) All(c echo.Context) error {
	from, size, ok := controller.Paging(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid paging"})
	}
	uid, _ := c.Get("user_id").(int64)

	out, err := h.Svc.All(c.Request().Context(), uid, from, size)
	if err != nil {
		return h.fail(c, "request all list", err)
	}
	return c.JSON(http.StatusOK, out)
}

// GET /requests/:id
func (h *Controller) ByID(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	uid, _ := c.Get("user_id").(int64)

	out, err := h.Svc.ByID(c.Request().Context(), uid, id)
	if err != nil {
		return h.fail(c, "request get", err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Controller) fail(c echo.Context, op string, err error) error {
	switch errs.Code(err) {
	case errs.CodeUserNotFound, errs.CodeRequestNotFound:
		h.Log.Warn(op, "err", err)
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	default:
		h.Log.Error(op, "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}
