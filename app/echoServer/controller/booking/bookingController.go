package booking

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"shareit/app/echoServer/controller"
	bookingsvc "shareit/service/booking"
	"shareit/util/errs"

	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc bookingsvc.Service
	Log *slog.Logger
}

// POST /bookings
func (h *Controller) Create(c echo.Context) error {
	var req CreateBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid JSON"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if req.Start.IsZero() || req.End.IsZero() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "start and end are required"})
	}
	if req.Start.Time.Before(time.Now()) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "start must be in the future"})
	}
	uid, _ := c.Get("user_id").(int64)

	out, err := h.Svc.Create(c.Request().Context(), uid, bookingsvc.CreateInput{
		ItemID: req.ItemID,
		Start:  req.Start.Time,
		End:    req.End.Time,
	})
	if err != nil {
		return h.fail(c, "booking create", err)
	}
	return c.JSON(http.StatusOK, out)
}

// PATCH /bookings/:id?approved=true|false
func (h *Controller) Decide(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	approved, err := strconv.ParseBool(c.QueryParam("approved"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "approved must be true or false"})
	}
	uid, _ := c.Get("user_id").(int64)

	out, err := h.Svc.Decide(c.Request().Context(), uid, id, approved)
	if err != nil {
		return h.fail(c, "booking decide", err)
	}
	return c.JSON(http.StatusOK, out)
}

// GET /bookings/:id
func (h *Controller) ByID(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	uid, _ := c.Get("user_id").(int64)

	out, err := h.Svc.ByID(c.Request().Context(), uid, id)
	if err != nil {
		return h.fail(c, "booking get", err)
	}
	return c.JSON(http.StatusOK, out)
}

// GET /bookings?state=
func (h *Controller) ByBooker(c echo.Context) error {
	from, size, ok := controller.Paging(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid paging"})
	}
	uid, _ := c.Get("user_id").(int64)

	out, err := h.Svc.ByBooker(c.Request().Context(), uid, c.QueryParam("state"), from, size)
	if err != nil {
		return h.fail(c, "booking list", err)
	}
	return c.JSON(http.StatusOK, out)
}

// GET /bookings/owner?state=
func (h *Controller) ByOwner(c echo.Context) error {
	from, size, ok := controller.Paging(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid paging"})
	}
	uid, _ := c.Get("user_id").(int64)

	out, err := h.Svc.ByOwner(c.Request().Context(), uid, c.QueryParam("state"), from, size)
	if err != nil {
		return h.fail(c, "booking owner list", err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Controller) fail(c echo.Context, op string, err error) error {
	switch errs.Code(err) {
	case errs.CodeUserNotFound, errs.CodeItemNotFound, errs.CodeBookingNotFound, errs.CodeWrongUser:
		h.Log.Warn(op, "err", err)
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errs.CodeItemUnavailable, errs.CodeInvalidPeriod, errs.CodeStatusChanged, errs.CodeUnknownState:
		h.Log.Warn(op, "err", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	default:
		h.Log.Error(op, "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.ErrBadRequest
	}
	return id, nil
}
