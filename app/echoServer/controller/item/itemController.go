package item

import (
	"log/slog"
	"net/http"
	"strconv"

	"shareit/app/echoServer/controller"
	itemsvc "shareit/service/item"
	"shareit/util/errs"

	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc itemsvc.Service
	Log *slog.Logger
}

// POST /items
func (h *Controller) Create(c echo.Context) error {
	var req CreateItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid JSON"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	uid, _ := c.Get("user_id").(int64)

	out, err := h.Svc.Create(c.Request().Context(), uid, itemsvc.CreateInput{
		Name:        req.Name,
		Description: req.Description,
		Available:   *req.Available,
		RequestID:   req.RequestID,
	})
	if err != nil {
		return h.fail(c, "item create", err)
	}
	return c.JSON(http.StatusOK, out)
}

// PATCH /items/:id
func (h *Controller) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req UpdateItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid JSON"})
	}
	uid, _ := c.Get("user_id").(int64)

	out, err := h.Svc.Update(c.Request().Context(), uid, id, itemsvc.UpdateInput{
		Name:        req.Name,
		Description: req.Description,
		Available:   req.Available,
	})
	if err != nil {
		return h.fail(c, "item update", err)
	}
	return c.JSON(http.StatusOK, out)
}

// GET /items/:id
func (h *Controller) ByID(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	uid, _ := c.Get("user_id").(int64)

	out, err := h.Svc.ByID(c.Request().Context(), uid, id)
	if err != nil {
		return h.fail(c, "item get", err)
	}
	return c.JSON(http.StatusOK, out)
}

// GET /items
func (h *Controller) ByOwner(c echo.Context) error {
	from, size, ok := controller.Paging(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid paging"})
	}
	uid, _ := c.Get("user_id").(int64)

	out, err := h.Svc.ByOwner(c.Request().Context(), uid, from, size)
	if err != nil {
		return h.fail(c, "item list", err)
	}
	return c.JSON(http.StatusOK, out)
}

// GET /items/search
func (h *Controller) Search(c echo.Context) error {
	from, size, ok := controller.Paging(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid paging"})
	}
	out, err := h.Svc.Search(c.Request().Context(), c.QueryParam("text"), from, size)
	if err != nil {
		return h.fail(c, "item search", err)
	}
	return c.JSON(http.StatusOK, out)
}

// POST /items/:id/comment
func (h *Controller) AddComment(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req CommentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid JSON"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	uid, _ := c.Get("user_id").(int64)

	out, err := h.Svc.AddComment(c.Request().Context(), uid, id, req.Text)
	if err != nil {
		return h.fail(c, "comment create", err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Controller) fail(c echo.Context, op string, err error) error {
	switch errs.Code(err) {
	case errs.CodeUserNotFound, errs.CodeItemNotFound, errs.CodeRequestNotFound:
		h.Log.Warn(op, "err", err)
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errs.CodeNotOwner:
		h.Log.Warn(op, "err", err)
		return c.JSON(http.StatusForbidden, echo.Map{"error": err.Error()})
	case errs.CodeNotBookedBefore:
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
