package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/MKuranov/car_market/internal/logging"
	"github.com/MKuranov/car_market/internal/service"
	"github.com/MKuranov/car_market/internal/transport"
	"github.com/MKuranov/car_market/internal/util"
)

// renamable is satisfied by pointers to the lookup models through the
// embedded Lookup.
type renamable[T any] interface {
	*T
	Rename(string)
}

// ReferenceHTTP is the one JSON CRUD surface shared by the ten lookup
// tables. Entity names only show up in logs and routes.
type ReferenceHTTP[T any, PT renamable[T]] struct {
	Svc    *service.ReferenceService[T]
	Entity string
}

func NewReferenceHTTP[T any, PT renamable[T]](svc *service.ReferenceService[T], entity string) *ReferenceHTTP[T, PT] {
	return &ReferenceHTTP[T, PT]{Svc: svc, Entity: entity}
}

func (h *ReferenceHTTP[T, PT]) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", h.Entity+".list")

	items, err := h.Svc.FindAllOrderByID(ctx)
	if err != nil {
		l.Error("list_error", "status", 500, "reason", "cannot load "+h.Entity, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot load "+h.Entity)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *ReferenceHTTP[T, PT]) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", h.Entity+".get")

	id := util.ParseIntDefault(c.Param("id"), 0)
	item, err := h.Svc.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("get_error", "status", 404, "reason", h.Entity+" not found", "id", id)
			return echo.NewHTTPError(http.StatusNotFound, h.Entity+" not found")
		}
		l.Error("get_error", "status", 500, "reason", "cannot load "+h.Entity, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot load "+h.Entity)
	}
	return c.JSON(http.StatusOK, item)
}

func (h *ReferenceHTTP[T, PT]) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", h.Entity+".create")

	var req transport.ReferenceRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	var e T
	PT(&e).Rename(req.Name)
	created, err := h.Svc.Create(ctx, &e)
	if err != nil {
		l.Error("create_error", "status", 500, "reason", "cannot create "+h.Entity, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot create "+h.Entity)
	}

	l.Info("create_success")
	return c.JSON(http.StatusCreated, created)
}

func (h *ReferenceHTTP[T, PT]) Patch(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", h.Entity+".patch")

	id := util.ParseIntDefault(c.Param("id"), 0)

	var req transport.ReferenceRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("patch_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	item, err := h.Svc.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("patch_error", "status", 404, "reason", h.Entity+" not found", "id", id)
			return echo.NewHTTPError(http.StatusNotFound, h.Entity+" not found")
		}
		l.Error("patch_error", "status", 500, "reason", "cannot load "+h.Entity, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot load "+h.Entity)
	}

	PT(item).Rename(req.Name)
	if err := h.Svc.Update(ctx, item); err != nil {
		l.Error("patch_error", "status", 500, "reason", "cannot update "+h.Entity, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot update "+h.Entity)
	}

	l.Info("patch_success", "id", id)
	return c.JSON(http.StatusOK, item)
}

func (h *ReferenceHTTP[T, PT]) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", h.Entity+".delete")

	id := util.ParseIntDefault(c.Param("id"), 0)
	if err := h.Svc.Delete(ctx, id); err != nil {
		l.Error("delete_error", "status", 500, "reason", "cannot delete "+h.Entity, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete "+h.Entity)
	}

	return c.NoContent(http.StatusNoContent)
}
