package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/jfuenzalida/restaurante-backend/internal/logging"
	"github.com/jfuenzalida/restaurante-backend/internal/middleware/auth"
	"github.com/jfuenzalida/restaurante-backend/internal/service"
	"github.com/jfuenzalida/restaurante-backend/internal/transport"
)

type CartHTTP struct {
	Svc *service.CartService
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.view")

	userID, err := auth.UserID(c)
	if err != nil {
		return err
	}

	view, err := h.Svc.View(ctx, userID)
	if err != nil {
		l.Error("view_cart_error", "error", err)
		return httpError(err)
	}

	return c.JSON(http.StatusOK, view)
}

func (h *CartHTTP) AddItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add_item")

	userID, err := auth.UserID(c)
	if err != nil {
		return err
	}

	var req transport.AddItemRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_item_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	view, err := h.Svc.AddItem(ctx, userID, req)
	if err != nil {
		l.Warn("add_item_error", "error", err)
		return httpError(err)
	}

	l.Info("cart_item_added", "product_id", req.ProductID)
	return c.JSON(http.StatusOK, view)
}

func (h *CartHTTP) UpdateItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.update_item")

	userID, err := auth.UserID(c)
	if err != nil {
		return err
	}

	itemID, err := strconv.Atoi(c.Param("id"))
	if err != nil || itemID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid item id")
	}

	var req transport.UpdateItemRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_item_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	view, err := h.Svc.UpdateItem(ctx, userID, uint(itemID), req)
	if err != nil {
		l.Warn("update_item_error", "error", err)
		return httpError(err)
	}

	return c.JSON(http.StatusOK, view)
}

func (h *CartHTTP) RemoveItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove_item")

	userID, err := auth.UserID(c)
	if err != nil {
		return err
	}

	itemID, err := strconv.Atoi(c.Param("id"))
	if err != nil || itemID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid item id")
	}

	view, err := h.Svc.RemoveItem(ctx, userID, uint(itemID))
	if err != nil {
		l.Warn("remove_item_error", "error", err)
		return httpError(err)
	}

	return c.JSON(http.StatusOK, view)
}

func (h *CartHTTP) Clear(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.clear")

	userID, err := auth.UserID(c)
	if err != nil {
		return err
	}

	view, err := h.Svc.Clear(ctx, userID)
	if err != nil {
		l.Error("clear_cart_error", "error", err)
		return httpError(err)
	}

	l.Info("cart_cleared")
	return c.JSON(http.StatusOK, view)
}
