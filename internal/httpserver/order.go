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

type OrderHTTP struct {
	Svc *service.OrderService
}

func (h *OrderHTTP) Checkout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.checkout")

	userID, err := auth.UserID(c)
	if err != nil {
		return err
	}

	var req transport.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("checkout_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.Checkout(ctx, userID, req)
	if err != nil {
		l.Warn("checkout_error", "error", err)
		return httpError(err)
	}

	l.Info("order_created", "order_id", order.ID, "total", order.Total, "status", order.Status)
	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHTTP) ListMine(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list_mine")

	userID, err := auth.UserID(c)
	if err != nil {
		return err
	}

	orders, err := h.Svc.ListMine(ctx, userID)
	if err != nil {
		l.Error("list_orders_error", "error", err)
		return httpError(err)
	}

	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHTTP) ListActive(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list_active")

	orders, err := h.Svc.ListActive(ctx)
	if err != nil {
		l.Error("list_active_error", "error", err)
		return httpError(err)
	}

	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHTTP) ListDispatch(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list_dispatch")

	orders, err := h.Svc.ListDispatch(ctx)
	if err != nil {
		l.Error("list_dispatch_error", "error", err)
		return httpError(err)
	}

	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHTTP) SetStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.set_status")

	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil || orderID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	var req transport.SetStatusRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("set_status_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.SetStatus(ctx, uint(orderID), req.Status)
	if err != nil {
		l.Warn("set_status_error", "order_id", orderID, "error", err)
		return httpError(err)
	}

	l.Info("order_status_changed", "order_id", order.ID, "status", order.Status)
	return c.JSON(http.StatusOK, order)
}
