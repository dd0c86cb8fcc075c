package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tintaeletras/bookshop/internal/events"
	"github.com/tintaeletras/bookshop/internal/logging"
	"github.com/tintaeletras/bookshop/internal/models"
	"github.com/tintaeletras/bookshop/internal/orders"
)

type OrderHandler struct {
	Orders   *orders.Service
	Producer *events.Producer
}

type createOrderRequest struct {
	CustomerName    string               `json:"customer_name"`
	CustomerEmail   string               `json:"customer_email"`
	CustomerPhone   string               `json:"customer_phone"`
	CustomerAddress string               `json:"customer_address"`
	Items           []orders.LineRequest `json:"items"`
	Notes           *string              `json:"notes"`
}

func (h *OrderHandler) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "orders.create")

	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Error("create_order_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if req.CustomerName == "" || req.CustomerEmail == "" || req.CustomerPhone == "" || req.CustomerAddress == "" {
		l.Warn("create_order_failed", "status", 400, "reason", "missing customer fields")
		return echo.NewHTTPError(http.StatusBadRequest, "customer name, email, phone and address are required")
	}
	if !validEmail(req.CustomerEmail) {
		l.Warn("create_order_failed", "status", 400, "reason", "invalid email")
		return echo.NewHTTPError(http.StatusBadRequest, "customer_email is not a valid email")
	}
	if len(req.Items) == 0 {
		l.Warn("create_order_failed", "status", 400, "reason", "no items")
		return echo.NewHTTPError(http.StatusBadRequest, "at least one item is required")
	}
	for _, it := range req.Items {
		if it.BookID == 0 || it.Quantity <= 0 {
			l.Warn("create_order_failed", "status", 400, "reason", "bad line item")
			return echo.NewHTTPError(http.StatusBadRequest, "every item needs a book_id and a positive quantity")
		}
	}

	order, err := h.Orders.Create(ctx, orders.CreateOrderInput{
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		CustomerAddress: req.CustomerAddress,
		Items:           req.Items,
		Notes:           req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, orders.ErrBooksNotFound),
			errors.Is(err, orders.ErrBooksUnavailable),
			errors.Is(err, orders.ErrInsufficientStock),
			errors.Is(err, orders.ErrValidation):
			l.Warn("create_order_rejected", "status", 400, "reason", err.Error())
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case isUniqueViolation(err):
			l.Warn("create_order_failed", "status", 409, "error", err)
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		default:
			l.Error("create_order_failed", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot create order")
		}
	}

	publish(c, h.Producer, events.TopicOrderEvents, fmt.Sprint(order.ID), events.EventOrderCreated, map[string]any{
		"order_id":     order.ID,
		"total_amount": order.TotalAmount,
		"status":       order.Status,
	})

	l.Info("create_order_success", "order_id", order.ID)
	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) GetOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "orders.list")

	limit, err := intQuery(c, "limit")
	if err != nil {
		return err
	}
	offset, err := intQuery(c, "offset")
	if err != nil {
		return err
	}

	var status *models.OrderStatus
	if s := c.QueryParam("status"); s != "" {
		st := models.OrderStatus(s)
		if !st.Valid() {
			l.Warn("list_orders_failed", "status", 400, "reason", "unknown status filter")
			return echo.NewHTTPError(http.StatusBadRequest, "unknown status "+s)
		}
		status = &st
	}

	out, err := h.Orders.List(ctx, orders.ListQuery{Status: status, Limit: limit, Offset: offset})
	if err != nil {
		l.Error("list_orders_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list orders")
	}

	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "orders.get")

	id, err := intParam(c, "id")
	if err != nil {
		return err
	}

	order, err := h.Orders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, orders.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		l.Error("get_order_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot fetch order")
	}

	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) UpdateOrderStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "orders.update_status")

	id, err := intParam(c, "id")
	if err != nil {
		return err
	}

	var req struct {
		Status models.OrderStatus `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		l.Error("update_order_status_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Orders.SetStatus(ctx, id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, orders.ErrValidation):
			l.Warn("update_order_status_failed", "status", 400, "reason", err.Error())
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, orders.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		default:
			l.Error("update_order_status_failed", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot update order status")
		}
	}

	publish(c, h.Producer, events.TopicOrderEvents, fmt.Sprint(order.ID), events.EventOrderStatusSet, map[string]any{
		"order_id": order.ID,
		"status":   order.Status,
	})

	l.Info("update_order_status_success", "order_id", order.ID, "new_status", order.Status)
	return c.JSON(http.StatusOK, order)
}
