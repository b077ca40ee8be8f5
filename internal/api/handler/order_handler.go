package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/garmentworks/pattern-tracker/internal/api/metrics"
	"github.com/garmentworks/pattern-tracker/internal/core/domain"
	"github.com/garmentworks/pattern-tracker/internal/core/ports"
)

// OrderHandler serves the order CRUD and stage decision endpoints.
type OrderHandler struct {
	orders ports.OrderService
	log    zerolog.Logger
}

// NewOrderHandler wires an OrderHandler.
func NewOrderHandler(orders ports.OrderService, log zerolog.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, log: log}
}

// Create creates an order.
//
//	@Summary	Create an order
//	@Tags		orders
//	@Accept		json
//	@Produce	json
//	@Param		request	body		CreateOrderRequest	true	"order data"
//	@Success	201		{object}	domain.Order
//	@Security	BearerAuth
//	@Router		/orders [post]
func (h *OrderHandler) Create(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	var req CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	order, err := h.orders.Create(c.Request().Context(), actor, ports.CreateOrderInput{
		OrderNumber:     req.OrderNumber,
		GoogleSheetLink: req.GoogleSheetLink,
	})
	if err != nil {
		return err
	}

	metrics.OrdersCreatedTotal.Inc()
	h.log.Info().
		Str("order_id", order.ID).
		Str("order_number", order.OrderNumber).
		Str("created_by", actor.ID).
		Msg("order created")

	return c.JSON(http.StatusCreated, order)
}

// List returns all orders, newest first.
//
//	@Summary	List orders
//	@Tags		orders
//	@Produce	json
//	@Success	200	{array}	domain.Order
//	@Security	BearerAuth
//	@Router		/orders [get]
func (h *OrderHandler) List(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	list, err := h.orders.List(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

// Get returns one order.
//
//	@Summary	Fetch an order
//	@Tags		orders
//	@Produce	json
//	@Param		id	path		string	true	"order id"
//	@Success	200	{object}	domain.Order
//	@Failure	404	{object}	map[string]string
//	@Security	BearerAuth
//	@Router		/orders/{id} [get]
func (h *OrderHandler) Get(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	order, err := h.orders.Get(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}

// Update applies a partial metadata update to an order.
//
//	@Summary	Update order metadata
//	@Tags		orders
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string				true	"order id"
//	@Param		request	body		UpdateOrderRequest	true	"fields to change"
//	@Success	200		{object}	domain.Order
//	@Security	BearerAuth
//	@Router		/orders/{id} [patch]
func (h *OrderHandler) Update(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	var req UpdateOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request payload")
	}

	order, err := h.orders.Update(c.Request().Context(), actor, c.Param("id"), ports.OrderMetaUpdate{
		OrderNumber:           req.OrderNumber,
		GoogleSheetLink:       req.GoogleSheetLink,
		FinalMeasurementsLink: req.FinalMeasurementsLink,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}

// Delete removes an order and everything attached to it.
//
//	@Summary	Delete an order
//	@Tags		orders
//	@Param		id	path	string	true	"order id"
//	@Success	204
//	@Security	BearerAuth
//	@Router		/orders/{id} [delete]
func (h *OrderHandler) Delete(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	if err := h.orders.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}

	metrics.OrdersDeletedTotal.Inc()
	h.log.Info().
		Str("order_id", c.Param("id")).
		Str("actor_id", actor.ID).
		Msg("order deleted")

	return c.NoContent(http.StatusNoContent)
}

// Decide records an approval decision on one review stage.
//
//	@Summary	Record a stage decision
//	@Tags		orders
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string			true	"order id"
//	@Param		request	body		ApproveRequest	true	"stage decision"
//	@Success	200		{object}	map[string]string
//	@Security	BearerAuth
//	@Router		/orders/{id}/approve [post]
func (h *OrderHandler) Decide(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	var req ApproveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	err = h.orders.Decide(c.Request().Context(), actor, c.Param("id"), ports.ApprovalInput{
		Stage:  domain.Stage(req.Stage),
		Status: domain.StageStatus(req.Status),
	})
	if err != nil {
		return err
	}

	metrics.ApprovalDecisionsTotal.WithLabelValues(req.Stage, req.Status).Inc()
	h.log.Info().
		Str("order_id", c.Param("id")).
		Str("stage", req.Stage).
		Str("status", req.Status).
		Str("actor_id", actor.ID).
		Msg("stage decision recorded")

	return c.JSON(http.StatusOK, map[string]string{"message": "decision recorded"})
}
