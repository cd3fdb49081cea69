package handlers

import (
	"errors"

	"bookcourier/internal/domain"
	applog "bookcourier/internal/log"
	"bookcourier/internal/repos"
	"bookcourier/internal/services"
	"bookcourier/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type OrderHandler struct {
	Orders   *repos.OrderRepo
	Checkout *services.CheckoutService
}

// GET /my-orders
func (h *OrderHandler) MyOrders(c *fiber.Ctx) error {
	orders, err := h.Orders.ListByCustomer(tokenEmail(c))
	if err != nil {
		applog.Error(c, "orders.list.fail", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "Could not load orders")
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return c.JSON(orders)
}

// GET /orders/check?bookId=
func (h *OrderHandler) Check(c *fiber.Ctx) error {
	bookID, ok := validate.ID(c.Query("bookId"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "Missing bookId")
	}
	ordered, err := h.Orders.HasConfirmed(tokenEmail(c), bookID)
	if err != nil {
		applog.Error(c, "orders.check.fail", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "Could not check orders")
	}
	return c.JSON(fiber.Map{"ordered": ordered})
}

// DELETE /orders/:id (owning customer only)
func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "Invalid order id")
	}
	switch err := h.Checkout.Cancel(id, tokenEmail(c)); {
	case err == nil:
		applog.Audit(c, "orders.cancel", map[string]any{"order_id": id})
		return c.JSON(fiber.Map{"success": true})
	case errors.Is(err, services.ErrNotFound):
		return jsonError(c, fiber.StatusNotFound, "Order not found")
	case errors.Is(err, services.ErrForbidden):
		applog.Security(c, "orders.cancel.deny", map[string]any{"order_id": id})
		return jsonError(c, fiber.StatusForbidden, "You can only cancel your own orders")
	default:
		applog.Error(c, "orders.cancel.fail", err, map[string]any{"order_id": id})
		return jsonError(c, fiber.StatusInternalServerError, "Could not cancel order")
	}
}

// PATCH /orders/:id (admin only)
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "Invalid order id")
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil || body.Status == "" {
		return jsonError(c, fiber.StatusBadRequest, "Missing status")
	}
	switch err := h.Checkout.SetStatus(id, body.Status); {
	case err == nil:
		applog.Audit(c, "orders.status", map[string]any{"order_id": id, "status": body.Status})
		return c.JSON(fiber.Map{"success": true})
	case errors.Is(err, services.ErrNotFound):
		return jsonError(c, fiber.StatusNotFound, "Order not found")
	case errors.Is(err, services.ErrBadTransition):
		return jsonError(c, fiber.StatusBadRequest, "Illegal status transition")
	default:
		applog.Error(c, "orders.status.fail", err, map[string]any{"order_id": id})
		return jsonError(c, fiber.StatusInternalServerError, "Could not update status")
	}
}

// GET /admin/orders (admin only)
func (h *OrderHandler) AdminList(c *fiber.Ctx) error {
	orders, err := h.Orders.ListAll()
	if err != nil {
		applog.Error(c, "admin.orders.list.fail", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "Could not load orders")
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return c.JSON(orders)
}

// GET /manage-orders/:email (seller only, own sales)
func (h *OrderHandler) ManageOrders(c *fiber.Ctx) error {
	email := c.Params("email")
	if email != tokenEmail(c) {
		applog.Security(c, "orders.scope.deny", map[string]any{"param": email})
		return jsonError(c, fiber.StatusForbidden, "You can view only your own sales")
	}
	orders, err := h.Orders.ListBySeller(email)
	if err != nil {
		applog.Error(c, "orders.seller.list.fail", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "Could not load orders")
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return c.JSON(orders)
}
