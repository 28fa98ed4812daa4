package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/padhisneha/vedida-ecommerce-sub000/app/models"
	"github.com/padhisneha/vedida-ecommerce-sub000/app/repository"
	"github.com/padhisneha/vedida-ecommerce-sub000/internal/pkg/usercontext"
)

// HandleOrderList returns the authenticated user's orders, newest first.
func HandleOrderList(c *fiber.Ctx) error {
	userID := usercontext.GetUserID(c)

	offset := c.QueryInt("offset", 0)
	limit := c.QueryInt("limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	orders, err := repository.GetGlobalFactory().GetOrderRepository().GetByUserID(userID, offset, limit)
	if err != nil {
		log.Errorf("[Order] Failed to list orders for user %d: %v", userID, err)
		return internalError(c, "Failed to load orders")
	}

	return c.JSON(fiber.Map{
		"orders": orders,
		"offset": offset,
		"limit":  limit,
	})
}

// HandleOrderGet returns one of the user's orders by order number.
func HandleOrderGet(c *fiber.Ctx) error {
	userID := usercontext.GetUserID(c)

	order, err := repository.GetGlobalFactory().GetOrderRepository().GetByOrderNumber(c.Params("number"))
	if err != nil {
		if isNotFound(err) {
			return notFound(c, "Order not found")
		}
		return internalError(c, "Failed to load order")
	}
	if order.UserID != userID {
		return notFound(c, "Order not found")
	}

	return c.JSON(order)
}

// HandleOrderCancel cancels one of the user's orders. Only orders that
// have not left for delivery can still be cancelled.
func HandleOrderCancel(c *fiber.Ctx) error {
	userID := usercontext.GetUserID(c)

	repo := repository.GetGlobalFactory().GetOrderRepository()
	order, err := repo.GetByOrderNumber(c.Params("number"))
	if err != nil {
		if isNotFound(err) {
			return notFound(c, "Order not found")
		}
		return internalError(c, "Failed to load order")
	}
	if order.UserID != userID {
		return notFound(c, "Order not found")
	}

	if err := order.TransitionTo(models.OrderStatusCancelled, time.Now()); err != nil {
		return conflict(c, "Order can no longer be cancelled")
	}

	if err := repo.Update(order); err != nil {
		log.Errorf("[Order] Failed to cancel order %s: %v", order.OrderNumber, err)
		return internalError(c, "Failed to cancel order")
	}

	log.Infof("[Order] User %d cancelled order %s", userID, order.OrderNumber)
	return c.JSON(order)
}
