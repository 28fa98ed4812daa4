package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/padhisneha/vedida-ecommerce-sub000/app/models"
	"github.com/padhisneha/vedida-ecommerce-sub000/app/repository"
	"github.com/padhisneha/vedida-ecommerce-sub000/internal/pkg/generation"
	"github.com/padhisneha/vedida-ecommerce-sub000/internal/pkg/mail"
	"github.com/padhisneha/vedida-ecommerce-sub000/internal/pkg/payment"
	"github.com/padhisneha/vedida-ecommerce-sub000/internal/pkg/pricing"
	"github.com/padhisneha/vedida-ecommerce-sub000/internal/pkg/usercontext"
)

type checkoutRequest struct {
	AddressID     uint   `json:"address_id"`
	PaymentMethod string `json:"payment_method"`
	DeliveryDate  string `json:"delivery_date"`
}

// HandleCheckout turns the user's cart into a one-time order: snapshot
// prices, compute the tax breakdown, charge the payment provider, insert
// the order and empty the cart.
func HandleCheckout(c *fiber.Ctx) error {
	userID := usercontext.GetUserID(c)

	var req checkoutRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	// Delivery defaults to tomorrow; an explicit date must not be in the
	// past.
	deliveryDate := generation.DateOnly(time.Now()).AddDate(0, 0, 1)
	if req.DeliveryDate != "" {
		parsed, err := time.ParseInLocation("2006-01-02", req.DeliveryDate, time.UTC)
		if err != nil {
			return badRequest(c, "Invalid delivery date, expected YYYY-MM-DD")
		}
		if parsed.Before(generation.DateOnly(time.Now())) {
			return badRequest(c, "Delivery date must not be in the past")
		}
		deliveryDate = parsed
	}

	repos := repository.GetGlobalFactory()

	address, err := repos.GetAddressRepository().GetByID(req.AddressID)
	if err != nil {
		if isNotFound(err) {
			return notFound(c, "Address not found")
		}
		return internalError(c, "Failed to load address")
	}
	if address.UserID != userID {
		return notFound(c, "Address not found")
	}

	cart, err := repos.GetCartRepository().GetOrCreateByUserID(userID)
	if err != nil {
		log.Errorf("[Checkout] Failed to load cart for user %d: %v", userID, err)
		return internalError(c, "Failed to load cart")
	}
	if cart.IsEmpty() {
		return badRequest(c, "Cart is empty")
	}

	// Snapshot every cart line against the live catalog.
	lineItems := make([]pricing.LineItem, 0, len(cart.Items))
	orderItems := make([]models.OrderItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		product, err := repos.GetProductRepository().GetByID(item.ProductID)
		if err != nil {
			if isNotFound(err) {
				return conflict(c, "A cart item is no longer available")
			}
			return internalError(c, "Failed to load product")
		}
		if !product.InStock {
			return conflict(c, "Product "+product.Name+" is out of stock")
		}

		lineItems = append(lineItems, pricing.LineItem{
			PriceExcludingTax: product.PriceExcludingTax,
			CGSTPercent:       product.TaxCGSTPercent,
			SGSTPercent:       product.TaxSGSTPercent,
			Quantity:          item.Quantity,
		})
		orderItems = append(orderItems, models.OrderItem{
			ProductID:         product.ID,
			ProductName:       product.Name,
			Unit:              product.Unit,
			Quantity:          item.Quantity,
			UnitPrice:         product.Price,
			PriceExcludingTax: product.PriceExcludingTax,
			CGSTPercent:       product.TaxCGSTPercent,
			SGSTPercent:       product.TaxSGSTPercent,
		})
	}

	breakdown, err := pricing.Calculate(lineItems)
	if err != nil {
		return badRequest(c, err.Error())
	}

	year := time.Now().UTC().Year()
	sequence, err := repos.GetOrderRepository().NextOrderNumber(year)
	if err != nil {
		log.Errorf("[Checkout] Failed to reserve order number: %v", err)
		return internalError(c, "Failed to create order")
	}
	orderNumber := models.FormatOrderNumber(year, sequence)

	provider, err := payment.NewProvider(req.PaymentMethod)
	if err != nil {
		return badRequest(c, err.Error())
	}
	charge, err := provider.Charge(c.Context(), payment.ChargeParams{
		UserID:      userID,
		OrderNumber: orderNumber,
		Amount:      breakdown.TotalBeforeFees,
		Method:      req.PaymentMethod,
	})
	if err != nil {
		log.Errorf("[Checkout] Payment for order %s failed: %v", orderNumber, err)
		return jsonError(c, fiber.StatusPaymentRequired, "payment_failed", "Payment was not accepted")
	}

	order := &models.Order{
		OrderNumber:           orderNumber,
		UserID:                userID,
		Type:                  models.OrderTypeOneTime,
		Status:                models.OrderStatusPending,
		Items:                 orderItems,
		Subtotal:              breakdown.Subtotal,
		CGST:                  breakdown.CGST,
		SGST:                  breakdown.SGST,
		TotalAmount:           breakdown.TotalBeforeFees,
		PaymentReference:      charge.Reference,
		ScheduledDeliveryDate: deliveryDate,
		DeliveryAddress:       address.Snapshot(),
	}

	if err := repos.GetOrderRepository().Insert(order); err != nil {
		log.Errorf("[Checkout] Failed to insert order %s: %v", orderNumber, err)
		return internalError(c, "Failed to create order")
	}

	if err := repos.GetCartRepository().Clear(cart.ID); err != nil {
		// The order exists; an uncleared cart is an annoyance, not a
		// failure.
		log.Warnf("[Checkout] Failed to clear cart %d after order %s: %v", cart.ID, orderNumber, err)
	}

	log.Infof("[Checkout] User %d placed order %s (%s)", userID, orderNumber, order.TotalAmount.StringFixed(2))

	if user, err := repos.GetUserRepository().GetByID(userID); err == nil {
		go mail.SendOrderConfirmation(user, order)
	}

	return c.Status(fiber.StatusCreated).JSON(order)
}
