package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/padhisneha/vedida-ecommerce-sub000/app/models"
	"github.com/padhisneha/vedida-ecommerce-sub000/app/repository"
	"github.com/padhisneha/vedida-ecommerce-sub000/internal/pkg/generation"
	"github.com/padhisneha/vedida-ecommerce-sub000/internal/pkg/usercontext"
)

type subscriptionItemRequest struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

type subscriptionCreateRequest struct {
	Frequency string                    `json:"frequency"`
	StartDate string                    `json:"start_date"`
	EndDate   string                    `json:"end_date"`
	AddressID uint                      `json:"address_id"`
	Items     []subscriptionItemRequest `json:"items"`
}

// HandleSubscriptionCreate places a subscription request. It starts in
// PENDING and delivers nothing until an admin accepts it.
func HandleSubscriptionCreate(c *fiber.Ctx) error {
	userID := usercontext.GetUserID(c)

	var req subscriptionCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	startDate, err := time.ParseInLocation("2006-01-02", req.StartDate, time.UTC)
	if err != nil {
		return badRequest(c, "Invalid start date, expected YYYY-MM-DD")
	}
	if startDate.Before(generation.DateOnly(time.Now())) {
		return badRequest(c, "Start date must not be in the past")
	}

	var endDate *time.Time
	if req.EndDate != "" {
		parsed, err := time.ParseInLocation("2006-01-02", req.EndDate, time.UTC)
		if err != nil {
			return badRequest(c, "Invalid end date, expected YYYY-MM-DD")
		}
		endDate = &parsed
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

	items := make([]models.SubscriptionItem, 0, len(req.Items))
	for _, item := range req.Items {
		product, err := repos.GetProductRepository().GetByID(item.ProductID)
		if err != nil {
			if isNotFound(err) {
				return badRequest(c, "Unknown product in subscription items")
			}
			return internalError(c, "Failed to load product")
		}
		if !product.AvailableForSubscription() {
			return conflict(c, "Product "+product.Name+" is not available for subscription")
		}
		items = append(items, models.SubscriptionItem{
			ProductID: product.ID,
			Quantity:  item.Quantity,
		})
	}

	sub := &models.Subscription{
		UserID:          userID,
		Frequency:       req.Frequency,
		Status:          models.SubscriptionStatusPending,
		Items:           items,
		StartDate:       startDate,
		EndDate:         endDate,
		DeliveryAddress: address.Snapshot(),
	}
	if err := sub.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	if err := repos.GetSubscriptionRepository().Create(sub); err != nil {
		log.Errorf("[Subscription] Failed to create subscription for user %d: %v", userID, err)
		return internalError(c, "Failed to create subscription")
	}

	log.Infof("[Subscription] User %d requested subscription %s (%s)", userID, sub.UUID, sub.Frequency)
	return c.Status(fiber.StatusCreated).JSON(sub)
}

// HandleSubscriptionList returns the user's subscriptions.
func HandleSubscriptionList(c *fiber.Ctx) error {
	userID := usercontext.GetUserID(c)

	subs, err := repository.GetGlobalFactory().GetSubscriptionRepository().GetByUserID(userID)
	if err != nil {
		log.Errorf("[Subscription] Failed to list subscriptions for user %d: %v", userID, err)
		return internalError(c, "Failed to load subscriptions")
	}

	return c.JSON(fiber.Map{"subscriptions": subs})
}

// HandleSubscriptionGet returns one of the user's subscriptions.
func HandleSubscriptionGet(c *fiber.Ctx) error {
	sub, ok := loadOwnSubscription(c)
	if !ok {
		return nil
	}
	return c.JSON(sub)
}

// HandleSubscriptionPause pauses deliveries until a resume date. The
// date must be strictly after tomorrow so today's generation run is
// never affected retroactively.
func HandleSubscriptionPause(c *fiber.Ctx) error {
	sub, ok := loadOwnSubscription(c)
	if !ok {
		return nil
	}

	var req struct {
		PausedUntil string `json:"paused_until"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	until, parseErr := time.ParseInLocation("2006-01-02", req.PausedUntil, time.UTC)
	if parseErr != nil {
		return badRequest(c, "Invalid paused_until date, expected YYYY-MM-DD")
	}

	if err := sub.Pause(until, generation.DateOnly(time.Now())); err != nil {
		return conflict(c, err.Error())
	}

	if err := repository.GetGlobalFactory().GetSubscriptionRepository().Update(sub); err != nil {
		log.Errorf("[Subscription] Failed to pause subscription %s: %v", sub.UUID, err)
		return internalError(c, "Failed to pause subscription")
	}

	log.Infof("[Subscription] Paused subscription %s until %s", sub.UUID, until.Format("2006-01-02"))
	return c.JSON(sub)
}

// HandleSubscriptionResume reactivates a paused subscription.
func HandleSubscriptionResume(c *fiber.Ctx) error {
	sub, ok := loadOwnSubscription(c)
	if !ok {
		return nil
	}

	if err := sub.Resume(); err != nil {
		return conflict(c, "Only paused subscriptions can be resumed")
	}

	if err := repository.GetGlobalFactory().GetSubscriptionRepository().Update(sub); err != nil {
		log.Errorf("[Subscription] Failed to resume subscription %s: %v", sub.UUID, err)
		return internalError(c, "Failed to resume subscription")
	}

	log.Infof("[Subscription] Resumed subscription %s", sub.UUID)
	return c.JSON(sub)
}

// HandleSubscriptionCancel terminates a subscription for good.
func HandleSubscriptionCancel(c *fiber.Ctx) error {
	sub, ok := loadOwnSubscription(c)
	if !ok {
		return nil
	}

	if err := sub.Cancel(); err != nil {
		return conflict(c, "Subscription can no longer be cancelled")
	}

	if err := repository.GetGlobalFactory().GetSubscriptionRepository().Update(sub); err != nil {
		log.Errorf("[Subscription] Failed to cancel subscription %s: %v", sub.UUID, err)
		return internalError(c, "Failed to cancel subscription")
	}

	log.Infof("[Subscription] Cancelled subscription %s", sub.UUID)
	return c.JSON(sub)
}

// loadOwnSubscription resolves the :uuid path param to a subscription
// owned by the authenticated user. On failure the error response has
// already been written and ok is false.
func loadOwnSubscription(c *fiber.Ctx) (*models.Subscription, bool) {
	userID := usercontext.GetUserID(c)

	sub, err := repository.GetGlobalFactory().GetSubscriptionRepository().GetByUUID(c.Params("uuid"))
	if err != nil {
		if isNotFound(err) {
			_ = notFound(c, "Subscription not found")
		} else {
			_ = internalError(c, "Failed to load subscription")
		}
		return nil, false
	}
	if sub.UserID != userID {
		_ = notFound(c, "Subscription not found")
		return nil, false
	}
	return sub, true
}
