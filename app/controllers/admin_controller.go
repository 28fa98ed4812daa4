package controllers

import (
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/shopspring/decimal"

	"github.com/padhisneha/vedida-ecommerce-sub000/app/models"
	"github.com/padhisneha/vedida-ecommerce-sub000/app/repository"
	"github.com/padhisneha/vedida-ecommerce-sub000/internal/pkg/cache"
	"github.com/padhisneha/vedida-ecommerce-sub000/internal/pkg/env"
	"github.com/padhisneha/vedida-ecommerce-sub000/internal/pkg/generation"
	"github.com/padhisneha/vedida-ecommerce-sub000/internal/pkg/usercontext"
)

const (
	generationLastRunCacheKey = "generation:last_run"
	generationReportTTL       = 7 * 24 * time.Hour
)

type productRequest struct {
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	Unit              string          `json:"unit"`
	Price             decimal.Decimal `json:"price"`
	PriceExcludingTax decimal.Decimal `json:"price_excluding_tax"`
	TaxCGSTPercent    decimal.Decimal `json:"tax_cgst_percent"`
	TaxSGSTPercent    decimal.Decimal `json:"tax_sgst_percent"`
	InStock           bool            `json:"in_stock"`
	AllowSubscription bool            `json:"allow_subscription"`
}

// HandleAdminProductCreate adds a product to the catalog.
func HandleAdminProductCreate(c *fiber.Ctx) error {
	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	product := &models.Product{
		Name:              req.Name,
		Description:       req.Description,
		Unit:              req.Unit,
		Price:             req.Price,
		PriceExcludingTax: req.PriceExcludingTax,
		TaxCGSTPercent:    req.TaxCGSTPercent,
		TaxSGSTPercent:    req.TaxSGSTPercent,
		InStock:           req.InStock,
		AllowSubscription: req.AllowSubscription,
	}
	if err := product.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	if err := repository.GetGlobalFactory().GetProductRepository().Create(product); err != nil {
		log.Errorf("[Admin] Failed to create product: %v", err)
		return internalError(c, "Failed to create product")
	}

	invalidateProductCache("")
	log.Infof("[Admin] User %d created product %s (%s)", usercontext.GetUserID(c), product.UUID, product.Name)
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleAdminProductUpdate edits a catalog entry. Existing order and
// subscription snapshots keep their old values.
func HandleAdminProductUpdate(c *fiber.Ctx) error {
	repo := repository.GetGlobalFactory().GetProductRepository()

	product, err := repo.GetByUUID(c.Params("uuid"))
	if err != nil {
		if isNotFound(err) {
			return notFound(c, "Product not found")
		}
		return internalError(c, "Failed to load product")
	}

	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	product.Name = req.Name
	product.Description = req.Description
	product.Unit = req.Unit
	product.Price = req.Price
	product.PriceExcludingTax = req.PriceExcludingTax
	product.TaxCGSTPercent = req.TaxCGSTPercent
	product.TaxSGSTPercent = req.TaxSGSTPercent
	product.InStock = req.InStock
	product.AllowSubscription = req.AllowSubscription
	if err := product.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	if err := repo.Update(product); err != nil {
		log.Errorf("[Admin] Failed to update product %s: %v", product.UUID, err)
		return internalError(c, "Failed to update product")
	}

	invalidateProductCache(product.UUID)
	return c.JSON(product)
}

// HandleAdminSubscriptionAccept activates a pending subscription. From
// the next generation run on it produces deliveries.
func HandleAdminSubscriptionAccept(c *fiber.Ctx) error {
	repo := repository.GetGlobalFactory().GetSubscriptionRepository()

	sub, err := repo.GetByUUID(c.Params("uuid"))
	if err != nil {
		if isNotFound(err) {
			return notFound(c, "Subscription not found")
		}
		return internalError(c, "Failed to load subscription")
	}

	if err := sub.Accept(); err != nil {
		return conflict(c, "Only pending subscriptions can be accepted")
	}

	if err := repo.Update(sub); err != nil {
		log.Errorf("[Admin] Failed to accept subscription %s: %v", sub.UUID, err)
		return internalError(c, "Failed to accept subscription")
	}

	log.Infof("[Admin] User %d accepted subscription %s", usercontext.GetUserID(c), sub.UUID)
	return c.JSON(sub)
}

// HandleAdminOrderStatusUpdate advances an order along its lifecycle.
func HandleAdminOrderStatusUpdate(c *fiber.Ctx) error {
	repo := repository.GetGlobalFactory().GetOrderRepository()

	order, err := repo.GetByOrderNumber(c.Params("number"))
	if err != nil {
		if isNotFound(err) {
			return notFound(c, "Order not found")
		}
		return internalError(c, "Failed to load order")
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := order.TransitionTo(req.Status, time.Now()); err != nil {
		return conflict(c, err.Error())
	}

	if err := repo.Update(order); err != nil {
		log.Errorf("[Admin] Failed to update order %s: %v", order.OrderNumber, err)
		return internalError(c, "Failed to update order")
	}

	log.Infof("[Admin] Order %s moved to %s", order.OrderNumber, order.Status)
	return c.JSON(order)
}

// HandleAdminGenerationRun triggers the daily subscription order run.
// Safe to call repeatedly; re-runs for the same date only skip.
func HandleAdminGenerationRun(c *fiber.Ctx) error {
	var req struct {
		Date string `json:"date"`
	}
	// An empty body means "run for today".
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
	}

	referenceDate := time.Now()
	if req.Date != "" {
		parsed, err := time.ParseInLocation("2006-01-02", req.Date, time.UTC)
		if err != nil {
			return badRequest(c, "Invalid date, expected YYYY-MM-DD")
		}
		referenceDate = parsed
	}

	repos := repository.GetGlobalFactory()
	orchestrator := generation.NewOrchestrator(
		repos.GetSubscriptionRepository(),
		repos.GetOrderRepository(),
		repos.GetProductRepository(),
		env.GetEnvInt("GENERATION_WORKERS", generation.DefaultWorkerCount),
	)

	report, err := orchestrator.Run(c.Context(), referenceDate)
	if err != nil {
		log.Errorf("[Admin] Generation run failed: %v", err)
		return internalError(c, "Generation run failed")
	}

	if payload, err := json.Marshal(report); err == nil {
		if err := cache.Set(generationLastRunCacheKey, payload, generationReportTTL); err != nil {
			log.Warnf("[Admin] Failed to cache generation report: %v", err)
		}
	}

	return c.JSON(report)
}

// HandleAdminGenerationLastRun returns the report of the most recent
// generation run.
func HandleAdminGenerationLastRun(c *fiber.Ctx) error {
	cached, err := cache.Get(generationLastRunCacheKey)
	if err != nil {
		return notFound(c, "No generation run recorded")
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.SendString(cached)
}
