package controllers

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/padhisneha/vedida-ecommerce-sub000/app/repository"
	"github.com/padhisneha/vedida-ecommerce-sub000/internal/pkg/cache"
)

const (
	productListCacheKey = "products:list"
	productCacheKeyFmt  = "products:%s"
	productCacheTTL     = 5 * time.Minute
)

// HandleProductList returns the catalog, newest first. The listing is
// cached briefly; admin catalog writes invalidate it.
func HandleProductList(c *fiber.Ctx) error {
	offset := c.QueryInt("offset", 0)
	limit := c.QueryInt("limit", 50)
	if limit < 1 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	// Only the default first page is cached.
	useCache := offset == 0 && limit == 50
	if useCache {
		if cached, err := cache.Get(productListCacheKey); err == nil {
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			return c.SendString(cached)
		}
	}

	repo := repository.GetGlobalFactory().GetProductRepository()
	products, err := repo.List(offset, limit)
	if err != nil {
		log.Errorf("[Product] Failed to list products: %v", err)
		return internalError(c, "Failed to load products")
	}
	total, err := repo.Count()
	if err != nil {
		log.Errorf("[Product] Failed to count products: %v", err)
		return internalError(c, "Failed to load products")
	}

	response := fiber.Map{
		"products": products,
		"total":    total,
		"offset":   offset,
		"limit":    limit,
	}

	if useCache {
		if payload, err := json.Marshal(response); err == nil {
			if err := cache.Set(productListCacheKey, payload, productCacheTTL); err != nil {
				log.Warnf("[Product] Failed to cache product list: %v", err)
			}
		}
	}

	return c.JSON(response)
}

// HandleProductGet returns a single product by its public UUID.
func HandleProductGet(c *fiber.Ctx) error {
	uuid := c.Params("uuid")

	key := fmt.Sprintf(productCacheKeyFmt, uuid)
	if cached, err := cache.Get(key); err == nil {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.SendString(cached)
	}

	repo := repository.GetGlobalFactory().GetProductRepository()
	product, err := repo.GetByUUID(uuid)
	if err != nil {
		if isNotFound(err) {
			return notFound(c, "Product not found")
		}
		log.Errorf("[Product] Failed to load product %s: %v", uuid, err)
		return internalError(c, "Failed to load product")
	}

	if payload, err := json.Marshal(product); err == nil {
		if err := cache.Set(key, payload, productCacheTTL); err != nil {
			log.Warnf("[Product] Failed to cache product %s: %v", uuid, err)
		}
	}

	return c.JSON(product)
}

// invalidateProductCache drops the cached listing and, when a UUID is
// given, the single-product entry.
func invalidateProductCache(uuid string) {
	if err := cache.Delete(productListCacheKey); err != nil {
		log.Warnf("[Product] Failed to invalidate product list cache: %v", err)
	}
	if uuid != "" {
		if err := cache.Delete(fmt.Sprintf(productCacheKeyFmt, uuid)); err != nil {
			log.Warnf("[Product] Failed to invalidate cache for product %s: %v", uuid, err)
		}
	}
}
