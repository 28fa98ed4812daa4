package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// jsonError writes the standard error envelope used across the API.
func jsonError(c *fiber.Ctx, status int, code string, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": code, "message": message})
}

func badRequest(c *fiber.Ctx, message string) error {
	return jsonError(c, fiber.StatusBadRequest, "bad_request", message)
}

func notFound(c *fiber.Ctx, message string) error {
	return jsonError(c, fiber.StatusNotFound, "not_found", message)
}

func conflict(c *fiber.Ctx, message string) error {
	return jsonError(c, fiber.StatusConflict, "conflict", message)
}

func internalError(c *fiber.Ctx, message string) error {
	return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", message)
}

// isNotFound tells a missing record apart from a real database failure.
func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
