package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/padhisneha/vedida-ecommerce-sub000/app/models"
	"github.com/padhisneha/vedida-ecommerce-sub000/app/repository"
	"github.com/padhisneha/vedida-ecommerce-sub000/internal/pkg/usercontext"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

// HandleUserRegister creates a new account and hands back the API key
// exactly once. The key is not retrievable afterwards.
func HandleUserRegister(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	user, err := models.CreateUser(req.Name, req.Email, req.Password)
	if err != nil {
		return badRequest(c, err.Error())
	}
	user.Phone = req.Phone

	apiKey, err := user.GenerateAPIKey()
	if err != nil {
		log.Errorf("[User] Failed to generate API key: %v", err)
		return internalError(c, "Failed to create account")
	}

	repo := repository.GetGlobalFactory().GetUserRepository()
	if err := repo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return conflict(c, "Email already registered")
		}
		log.Errorf("[User] Failed to create user: %v", err)
		return internalError(c, "Failed to create account")
	}

	log.Infof("[User] Registered user %d (%s)", user.ID, user.Email)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"uuid":    user.UUID,
		"name":    user.Name,
		"email":   user.Email,
		"api_key": apiKey,
	})
}

// HandleUserMe returns account information for the authenticated user.
func HandleUserMe(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	repo := repository.GetGlobalFactory().GetUserRepository()
	user, err := repo.GetByID(userCtx.UserID)
	if err != nil {
		if isNotFound(err) {
			return notFound(c, "User not found")
		}
		return internalError(c, "Failed to load user")
	}

	return c.JSON(fiber.Map{
		"uuid":       user.UUID,
		"name":       user.Name,
		"email":      user.Email,
		"phone":      user.Phone,
		"status":     user.Status,
		"is_admin":   user.IsAdmin(),
		"created_at": user.CreatedAt.UTC().Format(time.RFC3339),
	})
}
