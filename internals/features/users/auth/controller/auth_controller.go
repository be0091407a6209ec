package controller

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"swimclub_backend/internals/features/users/auth/dto"
	"swimclub_backend/internals/features/users/auth/service"
	helper "swimclub_backend/internals/helpers"
)

type LoginService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}

type AuthController struct {
	Svc LoginService
}

func NewAuthController(svc LoginService) *AuthController {
	return &AuthController{Svc: svc}
}

// POST /api/auth/login
func (ctl *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	resp, err := ctl.Svc.Login(c.UserContext(), req)
	if errors.Is(err, service.ErrInvalidCredentials) {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Login successful", resp)
}
