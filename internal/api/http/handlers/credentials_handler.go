package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/hubex/account-service/internal/api/dto"
	"github.com/hubex/account-service/internal/service"
	apperrors "github.com/hubex/account-service/pkg/util"
)

// CredentialsHandler exposes the email verification and password reset
// endpoints. Responses are bare success booleans: no reason codes, so
// callers cannot probe which emails exist or why a token was rejected.
type CredentialsHandler struct {
	verification *service.VerificationService
	resets       *service.PasswordResetService
}

// NewCredentialsHandler constructs the handler.
func NewCredentialsHandler(verification *service.VerificationService, resets *service.PasswordResetService) *CredentialsHandler {
	return &CredentialsHandler{verification: verification, resets: resets}
}

// VerifyEmail handles GET /accounts/email-verification?token=...
func (h *CredentialsHandler) VerifyEmail(c *fiber.Ctx) error {
	token := c.Query("token")
	if token == "" {
		return apperrors.NewValidationError("token required", nil)
	}

	verified, err := h.verification.VerifyEmail(c.UserContext(), token)
	if err != nil {
		// Forged or malformed token: a hard failure, not a boolean no.
		return apperrors.NewUnauthorized("invalid token")
	}
	return c.JSON(dto.StatusResponse{Success: verified})
}

// RequestPasswordReset handles POST /accounts/password-reset-request.
func (h *CredentialsHandler) RequestPasswordReset(c *fiber.Ctx) error {
	var req dto.PasswordResetRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" {
		return apperrors.NewValidationError("email required", nil)
	}

	ok := h.resets.RequestReset(c.UserContext(), req.Email)
	return c.JSON(dto.StatusResponse{Success: ok})
}

// ResetPassword handles POST /accounts/password-reset.
func (h *CredentialsHandler) ResetPassword(c *fiber.Ctx) error {
	var req dto.PasswordResetConfirm
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Token == "" || req.Password == "" {
		return apperrors.NewValidationError("token and password required", nil)
	}

	ok := h.resets.ResetPassword(c.UserContext(), req.Token, req.Password)
	return c.JSON(dto.StatusResponse{Success: ok})
}
