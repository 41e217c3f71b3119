package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/hubex/account-service/internal/api/dto"
	"github.com/hubex/account-service/internal/auth"
	"github.com/hubex/account-service/internal/service"
	apperrors "github.com/hubex/account-service/pkg/util"
)

// AccountsHandler exposes registration, login and account management.
type AccountsHandler struct {
	accounts *service.AccountService
}

// NewAccountsHandler constructs the handler.
func NewAccountsHandler(accounts *service.AccountService) *AccountsHandler {
	return &AccountsHandler{accounts: accounts}
}

// Register handles POST /accounts.
func (h *AccountsHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" || req.Password == "" || req.FirstName == "" || req.LastName == "" {
		return apperrors.NewValidationError("first_name, last_name, email, password required", nil)
	}

	account, err := h.accounts.Register(c.UserContext(), service.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		Roles:     req.Roles,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": dto.NewAccountResponse(account),
	})
}

// Login handles POST /auth/login.
func (h *AccountsHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	account, token, expiresAt, err := h.accounts.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"account": dto.NewAccountResponse(account),
			"auth":    dto.AuthResponse{Token: token, ExpiresAt: expiresAt},
		},
	})
}

// Get handles GET /accounts/:id.
func (h *AccountsHandler) Get(c *fiber.Ctx) error {
	targetID := c.Params("id")
	caller, _ := auth.PrincipalFromContext(c)
	if !auth.CanManageAccount(caller, targetID) {
		return apperrors.NewForbidden("cannot access this account")
	}

	account, err := h.accounts.GetByPublicID(c.UserContext(), targetID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAccountResponse(account)})
}

// Rename handles PUT /accounts/:id.
func (h *AccountsHandler) Rename(c *fiber.Ctx) error {
	targetID := c.Params("id")
	caller, _ := auth.PrincipalFromContext(c)
	if !auth.CanManageAccount(caller, targetID) {
		return apperrors.NewForbidden("cannot modify this account")
	}

	var req dto.RenameRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.FirstName == "" || req.LastName == "" {
		return apperrors.NewValidationError("first_name and last_name required", nil)
	}

	account, err := h.accounts.Rename(c.UserContext(), targetID, req.FirstName, req.LastName)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAccountResponse(account)})
}

// Delete handles DELETE /accounts/:id.
func (h *AccountsHandler) Delete(c *fiber.Ctx) error {
	targetID := c.Params("id")
	caller, _ := auth.PrincipalFromContext(c)
	if !auth.CanDeleteAccount(caller) {
		return apperrors.NewForbidden("delete authority required")
	}

	if err := h.accounts.Delete(c.UserContext(), targetID); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// List handles GET /accounts.
func (h *AccountsHandler) List(c *fiber.Ctx) error {
	caller, _ := auth.PrincipalFromContext(c)
	if !auth.CanListAccounts(caller) {
		return apperrors.NewForbidden("admin role required")
	}

	page, _ := strconv.Atoi(c.Query("page", "0"))
	limit, _ := strconv.Atoi(c.Query("limit", "25"))

	accounts, err := h.accounts.List(c.UserContext(), page, limit)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAccountListResponse(accounts)})
}
