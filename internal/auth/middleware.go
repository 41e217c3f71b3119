package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/hubex/account-service/internal/domain"
	"github.com/hubex/account-service/internal/repository"
	apperrors "github.com/hubex/account-service/pkg/util"
)

const principalKey = "auth_principal"

// Middleware validates bearer session tokens and loads the calling account.
type Middleware struct {
	codec    *TokenCodec
	accounts repository.AccountRepository
}

// NewMiddleware constructs the middleware.
func NewMiddleware(codec *TokenCodec, accounts repository.AccountRepository) *Middleware {
	return &Middleware{codec: codec, accounts: accounts}
}

// Handle enforces authentication for protected routes.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	subjectID, err := m.codec.ValidateSession(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	account, err := m.accounts.GetByPublicID(c.UserContext(), subjectID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewUnauthorized("account not found")
		}
		return apperrors.MapError(err)
	}

	c.Locals(principalKey, account)
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated account, if any.
func PrincipalFromContext(c *fiber.Ctx) (*domain.Account, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	account, ok := val.(*domain.Account)
	return account, ok
}
