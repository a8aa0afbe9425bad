package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/inventory-service/internal/domain"
	"github.com/spec-kit/inventory-service/internal/repository"
	apperrors "github.com/spec-kit/inventory-service/pkg/util"
)

// TokenHeader is the request header slot clients put the access token in.
const TokenHeader = "x-access-token"

const accountKey = "auth_account"

// Middleware is the identity guard: it validates the bearer token on every
// protected route and resolves the acting account. It is the single
// chokepoint in front of the business handlers; nothing passes it without a
// resolved account attached.
type Middleware struct {
	tokens   *TokenManager
	accounts repository.AccountRepository
}

// NewMiddleware constructs the identity guard.
func NewMiddleware(tokens *TokenManager, accounts repository.AccountRepository) *Middleware {
	return &Middleware{tokens: tokens, accounts: accounts}
}

// Handle enforces authentication for protected routes.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	tokenStr := c.Get(TokenHeader)
	if tokenStr == "" {
		return apperrors.NewUnauthorized("access token not found")
	}

	claims, err := m.tokens.Parse(tokenStr)
	if err != nil {
		if errors.Is(err, ErrTokenExpired) {
			return apperrors.NewUnauthorized("token expired, log in again")
		}
		return apperrors.NewUnauthorized("invalid token")
	}

	account, err := m.accounts.GetByID(c.Context(), claims.AccountID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Account deleted after issuance reads the same as a bad
			// token; callers cannot probe which account ids exist.
			return apperrors.NewUnauthorized("invalid token")
		}
		// A store failure is not the client's fault; do not tell them
		// their token is bad.
		return apperrors.MapError(err)
	}

	c.Locals(accountKey, account)
	return c.Next()
}

// AccountFromContext retrieves the authenticated account resolved by Handle.
func AccountFromContext(c *fiber.Ctx) (*domain.Account, bool) {
	val := c.Locals(accountKey)
	if val == nil {
		return nil, false
	}
	account, ok := val.(*domain.Account)
	return account, ok
}
