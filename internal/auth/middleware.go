package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/training-service/internal/access"
	"github.com/spec-kit/training-service/internal/domain"
	"github.com/spec-kit/training-service/internal/repository"
	"github.com/spec-kit/training-service/pkg/util/errorutil"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller: the account plus its
// optional company profile and the token claims it presented.
type Principal struct {
	Account *domain.Account
	Profile *domain.UserProfile
	Claims  *Claims
}

// Actor adapts the principal for policy checks.
func (p *Principal) Actor() access.Actor {
	return access.Actor{Account: p.Account, Profile: p.Profile}
}

// CompanyID returns the principal's own company, when it has one.
func (p *Principal) CompanyID() *string {
	if p.Profile == nil {
		return nil
	}
	return p.Profile.CompanyID
}

// Middleware validates bearer tokens and loads principals.
type Middleware struct {
	tokens   *TokenManager
	denylist *Denylist
	accounts repository.AccountRepository
}

// NewMiddleware constructs the middleware.
func NewMiddleware(tokens *TokenManager, denylist *Denylist, accounts repository.AccountRepository) *Middleware {
	return &Middleware{tokens: tokens, denylist: denylist, accounts: accounts}
}

// Handle enforces authentication for protected routes.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return errorutil.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return errorutil.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return errorutil.NewUnauthorized("invalid token")
	}
	if m.denylist.Revoked(c.Context(), claims.ID) {
		return errorutil.NewUnauthorized("token revoked")
	}

	account, err := m.accounts.GetByID(c.Context(), claims.AccountID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return errorutil.NewUnauthorized("account not found")
		}
		return errorutil.MapError(err)
	}

	principal := &Principal{Account: account, Claims: claims}
	profile, err := m.accounts.GetProfile(c.Context(), account.ID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return errorutil.MapError(err)
	}
	principal.Profile = profile

	StorePrincipal(c, principal)
	return c.Next()
}

// StorePrincipal attaches the authenticated entity to the request.
func StorePrincipal(c *fiber.Ctx, principal *Principal) {
	c.Locals(principalKey, principal)
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
