package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/training-service/internal/access"
	"github.com/spec-kit/training-service/internal/auth"
	"github.com/spec-kit/training-service/pkg/util/errorutil"
)

const defaultPageSize = 20

// principal returns the authenticated caller or an unauthorized error.
// Routes behind the auth middleware always have one.
func principal(c *fiber.Ctx) (*auth.Principal, error) {
	p, ok := auth.PrincipalFromContext(c)
	if !ok {
		return nil, errorutil.NewUnauthorized("authentication required")
	}
	return p, nil
}

// authorize runs the central policy check.
func authorize(p *auth.Principal, action access.Action, target access.Target) error {
	if !access.Can(action, p.Actor(), target) {
		return errorutil.NewForbidden("not allowed")
	}
	return nil
}

// companyScope resolves which company a listing covers. Super admins may
// pass ?company_id= to narrow, or omit it for a global view; members are
// always pinned to their own company.
func companyScope(c *fiber.Ctx, p *auth.Principal) *string {
	if p.Account != nil && p.Account.IsSuperAdmin {
		if id := c.Query("company_id"); id != "" {
			return &id
		}
		return nil
	}
	return p.CompanyID()
}

// requireMemberCompany resolves a write-target company: explicit value
// for super admins, the caller's own company otherwise.
func requireMemberCompany(p *auth.Principal, explicit string) (string, error) {
	if p.Account != nil && p.Account.IsSuperAdmin {
		if explicit == "" {
			return "", errorutil.NewValidationError("company_id is required", nil)
		}
		return explicit, nil
	}
	if own := p.CompanyID(); own != nil {
		return *own, nil
	}
	return "", errorutil.NewForbidden("no company assignment")
}

// pagination reads limit/offset query values with sane defaults.
func pagination(c *fiber.Ctx) (limit, offset int) {
	limit = defaultPageSize
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}
	if raw := c.Query("offset"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			offset = parsed
		}
	}
	return limit, offset
}
