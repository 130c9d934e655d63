package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/training-service/internal/auth"
	"github.com/spec-kit/training-service/internal/config"
	"github.com/spec-kit/training-service/internal/domain"
	"github.com/spec-kit/training-service/internal/events"
	"github.com/spec-kit/training-service/internal/repository"
	"github.com/spec-kit/training-service/pkg/util/errorutil"
)

// AuthService coordinates login, logout and password flows.
type AuthService struct {
	accounts   repository.AccountRepository
	tokenMgr   *auth.TokenManager
	denylist   *auth.Denylist
	dispatcher events.Dispatcher
	bcryptCost int
}

// AuthDependencies bundles requirements for the auth service.
type AuthDependencies struct {
	AccountRepo repository.AccountRepository
	Denylist    *auth.Denylist
	Dispatcher  events.Dispatcher
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		accounts:   deps.AccountRepo,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		denylist:   deps.Denylist,
		dispatcher: deps.Dispatcher,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Login authenticates by username and password.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.Account, string, time.Time, error) {
	account, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, errorutil.NewUnauthorized("invalid username or password")
		}
		return nil, "", time.Time{}, err
	}
	if err := auth.ComparePassword(account.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, errorutil.NewUnauthorized("invalid username or password")
	}

	token, exp, err := s.tokenMgr.GenerateToken(account.ID, account.IsSuperAdmin)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	s.publish(ctx, account, events.EventUserLoggedIn, domain.ActionLogin, "Logged in successfully.")
	return account, token, exp, nil
}

// Logout revokes the presented token until its natural expiry.
func (s *AuthService) Logout(ctx context.Context, principal *auth.Principal) error {
	if principal == nil || principal.Claims == nil {
		return nil
	}
	exp := time.Now().Add(s.tokenMgr.TTL())
	if principal.Claims.ExpiresAt != nil {
		exp = principal.Claims.ExpiresAt.Time
	}
	if err := s.denylist.Revoke(ctx, principal.Claims.ID, exp); err != nil {
		return err
	}
	s.publish(ctx, principal.Account, events.EventUserLoggedOut, domain.ActionLogout, "Logged out.")
	return nil
}

// ChangePassword verifies the current password before storing a new hash.
func (s *AuthService) ChangePassword(ctx context.Context, accountID, currentPassword, newPassword string) error {
	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return err
	}
	if err := auth.ComparePassword(account.PasswordHash, currentPassword); err != nil {
		return errorutil.NewValidationError("current password is incorrect", nil)
	}
	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	account.PasswordHash = hash
	return s.accounts.Update(ctx, account)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) publish(ctx context.Context, account *domain.Account, eventType events.EventType, action domain.ActivityAction, description string) {
	if s.dispatcher == nil || account == nil {
		return
	}
	var company *string
	if profile, err := s.accounts.GetProfile(ctx, account.ID); err == nil && profile != nil {
		company = profile.CompanyID
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:           uuid.NewString(),
		Type:         eventType,
		Actor:        account,
		ActorCompany: company,
		CompanyID:    company,
		Action:       action,
		Description:  description,
		Timestamp:    time.Now(),
	})
}
