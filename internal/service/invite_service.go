package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/training-service/internal/activity"
	"github.com/spec-kit/training-service/internal/auth"
	"github.com/spec-kit/training-service/internal/config"
	"github.com/spec-kit/training-service/internal/domain"
	"github.com/spec-kit/training-service/internal/mailer"
	"github.com/spec-kit/training-service/internal/repository"
	"github.com/spec-kit/training-service/pkg/util/errorutil"
)

// InviteService issues tokened company-admin invitations and redeems
// them into ADMIN accounts.
type InviteService struct {
	invites    repository.InviteRepository
	accounts   repository.AccountRepository
	companies  repository.CompanyRepository
	mail       mailer.Mailer
	activities *activity.Logger
	ttl        time.Duration
	bcryptCost int
	baseURL    string
}

// InviteDependencies bundles requirements for the invite service.
type InviteDependencies struct {
	InviteRepo  repository.InviteRepository
	AccountRepo repository.AccountRepository
	CompanyRepo repository.CompanyRepository
	Mailer      mailer.Mailer
	Activities  *activity.Logger
}

// AcceptInviteInput carries the fields a new admin submits with a token.
type AcceptInviteInput struct {
	Token     string
	Username  string
	FirstName string
	LastName  string
	Password  string
}

// NewInviteService builds the service.
func NewInviteService(cfg config.Config, deps InviteDependencies) *InviteService {
	ttlHours := cfg.Auth.InviteTTLHours
	if ttlHours <= 0 {
		ttlHours = 72
	}
	return &InviteService{
		invites:    deps.InviteRepo,
		accounts:   deps.AccountRepo,
		companies:  deps.CompanyRepo,
		mail:       deps.Mailer,
		activities: deps.Activities,
		ttl:        time.Duration(ttlHours) * time.Hour,
		bcryptCost: cfg.Auth.BcryptCost,
		baseURL:    cfg.App.BaseURL,
	}
}

// Invite creates a pending invitation and mails the token link.
func (s *InviteService) Invite(ctx context.Context, actor *auth.Principal, email, companyID string) (*domain.AdminInvite, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, errorutil.NewValidationError("email is required", nil)
	}
	if _, err := s.accounts.GetByEmail(ctx, email); err == nil {
		return nil, errorutil.NewConflict("an account with this email already exists", map[string]any{"email": email})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	company, err := s.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	token, err := newInviteToken()
	if err != nil {
		return nil, err
	}
	invite := &domain.AdminInvite{
		Email:     email,
		CompanyID: companyID,
		Token:     token,
		InvitedBy: actor.Account.ID,
		ExpiresAt: time.Now().Add(s.ttl),
	}
	if err := s.invites.Create(ctx, invite); err != nil {
		return nil, err
	}

	body := fmt.Sprintf(
		"You have been invited to administer %s.\n\nAccept the invitation here:\n%s/accept-invite?token=%s\n\nThe link expires on %s.",
		company.Name, s.baseURL, token, invite.ExpiresAt.Format("2006-01-02 15:04"))
	if err := s.mail.Send(ctx, mailer.Message{
		To:      email,
		Subject: "Admin invitation for " + company.Name,
		Body:    body,
	}); err != nil {
		return nil, err
	}

	s.activities.Log(ctx, activity.Entry{
		Actor:        actor.Account,
		ActorCompany: actor.CompanyID(),
		Action:       domain.ActionInvite,
		Description:  "Invited " + email + " as an admin for '" + company.Name + "'.",
		CompanyID:    &companyID,
	})
	return invite, nil
}

// Accept redeems a token, creating an ADMIN account in the invited
// company. Expired or already-used tokens are rejected.
func (s *InviteService) Accept(ctx context.Context, input AcceptInviteInput) (*domain.Account, error) {
	invite, err := s.invites.GetByToken(ctx, input.Token)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorutil.NewNotFound("invitation", nil)
		}
		return nil, err
	}
	if invite.AcceptedAt != nil {
		return nil, errorutil.NewConflict("invitation has already been used", nil)
	}
	if time.Now().After(invite.ExpiresAt) {
		return nil, errorutil.NewValidationError("invitation has expired", nil)
	}
	if _, err := s.accounts.GetByUsername(ctx, input.Username); err == nil {
		return nil, errorutil.NewConflict("username already taken", map[string]any{"username": input.Username})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}
	account := &domain.Account{
		Username:     strings.TrimSpace(input.Username),
		Email:        invite.Email,
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		PasswordHash: hash,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, err
	}
	role := domain.RoleAdmin
	profile := &domain.UserProfile{
		AccountID: account.ID,
		CompanyID: &invite.CompanyID,
		Role:      &role,
	}
	if err := s.accounts.UpsertProfile(ctx, profile); err != nil {
		return nil, err
	}
	if err := s.invites.MarkAccepted(ctx, invite.ID); err != nil {
		return nil, err
	}

	s.activities.Log(ctx, activity.Entry{
		Actor:        account,
		ActorCompany: &invite.CompanyID,
		Action:       domain.ActionCreate,
		Description:  "Accepted an admin invitation.",
		CompanyID:    &invite.CompanyID,
	})
	return account, nil
}

func newInviteToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
