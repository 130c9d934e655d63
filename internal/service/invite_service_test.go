package service

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/training-service/internal/activity"
	"github.com/spec-kit/training-service/internal/config"
	"github.com/spec-kit/training-service/internal/domain"
	"github.com/spec-kit/training-service/internal/mailer"
)

type fakeInviteRepo struct {
	invites map[string]domain.AdminInvite
	nextID  int
}

func newFakeInviteRepo() *fakeInviteRepo {
	return &fakeInviteRepo{invites: map[string]domain.AdminInvite{}}
}

func (r *fakeInviteRepo) Create(_ context.Context, invite *domain.AdminInvite) error {
	r.nextID++
	invite.ID = "inv-" + strconv.Itoa(r.nextID)
	r.invites[invite.ID] = *invite
	return nil
}

func (r *fakeInviteRepo) GetByToken(_ context.Context, token string) (*domain.AdminInvite, error) {
	for _, invite := range r.invites {
		if invite.Token == token {
			inv := invite
			return &inv, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeInviteRepo) MarkAccepted(_ context.Context, id string) error {
	invite, ok := r.invites[id]
	if !ok {
		return pgx.ErrNoRows
	}
	now := time.Now()
	invite.AcceptedAt = &now
	r.invites[id] = invite
	return nil
}

type fakeCompanyRepo struct {
	companies map[string]domain.Company
}

func (r *fakeCompanyRepo) Create(_ context.Context, company *domain.Company) error {
	r.companies[company.ID] = *company
	return nil
}

func (r *fakeCompanyRepo) Update(_ context.Context, company *domain.Company) error {
	r.companies[company.ID] = *company
	return nil
}

func (r *fakeCompanyRepo) Delete(_ context.Context, id string) error {
	delete(r.companies, id)
	return nil
}

func (r *fakeCompanyRepo) GetByID(_ context.Context, id string) (*domain.Company, error) {
	company, ok := r.companies[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &company, nil
}

func (r *fakeCompanyRepo) List(_ context.Context) ([]domain.Company, error) {
	var out []domain.Company
	for _, company := range r.companies {
		out = append(out, company)
	}
	return out, nil
}

type fakeMailer struct {
	sent []mailer.Message
}

func (m *fakeMailer) Send(_ context.Context, msg mailer.Message) error {
	m.sent = append(m.sent, msg)
	return nil
}

func inviteFixture(t *testing.T) (*InviteService, *fakeAccountRepo, *fakeInviteRepo, *fakeMailer) {
	t.Helper()
	accounts := newFakeAccountRepo()
	invites := newFakeInviteRepo()
	companies := &fakeCompanyRepo{companies: map[string]domain.Company{
		"c1": {ID: "c1", Name: "Acme"},
	}}
	mail := &fakeMailer{}
	logger := activity.NewLogger(accounts, &fakeActivityRepo{}, activity.NewUnreadCache(nil), zap.NewNop())

	cfg := config.Config{}
	cfg.Auth.InviteTTLHours = 72
	cfg.Auth.BcryptCost = 4
	cfg.App.BaseURL = "http://localhost:8080"
	svc := NewInviteService(cfg, InviteDependencies{
		InviteRepo:  invites,
		AccountRepo: accounts,
		CompanyRepo: companies,
		Mailer:      mail,
		Activities:  logger,
	})
	return svc, accounts, invites, mail
}

func TestInviteAndAccept(t *testing.T) {
	svc, accounts, _, mail := inviteFixture(t)
	admin := accounts.add(domain.Account{Username: "root", IsSuperAdmin: true}, nil)
	actor := testPrincipal(admin, nil)

	invite, err := svc.Invite(context.Background(), actor, "New.Admin@Example.com", "c1")
	require.NoError(t, err)
	assert.Equal(t, "new.admin@example.com", invite.Email)
	assert.NotEmpty(t, invite.Token)
	require.Len(t, mail.sent, 1)
	assert.Equal(t, "new.admin@example.com", mail.sent[0].To)
	assert.Contains(t, mail.sent[0].Body, invite.Token)

	account, err := svc.Accept(context.Background(), AcceptInviteInput{
		Token:     invite.Token,
		Username:  "newadmin",
		FirstName: "New",
		LastName:  "Admin",
		Password:  "strong-password",
	})
	require.NoError(t, err)
	assert.Equal(t, "new.admin@example.com", account.Email)

	profile, err := accounts.GetProfile(context.Background(), account.ID)
	require.NoError(t, err)
	require.NotNil(t, profile.Role)
	assert.Equal(t, domain.RoleAdmin, *profile.Role)
	assert.Equal(t, "c1", *profile.CompanyID)
}

func TestInviteExistingEmailRejected(t *testing.T) {
	svc, accounts, _, mail := inviteFixture(t)
	admin := accounts.add(domain.Account{Username: "root", IsSuperAdmin: true}, nil)
	accounts.add(domain.Account{Username: "existing", Email: "taken@example.com"}, nil)

	_, err := svc.Invite(context.Background(), testPrincipal(admin, nil), "taken@example.com", "c1")
	require.Error(t, err)
	assert.Empty(t, mail.sent)
}

func TestAcceptRejectsReusedAndExpiredTokens(t *testing.T) {
	svc, accounts, invites, _ := inviteFixture(t)
	admin := accounts.add(domain.Account{Username: "root", IsSuperAdmin: true}, nil)
	actor := testPrincipal(admin, nil)

	invite, err := svc.Invite(context.Background(), actor, "one@example.com", "c1")
	require.NoError(t, err)
	_, err = svc.Accept(context.Background(), AcceptInviteInput{
		Token: invite.Token, Username: "one", Password: "strong-password",
	})
	require.NoError(t, err)

	// Second redemption of the same token fails.
	_, err = svc.Accept(context.Background(), AcceptInviteInput{
		Token: invite.Token, Username: "two", Password: "strong-password",
	})
	assert.Error(t, err)

	// Expired tokens fail regardless of state.
	expired, err := svc.Invite(context.Background(), actor, "late@example.com", "c1")
	require.NoError(t, err)
	stored := invites.invites[expired.ID]
	stored.ExpiresAt = time.Now().Add(-time.Hour)
	invites.invites[expired.ID] = stored

	_, err = svc.Accept(context.Background(), AcceptInviteInput{
		Token: expired.Token, Username: "late", Password: "strong-password",
	})
	assert.Error(t, err)

	// Unknown tokens fail.
	_, err = svc.Accept(context.Background(), AcceptInviteInput{
		Token: "no-such-token", Username: "x", Password: "strong-password",
	})
	assert.Error(t, err)
}
