package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/training-service/internal/activity"
	apihttp "github.com/spec-kit/training-service/internal/api/http"
	"github.com/spec-kit/training-service/internal/api/http/handlers"
	"github.com/spec-kit/training-service/internal/auth"
	"github.com/spec-kit/training-service/internal/config"
	"github.com/spec-kit/training-service/internal/domain"
	"github.com/spec-kit/training-service/internal/observability"
	"github.com/spec-kit/training-service/internal/repository"
	"github.com/spec-kit/training-service/internal/service"
)

const (
	companyAlpha = "11111111-1111-1111-1111-111111111111"
	companyBeta  = "22222222-2222-2222-2222-222222222222"
)

type stubAccountRepo struct {
	accounts map[string]domain.Account
	profiles map[string]domain.UserProfile
	upserted []domain.UserProfile
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{
		accounts: map[string]domain.Account{},
		profiles: map[string]domain.UserProfile{},
	}
}

func (r *stubAccountRepo) add(account domain.Account, profile *domain.UserProfile) {
	r.accounts[account.ID] = account
	if profile != nil {
		r.profiles[account.ID] = *profile
	}
}

func (r *stubAccountRepo) Create(_ context.Context, account *domain.Account) error {
	r.accounts[account.ID] = *account
	return nil
}

func (r *stubAccountRepo) Update(_ context.Context, account *domain.Account) error {
	r.accounts[account.ID] = *account
	return nil
}

func (r *stubAccountRepo) Delete(_ context.Context, id string) error {
	delete(r.accounts, id)
	return nil
}

func (r *stubAccountRepo) GetByID(_ context.Context, id string) (*domain.Account, error) {
	account, ok := r.accounts[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &account, nil
}

func (r *stubAccountRepo) GetByUsername(_ context.Context, username string) (*domain.Account, error) {
	for _, account := range r.accounts {
		if account.Username == username {
			found := account
			return &found, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *stubAccountRepo) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	for _, account := range r.accounts {
		if account.Email == email {
			found := account
			return &found, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *stubAccountRepo) FindByFullName(_ context.Context, _, _ string) ([]domain.Account, error) {
	return nil, nil
}

func (r *stubAccountRepo) List(_ context.Context, _ repository.AccountFilter) ([]domain.Account, error) {
	return nil, nil
}

func (r *stubAccountRepo) Count(_ context.Context, _ repository.AccountFilter) (int, error) {
	return 0, nil
}

func (r *stubAccountRepo) ListSuperAdmins(_ context.Context) ([]repository.StaffRecord, error) {
	return nil, nil
}

func (r *stubAccountRepo) GetProfile(_ context.Context, accountID string) (*domain.UserProfile, error) {
	profile, ok := r.profiles[accountID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &profile, nil
}

func (r *stubAccountRepo) UpsertProfile(_ context.Context, profile *domain.UserProfile) error {
	r.profiles[profile.AccountID] = *profile
	r.upserted = append(r.upserted, *profile)
	return nil
}

type stubActivityRepo struct{}

func (stubActivityRepo) Create(_ context.Context, _ *domain.RecentActivity) error { return nil }

func (stubActivityRepo) ListByRecipient(_ context.Context, _ string, _, _ int) ([]domain.RecentActivity, error) {
	return nil, nil
}

func (stubActivityRepo) MarkAllRead(_ context.Context, _ string) error { return nil }

func (stubActivityRepo) CountUnreadToday(_ context.Context, _ string) (int, error) { return 0, nil }

func newUsersApp(repo *stubAccountRepo, p *auth.Principal) *fiber.App {
	logger := activity.NewLogger(repo, stubActivityRepo{}, activity.NewUnreadCache(nil), zap.NewNop())
	users := service.NewUserService(config.Config{}, service.UserDependencies{
		AccountRepo: repo,
		Activities:  logger,
	})
	h := handlers.NewUsersHandler(users)

	app := fiber.New()
	apihttp.RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 0)
	app.Use(func(c *fiber.Ctx) error {
		auth.StorePrincipal(c, p)
		return c.Next()
	})
	app.Put("/users/:id", h.Update)
	return app
}

func putJSON(t *testing.T, app *fiber.App, path string, payload any) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPut, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func companyAdmin(id, companyID string) *auth.Principal {
	role := domain.RoleAdmin
	return &auth.Principal{
		Account: &domain.Account{ID: id, Username: "admin"},
		Profile: &domain.UserProfile{AccountID: id, CompanyID: &companyID, Role: &role},
	}
}

func TestUpdateUserDeniedAcrossCompanies(t *testing.T) {
	repo := newStubAccountRepo()
	victimCompany := companyBeta
	repo.add(
		domain.Account{ID: "33333333-3333-3333-3333-333333333333", Username: "victim", Email: "victim@beta.test"},
		&domain.UserProfile{AccountID: "33333333-3333-3333-3333-333333333333", CompanyID: &victimCompany},
	)
	app := newUsersApp(repo, companyAdmin("aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa", companyAlpha))

	// The body names the attacker's own company; authorization must still
	// run against the victim's stored company.
	alpha := companyAlpha
	resp := putJSON(t, app, "/users/33333333-3333-3333-3333-333333333333", map[string]any{
		"username":   "victim",
		"email":      "victim@beta.test",
		"company_id": alpha,
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	profile := repo.profiles["33333333-3333-3333-3333-333333333333"]
	require.NotNil(t, profile.CompanyID)
	assert.Equal(t, companyBeta, *profile.CompanyID, "victim must stay in their company")
	assert.Empty(t, repo.upserted)
}

func TestUpdateUserSameCompanySucceeds(t *testing.T) {
	repo := newStubAccountRepo()
	member := companyAlpha
	repo.add(
		domain.Account{ID: "44444444-4444-4444-4444-444444444444", Username: "pat", Email: "pat@alpha.test"},
		&domain.UserProfile{AccountID: "44444444-4444-4444-4444-444444444444", CompanyID: &member},
	)
	app := newUsersApp(repo, companyAdmin("aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa", companyAlpha))

	resp := putJSON(t, app, "/users/44444444-4444-4444-4444-444444444444", map[string]any{
		"username":   "pat",
		"email":      "pat.renamed@alpha.test",
		"company_id": companyAlpha,
		"role":       "EMPLOYEE",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "pat.renamed@alpha.test", repo.accounts["44444444-4444-4444-4444-444444444444"].Email)
}
