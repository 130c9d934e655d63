package service

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/training-service/internal/domain"
	"github.com/spec-kit/training-service/internal/events"
	"github.com/spec-kit/training-service/internal/repository"
)

// fakeAccountRepo is an in-memory repository.AccountRepository.
type fakeAccountRepo struct {
	accounts map[string]domain.Account
	profiles map[string]domain.UserProfile
	nextID   int
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{
		accounts: map[string]domain.Account{},
		profiles: map[string]domain.UserProfile{},
	}
}

func (r *fakeAccountRepo) add(account domain.Account, profile *domain.UserProfile) domain.Account {
	if account.ID == "" {
		r.nextID++
		account.ID = "acc-" + strconv.Itoa(r.nextID)
	}
	r.accounts[account.ID] = account
	if profile != nil {
		profile.AccountID = account.ID
		r.profiles[account.ID] = *profile
	}
	return account
}

func (r *fakeAccountRepo) Create(_ context.Context, account *domain.Account) error {
	*account = r.add(*account, nil)
	return nil
}

func (r *fakeAccountRepo) Update(_ context.Context, account *domain.Account) error {
	if _, ok := r.accounts[account.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.accounts[account.ID] = *account
	return nil
}

func (r *fakeAccountRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.accounts[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.accounts, id)
	delete(r.profiles, id)
	return nil
}

func (r *fakeAccountRepo) GetByID(_ context.Context, id string) (*domain.Account, error) {
	account, ok := r.accounts[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &account, nil
}

func (r *fakeAccountRepo) GetByUsername(_ context.Context, username string) (*domain.Account, error) {
	for _, account := range r.accounts {
		if account.Username == username {
			a := account
			return &a, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeAccountRepo) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	for _, account := range r.accounts {
		if account.Email == email {
			a := account
			return &a, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeAccountRepo) FindByFullName(_ context.Context, firstName, lastName string) ([]domain.Account, error) {
	var out []domain.Account
	for _, account := range r.accounts {
		if account.FirstName == firstName && account.LastName == lastName {
			out = append(out, account)
		}
	}
	return out, nil
}

func (r *fakeAccountRepo) List(_ context.Context, filter repository.AccountFilter) ([]domain.Account, error) {
	var out []domain.Account
	for id, account := range r.accounts {
		if filter.CompanyID != nil {
			profile, ok := r.profiles[id]
			if !ok || profile.CompanyID == nil || *profile.CompanyID != *filter.CompanyID {
				continue
			}
		}
		out = append(out, account)
	}
	return out, nil
}

func (r *fakeAccountRepo) Count(ctx context.Context, filter repository.AccountFilter) (int, error) {
	items, err := r.List(ctx, filter)
	return len(items), err
}

func (r *fakeAccountRepo) ListSuperAdmins(_ context.Context) ([]repository.StaffRecord, error) {
	var out []repository.StaffRecord
	for id, account := range r.accounts {
		if !account.IsSuperAdmin {
			continue
		}
		rec := repository.StaffRecord{AccountID: id}
		if profile, ok := r.profiles[id]; ok {
			rec.CompanyID = profile.CompanyID
		}
		out = append(out, rec)
	}
	return out, nil
}

func (r *fakeAccountRepo) GetProfile(_ context.Context, accountID string) (*domain.UserProfile, error) {
	profile, ok := r.profiles[accountID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &profile, nil
}

func (r *fakeAccountRepo) UpsertProfile(_ context.Context, profile *domain.UserProfile) error {
	r.profiles[profile.AccountID] = *profile
	return nil
}

// fakeSessionRepo is an in-memory repository.SessionRepository.
type fakeSessionRepo struct {
	sessions map[string]domain.SessionTopic
	nextID   int
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[string]domain.SessionTopic{}}
}

func (r *fakeSessionRepo) Create(_ context.Context, session *domain.SessionTopic) error {
	r.nextID++
	session.ID = "sess-" + strconv.Itoa(r.nextID)
	r.sessions[session.ID] = *session
	return nil
}

func (r *fakeSessionRepo) Update(_ context.Context, session *domain.SessionTopic) error {
	if _, ok := r.sessions[session.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.sessions[session.ID] = *session
	return nil
}

func (r *fakeSessionRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.sessions[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.sessions, id)
	return nil
}

func (r *fakeSessionRepo) GetByID(_ context.Context, id string) (*domain.SessionTopic, error) {
	session, ok := r.sessions[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &session, nil
}

func (r *fakeSessionRepo) GetByTopicAndConductor(_ context.Context, topic, conductedBy string) (*domain.SessionTopic, error) {
	for _, session := range r.sessions {
		if session.Topic == topic && session.ConductedBy == conductedBy {
			s := session
			return &s, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeSessionRepo) matches(session domain.SessionTopic, filter repository.SessionFilter) bool {
	if filter.CompanyID != nil && session.CompanyID != *filter.CompanyID {
		return false
	}
	if filter.ConductedBy != nil && session.ConductedBy != *filter.ConductedBy {
		return false
	}
	if len(filter.Statuses) > 0 {
		found := false
		for _, status := range filter.Statuses {
			if session.Status == status {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	for _, status := range filter.ExcludeStatus {
		if session.Status == status {
			return false
		}
	}
	if filter.ScheduledFrom != nil && !session.ScheduledAt.After(*filter.ScheduledFrom) {
		return false
	}
	return true
}

func (r *fakeSessionRepo) ListWithFilter(_ context.Context, filter repository.SessionFilter) ([]domain.SessionTopic, error) {
	var out []domain.SessionTopic
	for _, session := range r.sessions {
		if r.matches(session, filter) {
			out = append(out, session)
		}
	}
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *fakeSessionRepo) Count(ctx context.Context, filter repository.SessionFilter) (int, error) {
	count := 0
	for _, session := range r.sessions {
		if r.matches(session, filter) {
			count++
		}
	}
	return count, nil
}

// fakeDepartmentRepo is an in-memory repository.DepartmentRepository.
type fakeDepartmentRepo struct {
	departments map[string]domain.Department
	nextID      int
}

func newFakeDepartmentRepo() *fakeDepartmentRepo {
	return &fakeDepartmentRepo{departments: map[string]domain.Department{}}
}

func (r *fakeDepartmentRepo) Create(_ context.Context, dept *domain.Department) error {
	for _, existing := range r.departments {
		if existing.CompanyID == dept.CompanyID && existing.Name == dept.Name {
			return &pgconn.PgError{Code: "23505", ConstraintName: "departments_name_company_id_key"}
		}
	}
	r.nextID++
	dept.ID = "dept-" + strconv.Itoa(r.nextID)
	r.departments[dept.ID] = *dept
	return nil
}

func (r *fakeDepartmentRepo) Update(_ context.Context, dept *domain.Department) error {
	if _, ok := r.departments[dept.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.departments[dept.ID] = *dept
	return nil
}

func (r *fakeDepartmentRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.departments[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.departments, id)
	return nil
}

func (r *fakeDepartmentRepo) GetByID(_ context.Context, id string) (*domain.Department, error) {
	dept, ok := r.departments[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &dept, nil
}

func (r *fakeDepartmentRepo) List(_ context.Context, companyID *string) ([]domain.Department, error) {
	var out []domain.Department
	for _, dept := range r.departments {
		if companyID != nil && dept.CompanyID != *companyID {
			continue
		}
		out = append(out, dept)
	}
	return out, nil
}

// fakeActivityRepo is an in-memory repository.ActivityRepository.
type fakeActivityRepo struct {
	entries []domain.RecentActivity
	nextID  int
}

func (r *fakeActivityRepo) Create(_ context.Context, entry *domain.RecentActivity) error {
	r.nextID++
	entry.ID = "act-" + strconv.Itoa(r.nextID)
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *fakeActivityRepo) ListByRecipient(_ context.Context, recipientID string, limit, offset int) ([]domain.RecentActivity, error) {
	var out []domain.RecentActivity
	for _, entry := range r.entries {
		if entry.RecipientID == recipientID {
			out = append(out, entry)
		}
	}
	return out, nil
}

func (r *fakeActivityRepo) MarkAllRead(_ context.Context, recipientID string) error {
	for i := range r.entries {
		if r.entries[i].RecipientID == recipientID {
			r.entries[i].Read = true
		}
	}
	return nil
}

func (r *fakeActivityRepo) CountUnreadToday(_ context.Context, recipientID string) (int, error) {
	count := 0
	for _, entry := range r.entries {
		if entry.RecipientID == recipientID && !entry.Read {
			count++
		}
	}
	return count, nil
}

func (r *fakeActivityRepo) byRecipient(recipientID string) []domain.RecentActivity {
	var out []domain.RecentActivity
	for _, entry := range r.entries {
		if entry.RecipientID == recipientID {
			out = append(out, entry)
		}
	}
	return out
}

// captureDispatcher records published events.
type captureDispatcher struct {
	published []events.Event
}

func (d *captureDispatcher) Publish(_ context.Context, event events.Event) error {
	d.published = append(d.published, event)
	return nil
}

func (d *captureDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *captureDispatcher) SubscribeAll(events.EventHandler) {}
