package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/training-service/internal/domain"
)

// AccountFilter narrows account listings.
type AccountFilter struct {
	CompanyID    *string
	DepartmentID *string
	Limit        int
	Offset       int
}

// StaffRecord pairs a super-admin account id with its optional scoping
// company, as needed by the activity fan-out.
type StaffRecord struct {
	AccountID string
	CompanyID *string
}

// AccountRepository defines persistence access for accounts and their
// profiles.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	Update(ctx context.Context, account *domain.Account) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByUsername(ctx context.Context, username string) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	FindByFullName(ctx context.Context, firstName, lastName string) ([]domain.Account, error)
	List(ctx context.Context, filter AccountFilter) ([]domain.Account, error)
	Count(ctx context.Context, filter AccountFilter) (int, error)
	ListSuperAdmins(ctx context.Context) ([]StaffRecord, error)

	GetProfile(ctx context.Context, accountID string) (*domain.UserProfile, error)
	UpsertProfile(ctx context.Context, profile *domain.UserProfile) error
}

type accountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository returns a Postgres-backed implementation.
func NewAccountRepository(pool *pgxpool.Pool) AccountRepository {
	return &accountRepository{pool: pool}
}

const accountColumns = `id, username, email, first_name, last_name, password_hash, is_super_admin, created_at, updated_at`

func scanAccount(row pgx.Row, account *domain.Account) error {
	return row.Scan(
		&account.ID,
		&account.Username,
		&account.Email,
		&account.FirstName,
		&account.LastName,
		&account.PasswordHash,
		&account.IsSuperAdmin,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
}

func (r *accountRepository) Create(ctx context.Context, account *domain.Account) error {
	const query = `
        INSERT INTO accounts (username, email, first_name, last_name, password_hash, is_super_admin)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		account.Username,
		account.Email,
		account.FirstName,
		account.LastName,
		account.PasswordHash,
		account.IsSuperAdmin,
	).Scan(&account.ID, &account.CreatedAt, &account.UpdatedAt)
}

func (r *accountRepository) Update(ctx context.Context, account *domain.Account) error {
	const query = `
        UPDATE accounts
        SET username=$1, email=$2, first_name=$3, last_name=$4, password_hash=$5, is_super_admin=$6, updated_at=NOW()
        WHERE id=$7`
	cmd, err := r.pool.Exec(ctx, query,
		account.Username,
		account.Email,
		account.FirstName,
		account.LastName,
		account.PasswordHash,
		account.IsSuperAdmin,
		account.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *accountRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM accounts WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *accountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	var account domain.Account
	if err := scanAccount(r.pool.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id=$1`, id), &account); err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	var account domain.Account
	if err := scanAccount(r.pool.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE username=$1`, username), &account); err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	var account domain.Account
	if err := scanAccount(r.pool.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE email=$1`, email), &account); err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) FindByFullName(ctx context.Context, firstName, lastName string) ([]domain.Account, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE first_name=$1 AND last_name=$2`,
		firstName, lastName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAccounts(rows)
}

func (r *accountRepository) List(ctx context.Context, filter AccountFilter) ([]domain.Account, error) {
	query := `
        SELECT a.id, a.username, a.email, a.first_name, a.last_name, a.password_hash, a.is_super_admin, a.created_at, a.updated_at
        FROM accounts a
        LEFT JOIN user_profiles p ON p.account_id = a.id
        WHERE 1=1`
	args := []any{}
	if filter.CompanyID != nil {
		args = append(args, *filter.CompanyID)
		query += ` AND p.company_id=$` + itoa(len(args))
	}
	if filter.DepartmentID != nil {
		args = append(args, *filter.DepartmentID)
		query += ` AND p.department_id=$` + itoa(len(args))
	}
	query += ` ORDER BY a.username`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += ` LIMIT $` + itoa(len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += ` OFFSET $` + itoa(len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAccounts(rows)
}

func (r *accountRepository) Count(ctx context.Context, filter AccountFilter) (int, error) {
	query := `
        SELECT COUNT(*)
        FROM accounts a
        LEFT JOIN user_profiles p ON p.account_id = a.id
        WHERE 1=1`
	args := []any{}
	if filter.CompanyID != nil {
		args = append(args, *filter.CompanyID)
		query += ` AND p.company_id=$` + itoa(len(args))
	}
	if filter.DepartmentID != nil {
		args = append(args, *filter.DepartmentID)
		query += ` AND p.department_id=$` + itoa(len(args))
	}
	var count int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *accountRepository) ListSuperAdmins(ctx context.Context) ([]StaffRecord, error) {
	const query = `
        SELECT a.id, p.company_id
        FROM accounts a
        LEFT JOIN user_profiles p ON p.account_id = a.id
        WHERE a.is_super_admin = TRUE`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []StaffRecord
	for rows.Next() {
		var rec StaffRecord
		if err := rows.Scan(&rec.AccountID, &rec.CompanyID); err != nil {
			return nil, err
		}
		result = append(result, rec)
	}
	return result, rows.Err()
}

func (r *accountRepository) GetProfile(ctx context.Context, accountID string) (*domain.UserProfile, error) {
	const query = `
        SELECT account_id, company_id, department_id, role
        FROM user_profiles WHERE account_id=$1`
	var profile domain.UserProfile
	if err := r.pool.QueryRow(ctx, query, accountID).Scan(
		&profile.AccountID,
		&profile.CompanyID,
		&profile.DepartmentID,
		&profile.Role,
	); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *accountRepository) UpsertProfile(ctx context.Context, profile *domain.UserProfile) error {
	const query = `
        INSERT INTO user_profiles (account_id, company_id, department_id, role)
        VALUES ($1,$2,$3,$4)
        ON CONFLICT (account_id)
        DO UPDATE SET company_id=$2, department_id=$3, role=$4`
	_, err := r.pool.Exec(ctx, query,
		profile.AccountID,
		profile.CompanyID,
		profile.DepartmentID,
		profile.Role,
	)
	return err
}

func collectAccounts(rows pgx.Rows) ([]domain.Account, error) {
	var result []domain.Account
	for rows.Next() {
		var account domain.Account
		if err := scanAccount(rows, &account); err != nil {
			return nil, err
		}
		result = append(result, account)
	}
	return result, rows.Err()
}
