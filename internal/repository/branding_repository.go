package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/training-service/internal/domain"
)

// BrandingRepository manages the singleton company profile and the setup
// checklist.
type BrandingRepository interface {
	GetProfile(ctx context.Context) (*domain.CompanyProfile, error)
	SaveProfile(ctx context.Context, profile *domain.CompanyProfile) error
	ListChecklist(ctx context.Context) ([]domain.ChecklistItem, error)
	SetChecklistDone(ctx context.Context, id string, done bool) error
}

type brandingRepository struct {
	pool *pgxpool.Pool
}

// NewBrandingRepository builds the repository.
func NewBrandingRepository(pool *pgxpool.Pool) BrandingRepository {
	return &brandingRepository{pool: pool}
}

func (r *brandingRepository) GetProfile(ctx context.Context) (*domain.CompanyProfile, error) {
	const query = `
        SELECT id, display_name, logo_path, support_email, updated_at
        FROM company_profiles ORDER BY updated_at DESC LIMIT 1`
	var profile domain.CompanyProfile
	if err := r.pool.QueryRow(ctx, query).Scan(
		&profile.ID,
		&profile.DisplayName,
		&profile.LogoPath,
		&profile.SupportEmail,
		&profile.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *brandingRepository) SaveProfile(ctx context.Context, profile *domain.CompanyProfile) error {
	if profile.ID == "" {
		const insert = `
            INSERT INTO company_profiles (display_name, logo_path, support_email)
            VALUES ($1,$2,$3)
            RETURNING id, updated_at`
		return r.pool.QueryRow(ctx, insert,
			profile.DisplayName,
			profile.LogoPath,
			profile.SupportEmail,
		).Scan(&profile.ID, &profile.UpdatedAt)
	}
	const update = `
        UPDATE company_profiles
        SET display_name=$1, logo_path=$2, support_email=$3, updated_at=NOW()
        WHERE id=$4
        RETURNING updated_at`
	return r.pool.QueryRow(ctx, update,
		profile.DisplayName,
		profile.LogoPath,
		profile.SupportEmail,
		profile.ID,
	).Scan(&profile.UpdatedAt)
}

func (r *brandingRepository) ListChecklist(ctx context.Context) ([]domain.ChecklistItem, error) {
	const query = `SELECT id, task, done, done_at FROM setup_checklist ORDER BY task`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ChecklistItem
	for rows.Next() {
		var item domain.ChecklistItem
		if err := rows.Scan(&item.ID, &item.Task, &item.Done, &item.DoneAt); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, rows.Err()
}

func (r *brandingRepository) SetChecklistDone(ctx context.Context, id string, done bool) error {
	const query = `
        UPDATE setup_checklist
        SET done=$1, done_at=CASE WHEN $1 THEN NOW() ELSE NULL END
        WHERE id=$2`
	cmd, err := r.pool.Exec(ctx, query, done, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
