package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/training-service/internal/domain"
)

// ExternalTopicRepository manages external learning topic persistence.
type ExternalTopicRepository interface {
	Create(ctx context.Context, topic *domain.ExternalTopic) error
	Update(ctx context.Context, topic *domain.ExternalTopic) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.ExternalTopic, error)
	List(ctx context.Context, companyID *string, limit, offset int) ([]domain.ExternalTopic, error)
}

type externalTopicRepository struct {
	pool *pgxpool.Pool
}

// NewExternalTopicRepository builds the repository.
func NewExternalTopicRepository(pool *pgxpool.Pool) ExternalTopicRepository {
	return &externalTopicRepository{pool: pool}
}

func (r *externalTopicRepository) Create(ctx context.Context, topic *domain.ExternalTopic) error {
	const query = `
        INSERT INTO external_topics (company_id, title, url, is_active)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		topic.CompanyID,
		topic.Title,
		topic.URL,
		topic.IsActive,
	).Scan(&topic.ID, &topic.CreatedAt)
}

func (r *externalTopicRepository) Update(ctx context.Context, topic *domain.ExternalTopic) error {
	const query = `UPDATE external_topics SET title=$1, url=$2, is_active=$3 WHERE id=$4`
	cmd, err := r.pool.Exec(ctx, query, topic.Title, topic.URL, topic.IsActive, topic.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *externalTopicRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM external_topics WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *externalTopicRepository) GetByID(ctx context.Context, id string) (*domain.ExternalTopic, error) {
	const query = `
        SELECT id, company_id, title, url, is_active, created_at
        FROM external_topics WHERE id=$1`
	var topic domain.ExternalTopic
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&topic.ID,
		&topic.CompanyID,
		&topic.Title,
		&topic.URL,
		&topic.IsActive,
		&topic.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &topic, nil
}

func (r *externalTopicRepository) List(ctx context.Context, companyID *string, limit, offset int) ([]domain.ExternalTopic, error) {
	query := `
        SELECT id, company_id, title, url, is_active, created_at
        FROM external_topics`
	args := []any{}
	if companyID != nil {
		args = append(args, *companyID)
		query += ` WHERE company_id=$1`
	}
	query += ` ORDER BY created_at DESC`
	if limit > 0 {
		args = append(args, limit)
		query += ` LIMIT $` + itoa(len(args))
	}
	if offset > 0 {
		args = append(args, offset)
		query += ` OFFSET $` + itoa(len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ExternalTopic
	for rows.Next() {
		var topic domain.ExternalTopic
		if err := rows.Scan(&topic.ID, &topic.CompanyID, &topic.Title, &topic.URL, &topic.IsActive, &topic.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, topic)
	}
	return result, rows.Err()
}
