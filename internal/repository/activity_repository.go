package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/training-service/internal/domain"
)

// ActivityRepository stores audit/notification entries. Entries are
// append-only; the read flag is the only mutable column.
type ActivityRepository interface {
	Create(ctx context.Context, entry *domain.RecentActivity) error
	ListByRecipient(ctx context.Context, recipientID string, limit, offset int) ([]domain.RecentActivity, error)
	MarkAllRead(ctx context.Context, recipientID string) error
	CountUnreadToday(ctx context.Context, recipientID string) (int, error)
}

type activityRepository struct {
	pool *pgxpool.Pool
}

// NewActivityRepository builds the repository.
func NewActivityRepository(pool *pgxpool.Pool) ActivityRepository {
	return &activityRepository{pool: pool}
}

func (r *activityRepository) Create(ctx context.Context, entry *domain.RecentActivity) error {
	const query = `
        INSERT INTO recent_activities (recipient_id, company_id, action_type, description, details)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, read, created_at`
	return r.pool.QueryRow(ctx, query,
		entry.RecipientID,
		entry.CompanyID,
		entry.Action,
		entry.Description,
		entry.Details,
	).Scan(&entry.ID, &entry.Read, &entry.CreatedAt)
}

func (r *activityRepository) ListByRecipient(ctx context.Context, recipientID string, limit, offset int) ([]domain.RecentActivity, error) {
	query := `
        SELECT id, recipient_id, company_id, action_type, description, details, read, created_at
        FROM recent_activities
        WHERE recipient_id=$1
        ORDER BY created_at DESC`
	args := []any{recipientID}
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

	var result []domain.RecentActivity
	for rows.Next() {
		var entry domain.RecentActivity
		if err := rows.Scan(
			&entry.ID,
			&entry.RecipientID,
			&entry.CompanyID,
			&entry.Action,
			&entry.Description,
			&entry.Details,
			&entry.Read,
			&entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}

func (r *activityRepository) MarkAllRead(ctx context.Context, recipientID string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE recent_activities SET read=TRUE WHERE recipient_id=$1 AND read=FALSE`, recipientID)
	return err
}

func (r *activityRepository) CountUnreadToday(ctx context.Context, recipientID string) (int, error) {
	const query = `
        SELECT COUNT(*) FROM recent_activities
        WHERE recipient_id=$1 AND read=FALSE AND created_at::date = CURRENT_DATE`
	var count int
	if err := r.pool.QueryRow(ctx, query, recipientID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
