package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/training-service/internal/domain"
)

// InviteRepository manages admin invitation persistence.
type InviteRepository interface {
	Create(ctx context.Context, invite *domain.AdminInvite) error
	GetByToken(ctx context.Context, token string) (*domain.AdminInvite, error)
	MarkAccepted(ctx context.Context, id string) error
}

type inviteRepository struct {
	pool *pgxpool.Pool
}

// NewInviteRepository constructs the repository.
func NewInviteRepository(pool *pgxpool.Pool) InviteRepository {
	return &inviteRepository{pool: pool}
}

func (r *inviteRepository) Create(ctx context.Context, invite *domain.AdminInvite) error {
	const query = `
        INSERT INTO admin_invites (email, company_id, token, invited_by, expires_at)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		invite.Email,
		invite.CompanyID,
		invite.Token,
		invite.InvitedBy,
		invite.ExpiresAt,
	).Scan(&invite.ID, &invite.CreatedAt)
}

func (r *inviteRepository) GetByToken(ctx context.Context, token string) (*domain.AdminInvite, error) {
	const query = `
        SELECT id, email, company_id, token, invited_by, expires_at, accepted_at, created_at
        FROM admin_invites WHERE token=$1`
	var invite domain.AdminInvite
	if err := r.pool.QueryRow(ctx, query, token).Scan(
		&invite.ID,
		&invite.Email,
		&invite.CompanyID,
		&invite.Token,
		&invite.InvitedBy,
		&invite.ExpiresAt,
		&invite.AcceptedAt,
		&invite.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &invite, nil
}

func (r *inviteRepository) MarkAccepted(ctx context.Context, id string) error {
	const query = `UPDATE admin_invites SET accepted_at=NOW() WHERE id=$1`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}
