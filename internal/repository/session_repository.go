package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/training-service/internal/domain"
)

// SessionFilter narrows session listings.
type SessionFilter struct {
	CompanyID     *string
	ConductedBy   *string
	Statuses      []domain.SessionStatus
	ExcludeStatus []domain.SessionStatus
	SearchTerm    *string
	ScheduledFrom *time.Time
	SortByDate    bool
	SortDesc      bool
	Limit         int
	Offset        int
}

// SessionRepository manages training session persistence.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.SessionTopic) error
	Update(ctx context.Context, session *domain.SessionTopic) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.SessionTopic, error)
	GetByTopicAndConductor(ctx context.Context, topic, conductedBy string) (*domain.SessionTopic, error)
	ListWithFilter(ctx context.Context, filter SessionFilter) ([]domain.SessionTopic, error)
	Count(ctx context.Context, filter SessionFilter) (int, error)
}

type sessionRepository struct {
	pool *pgxpool.Pool
}

// NewSessionRepository builds the repository.
func NewSessionRepository(pool *pgxpool.Pool) SessionRepository {
	return &sessionRepository{pool: pool}
}

const sessionColumns = `id, topic, conducted_by, company_id, scheduled_at, status, place, cancelled_reason, created_at, updated_at`

func scanSession(row pgx.Row, s *domain.SessionTopic) error {
	return row.Scan(
		&s.ID,
		&s.Topic,
		&s.ConductedBy,
		&s.CompanyID,
		&s.ScheduledAt,
		&s.Status,
		&s.Place,
		&s.CancelledReason,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
}

func (r *sessionRepository) Create(ctx context.Context, session *domain.SessionTopic) error {
	const query = `
        INSERT INTO session_topics (topic, conducted_by, company_id, scheduled_at, status, place, cancelled_reason)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		session.Topic,
		session.ConductedBy,
		session.CompanyID,
		session.ScheduledAt,
		session.Status,
		session.Place,
		session.CancelledReason,
	).Scan(&session.ID, &session.CreatedAt, &session.UpdatedAt)
}

func (r *sessionRepository) Update(ctx context.Context, session *domain.SessionTopic) error {
	const query = `
        UPDATE session_topics
        SET topic=$1, conducted_by=$2, scheduled_at=$3, status=$4, place=$5, cancelled_reason=$6, updated_at=NOW()
        WHERE id=$7`
	cmd, err := r.pool.Exec(ctx, query,
		session.Topic,
		session.ConductedBy,
		session.ScheduledAt,
		session.Status,
		session.Place,
		session.CancelledReason,
		session.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *sessionRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM session_topics WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *sessionRepository) GetByID(ctx context.Context, id string) (*domain.SessionTopic, error) {
	var session domain.SessionTopic
	if err := scanSession(r.pool.QueryRow(ctx,
		`SELECT `+sessionColumns+` FROM session_topics WHERE id=$1`, id), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) GetByTopicAndConductor(ctx context.Context, topic, conductedBy string) (*domain.SessionTopic, error) {
	var session domain.SessionTopic
	if err := scanSession(r.pool.QueryRow(ctx,
		`SELECT `+sessionColumns+` FROM session_topics WHERE topic=$1 AND conducted_by=$2`,
		topic, conductedBy), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) ListWithFilter(ctx context.Context, filter SessionFilter) ([]domain.SessionTopic, error) {
	query := `SELECT ` + prefixColumns("s", sessionColumns) + ` FROM session_topics s`
	where, args := buildSessionWhere(filter)
	query += where
	if filter.SortByDate {
		if filter.SortDesc {
			query += ` ORDER BY s.scheduled_at DESC`
		} else {
			query += ` ORDER BY s.scheduled_at ASC`
		}
	} else {
		query += ` ORDER BY s.created_at DESC`
	}
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

	var result []domain.SessionTopic
	for rows.Next() {
		var session domain.SessionTopic
		if err := scanSession(rows, &session); err != nil {
			return nil, err
		}
		result = append(result, session)
	}
	return result, rows.Err()
}

func (r *sessionRepository) Count(ctx context.Context, filter SessionFilter) (int, error) {
	query := `SELECT COUNT(*) FROM session_topics s`
	where, args := buildSessionWhere(filter)
	query += where
	var count int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func buildSessionWhere(filter SessionFilter) (string, []any) {
	where := ` WHERE 1=1`
	args := []any{}
	if filter.CompanyID != nil {
		args = append(args, *filter.CompanyID)
		where += ` AND s.company_id=$` + itoa(len(args))
	}
	if filter.ConductedBy != nil {
		args = append(args, *filter.ConductedBy)
		where += ` AND s.conducted_by=$` + itoa(len(args))
	}
	if len(filter.Statuses) > 0 {
		args = append(args, statusStrings(filter.Statuses))
		where += ` AND s.status = ANY($` + itoa(len(args)) + `)`
	}
	if len(filter.ExcludeStatus) > 0 {
		args = append(args, statusStrings(filter.ExcludeStatus))
		where += ` AND NOT (s.status = ANY($` + itoa(len(args)) + `))`
	}
	if filter.ScheduledFrom != nil {
		args = append(args, *filter.ScheduledFrom)
		where += ` AND s.scheduled_at > $` + itoa(len(args))
	}
	if filter.SearchTerm != nil && *filter.SearchTerm != "" {
		args = append(args, "%"+*filter.SearchTerm+"%")
		n := itoa(len(args))
		where += ` AND (s.topic ILIKE $` + n +
			` OR s.status ILIKE $` + n +
			` OR s.place ILIKE $` + n +
			` OR s.cancelled_reason ILIKE $` + n +
			` OR EXISTS (
                SELECT 1 FROM accounts a WHERE a.id = s.conducted_by
                AND (a.first_name ILIKE $` + n + ` OR a.last_name ILIKE $` + n + `)))`
	}
	return where, args
}

func statusStrings(statuses []domain.SessionStatus) []string {
	out := make([]string, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, string(s))
	}
	return out
}

func prefixColumns(alias, columns string) string {
	out := ""
	start := 0
	for i := 0; i <= len(columns); i++ {
		if i == len(columns) || columns[i] == ',' {
			col := columns[start:i]
			for len(col) > 0 && col[0] == ' ' {
				col = col[1:]
			}
			if out != "" {
				out += ", "
			}
			out += alias + "." + col
			start = i + 1
		}
	}
	return out
}
