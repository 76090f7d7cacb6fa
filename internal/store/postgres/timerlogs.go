package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"fittrack/internal/models"
)

type TimerLogStore struct {
	db *sqlx.DB
}

func NewTimerLogStore(db *sqlx.DB) *TimerLogStore { return &TimerLogStore{db: db} }

func (s *TimerLogStore) Create(ctx context.Context, l *models.TimerLog) error {
	err := s.db.QueryRowxContext(ctx,
		`INSERT INTO timer_logs (user_id, exercise, mode, duration, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		l.UserID, l.Exercise, l.Mode, l.Duration, l.CreatedAt,
	).Scan(&l.ID)
	return translate(err, "create timer log")
}

func (s *TimerLogStore) ListByOwner(ctx context.Context, ownerID int64) ([]models.TimerLog, error) {
	out := []models.TimerLog{}
	if err := s.db.SelectContext(ctx, &out,
		`SELECT id, user_id, exercise, mode, duration, created_at FROM timer_logs
		 WHERE user_id=$1 ORDER BY created_at DESC, id DESC`, ownerID); err != nil {
		return nil, translate(err, "list timer logs")
	}
	return out, nil
}
