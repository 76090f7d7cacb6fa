package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"fittrack/internal/models"
)

type FeedbackStore struct {
	db *sqlx.DB
}

func NewFeedbackStore(db *sqlx.DB) *FeedbackStore { return &FeedbackStore{db: db} }

func (s *FeedbackStore) Create(ctx context.Context, f *models.Feedback) error {
	err := s.db.QueryRowxContext(ctx,
		`INSERT INTO feedback (name, email, inquiry, message, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		f.Name, f.Email, f.Inquiry, f.Message, f.CreatedAt,
	).Scan(&f.ID)
	return translate(err, "create feedback")
}
