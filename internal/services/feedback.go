package services

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"fittrack/internal/apperr"
	"fittrack/internal/models"
)

type FeedbackStore interface {
	Create(ctx context.Context, f *models.Feedback) error
}

type FeedbackService struct {
	feedback FeedbackStore
	notifier Notifier
	inbox    string
	now      func() time.Time
	logger   *zap.Logger
}

func NewFeedbackService(feedback FeedbackStore, notifier Notifier, inbox string, logger *zap.Logger) *FeedbackService {
	return &FeedbackService{
		feedback: feedback,
		notifier: notifier,
		inbox:    inbox,
		now:      time.Now,
		logger:   logger.Named("feedback"),
	}
}

type FeedbackInput struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required"`
	Inquiry string `json:"inquiry"`
	Message string `json:"message" validate:"required"`
}

// Submit stores the feedback and notifies the inbox. A failed notification
// is logged; the stored feedback is kept.
func (s *FeedbackService) Submit(ctx context.Context, in FeedbackInput) (*models.Feedback, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Message = strings.TrimSpace(in.Message)
	if err := validateStruct(in); err != nil {
		return nil, apperr.Validation("all required fields must be filled")
	}

	f := &models.Feedback{
		Name:      in.Name,
		Email:     in.Email,
		Inquiry:   strings.TrimSpace(in.Inquiry),
		Message:   in.Message,
		CreatedAt: s.now().UTC(),
	}
	if err := s.feedback.Create(ctx, f); err != nil {
		return nil, apperr.Internal(err)
	}
	if err := s.notifier.FeedbackReceived(ctx, s.inbox, *f); err != nil {
		s.logger.Error("notify feedback", zap.Int64("feedback_id", f.ID), zap.Error(err))
	}
	return f, nil
}
