package services

import (
	"context"

	"go.uber.org/zap"

	"fittrack/internal/models"
)

// Notifier delivers out-of-band messages to users and operators.
type Notifier interface {
	PasswordReset(ctx context.Context, to, fullName, link string) error
	FeedbackReceived(ctx context.Context, inbox string, f models.Feedback) error
}

// LogNotifier writes notifications to the structured log instead of
// delivering them.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.Named("notifier")}
}

func (n *LogNotifier) PasswordReset(_ context.Context, to, fullName, link string) error {
	n.logger.Info("password reset requested",
		zap.String("to", to),
		zap.String("full_name", fullName),
		zap.String("link", link),
	)
	return nil
}

func (n *LogNotifier) FeedbackReceived(_ context.Context, inbox string, f models.Feedback) error {
	n.logger.Info("feedback received",
		zap.String("inbox", inbox),
		zap.Int64("feedback_id", f.ID),
		zap.String("name", f.Name),
		zap.String("email", f.Email),
		zap.String("inquiry", f.Inquiry),
	)
	return nil
}
