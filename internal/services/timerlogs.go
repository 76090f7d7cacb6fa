package services

import (
	"context"
	"strings"
	"time"

	"fittrack/internal/apperr"
	"fittrack/internal/models"
)

type TimerLogStore interface {
	Create(ctx context.Context, l *models.TimerLog) error
	ListByOwner(ctx context.Context, ownerID int64) ([]models.TimerLog, error)
}

// TimerLogService records finished stopwatch and timer sessions. Logs are
// append-only.
type TimerLogService struct {
	logs TimerLogStore
	now  func() time.Time
}

func NewTimerLogService(logs TimerLogStore) *TimerLogService {
	return &TimerLogService{logs: logs, now: time.Now}
}

type TimerLogInput struct {
	Exercise string   `json:"exercise" validate:"required"`
	Mode     string   `json:"mode" validate:"required,oneof=stopwatch timer"`
	Duration *float64 `json:"duration" validate:"required,gte=0"`
}

func (s *TimerLogService) Create(ctx context.Context, ownerID int64, in TimerLogInput) (*models.TimerLog, error) {
	in.Exercise = strings.TrimSpace(in.Exercise)
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	l := &models.TimerLog{
		UserID:    ownerID,
		Exercise:  in.Exercise,
		Mode:      in.Mode,
		Duration:  *in.Duration,
		CreatedAt: s.now().UTC(),
	}
	if err := s.logs.Create(ctx, l); err != nil {
		return nil, apperr.Internal(err)
	}
	return l, nil
}

func (s *TimerLogService) List(ctx context.Context, ownerID int64) ([]models.TimerLog, error) {
	out, err := s.logs.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return out, nil
}
