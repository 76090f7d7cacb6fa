package services

import (
	"context"
	"strings"
	"time"

	"fittrack/internal/apperr"
	"fittrack/internal/models"
)

type WorkoutStore interface {
	Create(ctx context.Context, w *models.Workout) error
	ListByOwner(ctx context.Context, ownerID int64) ([]models.Workout, error)
	Get(ctx context.Context, ownerID, id int64) (*models.Workout, error)
	Update(ctx context.Context, ownerID, id int64, upd models.WorkoutUpdate) (*models.Workout, error)
	Delete(ctx context.Context, ownerID, id int64) error
}

type WorkoutService struct {
	workouts WorkoutStore
	now      func() time.Time
}

func NewWorkoutService(workouts WorkoutStore) *WorkoutService {
	return &WorkoutService{workouts: workouts, now: time.Now}
}

const workoutNotFound = "workout not found"

// WorkoutInput is the request payload for create and update. Numeric
// fields accept numbers or numeric strings; any owner field in the
// payload is ignored.
type WorkoutInput struct {
	Exercise *string `json:"exercise"`
	Category *string `json:"category" validate:"omitempty,oneof=strength cardio flexibility other"`
	Sets     any     `json:"sets"`
	Reps     any     `json:"reps"`
	Weight   any     `json:"weight"`
	Notes    *string `json:"notes"`
	Date     any     `json:"date"`
}

// normalize maps an explicit empty category to the default before
// validation.
func (in *WorkoutInput) normalize() {
	if in.Category != nil && strings.TrimSpace(*in.Category) == "" {
		other := models.CategoryOther
		in.Category = &other
	}
}

func (s *WorkoutService) Create(ctx context.Context, ownerID int64, in WorkoutInput) (*models.Workout, error) {
	in.normalize()
	if in.Exercise == nil || strings.TrimSpace(*in.Exercise) == "" {
		return nil, apperr.Validation("exercise is required")
	}
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	date, err := toTime(in.Date)
	if err != nil {
		return nil, err
	}

	w := &models.Workout{
		UserID:   ownerID,
		Exercise: strings.TrimSpace(*in.Exercise),
		Category: models.CategoryOther,
		Sets:     toNumber(in.Sets),
		Reps:     toNumber(in.Reps),
		Weight:   toNumber(in.Weight),
		Date:     s.now().UTC(),
	}
	if in.Category != nil {
		w.Category = *in.Category
	}
	if in.Notes != nil {
		w.Notes = *in.Notes
	}
	if date != nil {
		w.Date = date.UTC()
	}
	if err := s.workouts.Create(ctx, w); err != nil {
		return nil, apperr.Internal(err)
	}
	return w, nil
}

func (s *WorkoutService) List(ctx context.Context, ownerID int64) ([]models.Workout, error) {
	out, err := s.workouts.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return out, nil
}

func (s *WorkoutService) Get(ctx context.Context, ownerID, id int64) (*models.Workout, error) {
	w, err := s.workouts.Get(ctx, ownerID, id)
	if err != nil {
		return nil, mapStoreErr(err, workoutNotFound)
	}
	return w, nil
}

// Update applies the supplied fields to the owner's workout.
func (s *WorkoutService) Update(ctx context.Context, ownerID, id int64, in WorkoutInput) (*models.Workout, error) {
	in.normalize()
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	var upd models.WorkoutUpdate
	if in.Exercise != nil {
		ex := strings.TrimSpace(*in.Exercise)
		if ex == "" {
			return nil, apperr.Validation("exercise is required")
		}
		upd.Exercise = &ex
	}
	upd.Category = in.Category
	upd.Sets = optionalNumber(in.Sets)
	upd.Reps = optionalNumber(in.Reps)
	upd.Weight = optionalNumber(in.Weight)
	upd.Notes = in.Notes
	date, err := toTime(in.Date)
	if err != nil {
		return nil, err
	}
	if date != nil {
		d := date.UTC()
		upd.Date = &d
	}

	w, err := s.workouts.Update(ctx, ownerID, id, upd)
	if err != nil {
		return nil, mapStoreErr(err, workoutNotFound)
	}
	return w, nil
}

func (s *WorkoutService) Delete(ctx context.Context, ownerID, id int64) error {
	return mapStoreErr(s.workouts.Delete(ctx, ownerID, id), workoutNotFound)
}

func optionalNumber(v any) *float64 {
	if v == nil {
		return nil
	}
	n := toNumber(v)
	return &n
}
