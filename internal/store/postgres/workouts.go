package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"fittrack/internal/models"
)

const workoutColumns = `id, user_id, exercise, category, sets, reps, weight, notes, date`

type WorkoutStore struct {
	db *sqlx.DB
}

func NewWorkoutStore(db *sqlx.DB) *WorkoutStore { return &WorkoutStore{db: db} }

func (s *WorkoutStore) Create(ctx context.Context, w *models.Workout) error {
	err := s.db.QueryRowxContext(ctx,
		`INSERT INTO workouts (user_id, exercise, category, sets, reps, weight, notes, date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id`,
		w.UserID, w.Exercise, w.Category, w.Sets, w.Reps, w.Weight, w.Notes, w.Date,
	).Scan(&w.ID)
	return translate(err, "create workout")
}

func (s *WorkoutStore) ListByOwner(ctx context.Context, ownerID int64) ([]models.Workout, error) {
	out := []models.Workout{}
	if err := s.db.SelectContext(ctx, &out,
		`SELECT `+workoutColumns+` FROM workouts WHERE user_id=$1 ORDER BY date DESC, id DESC`, ownerID); err != nil {
		return nil, translate(err, "list workouts")
	}
	return out, nil
}

func (s *WorkoutStore) Get(ctx context.Context, ownerID, id int64) (*models.Workout, error) {
	var w models.Workout
	if err := s.db.GetContext(ctx, &w,
		`SELECT `+workoutColumns+` FROM workouts WHERE id=$1 AND user_id=$2`, id, ownerID); err != nil {
		return nil, translate(err, "get workout")
	}
	return &w, nil
}

// Update overwrites the non-nil fields of upd on the owner's workout.
func (s *WorkoutStore) Update(ctx context.Context, ownerID, id int64, upd models.WorkoutUpdate) (*models.Workout, error) {
	if upd.Empty() {
		return s.Get(ctx, ownerID, id)
	}

	setClauses := []string{}
	args := []interface{}{}
	set := func(col string, v interface{}) {
		args = append(args, v)
		setClauses = append(setClauses, fmt.Sprintf("%s=$%d", col, len(args)))
	}
	if upd.Exercise != nil {
		set("exercise", *upd.Exercise)
	}
	if upd.Category != nil {
		set("category", *upd.Category)
	}
	if upd.Sets != nil {
		set("sets", *upd.Sets)
	}
	if upd.Reps != nil {
		set("reps", *upd.Reps)
	}
	if upd.Weight != nil {
		set("weight", *upd.Weight)
	}
	if upd.Notes != nil {
		set("notes", *upd.Notes)
	}
	if upd.Date != nil {
		set("date", *upd.Date)
	}

	args = append(args, id, ownerID)
	query := "UPDATE workouts SET " + strings.Join(setClauses, ", ") +
		fmt.Sprintf(" WHERE id=$%d AND user_id=$%d RETURNING ", len(args)-1, len(args)) + workoutColumns
	var w models.Workout
	if err := s.db.GetContext(ctx, &w, query, args...); err != nil {
		return nil, translate(err, "update workout")
	}
	return &w, nil
}

func (s *WorkoutStore) Delete(ctx context.Context, ownerID, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM workouts WHERE id=$1 AND user_id=$2`, id, ownerID)
	if err != nil {
		return translate(err, "delete workout")
	}
	return requireAffected(res, "delete workout")
}
