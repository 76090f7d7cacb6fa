package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"fittrack/internal/models"
)

const mealColumns = `id, user_id, meal_type, food_items, total_calories, date`

type MealStore struct {
	db *sqlx.DB
}

func NewMealStore(db *sqlx.DB) *MealStore { return &MealStore{db: db} }

func (s *MealStore) Create(ctx context.Context, m *models.Meal) error {
	err := s.db.QueryRowxContext(ctx,
		`INSERT INTO meals (user_id, meal_type, food_items, total_calories, date)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		m.UserID, m.MealType, m.FoodItems, m.TotalCalories, m.Date,
	).Scan(&m.ID)
	return translate(err, "create meal")
}

func (s *MealStore) ListByOwner(ctx context.Context, ownerID int64) ([]models.Meal, error) {
	out := []models.Meal{}
	if err := s.db.SelectContext(ctx, &out,
		`SELECT `+mealColumns+` FROM meals WHERE user_id=$1 ORDER BY date DESC, id DESC`, ownerID); err != nil {
		return nil, translate(err, "list meals")
	}
	return out, nil
}

func (s *MealStore) Get(ctx context.Context, ownerID, id int64) (*models.Meal, error) {
	var m models.Meal
	if err := s.db.GetContext(ctx, &m,
		`SELECT `+mealColumns+` FROM meals WHERE id=$1 AND user_id=$2`, id, ownerID); err != nil {
		return nil, translate(err, "get meal")
	}
	return &m, nil
}

// Replace overwrites meal type, food items and total in one statement.
func (s *MealStore) Replace(ctx context.Context, ownerID, id int64, mealType string, items models.FoodItems, total float64) (*models.Meal, error) {
	var m models.Meal
	err := s.db.GetContext(ctx, &m,
		`UPDATE meals SET meal_type=$1, food_items=$2, total_calories=$3
		 WHERE id=$4 AND user_id=$5
		 RETURNING `+mealColumns,
		mealType, items, total, id, ownerID)
	if err != nil {
		return nil, translate(err, "replace meal")
	}
	return &m, nil
}

func (s *MealStore) Delete(ctx context.Context, ownerID, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM meals WHERE id=$1 AND user_id=$2`, id, ownerID)
	if err != nil {
		return translate(err, "delete meal")
	}
	return requireAffected(res, "delete meal")
}

// Modify loads the owner's meal under a row lock and hands it to fn. If fn
// reports remove, the meal row is deleted; otherwise its food items and
// total are written back. Errors from fn abort the transaction unchanged.
func (s *MealStore) Modify(ctx context.Context, ownerID, id int64, fn func(*models.Meal) (remove bool, err error)) (*models.Meal, bool, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, false, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	var m models.Meal
	if err := tx.GetContext(ctx, &m,
		`SELECT `+mealColumns+` FROM meals WHERE id=$1 AND user_id=$2 FOR UPDATE`, id, ownerID); err != nil {
		return nil, false, translate(err, "lock meal")
	}

	remove, err := fn(&m)
	if err != nil {
		return nil, false, err
	}

	if remove {
		if _, err := tx.ExecContext(ctx, `DELETE FROM meals WHERE id=$1 AND user_id=$2`, id, ownerID); err != nil {
			return nil, false, translate(err, "delete meal")
		}
	} else {
		if _, err := tx.ExecContext(ctx,
			`UPDATE meals SET food_items=$1, total_calories=$2 WHERE id=$3 AND user_id=$4`,
			m.FoodItems, m.TotalCalories, id, ownerID); err != nil {
			return nil, false, translate(err, "update meal")
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, false, fmt.Errorf("commit: %w", err)
	}
	if remove {
		return nil, true, nil
	}
	return &m, false, nil
}
