package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

type User struct {
	ID               int64     `db:"id" json:"id"`
	Email            string    `db:"email" json:"email"`
	PasswordHash     string    `db:"password_hash" json:"-"`
	FullName         string    `db:"full_name" json:"fullName"`
	Phone            string    `db:"phone" json:"phone"`
	Address          string    `db:"address" json:"address"`
	ProfileImageURL  string    `db:"profile_image_url" json:"profileImageUrl"`
	ResetTokenHash   *string   `db:"reset_token_hash" json:"-"`
	ResetTokenExpiry *int64    `db:"reset_token_expiry" json:"-"` // epoch milliseconds
	CreatedAt        time.Time `db:"created_at" json:"createdAt"`
}

// ProfileUpdate carries the profile fields to overwrite; nil keeps the
// stored value.
type ProfileUpdate struct {
	FullName        *string
	Email           *string
	Phone           *string
	Address         *string
	ProfileImageURL *string
}

const (
	CategoryStrength    = "strength"
	CategoryCardio      = "cardio"
	CategoryFlexibility = "flexibility"
	CategoryOther       = "other"
)

type Workout struct {
	ID       int64     `db:"id" json:"id"`
	UserID   int64     `db:"user_id" json:"userId"`
	Exercise string    `db:"exercise" json:"exercise"`
	Category string    `db:"category" json:"category"`
	Sets     float64   `db:"sets" json:"sets"`
	Reps     float64   `db:"reps" json:"reps"`
	Weight   float64   `db:"weight" json:"weight"`
	Notes    string    `db:"notes" json:"notes"`
	Date     time.Time `db:"date" json:"date"`
}

// WorkoutUpdate carries the workout fields to overwrite; nil keeps the
// stored value.
type WorkoutUpdate struct {
	Exercise *string
	Category *string
	Sets     *float64
	Reps     *float64
	Weight   *float64
	Notes    *string
	Date     *time.Time
}

func (u WorkoutUpdate) Empty() bool {
	return u.Exercise == nil && u.Category == nil && u.Sets == nil && u.Reps == nil &&
		u.Weight == nil && u.Notes == nil && u.Date == nil
}

const (
	MealBreakfast = "breakfast"
	MealLunch     = "lunch"
	MealDinner    = "dinner"
	MealSnack     = "snack"
)

type FoodItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Quantity string  `json:"quantity"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
}

// FoodItems is stored as a JSONB document column.
type FoodItems []FoodItem

func (f FoodItems) Value() (driver.Value, error) {
	if f == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(f)
}

func (f *FoodItems) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*f = FoodItems{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("food_items: unsupported scan type")
	}
	var items FoodItems
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	if items == nil {
		items = FoodItems{}
	}
	*f = items
	return nil
}

type Meal struct {
	ID            int64     `db:"id" json:"id"`
	UserID        int64     `db:"user_id" json:"userId"`
	MealType      string    `db:"meal_type" json:"mealType"`
	FoodItems     FoodItems `db:"food_items" json:"foodItems"`
	TotalCalories float64   `db:"total_calories" json:"totalCalories"`
	Date          time.Time `db:"date" json:"date"`
}

const (
	ModeStopwatch = "stopwatch"
	ModeTimer     = "timer"
)

type TimerLog struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"userId"`
	Exercise  string    `db:"exercise" json:"exercise"`
	Mode      string    `db:"mode" json:"mode"`
	Duration  float64   `db:"duration" json:"duration"` // seconds
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

type Feedback struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Inquiry   string    `db:"inquiry" json:"inquiry"`
	Message   string    `db:"message" json:"message"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
