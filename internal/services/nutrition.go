package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cast"

	"fittrack/internal/apperr"
	"fittrack/internal/models"
)

type MealStore interface {
	Create(ctx context.Context, m *models.Meal) error
	ListByOwner(ctx context.Context, ownerID int64) ([]models.Meal, error)
	Get(ctx context.Context, ownerID, id int64) (*models.Meal, error)
	Replace(ctx context.Context, ownerID, id int64, mealType string, items models.FoodItems, total float64) (*models.Meal, error)
	Delete(ctx context.Context, ownerID, id int64) error
	Modify(ctx context.Context, ownerID, id int64, fn func(*models.Meal) (remove bool, err error)) (*models.Meal, bool, error)
}

const mealNotFound = "meal not found"

// maxNutrientValue bounds each numeric food item field so meal totals and
// dashboard sums stay finite.
const maxNutrientValue = 1_000_000

// ComputeTotal sums the calories of items.
func ComputeTotal(items []models.FoodItem) float64 {
	var total float64
	for _, it := range items {
		total += it.Calories
	}
	return total
}

type NutritionService struct {
	meals MealStore
	now   func() time.Time
}

func NewNutritionService(meals MealStore) *NutritionService {
	return &NutritionService{meals: meals, now: time.Now}
}

// FoodItemInput accepts loosely typed numbers; anything that is not a
// finite number is stored as 0.
type FoodItemInput struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Quantity any    `json:"quantity"`
	Calories any    `json:"calories"`
	Protein  any    `json:"protein"`
	Carbs    any    `json:"carbs"`
	Fats     any    `json:"fats"`
}

type MealInput struct {
	MealType  string          `json:"mealType" validate:"required,oneof=breakfast lunch dinner snack"`
	FoodItems []FoodItemInput `json:"foodItems"`
}

func (in MealInput) items() (models.FoodItems, error) {
	if len(in.FoodItems) == 0 {
		return nil, apperr.Validation("foodItems is required")
	}
	items := make(models.FoodItems, 0, len(in.FoodItems))
	for _, fi := range in.FoodItems {
		name := strings.TrimSpace(fi.Name)
		if name == "" {
			return nil, apperr.Validation("foodItems.name is required")
		}
		id := fi.ID
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		item := models.FoodItem{
			ID:       id,
			Name:     name,
			Quantity: strings.TrimSpace(cast.ToString(fi.Quantity)),
			Calories: toNumber(fi.Calories),
			Protein:  toNumber(fi.Protein),
			Carbs:    toNumber(fi.Carbs),
			Fats:     toNumber(fi.Fats),
		}
		for _, f := range []struct {
			name  string
			value float64
		}{{"calories", item.Calories}, {"protein", item.Protein}, {"carbs", item.Carbs}, {"fats", item.Fats}} {
			if math.Abs(f.value) > maxNutrientValue {
				return nil, apperr.Validation(fmt.Sprintf("foodItems.%s must be between -%d and %d", f.name, maxNutrientValue, maxNutrientValue))
			}
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *NutritionService) AddMeal(ctx context.Context, ownerID int64, in MealInput) (*models.Meal, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	items, err := in.items()
	if err != nil {
		return nil, err
	}
	m := &models.Meal{
		UserID:        ownerID,
		MealType:      in.MealType,
		FoodItems:     items,
		TotalCalories: ComputeTotal(items),
		Date:          s.now().UTC(),
	}
	if err := s.meals.Create(ctx, m); err != nil {
		return nil, apperr.Internal(err)
	}
	return m, nil
}

func (s *NutritionService) List(ctx context.Context, ownerID int64) ([]models.Meal, error) {
	out, err := s.meals.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return out, nil
}

func (s *NutritionService) Get(ctx context.Context, ownerID, id int64) (*models.Meal, error) {
	m, err := s.meals.Get(ctx, ownerID, id)
	if err != nil {
		return nil, mapStoreErr(err, mealNotFound)
	}
	return m, nil
}

// UpdateMeal replaces the meal type and the whole food item list.
func (s *NutritionService) UpdateMeal(ctx context.Context, ownerID, id int64, in MealInput) (*models.Meal, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	items, err := in.items()
	if err != nil {
		return nil, err
	}
	m, err := s.meals.Replace(ctx, ownerID, id, in.MealType, items, ComputeTotal(items))
	if err != nil {
		return nil, mapStoreErr(err, mealNotFound)
	}
	return m, nil
}

func (s *NutritionService) DeleteMeal(ctx context.Context, ownerID, id int64) error {
	return mapStoreErr(s.meals.Delete(ctx, ownerID, id), mealNotFound)
}

// DeleteFoodItem removes one food item from the meal. When it was the last
// item the meal itself is deleted and (nil, true) is returned.
func (s *NutritionService) DeleteFoodItem(ctx context.Context, ownerID, mealID int64, foodItemID string) (*models.Meal, bool, error) {
	m, deleted, err := s.meals.Modify(ctx, ownerID, mealID, func(m *models.Meal) (bool, error) {
		kept := make(models.FoodItems, 0, len(m.FoodItems))
		found := false
		for _, it := range m.FoodItems {
			if !found && it.ID == foodItemID {
				found = true
				continue
			}
			kept = append(kept, it)
		}
		if !found {
			return false, apperr.NotFound("food item not found")
		}
		m.FoodItems = kept
		m.TotalCalories = ComputeTotal(kept)
		return len(kept) == 0, nil
	})
	if err != nil {
		return nil, false, mapStoreErr(err, mealNotFound)
	}
	return m, deleted, nil
}
