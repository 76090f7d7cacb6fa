package services

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fittrack/internal/apperr"
	"fittrack/internal/models"
	"fittrack/internal/store/memory"
)

func TestDashboardSummary(t *testing.T) {
	db := memory.New()
	workouts := memory.NewWorkoutStore(db)
	meals := memory.NewMealStore(db)
	ctx := context.Background()
	day := func(d int) time.Time { return time.Date(2025, 3, d, 9, 0, 0, 0, time.UTC) }

	for _, w := range []models.Workout{
		{UserID: 1, Exercise: "Squat", Category: "strength", Sets: 3, Reps: 10, Date: day(1)},
		{UserID: 1, Exercise: "Bench", Category: "strength", Sets: 4, Reps: 5, Date: day(2)},
		{UserID: 1, Exercise: "Run", Category: "cardio", Date: day(3)},
		{UserID: 2, Exercise: "Theirs", Category: "cardio", Sets: 100, Date: day(3)},
	} {
		w := w
		require.NoError(t, workouts.Create(ctx, &w))
	}
	for _, m := range []models.Meal{
		{UserID: 1, MealType: "lunch", FoodItems: models.FoodItems{{Name: "Rice", Calories: 130, Carbs: 28}}, TotalCalories: 130, Date: day(5)},
		{UserID: 1, MealType: "dinner", FoodItems: models.FoodItems{{Name: "Chicken", Calories: 250, Protein: 31.333}}, TotalCalories: 250, Date: day(5)},
		{UserID: 1, MealType: "lunch", FoodItems: models.FoodItems{{Name: "Soup", Calories: 90, Fats: 2}}, TotalCalories: 90, Date: day(1)},
		{UserID: 2, MealType: "lunch", TotalCalories: 9999, Date: day(5)},
	} {
		m := m
		require.NoError(t, meals.Create(ctx, &m))
	}

	svc := NewDashboardService(workouts, meals)
	got, err := svc.Summary(ctx, 1, "2025-03-05")
	require.NoError(t, err)

	assert.Equal(t, "2025-03-05", got.ReferenceDate)
	assert.Equal(t, 3, got.TotalWorkouts)
	assert.Equal(t, map[string]int{"strength": 2, "cardio": 1}, got.WorkoutsByCategory)
	assert.Equal(t, 2.33, got.AverageSets)
	assert.Equal(t, 5.0, got.AverageReps)

	assert.Equal(t, 3, got.TotalMeals)
	assert.Equal(t, 470.0, got.TotalCalories)
	assert.Equal(t, map[string]float64{"lunch": 220, "dinner": 250}, got.CaloriesByMealType)
	assert.Equal(t, Macros{Protein: 31.33, Carbs: 28, Fats: 2}, got.Macros)
	assert.Equal(t, 380.0, got.TodayCalories)

	require.Len(t, got.Last7DaysCalories, 7)
	assert.Equal(t, TrendPoint{Date: "2025-02-27", Calories: 0}, got.Last7DaysCalories[0])
	assert.Equal(t, TrendPoint{Date: "2025-03-01", Calories: 90}, got.Last7DaysCalories[2])
	assert.Equal(t, TrendPoint{Date: "2025-03-05", Calories: 380}, got.Last7DaysCalories[6])
}

func TestDashboardSummaryEmptyAndInvalidDate(t *testing.T) {
	db := memory.New()
	svc := NewDashboardService(memory.NewWorkoutStore(db), memory.NewMealStore(db))
	svc.now = func() time.Time { return time.Date(2025, 3, 5, 23, 59, 0, 0, time.UTC) }

	got, err := svc.Summary(context.Background(), 1, "")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-05", got.ReferenceDate)
	assert.Zero(t, got.TotalWorkouts)
	assert.Zero(t, got.AverageSets)
	assert.Len(t, got.Last7DaysCalories, 7)

	_, err = svc.Summary(context.Background(), 1, "05/03/2025")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestRound2StaysFinite(t *testing.T) {
	assert.Equal(t, 12.35, round2(12.3456))
	assert.Equal(t, 0.0, round2(math.NaN()))
	assert.Equal(t, math.MaxFloat64, round2(math.Inf(1)))
	assert.Equal(t, -math.MaxFloat64, round2(math.Inf(-1)))
	assert.False(t, math.IsInf(round2(math.MaxFloat64), 0))
}
