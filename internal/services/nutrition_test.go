package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fittrack/internal/apperr"
	"fittrack/internal/models"
	"fittrack/internal/store/memory"
)

func newNutrition() (*NutritionService, *memory.MealStore) {
	meals := memory.NewMealStore(memory.New())
	return NewNutritionService(meals), meals
}

func assertTotalConsistent(t *testing.T, m *models.Meal) {
	t.Helper()
	var sum float64
	for _, it := range m.FoodItems {
		sum += it.Calories
	}
	assert.Equal(t, sum, m.TotalCalories)
}

func TestComputeTotal(t *testing.T) {
	assert.Equal(t, 0.0, ComputeTotal(nil))
	assert.Equal(t, 380.0, ComputeTotal([]models.FoodItem{{Calories: 130}, {Calories: 250}}))
	assert.Equal(t, 12.5, ComputeTotal([]models.FoodItem{{Calories: 10}, {Calories: 2.5}, {}}))
}

func TestToNumberCoercion(t *testing.T) {
	assert.Equal(t, 130.0, toNumber(130.0))
	assert.Equal(t, 130.0, toNumber("130"))
	assert.Equal(t, 0.0, toNumber(""))
	assert.Equal(t, 0.0, toNumber(nil))
	assert.Equal(t, 0.0, toNumber("abc"))
	assert.Equal(t, 0.0, toNumber("NaN"))
	assert.Equal(t, 0.0, toNumber(map[string]any{}))
}

func TestMealLifecycle(t *testing.T) {
	svc, _ := newNutrition()
	ctx := context.Background()

	meal, err := svc.AddMeal(ctx, 1, MealInput{
		MealType: "lunch",
		FoodItems: []FoodItemInput{
			{Name: "Rice", Quantity: "100g", Calories: 130},
			{Name: "Chicken", Quantity: "150g", Calories: 250},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 380.0, meal.TotalCalories)
	require.Len(t, meal.FoodItems, 2)
	assertTotalConsistent(t, meal)

	riceID := meal.FoodItems[0].ID
	chickenID := meal.FoodItems[1].ID
	assert.NotEmpty(t, riceID)
	assert.NotEqual(t, riceID, chickenID)

	remaining, deleted, err := svc.DeleteFoodItem(ctx, 1, meal.ID, riceID)
	require.NoError(t, err)
	assert.False(t, deleted)
	require.NotNil(t, remaining)
	assert.Equal(t, 250.0, remaining.TotalCalories)
	require.Len(t, remaining.FoodItems, 1)
	assert.Equal(t, "Chicken", remaining.FoodItems[0].Name)

	stored, err := svc.Get(ctx, 1, meal.ID)
	require.NoError(t, err)
	assert.Equal(t, 250.0, stored.TotalCalories)

	remaining, deleted, err = svc.DeleteFoodItem(ctx, 1, meal.ID, chickenID)
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Nil(t, remaining)

	_, err = svc.Get(ctx, 1, meal.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestAddMealCoercesNumbers(t *testing.T) {
	svc, _ := newNutrition()
	meal, err := svc.AddMeal(context.Background(), 1, MealInput{
		MealType: "snack",
		FoodItems: []FoodItemInput{
			{Name: "Apple", Quantity: 1, Calories: "95", Protein: "0.5"},
			{Name: "Mystery", Calories: "lots", Carbs: nil},
			{Name: "Water", Calories: ""},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 95.0, meal.TotalCalories)
	assert.Equal(t, "1", meal.FoodItems[0].Quantity)
	assert.Equal(t, 0.5, meal.FoodItems[0].Protein)
	assert.Equal(t, 0.0, meal.FoodItems[1].Calories)
	assertTotalConsistent(t, meal)
}

func TestAddMealValidation(t *testing.T) {
	svc, _ := newNutrition()
	ctx := context.Background()
	items := []FoodItemInput{{Name: "Rice", Calories: 1}}

	cases := map[string]MealInput{
		"missing type":  {FoodItems: items},
		"unknown type":  {MealType: "brunch", FoodItems: items},
		"no food items": {MealType: "lunch"},
		"unnamed item":  {MealType: "lunch", FoodItems: []FoodItemInput{{Calories: 10}}},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.AddMeal(ctx, 1, in)
			assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		})
	}
}

func TestUpdateMealReplacesItems(t *testing.T) {
	svc, _ := newNutrition()
	ctx := context.Background()
	meal, err := svc.AddMeal(ctx, 1, MealInput{MealType: "breakfast", FoodItems: []FoodItemInput{
		{Name: "Eggs", Calories: 150}, {Name: "Toast", Calories: 80},
	}})
	require.NoError(t, err)
	keepID := meal.FoodItems[0].ID

	updated, err := svc.UpdateMeal(ctx, 1, meal.ID, MealInput{MealType: "dinner", FoodItems: []FoodItemInput{
		{ID: keepID, Name: "Eggs", Calories: 200},
		{Name: "Salad", Calories: "40"},
	}})
	require.NoError(t, err)
	assert.Equal(t, "dinner", updated.MealType)
	assert.Equal(t, 240.0, updated.TotalCalories)
	require.Len(t, updated.FoodItems, 2)
	assert.Equal(t, keepID, updated.FoodItems[0].ID)
	assertTotalConsistent(t, updated)

	_, err = svc.UpdateMeal(ctx, 2, meal.ID, MealInput{MealType: "dinner", FoodItems: []FoodItemInput{{Name: "x"}}})
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestMealOwnershipIsNotFound(t *testing.T) {
	svc, _ := newNutrition()
	ctx := context.Background()
	meal, err := svc.AddMeal(ctx, 1, MealInput{MealType: "lunch", FoodItems: []FoodItemInput{{Name: "Rice", Calories: 130}}})
	require.NoError(t, err)

	_, err = svc.Get(ctx, 2, meal.ID)
	otherOwner := err
	_, err = svc.Get(ctx, 2, 424242)
	missing := err
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(otherOwner))
	assert.Equal(t, otherOwner.Error(), missing.Error())

	_, _, err = svc.DeleteFoodItem(ctx, 2, meal.ID, meal.FoodItems[0].ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(svc.DeleteMeal(ctx, 2, meal.ID)))

	still, err := svc.Get(ctx, 1, meal.ID)
	require.NoError(t, err)
	assert.Len(t, still.FoodItems, 1)

	list, err := svc.List(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestDeleteUnknownFoodItem(t *testing.T) {
	svc, _ := newNutrition()
	ctx := context.Background()
	meal, err := svc.AddMeal(ctx, 1, MealInput{MealType: "lunch", FoodItems: []FoodItemInput{{Name: "Rice", Calories: 130}}})
	require.NoError(t, err)

	_, _, err = svc.DeleteFoodItem(ctx, 1, meal.ID, "does-not-exist")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.Equal(t, "food item not found", apperr.Message(err))

	stored, err := svc.Get(ctx, 1, meal.ID)
	require.NoError(t, err)
	assert.Equal(t, 130.0, stored.TotalCalories)
}

func TestDeleteMeal(t *testing.T) {
	svc, _ := newNutrition()
	ctx := context.Background()
	meal, err := svc.AddMeal(ctx, 1, MealInput{MealType: "lunch", FoodItems: []FoodItemInput{{Name: "Rice"}}})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteMeal(ctx, 1, meal.ID))
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(svc.DeleteMeal(ctx, 1, meal.ID)))
}

func TestMealItemValuesAreBounded(t *testing.T) {
	svc, _ := newNutrition()
	ctx := context.Background()
	huge := []FoodItemInput{{Name: "a", Calories: 1e308}, {Name: "b", Calories: 1e308}}

	_, err := svc.AddMeal(ctx, 1, MealInput{MealType: "lunch", FoodItems: huge})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.Contains(t, err.Error(), "foodItems.calories")

	_, err = svc.AddMeal(ctx, 1, MealInput{MealType: "lunch", FoodItems: []FoodItemInput{{Name: "a", Fats: "-2000000"}}})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	meal, err := svc.AddMeal(ctx, 1, MealInput{MealType: "lunch", FoodItems: []FoodItemInput{
		{Name: "a", Calories: maxNutrientValue}, {Name: "b", Calories: maxNutrientValue},
	}})
	require.NoError(t, err)
	assert.Equal(t, 2.0*maxNutrientValue, meal.TotalCalories)

	_, err = svc.UpdateMeal(ctx, 1, meal.ID, MealInput{MealType: "lunch", FoodItems: huge})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	got, err := svc.Get(ctx, 1, meal.ID)
	require.NoError(t, err)
	assert.Equal(t, 2.0*maxNutrientValue, got.TotalCalories)
}
