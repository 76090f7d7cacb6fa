package services

import (
	"context"
	"math"
	"time"

	"fittrack/internal/apperr"
)

type TrendPoint struct {
	Date     string  `json:"date"`
	Calories float64 `json:"calories"`
}

type Macros struct {
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
	Fats    float64 `json:"fats"`
}

type DashboardSummary struct {
	ReferenceDate      string             `json:"referenceDate"`
	TotalWorkouts      int                `json:"totalWorkouts"`
	AverageSets        float64            `json:"averageSets"`
	AverageReps        float64            `json:"averageReps"`
	WorkoutsByCategory map[string]int     `json:"workoutsByCategory"`
	TotalMeals         int                `json:"totalMeals"`
	TotalCalories      float64            `json:"totalCalories"`
	CaloriesByMealType map[string]float64 `json:"caloriesByMealType"`
	Macros             Macros             `json:"macros"`
	TodayCalories      float64            `json:"todayCalories"`
	Last7DaysCalories  []TrendPoint       `json:"last7DaysCalories"`
}

// DashboardService derives per-user aggregates from workouts and meals.
type DashboardService struct {
	workouts WorkoutStore
	meals    MealStore
	now      func() time.Time
}

func NewDashboardService(workouts WorkoutStore, meals MealStore) *DashboardService {
	return &DashboardService{workouts: workouts, meals: meals, now: time.Now}
}

const dateLayout = "2006-01-02"

// Summary aggregates the owner's data. refDate (YYYY-MM-DD) is the day the
// 7-day trend ends on; empty means today in UTC.
func (s *DashboardService) Summary(ctx context.Context, ownerID int64, refDate string) (*DashboardSummary, error) {
	ref := s.now().UTC().Truncate(24 * time.Hour)
	if refDate != "" {
		parsed, err := time.Parse(dateLayout, refDate)
		if err != nil {
			return nil, apperr.Validation("invalid local_date format; expected YYYY-MM-DD")
		}
		ref = parsed
	}

	workouts, err := s.workouts.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	meals, err := s.meals.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	out := &DashboardSummary{
		ReferenceDate:      ref.Format(dateLayout),
		TotalWorkouts:      len(workouts),
		WorkoutsByCategory: map[string]int{},
		TotalMeals:         len(meals),
		CaloriesByMealType: map[string]float64{},
	}

	var sets, reps float64
	for _, w := range workouts {
		out.WorkoutsByCategory[w.Category]++
		sets += w.Sets
		reps += w.Reps
	}
	if len(workouts) > 0 {
		out.AverageSets = round2(sets / float64(len(workouts)))
		out.AverageReps = round2(reps / float64(len(workouts)))
	}

	byDay := map[string]float64{}
	for _, m := range meals {
		out.TotalCalories += m.TotalCalories
		out.CaloriesByMealType[m.MealType] += m.TotalCalories
		byDay[m.Date.UTC().Format(dateLayout)] += m.TotalCalories
		for _, it := range m.FoodItems {
			out.Macros.Protein += it.Protein
			out.Macros.Carbs += it.Carbs
			out.Macros.Fats += it.Fats
		}
	}
	out.Macros = Macros{
		Protein: round2(out.Macros.Protein),
		Carbs:   round2(out.Macros.Carbs),
		Fats:    round2(out.Macros.Fats),
	}

	out.TodayCalories = byDay[out.ReferenceDate]
	out.Last7DaysCalories = make([]TrendPoint, 0, 7)
	for i := 6; i >= 0; i-- {
		day := ref.AddDate(0, 0, -i).Format(dateLayout)
		out.Last7DaysCalories = append(out.Last7DaysCalories, TrendPoint{Date: day, Calories: byDay[day]})
	}
	return out, nil
}

// round2 rounds to cents and keeps the result encodable as JSON.
func round2(f float64) float64 {
	switch {
	case math.IsNaN(f):
		return 0
	case math.IsInf(f, 1):
		return math.MaxFloat64
	case math.IsInf(f, -1):
		return -math.MaxFloat64
	}
	r := math.Round(f*100) / 100
	if math.IsInf(r, 0) {
		return f
	}
	return r
}
