package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fittrack/internal/apperr"
	"fittrack/internal/models"
	"fittrack/internal/store/memory"
)

func strp(s string) *string { return &s }

func newWorkouts() *WorkoutService {
	svc := NewWorkoutService(memory.NewWorkoutStore(memory.New()))
	svc.now = func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestCreateWorkoutDefaults(t *testing.T) {
	svc := newWorkouts()
	w, err := svc.Create(context.Background(), 7, WorkoutInput{Exercise: strp("  Squat ")})
	require.NoError(t, err)
	assert.Equal(t, int64(7), w.UserID)
	assert.Equal(t, "Squat", w.Exercise)
	assert.Equal(t, models.CategoryOther, w.Category)
	assert.Zero(t, w.Sets)
	assert.Equal(t, svc.now(), w.Date)
}

func TestCreateWorkoutCoercesStrings(t *testing.T) {
	svc := newWorkouts()
	var in WorkoutInput
	require.NoError(t, json.Unmarshal([]byte(`{
		"exercise": "Bench",
		"category": "strength",
		"sets": "3",
		"reps": 10,
		"weight": "62.5",
		"date": "2025-02-14",
		"userId": 999
	}`), &in))

	w, err := svc.Create(context.Background(), 7, in)
	require.NoError(t, err)
	assert.Equal(t, int64(7), w.UserID)
	assert.Equal(t, 3.0, w.Sets)
	assert.Equal(t, 10.0, w.Reps)
	assert.Equal(t, 62.5, w.Weight)
	assert.Equal(t, "2025-02-14", w.Date.Format("2006-01-02"))
}

func TestCreateWorkoutValidation(t *testing.T) {
	svc := newWorkouts()
	ctx := context.Background()
	cases := map[string]WorkoutInput{
		"missing exercise": {},
		"blank exercise":   {Exercise: strp(" ")},
		"bad category":     {Exercise: strp("Run"), Category: strp("yoga")},
		"bad date":         {Exercise: strp("Run"), Date: "someday"},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Create(ctx, 1, in)
			assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		})
	}
}

func TestListWorkoutsScopedAndOrdered(t *testing.T) {
	svc := newWorkouts()
	ctx := context.Background()
	_, err := svc.Create(ctx, 1, WorkoutInput{Exercise: strp("old"), Date: "2025-01-01"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, 1, WorkoutInput{Exercise: strp("new"), Date: "2025-02-01"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, 2, WorkoutInput{Exercise: strp("theirs")})
	require.NoError(t, err)

	list, err := svc.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "new", list[0].Exercise)
	assert.Equal(t, "old", list[1].Exercise)

	empty, err := svc.List(ctx, 3)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestUpdateWorkoutIsPartial(t *testing.T) {
	svc := newWorkouts()
	ctx := context.Background()
	w, err := svc.Create(ctx, 1, WorkoutInput{Exercise: strp("Row"), Category: strp("strength"), Sets: 3, Reps: 8, Notes: strp("easy")})
	require.NoError(t, err)

	got, err := svc.Update(ctx, 1, w.ID, WorkoutInput{Reps: "12"})
	require.NoError(t, err)
	assert.Equal(t, 12.0, got.Reps)
	assert.Equal(t, 3.0, got.Sets)
	assert.Equal(t, "Row", got.Exercise)
	assert.Equal(t, "strength", got.Category)
	assert.Equal(t, "easy", got.Notes)

	got, err = svc.Update(ctx, 1, w.ID, WorkoutInput{Category: strp("")})
	require.NoError(t, err)
	assert.Equal(t, models.CategoryOther, got.Category)

	_, err = svc.Update(ctx, 1, w.ID, WorkoutInput{Exercise: strp("")})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestWorkoutOwnership(t *testing.T) {
	svc := newWorkouts()
	ctx := context.Background()
	w, err := svc.Create(ctx, 1, WorkoutInput{Exercise: strp("Deadlift")})
	require.NoError(t, err)

	_, err = svc.Get(ctx, 2, w.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.Equal(t, "workout not found", apperr.Message(err))

	_, err = svc.Update(ctx, 2, w.ID, WorkoutInput{Exercise: strp("hijack")})
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(svc.Delete(ctx, 2, w.ID)))

	got, err := svc.Get(ctx, 1, w.ID)
	require.NoError(t, err)
	assert.Equal(t, "Deadlift", got.Exercise)

	require.NoError(t, svc.Delete(ctx, 1, w.ID))
	_, err = svc.Get(ctx, 1, w.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestCreateWorkoutBlankCategoryDefaults(t *testing.T) {
	svc := newWorkouts()
	w, err := svc.Create(context.Background(), 1, WorkoutInput{Exercise: strp("Plank"), Category: strp(" ")})
	require.NoError(t, err)
	assert.Equal(t, models.CategoryOther, w.Category)
}
