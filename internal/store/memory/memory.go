// Package memory implements the stores on process memory. It backs the
// server when no DATABASE_URL is configured and is used by tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"fittrack/internal/models"
	"fittrack/internal/store"
)

// DB holds every collection behind a single mutex.
type DB struct {
	mu        sync.Mutex
	seq       int64
	users     map[int64]models.User
	workouts  map[int64]models.Workout
	meals     map[int64]models.Meal
	timerLogs map[int64]models.TimerLog
	feedback  map[int64]models.Feedback
	now       func() time.Time
}

func New() *DB {
	return &DB{
		users:     map[int64]models.User{},
		workouts:  map[int64]models.Workout{},
		meals:     map[int64]models.Meal{},
		timerLogs: map[int64]models.TimerLog{},
		feedback:  map[int64]models.Feedback{},
		now:       time.Now,
	}
}

func (db *DB) nextID() int64 {
	db.seq++
	return db.seq
}

type UserStore struct{ db *DB }

func NewUserStore(db *DB) *UserStore { return &UserStore{db: db} }

func (s *UserStore) Create(_ context.Context, u *models.User) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, existing := range s.db.users {
		if existing.Email == u.Email {
			return store.ErrDuplicate
		}
	}
	u.ID = s.db.nextID()
	u.CreatedAt = s.db.now()
	s.db.users[u.ID] = *u
	return nil
}

func (s *UserStore) GetByID(_ context.Context, id int64) (*models.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	u, ok := s.db.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &u, nil
}

func (s *UserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, u := range s.db.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *UserStore) UpdateProfile(_ context.Context, id int64, upd models.ProfileUpdate) (*models.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	u, ok := s.db.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	if upd.Email != nil && *upd.Email != u.Email {
		for otherID, other := range s.db.users {
			if otherID != id && other.Email == *upd.Email {
				return nil, store.ErrDuplicate
			}
		}
		u.Email = *upd.Email
	}
	if upd.FullName != nil {
		u.FullName = *upd.FullName
	}
	if upd.Phone != nil {
		u.Phone = *upd.Phone
	}
	if upd.Address != nil {
		u.Address = *upd.Address
	}
	if upd.ProfileImageURL != nil {
		u.ProfileImageURL = *upd.ProfileImageURL
	}
	s.db.users[id] = u
	return &u, nil
}

func (s *UserStore) SetResetToken(_ context.Context, id int64, digest string, expiry int64) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	u, ok := s.db.users[id]
	if !ok {
		return store.ErrNotFound
	}
	u.ResetTokenHash = &digest
	u.ResetTokenExpiry = &expiry
	s.db.users[id] = u
	return nil
}

func (s *UserStore) GetByResetToken(_ context.Context, digest string) (*models.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, u := range s.db.users {
		if u.ResetTokenHash != nil && *u.ResetTokenHash == digest {
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *UserStore) ConsumeResetToken(_ context.Context, id int64, digest, passwordHash string, nowMillis int64) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	u, ok := s.db.users[id]
	if !ok || u.ResetTokenHash == nil || *u.ResetTokenHash != digest ||
		u.ResetTokenExpiry == nil || *u.ResetTokenExpiry <= nowMillis {
		return store.ErrNotFound
	}
	u.PasswordHash = passwordHash
	u.ResetTokenHash = nil
	u.ResetTokenExpiry = nil
	s.db.users[id] = u
	return nil
}

func (s *UserStore) ClearResetToken(_ context.Context, id int64) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if u, ok := s.db.users[id]; ok {
		u.ResetTokenHash = nil
		u.ResetTokenExpiry = nil
		s.db.users[id] = u
	}
	return nil
}

type WorkoutStore struct{ db *DB }

func NewWorkoutStore(db *DB) *WorkoutStore { return &WorkoutStore{db: db} }

func (s *WorkoutStore) Create(_ context.Context, w *models.Workout) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	w.ID = s.db.nextID()
	s.db.workouts[w.ID] = *w
	return nil
}

func (s *WorkoutStore) ListByOwner(_ context.Context, ownerID int64) ([]models.Workout, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	out := []models.Workout{}
	for _, w := range s.db.workouts {
		if w.UserID == ownerID {
			out = append(out, w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return newerFirst(out[i].Date, out[i].ID, out[j].Date, out[j].ID) })
	return out, nil
}

func (s *WorkoutStore) Get(_ context.Context, ownerID, id int64) (*models.Workout, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	w, ok := s.db.workouts[id]
	if !ok || w.UserID != ownerID {
		return nil, store.ErrNotFound
	}
	return &w, nil
}

func (s *WorkoutStore) Update(_ context.Context, ownerID, id int64, upd models.WorkoutUpdate) (*models.Workout, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	w, ok := s.db.workouts[id]
	if !ok || w.UserID != ownerID {
		return nil, store.ErrNotFound
	}
	if upd.Exercise != nil {
		w.Exercise = *upd.Exercise
	}
	if upd.Category != nil {
		w.Category = *upd.Category
	}
	if upd.Sets != nil {
		w.Sets = *upd.Sets
	}
	if upd.Reps != nil {
		w.Reps = *upd.Reps
	}
	if upd.Weight != nil {
		w.Weight = *upd.Weight
	}
	if upd.Notes != nil {
		w.Notes = *upd.Notes
	}
	if upd.Date != nil {
		w.Date = *upd.Date
	}
	s.db.workouts[id] = w
	return &w, nil
}

func (s *WorkoutStore) Delete(_ context.Context, ownerID, id int64) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	w, ok := s.db.workouts[id]
	if !ok || w.UserID != ownerID {
		return store.ErrNotFound
	}
	delete(s.db.workouts, id)
	return nil
}

type MealStore struct{ db *DB }

func NewMealStore(db *DB) *MealStore { return &MealStore{db: db} }

func cloneMeal(m models.Meal) models.Meal {
	items := make(models.FoodItems, len(m.FoodItems))
	copy(items, m.FoodItems)
	m.FoodItems = items
	return m
}

func (s *MealStore) Create(_ context.Context, m *models.Meal) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	m.ID = s.db.nextID()
	s.db.meals[m.ID] = cloneMeal(*m)
	return nil
}

func (s *MealStore) ListByOwner(_ context.Context, ownerID int64) ([]models.Meal, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	out := []models.Meal{}
	for _, m := range s.db.meals {
		if m.UserID == ownerID {
			out = append(out, cloneMeal(m))
		}
	}
	sort.Slice(out, func(i, j int) bool { return newerFirst(out[i].Date, out[i].ID, out[j].Date, out[j].ID) })
	return out, nil
}

func (s *MealStore) Get(_ context.Context, ownerID, id int64) (*models.Meal, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	m, ok := s.db.meals[id]
	if !ok || m.UserID != ownerID {
		return nil, store.ErrNotFound
	}
	m = cloneMeal(m)
	return &m, nil
}

func (s *MealStore) Replace(_ context.Context, ownerID, id int64, mealType string, items models.FoodItems, total float64) (*models.Meal, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	m, ok := s.db.meals[id]
	if !ok || m.UserID != ownerID {
		return nil, store.ErrNotFound
	}
	m.MealType = mealType
	m.FoodItems = items
	m.TotalCalories = total
	m = cloneMeal(m)
	s.db.meals[id] = m
	m = cloneMeal(m)
	return &m, nil
}

func (s *MealStore) Delete(_ context.Context, ownerID, id int64) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	m, ok := s.db.meals[id]
	if !ok || m.UserID != ownerID {
		return store.ErrNotFound
	}
	delete(s.db.meals, id)
	return nil
}

func (s *MealStore) Modify(_ context.Context, ownerID, id int64, fn func(*models.Meal) (bool, error)) (*models.Meal, bool, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	stored, ok := s.db.meals[id]
	if !ok || stored.UserID != ownerID {
		return nil, false, store.ErrNotFound
	}
	m := cloneMeal(stored)
	remove, err := fn(&m)
	if err != nil {
		return nil, false, err
	}
	if remove {
		delete(s.db.meals, id)
		return nil, true, nil
	}
	stored.FoodItems = m.FoodItems
	stored.TotalCalories = m.TotalCalories
	s.db.meals[id] = cloneMeal(stored)
	return &m, false, nil
}

type TimerLogStore struct{ db *DB }

func NewTimerLogStore(db *DB) *TimerLogStore { return &TimerLogStore{db: db} }

func (s *TimerLogStore) Create(_ context.Context, l *models.TimerLog) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	l.ID = s.db.nextID()
	s.db.timerLogs[l.ID] = *l
	return nil
}

func (s *TimerLogStore) ListByOwner(_ context.Context, ownerID int64) ([]models.TimerLog, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	out := []models.TimerLog{}
	for _, l := range s.db.timerLogs {
		if l.UserID == ownerID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return newerFirst(out[i].CreatedAt, out[i].ID, out[j].CreatedAt, out[j].ID)
	})
	return out, nil
}

type FeedbackStore struct{ db *DB }

func NewFeedbackStore(db *DB) *FeedbackStore { return &FeedbackStore{db: db} }

func (s *FeedbackStore) Create(_ context.Context, f *models.Feedback) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	f.ID = s.db.nextID()
	s.db.feedback[f.ID] = *f
	return nil
}

// newerFirst orders by time descending, then id descending, matching the
// ORDER BY used by the Postgres stores.
func newerFirst(ti time.Time, idi int64, tj time.Time, idj int64) bool {
	if !ti.Equal(tj) {
		return ti.After(tj)
	}
	return idi > idj
}
