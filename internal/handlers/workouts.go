package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"fittrack/internal/services"
)

type WorkoutHandler struct {
	svc    *services.WorkoutService
	logger *zap.Logger
}

func NewWorkoutHandler(svc *services.WorkoutService, logger *zap.Logger) *WorkoutHandler {
	return &WorkoutHandler{svc: svc, logger: logger}
}

const workoutNotFound = "workout not found"

// Create godoc
// @Summary Create workout
// @Description Logs a workout for the caller
// @Tags workouts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param data body services.WorkoutInput true "Workout"
// @Success 201 {object} models.Workout
// @Failure 401 {object} messageResponse "Not authorized"
// @Failure 400 {object} messageResponse "Validation error"
// @Failure 500 {object} messageResponse "Internal server error"
// @Router /api/workouts [post]
func (h *WorkoutHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var in services.WorkoutInput
	if !decodeJSON(w, r, h.logger, &in) {
		return
	}
	wk, err := h.svc.Create(r.Context(), userID, in)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, wk)
}

// List godoc
// @Summary List workouts
// @Description Returns the caller's workouts, newest first
// @Tags workouts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Workout
// @Failure 401 {object} messageResponse "Not authorized"
// @Failure 500 {object} messageResponse "Internal server error"
// @Router /api/workouts [get]
func (h *WorkoutHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	list, err := h.svc.List(r.Context(), userID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// Get godoc
// @Summary Get workout
// @Description Returns one of the caller's workouts
// @Tags workouts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Workout ID"
// @Success 200 {object} models.Workout
// @Failure 401 {object} messageResponse "Not authorized"
// @Failure 404 {object} messageResponse "Workout not found"
// @Failure 500 {object} messageResponse "Internal server error"
// @Router /api/workouts/{id} [get]
func (h *WorkoutHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, h.logger, "id", workoutNotFound)
	if !ok {
		return
	}
	wk, err := h.svc.Get(r.Context(), userID, id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, wk)
}

// Update godoc
// @Summary Update workout
// @Description Applies the supplied fields to one of the caller's workouts
// @Tags workouts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Workout ID"
// @Param data body services.WorkoutInput true "Fields to change"
// @Success 200 {object} models.Workout
// @Failure 401 {object} messageResponse "Not authorized"
// @Failure 400 {object} messageResponse "Validation error"
// @Failure 404 {object} messageResponse "Workout not found"
// @Failure 500 {object} messageResponse "Internal server error"
// @Router /api/workouts/{id} [put]
func (h *WorkoutHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, h.logger, "id", workoutNotFound)
	if !ok {
		return
	}
	var in services.WorkoutInput
	if !decodeJSON(w, r, h.logger, &in) {
		return
	}
	wk, err := h.svc.Update(r.Context(), userID, id, in)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, wk)
}

// Delete godoc
// @Summary Delete workout
// @Description Deletes one of the caller's workouts
// @Tags workouts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Workout ID"
// @Success 200 {object} messageResponse
// @Failure 401 {object} messageResponse "Not authorized"
// @Failure 404 {object} messageResponse "Workout not found"
// @Failure 500 {object} messageResponse "Internal server error"
// @Router /api/workouts/{id} [delete]
func (h *WorkoutHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, h.logger, "id", workoutNotFound)
	if !ok {
		return
	}
	if err := h.svc.Delete(r.Context(), userID, id); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Workout deleted successfully"})
}
