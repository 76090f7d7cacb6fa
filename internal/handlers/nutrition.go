package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"fittrack/internal/models"
	"fittrack/internal/services"
)

type NutritionHandler struct {
	svc    *services.NutritionService
	logger *zap.Logger
}

func NewNutritionHandler(svc *services.NutritionService, logger *zap.Logger) *NutritionHandler {
	return &NutritionHandler{svc: svc, logger: logger}
}

const mealNotFound = "meal not found"

type foodItemDeletedResponse struct {
	Message     string       `json:"message"`
	UpdatedMeal *models.Meal `json:"updatedMeal"`
}

// Create godoc
// @Summary Add meal
// @Description Stores a meal; its total is computed from the food items
// @Tags nutrition
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param data body services.MealInput true "Meal"
// @Success 201 {object} models.Meal
// @Failure 401 {object} messageResponse "Not authorized"
// @Failure 400 {object} messageResponse "Validation error"
// @Failure 500 {object} messageResponse "Internal server error"
// @Router /api/nutrition [post]
func (h *NutritionHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var in services.MealInput
	if !decodeJSON(w, r, h.logger, &in) {
		return
	}
	m, err := h.svc.AddMeal(r.Context(), userID, in)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

// List godoc
// @Summary List meals
// @Description Returns the caller's meals, newest first
// @Tags nutrition
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Meal
// @Failure 401 {object} messageResponse "Not authorized"
// @Failure 500 {object} messageResponse "Internal server error"
// @Router /api/nutrition [get]
func (h *NutritionHandler) List(w http.ResponseWriter, r *http.Request) {
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
// @Summary Get meal
// @Description Returns one of the caller's meals
// @Tags nutrition
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Meal ID"
// @Success 200 {object} models.Meal
// @Failure 401 {object} messageResponse "Not authorized"
// @Failure 404 {object} messageResponse "Meal not found"
// @Failure 500 {object} messageResponse "Internal server error"
// @Router /api/nutrition/{id} [get]
func (h *NutritionHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, h.logger, "id", mealNotFound)
	if !ok {
		return
	}
	m, err := h.svc.Get(r.Context(), userID, id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// Update godoc
// @Summary Update meal
// @Description Replaces the meal type and food items; the total is recomputed
// @Tags nutrition
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Meal ID"
// @Param data body services.MealInput true "Meal"
// @Success 200 {object} models.Meal
// @Failure 401 {object} messageResponse "Not authorized"
// @Failure 400 {object} messageResponse "Validation error"
// @Failure 404 {object} messageResponse "Meal not found"
// @Failure 500 {object} messageResponse "Internal server error"
// @Router /api/nutrition/{id} [put]
func (h *NutritionHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, h.logger, "id", mealNotFound)
	if !ok {
		return
	}
	var in services.MealInput
	if !decodeJSON(w, r, h.logger, &in) {
		return
	}
	m, err := h.svc.UpdateMeal(r.Context(), userID, id, in)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// Delete godoc
// @Summary Delete meal
// @Description Deletes one of the caller's meals
// @Tags nutrition
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Meal ID"
// @Success 200 {object} messageResponse
// @Failure 401 {object} messageResponse "Not authorized"
// @Failure 404 {object} messageResponse "Meal not found"
// @Failure 500 {object} messageResponse "Internal server error"
// @Router /api/nutrition/{id} [delete]
func (h *NutritionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, h.logger, "id", mealNotFound)
	if !ok {
		return
	}
	if err := h.svc.DeleteMeal(r.Context(), userID, id); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Meal deleted successfully"})
}

// DeleteFoodItem godoc
// @Summary Delete food item
// @Description Removes one food item; removing the last item deletes the meal and answers with updatedMeal null
// @Tags nutrition
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param mealId path int true "Meal ID"
// @Param foodItemId path string true "Food item ID"
// @Success 200 {object} foodItemDeletedResponse
// @Failure 401 {object} messageResponse "Not authorized"
// @Failure 404 {object} messageResponse "Meal or food item not found"
// @Failure 500 {object} messageResponse "Internal server error"
// @Router /api/nutrition/{mealId}/food/{foodItemId} [delete]
func (h *NutritionHandler) DeleteFoodItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	mealID, ok := pathID(w, r, h.logger, "mealId", mealNotFound)
	if !ok {
		return
	}
	m, deleted, err := h.svc.DeleteFoodItem(r.Context(), userID, mealID, chi.URLParam(r, "foodItemId"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if deleted {
		writeJSON(w, http.StatusOK, foodItemDeletedResponse{Message: "Meal deleted as all food items removed"})
		return
	}
	writeJSON(w, http.StatusOK, foodItemDeletedResponse{Message: "Food item deleted successfully", UpdatedMeal: m})
}
