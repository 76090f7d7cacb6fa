package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"fittrack/internal/models"
	"fittrack/internal/services"
)

type TimerLogHandler struct {
	svc    *services.TimerLogService
	logger *zap.Logger
}

func NewTimerLogHandler(svc *services.TimerLogService, logger *zap.Logger) *TimerLogHandler {
	return &TimerLogHandler{svc: svc, logger: logger}
}

type timerLogCreatedResponse struct {
	Message string           `json:"message"`
	Log     *models.TimerLog `json:"log"`
}

// Create godoc
// @Summary Save timer log
// @Description Records a finished stopwatch or timer session
// @Tags timerlogs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param data body services.TimerLogInput true "Timer log"
// @Success 201 {object} timerLogCreatedResponse
// @Failure 401 {object} messageResponse "Not authorized"
// @Failure 400 {object} messageResponse "Validation error"
// @Failure 500 {object} messageResponse "Internal server error"
// @Router /api/timerlogs [post]
func (h *TimerLogHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var in services.TimerLogInput
	if !decodeJSON(w, r, h.logger, &in) {
		return
	}
	l, err := h.svc.Create(r.Context(), userID, in)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, timerLogCreatedResponse{Message: "Log saved successfully", Log: l})
}

// List godoc
// @Summary List timer logs
// @Description Returns the caller's timer logs, newest first
// @Tags timerlogs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.TimerLog
// @Failure 401 {object} messageResponse "Not authorized"
// @Failure 500 {object} messageResponse "Internal server error"
// @Router /api/timerlogs [get]
func (h *TimerLogHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	logs, err := h.svc.List(r.Context(), userID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, logs)
}
