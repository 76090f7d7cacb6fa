package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"fittrack/internal/services"
)

type DashboardHandler struct {
	svc    *services.DashboardService
	logger *zap.Logger
}

func NewDashboardHandler(svc *services.DashboardService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{svc: svc, logger: logger}
}

// Get godoc
// @Summary Get dashboard
// @Description Aggregates workouts and meals; local_date=YYYY-MM-DD sets the user's "today"
// @Tags dashboard
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param local_date query string false "Reference day"
// @Success 200 {object} services.DashboardSummary
// @Failure 401 {object} messageResponse "Not authorized"
// @Failure 400 {object} messageResponse "Invalid local_date"
// @Failure 500 {object} messageResponse "Internal server error"
// @Router /api/dashboard [get]
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	summary, err := h.svc.Summary(r.Context(), userID, r.URL.Query().Get("local_date"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
