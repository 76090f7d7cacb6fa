package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"fittrack/internal/services"
)

type FeedbackHandler struct {
	svc    *services.FeedbackService
	logger *zap.Logger
}

func NewFeedbackHandler(svc *services.FeedbackService, logger *zap.Logger) *FeedbackHandler {
	return &FeedbackHandler{svc: svc, logger: logger}
}

// Submit godoc
// @Summary Submit feedback
// @Description Stores feedback and notifies the inbox; no session is required
// @Tags feedback
// @Accept json
// @Produce json
// @Param data body services.FeedbackInput true "Feedback"
// @Success 200 {object} messageResponse
// @Failure 400 {object} messageResponse "Validation error"
// @Failure 500 {object} messageResponse "Internal server error"
// @Router /api/feedback [post]
func (h *FeedbackHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var in services.FeedbackInput
	if !decodeJSON(w, r, h.logger, &in) {
		return
	}
	if _, err := h.svc.Submit(r.Context(), in); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Feedback submitted successfully."})
}
