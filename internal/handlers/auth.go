package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"fittrack/internal/models"
	"fittrack/internal/services"
)

type AuthHandler struct {
	svc    *services.AuthService
	logger *zap.Logger
}

func NewAuthHandler(svc *services.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, logger: logger}
}

type sessionResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

type profileResponse struct {
	Message string       `json:"message"`
	User    *models.User `json:"user"`
}

// Register godoc
// @Summary Register
// @Description Creates an account and returns it with a session token
// @Tags auth
// @Accept json
// @Produce json
// @Param data body services.RegisterInput true "Registration data"
// @Success 201 {object} sessionResponse
// @Failure 400 {object} messageResponse "Validation error"
// @Failure 409 {object} messageResponse "Email already exists"
// @Failure 500 {object} messageResponse "Internal server error"
// @Router /api/auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var in services.RegisterInput
	if !decodeJSON(w, r, h.logger, &in) {
		return
	}
	u, token, err := h.svc.Register(r.Context(), in)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, sessionResponse{User: u, Token: token})
}

// Login godoc
// @Summary Login
// @Description Verifies credentials and returns a session token
// @Tags auth
// @Accept json
// @Produce json
// @Param data body services.LoginInput true "Credentials"
// @Success 200 {object} sessionResponse
// @Failure 400 {object} messageResponse "Validation error"
// @Failure 401 {object} messageResponse "Invalid email or password"
// @Failure 500 {object} messageResponse "Internal server error"
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var in services.LoginInput
	if !decodeJSON(w, r, h.logger, &in) {
		return
	}
	u, token, err := h.svc.Login(r.Context(), in)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{User: u, Token: token})
}

// Me godoc
// @Summary Get current user
// @Description Returns the caller's profile
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.User
// @Failure 401 {object} messageResponse "Not authorized"
// @Failure 404 {object} messageResponse "User not found"
// @Failure 500 {object} messageResponse "Internal server error"
// @Router /api/auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	u, err := h.svc.CurrentUser(r.Context(), userID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// UpdateProfile godoc
// @Summary Update profile
// @Description Overwrites the supplied non-empty profile fields
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param data body services.ProfileInput true "Profile fields"
// @Success 200 {object} profileResponse
// @Failure 401 {object} messageResponse "Not authorized"
// @Failure 409 {object} messageResponse "Email already exists"
// @Failure 500 {object} messageResponse "Internal server error"
// @Router /api/auth/profile [put]
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var in services.ProfileInput
	if !decodeJSON(w, r, h.logger, &in) {
		return
	}
	u, err := h.svc.UpdateProfile(r.Context(), userID, in)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, profileResponse{Message: "Profile updated", User: u})
}

// ForgotPassword godoc
// @Summary Request password reset
// @Description Sends a single-use reset link to the account's email
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} messageResponse
// @Failure 400 {object} messageResponse "Validation error"
// @Failure 404 {object} messageResponse "User not found"
// @Failure 500 {object} messageResponse "Internal server error"
// @Router /api/auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email"`
	}
	if !decodeJSON(w, r, h.logger, &body) {
		return
	}
	if err := h.svc.RequestPasswordReset(r.Context(), body.Email); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Password reset link sent to your email."})
}

// ResetPassword godoc
// @Summary Reset password
// @Description Sets a new password; the body accepts "password" or "newPassword"
// @Tags auth
// @Accept json
// @Produce json
// @Param token path string true "Reset token"
// @Success 200 {object} messageResponse
// @Failure 400 {object} messageResponse "Invalid or expired token"
// @Failure 500 {object} messageResponse "Internal server error"
// @Router /api/auth/reset-password/{token} [post]
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Password    string `json:"password"`
		NewPassword string `json:"newPassword"`
	}
	if !decodeJSON(w, r, h.logger, &body) {
		return
	}
	password := body.Password
	if password == "" {
		password = body.NewPassword
	}
	if err := h.svc.ResetPassword(r.Context(), chi.URLParam(r, "token"), password); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Password reset successfully"})
}
