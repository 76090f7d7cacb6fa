package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"fittrack/internal/apperr"
	"fittrack/internal/crypto"
	"fittrack/internal/models"
	"fittrack/internal/store"
)

var errInvalidCredentials = apperr.Auth("invalid email or password")

type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateProfile(ctx context.Context, id int64, upd models.ProfileUpdate) (*models.User, error)
	SetResetToken(ctx context.Context, id int64, digest string, expiry int64) error
	GetByResetToken(ctx context.Context, digest string) (*models.User, error)
	ConsumeResetToken(ctx context.Context, id int64, digest, passwordHash string, nowMillis int64) error
	ClearResetToken(ctx context.Context, id int64) error
}

type TokenIssuer interface {
	Issue(userID int64) (string, error)
}

type AuthService struct {
	users       UserStore
	tokens      TokenIssuer
	resetTokens *crypto.ResetTokens
	notifier    Notifier
	clientURL   string
	resetTTL    time.Duration
	now         func() time.Time
	logger      *zap.Logger
}

type AuthConfig struct {
	ClientURL string
	ResetTTL  time.Duration
}

func NewAuthService(users UserStore, tokens TokenIssuer, resetTokens *crypto.ResetTokens, notifier Notifier, cfg AuthConfig, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:       users,
		tokens:      tokens,
		resetTokens: resetTokens,
		notifier:    notifier,
		clientURL:   cfg.ClientURL,
		resetTTL:    cfg.ResetTTL,
		now:         time.Now,
		logger:      logger.Named("auth"),
	}
}

// SetClock replaces the time source used for reset-token expiry.
func (s *AuthService) SetClock(now func() time.Time) { s.now = now }

type RegisterInput struct {
	FullName        string `json:"fullName" validate:"required"`
	Email           string `json:"email" validate:"required"`
	Password        string `json:"password" validate:"required"`
	ProfileImageURL string `json:"profileImageUrl"`
}

// Register creates the user and returns it with a fresh session token.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, string, error) {
	in.FullName = strings.TrimSpace(in.FullName)
	in.Email = strings.TrimSpace(in.Email)
	if err := validateStruct(in); err != nil {
		return nil, "", err
	}

	if err := checkPasswordLength(in.Password); err != nil {
		return nil, "", err
	}
	hashed, err := crypto.HashPassword(in.Password)
	if err != nil {
		return nil, "", apperr.Internal(err)
	}
	u := &models.User{
		Email:           in.Email,
		PasswordHash:    hashed,
		FullName:        in.FullName,
		ProfileImageURL: strings.TrimSpace(in.ProfileImageURL),
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, "", apperr.Conflict("email already exists")
		}
		return nil, "", apperr.Internal(err)
	}

	token, err := s.tokens.Issue(u.ID)
	if err != nil {
		return nil, "", apperr.Internal(err)
	}
	s.logger.Info("user registered", zap.Int64("user_id", u.ID))
	return u, token, nil
}

type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login verifies credentials. An unknown email and a wrong password yield
// the same error.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*models.User, string, error) {
	in.Email = strings.TrimSpace(in.Email)
	if err := validateStruct(in); err != nil {
		return nil, "", err
	}

	u, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, "", errInvalidCredentials
		}
		return nil, "", apperr.Internal(err)
	}
	if !crypto.CheckPassword(u.PasswordHash, in.Password) {
		return nil, "", errInvalidCredentials
	}

	token, err := s.tokens.Issue(u.ID)
	if err != nil {
		return nil, "", apperr.Internal(err)
	}
	return u, token, nil
}

func (s *AuthService) CurrentUser(ctx context.Context, userID int64) (*models.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, mapStoreErr(err, "user not found")
	}
	return u, nil
}

type ProfileInput struct {
	FullName        *string `json:"fullName"`
	Email           *string `json:"email"`
	Phone           *string `json:"phone"`
	Address         *string `json:"address"`
	ProfileImageURL *string `json:"profileImageUrl"`
}

// UpdateProfile overwrites only the supplied, non-empty fields.
func (s *AuthService) UpdateProfile(ctx context.Context, userID int64, in ProfileInput) (*models.User, error) {
	upd := models.ProfileUpdate{
		FullName:        nonEmpty(in.FullName),
		Email:           nonEmpty(in.Email),
		Phone:           nonEmpty(in.Phone),
		Address:         nonEmpty(in.Address),
		ProfileImageURL: nonEmpty(in.ProfileImageURL),
	}
	u, err := s.users.UpdateProfile(ctx, userID, upd)
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperr.Conflict("email already exists")
		}
		return nil, mapStoreErr(err, "user not found")
	}
	return u, nil
}

// RequestPasswordReset stores a new reset token digest for the user and
// sends the reset link. Any previous token is replaced.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return apperr.Validation("email is required")
	}
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return mapStoreErr(err, "user not found")
	}

	token, digest, err := s.resetTokens.Generate()
	if err != nil {
		return apperr.Internal(err)
	}
	expiry := s.now().Add(s.resetTTL).UnixMilli()
	if err := s.users.SetResetToken(ctx, u.ID, digest, expiry); err != nil {
		return mapStoreErr(err, "user not found")
	}

	link := s.clientURL + "/reset-password/" + token
	if err := s.notifier.PasswordReset(ctx, u.Email, u.FullName, link); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// ResetPassword sets a new password if token is the user's current,
// unexpired reset token. Wrong and expired tokens are not distinguished.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if newPassword == "" {
		return apperr.Validation("password is required")
	}
	if err := checkPasswordLength(newPassword); err != nil {
		return err
	}
	invalid := apperr.InvalidToken("invalid or expired token")
	if token == "" {
		return invalid
	}

	digest := s.resetTokens.Digest(token)
	u, err := s.users.GetByResetToken(ctx, digest)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return invalid
		}
		return apperr.Internal(err)
	}

	nowMillis := s.now().UnixMilli()
	if u.ResetTokenExpiry == nil || *u.ResetTokenExpiry <= nowMillis {
		if err := s.users.ClearResetToken(ctx, u.ID); err != nil {
			s.logger.Warn("clear expired reset token", zap.Int64("user_id", u.ID), zap.Error(err))
		}
		return invalid
	}

	hashed, err := crypto.HashPassword(newPassword)
	if err != nil {
		return apperr.Internal(err)
	}
	if err := s.users.ConsumeResetToken(ctx, u.ID, digest, hashed, nowMillis); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return invalid
		}
		return apperr.Internal(err)
	}
	s.logger.Info("password reset", zap.Int64("user_id", u.ID))
	return nil
}

// checkPasswordLength rejects passwords bcrypt cannot hash.
func checkPasswordLength(password string) error {
	if len(password) > crypto.MaxPasswordBytes {
		return apperr.Validation(fmt.Sprintf("password must be at most %d bytes", crypto.MaxPasswordBytes))
	}
	return nil
}

func nonEmpty(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
