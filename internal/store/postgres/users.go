package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"fittrack/internal/models"
)

const userColumns = `id, email, password_hash, full_name, phone, address, profile_image_url, reset_token_hash, reset_token_expiry, created_at`

type UserStore struct {
	db *sqlx.DB
}

func NewUserStore(db *sqlx.DB) *UserStore { return &UserStore{db: db} }

func (s *UserStore) Create(ctx context.Context, u *models.User) error {
	err := s.db.QueryRowxContext(ctx,
		`INSERT INTO users (email, password_hash, full_name, phone, address, profile_image_url)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		u.Email, u.PasswordHash, u.FullName, u.Phone, u.Address, u.ProfileImageURL,
	).Scan(&u.ID, &u.CreatedAt)
	return translate(err, "create user")
}

func (s *UserStore) GetByID(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	if err := s.db.GetContext(ctx, &u, `SELECT `+userColumns+` FROM users WHERE id=$1`, id); err != nil {
		return nil, translate(err, "get user")
	}
	return &u, nil
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.db.GetContext(ctx, &u, `SELECT `+userColumns+` FROM users WHERE email=$1`, email); err != nil {
		return nil, translate(err, "get user by email")
	}
	return &u, nil
}

// UpdateProfile overwrites only the non-nil fields of upd.
func (s *UserStore) UpdateProfile(ctx context.Context, id int64, upd models.ProfileUpdate) (*models.User, error) {
	setClauses := []string{}
	args := []interface{}{}
	add := func(col string, v *string) {
		if v == nil {
			return
		}
		args = append(args, *v)
		setClauses = append(setClauses, fmt.Sprintf("%s=$%d", col, len(args)))
	}
	add("full_name", upd.FullName)
	add("email", upd.Email)
	add("phone", upd.Phone)
	add("address", upd.Address)
	add("profile_image_url", upd.ProfileImageURL)

	if len(setClauses) == 0 {
		return s.GetByID(ctx, id)
	}

	args = append(args, id)
	query := "UPDATE users SET " + strings.Join(setClauses, ", ") +
		fmt.Sprintf(" WHERE id=$%d RETURNING ", len(args)) + userColumns
	var u models.User
	if err := s.db.GetContext(ctx, &u, query, args...); err != nil {
		return nil, translate(err, "update profile")
	}
	return &u, nil
}

func (s *UserStore) SetResetToken(ctx context.Context, id int64, digest string, expiry int64) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET reset_token_hash=$1, reset_token_expiry=$2 WHERE id=$3`, digest, expiry, id)
	if err != nil {
		return translate(err, "set reset token")
	}
	return requireAffected(res, "set reset token")
}

func (s *UserStore) GetByResetToken(ctx context.Context, digest string) (*models.User, error) {
	var u models.User
	if err := s.db.GetContext(ctx, &u, `SELECT `+userColumns+` FROM users WHERE reset_token_hash=$1`, digest); err != nil {
		return nil, translate(err, "get user by reset token")
	}
	return &u, nil
}

// ConsumeResetToken sets the password and clears the token in one
// statement, provided the token is still the current one and unexpired.
func (s *UserStore) ConsumeResetToken(ctx context.Context, id int64, digest, passwordHash string, nowMillis int64) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET password_hash=$1, reset_token_hash=NULL, reset_token_expiry=NULL
		 WHERE id=$2 AND reset_token_hash=$3 AND reset_token_expiry > $4`,
		passwordHash, id, digest, nowMillis)
	if err != nil {
		return translate(err, "consume reset token")
	}
	return requireAffected(res, "consume reset token")
}

func (s *UserStore) ClearResetToken(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE users SET reset_token_hash=NULL, reset_token_expiry=NULL WHERE id=$1`, id)
	return translate(err, "clear reset token")
}
