package crypto

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"io"

	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordBytes is the longest input bcrypt accepts.
const MaxPasswordBytes = 72

// HashPassword returns the bcrypt hash of password.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword reports whether password matches the bcrypt hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// ResetTokens generates password-reset tokens and the digests stored in
// place of them. Only the digest ever reaches the database.
type ResetTokens struct {
	key []byte
}

func NewResetTokens(key []byte) (*ResetTokens, error) {
	if len(key) == 0 {
		return nil, errors.New("reset token key must not be empty")
	}
	return &ResetTokens{key: key}, nil
}

// Generate returns a new 32-byte hex token and its digest.
func (t *ResetTokens) Generate() (token, digest string, err error) {
	b := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return "", "", err
	}
	token = hex.EncodeToString(b)
	return token, t.Digest(token), nil
}

// Digest is a deterministic HMAC-SHA256 of token, usable as a lookup key.
func (t *ResetTokens) Digest(token string) string {
	h := hmac.New(sha256.New, t.key)
	h.Write([]byte(token))
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}
