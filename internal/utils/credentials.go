package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/SscSPs/expense_management_app/internal/apperrors"
	"golang.org/x/crypto/bcrypt"
)

// PasswordAlphabet is the character set generated passwords are drawn from.
const PasswordAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789!@#$%^&*"

// GeneratedPasswordLength is the length of passwords issued to newly added users.
const GeneratedPasswordLength = 12

// MaxPasswordBytes is the longest password bcrypt accepts.
const MaxPasswordBytes = 72

// GeneratePassword returns a password of the given length with every character drawn
// uniformly from PasswordAlphabet.
func GeneratePassword(length int) (string, error) {
	if length <= 0 || length > MaxPasswordBytes {
		return "", fmt.Errorf("password length must be between 1 and %d, got %d", MaxPasswordBytes, length)
	}
	max := big.NewInt(int64(len(PasswordAlphabet)))
	out := make([]byte, length)
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to read random index: %w", err)
		}
		out[i] = PasswordAlphabet[n.Int64()]
	}
	return string(out), nil
}

// HashPassword hashes a plaintext password using bcrypt.
func HashPassword(password string) (string, error) {
	if len(password) > MaxPasswordBytes {
		return "", fmt.Errorf("%w: password must be at most %d bytes", apperrors.ErrValidation, MaxPasswordBytes)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPasswordHash compares a plaintext password with a bcrypt hash.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
