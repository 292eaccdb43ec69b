package adapters

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/pocketledger/backend/internal/application/adapter"
	domainerror "github.com/pocketledger/backend/internal/domain/error"
)

const (
	// DefaultBcryptCost is the bcrypt cost used outside of tests.
	DefaultBcryptCost = 12

	minPasswordLength = 8
	maxPasswordLength = 72 // bcrypt ignores anything past 72 bytes
)

type passwordService struct {
	cost int
}

// NewPasswordService creates a bcrypt password service. A cost outside bcrypt's range falls
// back to DefaultBcryptCost.
func NewPasswordService(cost int) adapter.PasswordService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return &passwordService{cost: cost}
}

// HashPassword hashes a plain text password using bcrypt.
func (s *passwordService) HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyPassword compares a plain text password with a hashed password.
func (s *passwordService) VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// ValidatePasswordStrength validates if a password meets minimum requirements.
func (s *passwordService) ValidatePasswordStrength(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("%w: at least %d characters required", domainerror.ErrWeakPassword, minPasswordLength)
	}
	if len(password) > maxPasswordLength {
		return fmt.Errorf("%w: at most %d bytes allowed", domainerror.ErrWeakPassword, maxPasswordLength)
	}
	return nil
}
