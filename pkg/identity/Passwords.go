package identity

import (
	"errors"
	"fmt"

	"github.com/lorenzwed/lorenzwed/pkg/models"
	"golang.org/x/crypto/bcrypt"
)

const passwordCost = 10

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordCost)

	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", models.NewUserError(models.ErrValidation, "password must be at most 72 bytes")
	}

	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}

	return string(hash), nil
}

func PasswordMatches(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
