package validator

import (
	"fmt"
	"strings"

	"github.com/Jseow008/ThePlayBook-sub001/internal/config"
	"github.com/Jseow008/ThePlayBook-sub001/internal/entity"
	"github.com/google/uuid"
)

// Validator turns decoded request bodies into typed use case inputs.
type Validator struct {
	cfg config.ChatConfig
}

func NewValidator(cfg config.ChatConfig) *Validator {
	return &Validator{cfg: cfg}
}

// ValidateUUID checks that value is a canonical UUID and returns it lowercased.
func ValidateUUID(field, value string) (string, error) {
	if value == "" {
		return "", fmt.Errorf("%w: %s", entity.ErrMissingField, field)
	}
	id, err := uuid.Parse(value)
	if err != nil || len(value) != 36 {
		return "", fmt.Errorf("%w: %s must be a UUID", entity.ErrInvalidFormat, field)
	}
	return id.String(), nil
}

// trimmedLength checks 1..max runes after trimming and returns the trimmed value.
func trimmedLength(field, value string, max int) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("%w: %s", entity.ErrMissingField, field)
	}
	if n := len([]rune(value)); n > max {
		return "", fmt.Errorf("%w: %s is %d characters (max %d)", entity.ErrValidation, field, n, max)
	}
	return value, nil
}
