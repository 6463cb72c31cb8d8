package validation

import (
	"fmt"
	"unicode"
)

const (
	MinPasswordLength = 8
	MaxPasswordLength = 72 // limite do bcrypt
)

// ValidatePassword verifica os requisitos mínimos de senha.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("senha deve ter pelo menos %d caracteres", MinPasswordLength)
	}
	if len(password) > MaxPasswordLength {
		return fmt.Errorf("senha deve ter no máximo %d caracteres", MaxPasswordLength)
	}

	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	if !hasLetter || !hasDigit {
		return fmt.Errorf("senha deve conter letras e números")
	}

	return nil
}
