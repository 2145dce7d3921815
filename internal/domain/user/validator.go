package user

import (
	"fmt"
	"strings"
	"unicode"
)

const (
	MinLoginLen    = 3
	MaxLoginLen    = 32
	MinPasswordLen = 4
	MaxPasswordLen = 72 // предел bcrypt
)

// Validator - интерфейс для валидации учетных данных
type Validator interface {
	ValidateLogin(login string) error
	ValidatePassword(password string) error
	ValidateSeed(seed Seed) error
}

type AccountValidator struct{}

// NewAccountValidator создает новый валидатор
func NewAccountValidator() *AccountValidator {
	return &AccountValidator{}
}

// ValidateLogin валидирует логин
func (v *AccountValidator) ValidateLogin(login string) error {
	if len(login) < MinLoginLen {
		return fmt.Errorf("login must be at least %d characters", MinLoginLen)
	}

	if len(login) > MaxLoginLen {
		return fmt.Errorf("login must be at most %d characters", MaxLoginLen)
	}

	for _, r := range login {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '-' && r != '.' {
			return fmt.Errorf("login can only contain letters, digits, '_', '-', '.'")
		}
	}

	return nil
}

// ValidatePassword валидирует пароль
func (v *AccountValidator) ValidatePassword(password string) error {
	if len(password) < MinPasswordLen {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLen)
	}
	if len(password) > MaxPasswordLen {
		return fmt.Errorf("password must be at most %d bytes", MaxPasswordLen)
	}
	return nil
}

// ValidateSeed проверяет исходную учетную запись перед загрузкой в хранилище
func (v *AccountValidator) ValidateSeed(seed Seed) error {
	if strings.TrimSpace(seed.ID) == "" {
		return &DomainError{Err: ErrInvalidInput, Message: "account id is required", Code: "id"}
	}
	if err := v.ValidateLogin(seed.Username); err != nil {
		return &DomainError{Err: ErrInvalidInput, Message: fmt.Sprintf("account %s: %v", seed.ID, err), Code: "username"}
	}
	if err := v.ValidatePassword(seed.Password); err != nil {
		return &DomainError{Err: ErrInvalidInput, Message: fmt.Sprintf("account %s: %v", seed.ID, err), Code: "password"}
	}
	if !strings.Contains(seed.Email, "@") {
		return &DomainError{Err: ErrInvalidInput, Message: fmt.Sprintf("account %s: invalid email", seed.ID), Code: "email"}
	}
	if seed.Balance < 0 {
		return &DomainError{Err: ErrInvalidInput, Message: fmt.Sprintf("account %s: balance must not be negative", seed.ID), Code: "balance"}
	}
	return nil
}
