package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

type PasswordManager struct {
	cost int
}

func NewPasswordManager() *PasswordManager {
	return NewPasswordManagerWithCost(bcrypt.DefaultCost)
}

// NewPasswordManagerWithCost позволяет поднять стоимость в продакшене
// или опустить до MinCost в тестах. Значение вне допустимого диапазона
// bcrypt откатывается к DefaultCost
func NewPasswordManagerWithCost(cost int) *PasswordManager {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordManager{
		cost: cost,
	}
}

// HashPassword хеширует пароль
func (m *PasswordManager) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), m.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword проверяет пароль против хеша.
// Искаженный или чужой хеш неотличим от неверного пароля
func (m *PasswordManager) VerifyPassword(hash, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
