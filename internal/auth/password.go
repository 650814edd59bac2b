package auth

import (
	"errors"

	"github.com/GoArmGo/PlacesApp/internal/apperr"
	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost — рабочий фактор bcrypt: проверка занимает
// десятки миллисекунд на обычном железе
const DefaultBcryptCost = 12

// PasswordHasher хеширует и проверяет пароли через bcrypt.
// Открытый пароль никогда не логируется и не сохраняется.
type PasswordHasher struct {
	cost int
}

func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash возвращает bcrypt-хеш пароля
func (h *PasswordHasher) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", apperr.Hashing(err)
	}
	return string(hashed), nil
}

// Verify сравнивает пароль с сохраненным хешем.
// Несовпадение — это не ошибка, а false; ошибка возвращается
// только для поврежденного хеша.
func (h *PasswordHasher) Verify(plaintext, hashed string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, apperr.Hashing(err)
}
