// Package validation — тонкая обёртка над go-playground/validator:
// проверяет входные структуры по validate-тегам и сводит нарушения
// к одной ошибке валидации для клиента.
package validation

import (
	"errors"

	"github.com/GoArmGo/PlacesApp/internal/apperr"
	"github.com/go-playground/validator/v10"
)

type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	return &Validator{validate: validator.New()}
}

// Struct проверяет поля структуры по validate-тегам.
// Любое нарушение — это ValidationError с единым сообщением:
// перечень полей клиенту не раскрывается, как и в остальном API.
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return apperr.Persistence("An unknown error occurred!", err)
	}

	return apperr.Validation("Invalid inputs passed, please check your data.")
}
