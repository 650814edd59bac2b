// Package apperr содержит типизированные ошибки бизнес-логики.
// Каждая ошибка несет вид, HTTP-статус и сообщение для клиента;
// низкоуровневые ошибки (драйвер БД, S3, геокодер) оборачиваются
// и никогда не попадают в тело ответа.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind — вид ошибки из таксономии приложения
type Kind string

const (
	KindValidation  Kind = "validation"
	KindAuth        Kind = "auth"
	KindNotFound    Kind = "not_found"
	KindGeocoding   Kind = "geocoding"
	KindHashing     Kind = "hashing"
	KindSigning     Kind = "signing"
	KindPersistence Kind = "persistence"
)

// Error — ошибка приложения с HTTP-статусом и сообщением для клиента
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Err     error // внутренняя причина, не для клиента
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Status: http.StatusUnprocessableEntity, Message: message}
}

func Auth(message string, status int) *Error {
	return &Error{Kind: KindAuth, Status: status, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Status: http.StatusNotFound, Message: message}
}

func Geocoding(message string, err error) *Error {
	return &Error{Kind: KindGeocoding, Status: http.StatusUnprocessableEntity, Message: message, Err: err}
}

func Hashing(err error) *Error {
	return &Error{Kind: KindHashing, Status: http.StatusInternalServerError, Message: "An unknown error occurred!", Err: err}
}

func Signing(err error) *Error {
	return &Error{Kind: KindSigning, Status: http.StatusInternalServerError, Message: "An unknown error occurred!", Err: err}
}

func Persistence(message string, err error) *Error {
	return &Error{Kind: KindPersistence, Status: http.StatusInternalServerError, Message: message, Err: err}
}

// StatusOf возвращает HTTP-статус для ошибки;
// для нетипизированных ошибок — 500
func StatusOf(err error) int {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	return http.StatusInternalServerError
}

// MessageOf возвращает сообщение для клиента;
// внутренние детали наружу не выходят
func MessageOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "An unknown error occurred!"
}

// IsKind проверяет вид ошибки
func IsKind(err error, kind Kind) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}
