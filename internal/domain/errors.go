package domain

import "errors"

// ErrEmailTaken возвращается хранилищем при нарушении уникальности email.
// Дубликат должен падать, а не молча перезаписывать запись.
var ErrEmailTaken = errors.New("email already registered")
