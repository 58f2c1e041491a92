package repo

import (
	"errors"

	"github.com/shaiso/glimpse/internal/domain"
)

// Общие ошибки репозиториев.
var (
	// ErrNotFound — запись не найдена в БД (или помечена как удалённая).
	ErrNotFound = errors.New("not found")

	// ErrInvalidID — идентификатор не прошёл проверку формата.
	ErrInvalidID = domain.ErrInvalidID
)
