package interfaces

import (
	"errors"
	"fmt"
)

// ErrNotFound возвращается, когда сущность не найдена в хранилище.
var ErrNotFound = errors.New("entity not found")

// Названия сущностей для сообщений об ошибках.
const (
	EntityFilm  = "film"
	EntityUser  = "user"
	EntityGenre = "genre"
	EntityMpa   = "mpa"
)

// NotFoundError уточняет ErrNotFound: какая сущность и с каким идентификатором не найдена.
// errors.Is(err, ErrNotFound) для неё возвращает true.
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %d not found", e.Entity, e.ID)
}

// Is позволяет сравнивать NotFoundError с ErrNotFound через errors.Is.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NotFound создаёт ошибку отсутствия сущности.
func NotFound(entity string, id int64) error {
	return &NotFoundError{Entity: entity, ID: id}
}
