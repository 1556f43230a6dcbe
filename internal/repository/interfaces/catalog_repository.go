package interfaces

import (
	"context"

	domain "filmorate/internal/domain/film"
)

// CatalogRepository даёт доступ к неизменяемым справочникам жанров и рейтингов MPA.
type CatalogRepository interface {
	ListGenres(ctx context.Context) ([]domain.Genre, error)

	// GenreByID возвращает NotFoundError, если жанра нет в справочнике.
	GenreByID(ctx context.Context, id int64) (domain.Genre, error)

	ListMpa(ctx context.Context) ([]domain.Mpa, error)

	// MpaByID возвращает NotFoundError, если рейтинга нет в справочнике.
	MpaByID(ctx context.Context, id int64) (domain.Mpa, error)
}
