package catalog

import (
	"context"

	domain "filmorate/internal/domain/film"
	repo "filmorate/internal/repository/interfaces"
)

// Service отдаёт справочники жанров и рейтингов MPA.
type Service interface {
	ListGenres(ctx context.Context) ([]domain.Genre, error)
	GenreByID(ctx context.Context, id int64) (domain.Genre, error)
	ListMpa(ctx context.Context) ([]domain.Mpa, error)
	MpaByID(ctx context.Context, id int64) (domain.Mpa, error)
}

type service struct {
	catalog repo.CatalogRepository
}

// NewService создаёт сервис справочников.
func NewService(catalog repo.CatalogRepository) Service {
	return &service{catalog: catalog}
}

func (s *service) ListGenres(ctx context.Context) ([]domain.Genre, error) {
	return s.catalog.ListGenres(ctx)
}

func (s *service) GenreByID(ctx context.Context, id int64) (domain.Genre, error) {
	return s.catalog.GenreByID(ctx, id)
}

func (s *service) ListMpa(ctx context.Context) ([]domain.Mpa, error) {
	return s.catalog.ListMpa(ctx)
}

func (s *service) MpaByID(ctx context.Context, id int64) (domain.Mpa, error) {
	return s.catalog.MpaByID(ctx, id)
}
