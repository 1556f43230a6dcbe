package memory

import (
	"context"

	domain "filmorate/internal/domain/film"
	repo "filmorate/internal/repository/interfaces"
)

// CatalogRepository отдаёт фиксированные справочники жанров и рейтингов MPA.
// Справочники не меняются во время работы, поэтому блокировки не нужны.
type CatalogRepository struct {
	genres []domain.Genre
	mpa    []domain.Mpa
}

var _ repo.CatalogRepository = (*CatalogRepository)(nil)

// NewCatalogRepository создает справочник со значениями по умолчанию.
func NewCatalogRepository() *CatalogRepository {
	return &CatalogRepository{
		genres: append([]domain.Genre(nil), domain.DefaultGenres...),
		mpa:    append([]domain.Mpa(nil), domain.DefaultMpa...),
	}
}

func (r *CatalogRepository) ListGenres(_ context.Context) ([]domain.Genre, error) {
	return append([]domain.Genre(nil), r.genres...), nil
}

func (r *CatalogRepository) GenreByID(_ context.Context, id int64) (domain.Genre, error) {
	for _, g := range r.genres {
		if g.ID == id {
			return g, nil
		}
	}
	return domain.Genre{}, repo.NotFound(repo.EntityGenre, id)
}

func (r *CatalogRepository) ListMpa(_ context.Context) ([]domain.Mpa, error) {
	return append([]domain.Mpa(nil), r.mpa...), nil
}

func (r *CatalogRepository) MpaByID(_ context.Context, id int64) (domain.Mpa, error) {
	for _, m := range r.mpa {
		if m.ID == id {
			return m, nil
		}
	}
	return domain.Mpa{}, repo.NotFound(repo.EntityMpa, id)
}
