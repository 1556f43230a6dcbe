package postgres

import (
	"context"

	"gorm.io/gorm"

	domain "filmorate/internal/domain/film"
	repo "filmorate/internal/repository/interfaces"
)

// CatalogRepository читает справочники, заполненные миграцией 000001_create_catalog.
type CatalogRepository struct {
	db *gorm.DB
}

var _ repo.CatalogRepository = (*CatalogRepository)(nil)

// NewCatalogRepository создает репозиторий справочников.
func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) ListGenres(ctx context.Context) ([]domain.Genre, error) {
	var models []pgGenre
	if err := r.db.WithContext(ctx).Order("id").Find(&models).Error; err != nil {
		return nil, err
	}

	genres := make([]domain.Genre, 0, len(models))
	for _, m := range models {
		genres = append(genres, domain.Genre{ID: m.ID, Name: m.Name})
	}
	return genres, nil
}

func (r *CatalogRepository) GenreByID(ctx context.Context, id int64) (domain.Genre, error) {
	var m pgGenre
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&m).Error; err != nil {
		return domain.Genre{}, notFoundOr(err, repo.EntityGenre, id)
	}
	return domain.Genre{ID: m.ID, Name: m.Name}, nil
}

func (r *CatalogRepository) ListMpa(ctx context.Context) ([]domain.Mpa, error) {
	var models []pgMpa
	if err := r.db.WithContext(ctx).Order("id").Find(&models).Error; err != nil {
		return nil, err
	}

	mpa := make([]domain.Mpa, 0, len(models))
	for _, m := range models {
		mpa = append(mpa, domain.Mpa{ID: m.ID, Name: m.Name})
	}
	return mpa, nil
}

func (r *CatalogRepository) MpaByID(ctx context.Context, id int64) (domain.Mpa, error) {
	var m pgMpa
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&m).Error; err != nil {
		return domain.Mpa{}, notFoundOr(err, repo.EntityMpa, id)
	}
	return domain.Mpa{ID: m.ID, Name: m.Name}, nil
}
