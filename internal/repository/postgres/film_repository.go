package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "filmorate/internal/domain/film"
	repo "filmorate/internal/repository/interfaces"
)

// FilmRepository реализует repo.FilmRepository с использованием GORM и Postgres.
// Жанры и лайки лежат в отдельных таблицах film_genres и film_likes.
type FilmRepository struct {
	db *gorm.DB
}

var _ repo.FilmRepository = (*FilmRepository)(nil)

// NewFilmRepository создает новый репозиторий фильмов.
func NewFilmRepository(db *gorm.DB) *FilmRepository {
	return &FilmRepository{db: db}
}

// Create сохраняет фильм с жанрами и переданными лайками в одной транзакции.
func (r *FilmRepository) Create(ctx context.Context, film *domain.Film) (*domain.Film, error) {
	model := filmFromDomain(film)
	model.ID = 0

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(model).Error; err != nil {
			if isForeignKeyViolation(err) {
				return repo.NotFound(repo.EntityMpa, film.Mpa.ID)
			}
			return err
		}
		if err := replaceGenres(tx, model.ID, film.Genres); err != nil {
			return err
		}
		for _, userID := range film.LikeIDs() {
			if err := insertLike(tx, model.ID, userID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.GetByID(ctx, model.ID)
}

// Update заменяет поля фильма и набор жанров. Лайки не меняются.
func (r *FilmRepository) Update(ctx context.Context, film *domain.Film) (*domain.Film, error) {
	model := filmFromDomain(film)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&pgFilm{}).
			Where("id = ?", model.ID).
			Updates(map[string]interface{}{
				"name":         model.Name,
				"description":  model.Description,
				"release_date": model.ReleaseDate,
				"duration":     model.Duration,
				"mpa_id":       model.MpaID,
			})
		if result.Error != nil {
			if isForeignKeyViolation(result.Error) {
				return repo.NotFound(repo.EntityMpa, film.Mpa.ID)
			}
			return result.Error
		}
		if result.RowsAffected == 0 {
			return repo.NotFound(repo.EntityFilm, film.ID)
		}
		return replaceGenres(tx, model.ID, film.Genres)
	})
	if err != nil {
		return nil, err
	}

	return r.GetByID(ctx, model.ID)
}

func (r *FilmRepository) GetByID(ctx context.Context, id int64) (*domain.Film, error) {
	var model pgFilm
	err := r.preloaded(ctx).Where("id = ?", id).Take(&model).Error
	if err != nil {
		return nil, notFoundOr(err, repo.EntityFilm, id)
	}

	films, err := r.withLikes(ctx, []pgFilm{model})
	if err != nil {
		return nil, err
	}
	return films[0], nil
}

// List возвращает все фильмы по возрастанию ID.
func (r *FilmRepository) List(ctx context.Context) ([]*domain.Film, error) {
	var models []pgFilm
	if err := r.preloaded(ctx).Order("id").Find(&models).Error; err != nil {
		return nil, err
	}
	return r.withLikes(ctx, models)
}

// AddLike добавляет лайк. Повторный лайк гасится ON CONFLICT DO NOTHING.
func (r *FilmRepository) AddLike(ctx context.Context, filmID, userID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := exists(ctx, tx, &pgFilm{}, filmID)
		if err != nil {
			return err
		}
		if !ok {
			return repo.NotFound(repo.EntityFilm, filmID)
		}

		ok, err = exists(ctx, tx, &pgUser{}, userID)
		if err != nil {
			return err
		}
		if !ok {
			return repo.NotFound(repo.EntityUser, userID)
		}

		return insertLike(tx, filmID, userID)
	})
}

// RemoveLike снимает лайк, если он был.
func (r *FilmRepository) RemoveLike(ctx context.Context, filmID, userID int64) error {
	ok, err := exists(ctx, r.db, &pgFilm{}, filmID)
	if err != nil {
		return err
	}
	if !ok {
		return repo.NotFound(repo.EntityFilm, filmID)
	}

	return r.db.WithContext(ctx).
		Where("film_id = ? AND user_id = ?", filmID, userID).
		Delete(&pgFilmLike{}).Error
}

// MostPopular ранжирует фильмы по числу лайков на стороне БД.
// При равном числе лайков раньше идёт фильм с меньшим ID.
func (r *FilmRepository) MostPopular(ctx context.Context, count int) ([]*domain.Film, error) {
	query := r.db.WithContext(ctx).
		Table("films AS f").
		Joins("LEFT JOIN film_likes AS l ON l.film_id = f.id").
		Group("f.id").
		Order("COUNT(l.user_id) DESC").
		Order("f.id")
	if count > 0 {
		query = query.Limit(count)
	}

	var ids []int64
	if err := query.Pluck("f.id", &ids).Error; err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*domain.Film{}, nil
	}

	var models []pgFilm
	if err := r.preloaded(ctx).Where("id IN ?", ids).Find(&models).Error; err != nil {
		return nil, err
	}
	films, err := r.withLikes(ctx, models)
	if err != nil {
		return nil, err
	}

	// восстанавливаем порядок рейтинга, IN его не сохраняет
	byID := make(map[int64]*domain.Film, len(films))
	for _, f := range films {
		byID[f.ID] = f
	}
	ranked := make([]*domain.Film, 0, len(ids))
	for _, id := range ids {
		if f, ok := byID[id]; ok {
			ranked = append(ranked, f)
		}
	}
	return ranked, nil
}

func (r *FilmRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Mpa").
		Preload("Genres", func(db *gorm.DB) *gorm.DB { return db.Order("genres.id") })
}

// withLikes подгружает лайки одним запросом для всех переданных фильмов.
func (r *FilmRepository) withLikes(ctx context.Context, models []pgFilm) ([]*domain.Film, error) {
	if len(models) == 0 {
		return []*domain.Film{}, nil
	}

	ids := make([]int64, len(models))
	for i := range models {
		ids[i] = models[i].ID
	}

	var rows []pgFilmLike
	if err := r.db.WithContext(ctx).Where("film_id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}

	likes := make(map[int64][]int64, len(models))
	for _, row := range rows {
		likes[row.FilmID] = append(likes[row.FilmID], row.UserID)
	}

	films := make([]*domain.Film, 0, len(models))
	for i := range models {
		films = append(films, models[i].toDomain(likes[models[i].ID]))
	}
	return films, nil
}

// replaceGenres перезаписывает жанры фильма. Неизвестный жанр возвращает NotFoundError
// до вставки, чтобы не ловить нарушение внешнего ключа внутри транзакции.
func replaceGenres(tx *gorm.DB, filmID int64, genres []domain.Genre) error {
	if err := tx.Where("film_id = ?", filmID).Delete(&pgFilmGenre{}).Error; err != nil {
		return err
	}

	genres = domain.NormalizeGenres(genres)
	if len(genres) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(genres))
	for _, g := range genres {
		ids = append(ids, g.ID)
	}

	var known []int64
	if err := tx.Model(&pgGenre{}).Where("id IN ?", ids).Pluck("id", &known).Error; err != nil {
		return err
	}
	if len(known) != len(ids) {
		present := make(map[int64]struct{}, len(known))
		for _, id := range known {
			present[id] = struct{}{}
		}
		for _, id := range ids {
			if _, ok := present[id]; !ok {
				return repo.NotFound(repo.EntityGenre, id)
			}
		}
	}

	rows := make([]pgFilmGenre, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, pgFilmGenre{FilmID: filmID, GenreID: id})
	}
	return tx.Create(&rows).Error
}

func insertLike(tx *gorm.DB, filmID, userID int64) error {
	err := tx.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&pgFilmLike{FilmID: filmID, UserID: userID}).Error
	if isForeignKeyViolation(err) {
		return repo.NotFound(repo.EntityUser, userID)
	}
	return err
}
