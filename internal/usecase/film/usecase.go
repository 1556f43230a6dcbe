package film

import (
	"context"

	domain "filmorate/internal/domain/film"
	repo "filmorate/internal/repository/interfaces"
	"filmorate/internal/usecase/validation"
	"filmorate/pkg/logger"
)

// DefaultPopularCount используется, когда клиент не указал размер рейтинга.
const DefaultPopularCount = 10

// Service описывает usecase-слой для фильмов: CRUD, лайки и рейтинг популярности.
type Service interface {
	// Create проверяет фильм, подставляет названия жанров и рейтинга MPA из справочника
	// и сохраняет фильм с новым идентификатором.
	Create(ctx context.Context, f *domain.Film) (*domain.Film, error)

	// Update полностью заменяет изменяемые поля фильма, лайки сохраняются.
	Update(ctx context.Context, f *domain.Film) (*domain.Film, error)

	GetByID(ctx context.Context, id int64) (*domain.Film, error)
	List(ctx context.Context) ([]*domain.Film, error)

	// Like ставит лайк фильму от имени пользователя. Повторный лайк ничего не меняет.
	Like(ctx context.Context, filmID, userID int64) error

	// Unlike снимает лайк. Фильм должен существовать, пользователь нет.
	Unlike(ctx context.Context, filmID, userID int64) error

	// MostPopular возвращает не более count самых популярных фильмов.
	MostPopular(ctx context.Context, count int) ([]*domain.Film, error)
}

type service struct {
	films   repo.FilmRepository
	catalog repo.CatalogRepository
	log     logger.Logger
}

// NewService создаёт новый сервис фильмов.
func NewService(films repo.FilmRepository, catalog repo.CatalogRepository, log logger.Logger) Service {
	return &service{films: films, catalog: catalog, log: log}
}

func (s *service) Create(ctx context.Context, f *domain.Film) (*domain.Film, error) {
	if err := s.prepare(ctx, f); err != nil {
		return nil, err
	}

	created, err := s.films.Create(ctx, f)
	if err != nil {
		return nil, err
	}

	s.log.Info("film created", map[string]any{"film_id": created.ID, "name": created.Name})
	return created, nil
}

func (s *service) Update(ctx context.Context, f *domain.Film) (*domain.Film, error) {
	if err := s.prepare(ctx, f); err != nil {
		return nil, err
	}

	updated, err := s.films.Update(ctx, f)
	if err != nil {
		return nil, err
	}

	s.log.Info("film updated", map[string]any{"film_id": updated.ID})
	return updated, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*domain.Film, error) {
	return s.films.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context) ([]*domain.Film, error) {
	return s.films.List(ctx)
}

func (s *service) Like(ctx context.Context, filmID, userID int64) error {
	if err := s.films.AddLike(ctx, filmID, userID); err != nil {
		return err
	}
	s.log.Debug("film liked", map[string]any{"film_id": filmID, "user_id": userID})
	return nil
}

func (s *service) Unlike(ctx context.Context, filmID, userID int64) error {
	if err := s.films.RemoveLike(ctx, filmID, userID); err != nil {
		return err
	}
	s.log.Debug("film unliked", map[string]any{"film_id": filmID, "user_id": userID})
	return nil
}

func (s *service) MostPopular(ctx context.Context, count int) ([]*domain.Film, error) {
	if count < 1 {
		s.log.Warn("popular count rejected", map[string]any{"count": count})
		return nil, validation.New("count", validation.MsgCountNotPositive)
	}
	return s.films.MostPopular(ctx, count)
}

// prepare валидирует поля фильма и сверяет MPA и жанры со справочником.
// Ошибки полей проверяются раньше ссылок на справочник.
func (s *service) prepare(ctx context.Context, f *domain.Film) error {
	if err := validation.Film(f); err != nil {
		s.log.Warn("film rejected", map[string]any{"film_id": f.ID, "name": f.Name, "reason": err.Error()})
		return err
	}

	mpa, err := s.catalog.MpaByID(ctx, f.Mpa.ID)
	if err != nil {
		return err
	}
	f.Mpa = mpa

	genres := make([]domain.Genre, 0, len(f.Genres))
	for _, g := range f.Genres {
		resolved, err := s.catalog.GenreByID(ctx, g.ID)
		if err != nil {
			return err
		}
		genres = append(genres, resolved)
	}
	f.Genres = domain.NormalizeGenres(genres)

	return nil
}
