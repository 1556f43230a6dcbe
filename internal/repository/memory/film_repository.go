package memory

import (
	"context"
	"sort"
	"sync"

	domain "filmorate/internal/domain/film"
	repo "filmorate/internal/repository/interfaces"
)

// FilmRepository реализует repo.FilmRepository в памяти процесса.
// Хранилище пользователей нужно только для проверки, что лайкающий пользователь существует.
type FilmRepository struct {
	mu     sync.RWMutex
	films  map[int64]*domain.Film
	nextID int64
	users  repo.UserRepository
}

// Убедимся на этапе компиляции, что структура реализует интерфейс.
var _ repo.FilmRepository = (*FilmRepository)(nil)

// NewFilmRepository создает пустое хранилище фильмов.
func NewFilmRepository(users repo.UserRepository) *FilmRepository {
	return &FilmRepository{
		films:  make(map[int64]*domain.Film),
		nextID: 1,
		users:  users,
	}
}

// Create сохраняет новый фильм и назначает ему идентификатор.
func (r *FilmRepository) Create(_ context.Context, film *domain.Film) (*domain.Film, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := film.Clone()
	stored.ID = r.nextID
	stored.Genres = domain.NormalizeGenres(stored.Genres)
	r.nextID++

	r.films[stored.ID] = stored
	return stored.Clone(), nil
}

// Update заменяет изменяемые поля фильма, сохраняя его лайки.
func (r *FilmRepository) Update(_ context.Context, film *domain.Film) (*domain.Film, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.films[film.ID]
	if !ok {
		return nil, repo.NotFound(repo.EntityFilm, film.ID)
	}

	stored := film.Clone()
	stored.Genres = domain.NormalizeGenres(stored.Genres)
	stored.LikedBy = existing.LikedBy
	r.films[stored.ID] = stored
	return stored.Clone(), nil
}

// GetByID возвращает копию фильма.
func (r *FilmRepository) GetByID(_ context.Context, id int64) (*domain.Film, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.films[id]
	if !ok {
		return nil, repo.NotFound(repo.EntityFilm, id)
	}
	return f.Clone(), nil
}

// List возвращает все фильмы по возрастанию идентификатора.
func (r *FilmRepository) List(_ context.Context) ([]*domain.Film, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.snapshotLocked(), nil
}

// AddLike добавляет лайк, повторный лайк того же пользователя ничего не меняет.
func (r *FilmRepository) AddLike(ctx context.Context, filmID, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, ok := r.films[filmID]
	if !ok {
		return repo.NotFound(repo.EntityFilm, filmID)
	}

	exists, err := r.users.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return repo.NotFound(repo.EntityUser, userID)
	}

	if f.IsLikedBy(userID) {
		return nil
	}
	if f.LikedBy == nil {
		f.LikedBy = make(map[int64]struct{})
	}
	f.LikedBy[userID] = struct{}{}
	return nil
}

// RemoveLike снимает лайк пользователя, если он был.
func (r *FilmRepository) RemoveLike(_ context.Context, filmID, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, ok := r.films[filmID]
	if !ok {
		return repo.NotFound(repo.EntityFilm, filmID)
	}
	delete(f.LikedBy, userID)
	return nil
}

// MostPopular возвращает фильмы по убыванию числа лайков.
// При count <= 0 возвращается весь рейтинг, ограничение значения проверяет usecase-слой.
func (r *FilmRepository) MostPopular(_ context.Context, count int) ([]*domain.Film, error) {
	r.mu.RLock()
	films := r.snapshotLocked()
	r.mu.RUnlock()

	// snapshot уже упорядочен по ID, стабильная сортировка сохраняет этот порядок при равенстве
	sort.SliceStable(films, func(i, j int) bool {
		return films[i].Rate() > films[j].Rate()
	})

	if count > 0 && count < len(films) {
		films = films[:count]
	}
	return films, nil
}

// snapshotLocked возвращает копии всех фильмов по возрастанию ID.
func (r *FilmRepository) snapshotLocked() []*domain.Film {
	films := make([]*domain.Film, 0, len(r.films))
	for _, f := range r.films {
		films = append(films, f.Clone())
	}
	sort.Slice(films, func(i, j int) bool { return films[i].ID < films[j].ID })
	return films
}
