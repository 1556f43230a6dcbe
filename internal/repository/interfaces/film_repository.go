package interfaces

import (
	"context"

	domain "filmorate/internal/domain/film"
)

// FilmRepository определяет контракт для работы с фильмами и лайками.
type FilmRepository interface {
	// Create назначает фильму следующий идентификатор и сохраняет его.
	Create(ctx context.Context, film *domain.Film) (*domain.Film, error)

	// Update полностью заменяет изменяемые поля фильма, лайки сохраняются.
	// Возвращает NotFoundError, если фильма нет.
	Update(ctx context.Context, film *domain.Film) (*domain.Film, error)

	// GetByID возвращает фильм по идентификатору.
	GetByID(ctx context.Context, id int64) (*domain.Film, error)

	// List возвращает снимок всех фильмов в порядке создания.
	List(ctx context.Context) ([]*domain.Film, error)

	// AddLike добавляет лайк пользователя. Повторный лайк ничего не меняет.
	// Возвращает NotFoundError, если нет фильма или пользователя.
	AddLike(ctx context.Context, filmID, userID int64) error

	// RemoveLike снимает лайк. Возвращает NotFoundError, если нет фильма;
	// снятие несуществующего лайка ничего не делает.
	RemoveLike(ctx context.Context, filmID, userID int64) error

	// MostPopular возвращает не более count фильмов по убыванию числа лайков,
	// при равенстве по возрастанию идентификатора.
	MostPopular(ctx context.Context, count int) ([]*domain.Film, error)
}
