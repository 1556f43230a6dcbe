package interfaces

import (
	"context"

	domain "filmorate/internal/domain/user"
)

// UserRepository определяет контракт для работы с пользователями и графом дружбы.
//
// Интерфейс оперирует доменной моделью User и не раскрывает деталей реализации
// (память процесса, GORM, SQL и т.п.). Реализация выбирается один раз при старте.
type UserRepository interface {
	// Create назначает пользователю следующий идентификатор и сохраняет его.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)

	// Update полностью заменяет изменяемые поля пользователя.
	// Множество друзей не меняется. Возвращает NotFoundError, если пользователя нет.
	Update(ctx context.Context, user *domain.User) (*domain.User, error)

	// GetByID возвращает пользователя по идентификатору.
	// Возвращает (nil, NotFoundError), если пользователь не найден.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// List возвращает снимок всех пользователей в порядке создания.
	List(ctx context.Context) ([]*domain.User, error)

	// Exists сообщает, существует ли пользователь с указанным идентификатором.
	Exists(ctx context.Context, id int64) (bool, error)

	// AddFriend связывает двух пользователей дружбой в обе стороны. Операция идемпотентна.
	// Возвращает NotFoundError, если одного из пользователей нет.
	AddFriend(ctx context.Context, id, friendID int64) error

	// RemoveFriend удаляет дружбу в обе стороны. Отсутствие связи не является ошибкой.
	RemoveFriend(ctx context.Context, id, friendID int64) error

	// Friends возвращает друзей пользователя, упорядоченных по идентификатору.
	Friends(ctx context.Context, id int64) ([]*domain.User, error)

	// MutualFriends возвращает пересечение множеств друзей двух пользователей.
	MutualFriends(ctx context.Context, id, otherID int64) ([]*domain.User, error)
}
