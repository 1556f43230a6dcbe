package user

import (
	"context"
	"time"

	domain "filmorate/internal/domain/user"
	repo "filmorate/internal/repository/interfaces"
	"filmorate/internal/usecase/validation"
	"filmorate/pkg/logger"
)

// Service описывает usecase-слой для работы с пользователями:
// регистрацию и обновление профиля, дружбу и общих друзей.
type Service interface {
	// Create проверяет пользователя и сохраняет его с новым идентификатором.
	// Пустое имя заменяется логином.
	Create(ctx context.Context, u *domain.User) (*domain.User, error)

	// Update полностью заменяет изменяемые поля пользователя.
	// Возвращает NotFoundError, если пользователя с таким ID нет.
	Update(ctx context.Context, u *domain.User) (*domain.User, error)

	// GetByID возвращает пользователя по идентификатору.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// List возвращает всех пользователей по возрастанию ID.
	List(ctx context.Context) ([]*domain.User, error)

	// AddFriend делает пользователей друзьями (в обе стороны).
	AddFriend(ctx context.Context, id, friendID int64) error

	// RemoveFriend разрывает дружбу. Оба пользователя должны существовать.
	RemoveFriend(ctx context.Context, id, friendID int64) error

	// Friends возвращает друзей пользователя.
	Friends(ctx context.Context, id int64) ([]*domain.User, error)

	// MutualFriends возвращает общих друзей двух пользователей.
	MutualFriends(ctx context.Context, id, otherID int64) ([]*domain.User, error)
}

// Option настраивает сервис.
type Option func(*service)

// WithClock подменяет источник текущего времени (используется в тестах).
func WithClock(now func() time.Time) Option {
	return func(s *service) {
		s.now = now
	}
}

type service struct {
	users repo.UserRepository
	log   logger.Logger
	now   func() time.Time
}

// NewService создаёт новый сервис пользователей.
func NewService(users repo.UserRepository, log logger.Logger, opts ...Option) Service {
	s := &service{users: users, log: log, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	if err := s.validate(u); err != nil {
		return nil, err
	}

	created, err := s.users.Create(ctx, u)
	if err != nil {
		return nil, err
	}

	s.log.Info("user created", map[string]any{"user_id": created.ID, "login": created.Login})
	return created, nil
}

func (s *service) Update(ctx context.Context, u *domain.User) (*domain.User, error) {
	if err := s.validate(u); err != nil {
		return nil, err
	}

	updated, err := s.users.Update(ctx, u)
	if err != nil {
		return nil, err
	}

	s.log.Info("user updated", map[string]any{"user_id": updated.ID})
	return updated, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

func (s *service) AddFriend(ctx context.Context, id, friendID int64) error {
	if id == friendID {
		s.log.Warn("self friendship rejected", map[string]any{"user_id": id})
		return validation.New("friendId", validation.MsgSelfFriendship)
	}
	return s.users.AddFriend(ctx, id, friendID)
}

func (s *service) RemoveFriend(ctx context.Context, id, friendID int64) error {
	// Хранилище молча игнорирует неизвестные ID, а клиенту нужен 404.
	if err := s.ensureExists(ctx, id); err != nil {
		return err
	}
	if err := s.ensureExists(ctx, friendID); err != nil {
		return err
	}
	return s.users.RemoveFriend(ctx, id, friendID)
}

func (s *service) Friends(ctx context.Context, id int64) ([]*domain.User, error) {
	return s.users.Friends(ctx, id)
}

func (s *service) MutualFriends(ctx context.Context, id, otherID int64) ([]*domain.User, error) {
	return s.users.MutualFriends(ctx, id, otherID)
}

func (s *service) validate(u *domain.User) error {
	if err := validation.User(u, s.now()); err != nil {
		s.log.Warn("user rejected", map[string]any{"user_id": u.ID, "login": u.Login, "reason": err.Error()})
		return err
	}
	return nil
}

func (s *service) ensureExists(ctx context.Context, id int64) error {
	ok, err := s.users.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return repo.NotFound(repo.EntityUser, id)
	}
	return nil
}
