package memory

import (
	"context"
	"sort"
	"sync"

	domain "filmorate/internal/domain/user"
	repo "filmorate/internal/repository/interfaces"
)

// UserRepository реализует repo.UserRepository в памяти процесса.
//
// Все изменения выполняются под одной блокировкой на запись, чтения идут
// параллельно под блокировкой на чтение. Наружу отдаются только копии.
type UserRepository struct {
	mu     sync.RWMutex
	users  map[int64]*domain.User
	nextID int64
}

// Убедимся на этапе компиляции, что структура реализует интерфейс.
var _ repo.UserRepository = (*UserRepository)(nil)

// NewUserRepository создает пустое хранилище пользователей. Идентификаторы начинаются с 1.
func NewUserRepository() *UserRepository {
	return &UserRepository{
		users:  make(map[int64]*domain.User),
		nextID: 1,
	}
}

// Create сохраняет нового пользователя с пустым списком друзей.
func (r *UserRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := user.Clone()
	stored.ID = r.nextID
	stored.Friends = make(map[int64]struct{})
	r.nextID++

	r.users[stored.ID] = stored
	return stored.Clone(), nil
}

// Update заменяет изменяемые поля пользователя, сохраняя его друзей.
func (r *UserRepository) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.users[user.ID]
	if !ok {
		return nil, repo.NotFound(repo.EntityUser, user.ID)
	}

	stored := user.Clone()
	stored.Friends = existing.Friends
	r.users[stored.ID] = stored
	return stored.Clone(), nil
}

// GetByID возвращает копию пользователя.
func (r *UserRepository) GetByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, repo.NotFound(repo.EntityUser, id)
	}
	return u.Clone(), nil
}

// List возвращает всех пользователей по возрастанию идентификатора (он же порядок создания).
func (r *UserRepository) List(_ context.Context) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]int64, 0, len(r.users))
	for id := range r.users {
		ids = append(ids, id)
	}
	return r.resolveLocked(ids), nil
}

// Exists сообщает, есть ли пользователь в хранилище.
func (r *UserRepository) Exists(_ context.Context, id int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.users[id]
	return ok, nil
}

// AddFriend добавляет каждого пользователя в друзья другому.
func (r *UserRepository) AddFriend(_ context.Context, id, friendID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return repo.NotFound(repo.EntityUser, id)
	}
	friend, ok := r.users[friendID]
	if !ok {
		return repo.NotFound(repo.EntityUser, friendID)
	}

	if u.HasFriend(friendID) {
		return nil
	}
	u.Friends[friendID] = struct{}{}
	friend.Friends[id] = struct{}{}
	return nil
}

// RemoveFriend удаляет связь с обеих сторон. Отсутствие связи не считается ошибкой.
func (r *UserRepository) RemoveFriend(_ context.Context, id, friendID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u, ok := r.users[id]; ok {
		delete(u.Friends, friendID)
	}
	if friend, ok := r.users[friendID]; ok {
		delete(friend.Friends, id)
	}
	return nil
}

// Friends возвращает друзей пользователя.
func (r *UserRepository) Friends(_ context.Context, id int64) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, repo.NotFound(repo.EntityUser, id)
	}
	return r.resolveLocked(u.FriendIDs()), nil
}

// MutualFriends возвращает общих друзей двух пользователей.
func (r *UserRepository) MutualFriends(_ context.Context, id, otherID int64) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, repo.NotFound(repo.EntityUser, id)
	}
	other, ok := r.users[otherID]
	if !ok {
		return nil, repo.NotFound(repo.EntityUser, otherID)
	}

	// Обходим меньшее множество
	small, large := u, other
	if len(small.Friends) > len(large.Friends) {
		small, large = large, small
	}

	common := make([]int64, 0, len(small.Friends))
	for fid := range small.Friends {
		if large.HasFriend(fid) {
			common = append(common, fid)
		}
	}
	return r.resolveLocked(common), nil
}

// resolveLocked превращает идентификаторы в копии пользователей, упорядоченные по ID.
// Вызывающий обязан держать блокировку.
func (r *UserRepository) resolveLocked(ids []int64) []*domain.User {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	result := make([]*domain.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			result = append(result, u.Clone())
		}
	}
	return result
}
