package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "filmorate/internal/domain/user"
	repo "filmorate/internal/repository/interfaces"
)

// UserRepository реализует repo.UserRepository с использованием GORM и Postgres.
type UserRepository struct {
	db *gorm.DB
}

// Убедимся на этапе компиляции, что структура реализует интерфейс.
var _ repo.UserRepository = (*UserRepository)(nil)

// NewUserRepository создает новый репозиторий пользователей.
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create сохраняет пользователя, идентификатор назначает последовательность БД.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	model := userFromDomain(user)
	model.ID = 0

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return nil, err
	}
	return model.toDomain(nil), nil
}

// Update обновляет изменяемые поля. Дружба хранится отдельно и не затрагивается.
func (r *UserRepository) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	model := userFromDomain(user)

	result := r.db.WithContext(ctx).
		Model(&pgUser{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"email":    model.Email,
			"login":    model.Login,
			"name":     model.Name,
			"birthday": model.Birthday,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, repo.NotFound(repo.EntityUser, user.ID)
	}

	return r.GetByID(ctx, model.ID)
}

// GetByID возвращает пользователя вместе с идентификаторами друзей.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var model pgUser
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&model).Error; err != nil {
		return nil, notFoundOr(err, repo.EntityUser, id)
	}

	users, err := r.withFriends(ctx, []pgUser{model})
	if err != nil {
		return nil, err
	}
	return users[0], nil
}

// List возвращает всех пользователей по возрастанию ID.
func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	var models []pgUser
	if err := r.db.WithContext(ctx).Order("id").Find(&models).Error; err != nil {
		return nil, err
	}
	return r.withFriends(ctx, models)
}

func (r *UserRepository) Exists(ctx context.Context, id int64) (bool, error) {
	return exists(ctx, r.db, &pgUser{}, id)
}

// AddFriend записывает обе стороны дружбы в одной транзакции.
func (r *UserRepository) AddFriend(ctx context.Context, id, friendID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, uid := range []int64{id, friendID} {
			ok, err := exists(ctx, tx, &pgUser{}, uid)
			if err != nil {
				return err
			}
			if !ok {
				return repo.NotFound(repo.EntityUser, uid)
			}
		}

		rows := []pgFriendship{
			{UserID: id, FriendID: friendID},
			{UserID: friendID, FriendID: id},
		}
		err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error
		if isForeignKeyViolation(err) {
			// пользователя удалили между проверкой и вставкой
			return repo.NotFound(repo.EntityUser, friendID)
		}
		return err
	})
}

// RemoveFriend удаляет обе стороны дружбы. Отсутствие связи не является ошибкой.
func (r *UserRepository) RemoveFriend(ctx context.Context, id, friendID int64) error {
	return r.db.WithContext(ctx).
		Where("(user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)", id, friendID, friendID, id).
		Delete(&pgFriendship{}).Error
}

// Friends возвращает друзей пользователя по возрастанию ID.
func (r *UserRepository) Friends(ctx context.Context, id int64) ([]*domain.User, error) {
	if err := r.mustExist(ctx, id); err != nil {
		return nil, err
	}

	var models []pgUser
	err := r.db.WithContext(ctx).
		Where("id IN (?)", r.friendIDs(ctx, id)).
		Order("id").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.withFriends(ctx, models)
}

// MutualFriends пересекает множества друзей на стороне БД.
func (r *UserRepository) MutualFriends(ctx context.Context, id, otherID int64) ([]*domain.User, error) {
	if err := r.mustExist(ctx, id); err != nil {
		return nil, err
	}
	if err := r.mustExist(ctx, otherID); err != nil {
		return nil, err
	}

	var models []pgUser
	err := r.db.WithContext(ctx).
		Where("id IN (?)", r.friendIDs(ctx, id)).
		Where("id IN (?)", r.friendIDs(ctx, otherID)).
		Order("id").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.withFriends(ctx, models)
}

// friendIDs строит подзапрос идентификаторов друзей пользователя.
func (r *UserRepository) friendIDs(ctx context.Context, id int64) *gorm.DB {
	return r.db.WithContext(ctx).Model(&pgFriendship{}).Select("friend_id").Where("user_id = ?", id)
}

func (r *UserRepository) mustExist(ctx context.Context, id int64) error {
	ok, err := r.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return repo.NotFound(repo.EntityUser, id)
	}
	return nil
}

// withFriends подгружает друзей одним запросом для всех переданных пользователей.
func (r *UserRepository) withFriends(ctx context.Context, models []pgUser) ([]*domain.User, error) {
	if len(models) == 0 {
		return []*domain.User{}, nil
	}

	ids := make([]int64, len(models))
	for i := range models {
		ids[i] = models[i].ID
	}

	var rows []pgFriendship
	if err := r.db.WithContext(ctx).Where("user_id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}

	friends := make(map[int64][]int64, len(models))
	for _, row := range rows {
		friends[row.UserID] = append(friends[row.UserID], row.FriendID)
	}

	users := make([]*domain.User, 0, len(models))
	for i := range models {
		users = append(users, models[i].toDomain(friends[models[i].ID]))
	}
	return users, nil
}

// exists проверяет наличие строки с указанным первичным ключом.
func exists(ctx context.Context, db *gorm.DB, model interface{}, id int64) (bool, error) {
	var n int64
	if err := db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}
