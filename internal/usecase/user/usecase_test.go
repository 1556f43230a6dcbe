package user_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	domain "filmorate/internal/domain/user"
	repo "filmorate/internal/repository/interfaces"
	"filmorate/internal/repository/memory"
	useruc "filmorate/internal/usecase/user"
	"filmorate/internal/usecase/validation"
	"filmorate/pkg/logger"
)

var fixedNow = time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)

func newService() useruc.Service {
	return useruc.NewService(memory.NewUserRepository(), logger.Nop(),
		useruc.WithClock(func() time.Time { return fixedNow }))
}

func newUser(login string) *domain.User {
	return &domain.User{
		Email:    login + "@mail.ru",
		Login:    login,
		Name:     "Name " + login,
		Birthday: time.Date(1995, time.July, 3, 0, 0, 0, 0, time.UTC),
	}
}

func mustCreate(t *testing.T, s useruc.Service, login string) *domain.User {
	t.Helper()
	u, err := s.Create(context.Background(), newUser(login))
	require.NoError(t, err)
	return u
}

func TestCreate_BlankNameDefaultsToLogin(t *testing.T) {
	s := newService()
	u := newUser("dolore")
	u.Name = ""

	created, err := s.Create(context.Background(), u)
	require.NoError(t, err)
	require.Equal(t, int64(1), created.ID)
	require.Equal(t, "dolore", created.Name)
}

func TestCreate_RejectsInvalidUser(t *testing.T) {
	s := newService()
	u := newUser("dolore")
	u.Login = "dolore ullamco"
	u.Email = "mail.ru"

	_, err := s.Create(context.Background(), u)
	require.ErrorIs(t, err, validation.ErrValidation)
	require.EqualError(t, err, validation.MsgLoginInvalid)

	list, err := s.List(context.Background())
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestCreate_RejectsFutureBirthday(t *testing.T) {
	s := newService()
	u := newUser("future")
	u.Birthday = fixedNow.AddDate(0, 0, 1)

	_, err := s.Create(context.Background(), u)
	require.EqualError(t, err, validation.MsgBirthdayInFuture)
}

func TestUpdate_StaleID(t *testing.T) {
	s := newService()
	mustCreate(t, s, "a")

	u := newUser("ghost")
	u.ID = 9999
	_, err := s.Update(context.Background(), u)
	require.ErrorIs(t, err, repo.ErrNotFound)
}

func TestUpdate_ValidatesBeforeLookup(t *testing.T) {
	s := newService()

	u := newUser("ghost")
	u.ID = 9999
	u.Email = ""
	_, err := s.Update(context.Background(), u)
	require.ErrorIs(t, err, validation.ErrValidation)
}

func TestAddFriend_Self(t *testing.T) {
	s := newService()
	a := mustCreate(t, s, "a")

	err := s.AddFriend(context.Background(), a.ID, a.ID)
	require.ErrorIs(t, err, validation.ErrValidation)
	require.EqualError(t, err, validation.MsgSelfFriendship)
}

func TestFriends_SymmetricAndMutual(t *testing.T) {
	ctx := context.Background()
	s := newService()
	a := mustCreate(t, s, "a")
	b := mustCreate(t, s, "b")
	c := mustCreate(t, s, "c")

	require.NoError(t, s.AddFriend(ctx, a.ID, c.ID))
	require.NoError(t, s.AddFriend(ctx, b.ID, c.ID))

	cFriends, err := s.Friends(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, cFriends, 2)

	common, err := s.MutualFriends(ctx, a.ID, b.ID)
	require.NoError(t, err)
	require.Len(t, common, 1)
	require.Equal(t, c.ID, common[0].ID)
}

func TestRemoveFriend_RequiresBothUsers(t *testing.T) {
	ctx := context.Background()
	s := newService()
	a := mustCreate(t, s, "a")
	b := mustCreate(t, s, "b")

	err := s.RemoveFriend(ctx, a.ID, 404)
	require.ErrorIs(t, err, repo.ErrNotFound)

	err = s.RemoveFriend(ctx, 404, a.ID)
	require.ErrorIs(t, err, repo.ErrNotFound)

	// дружбы не было, но оба пользователя есть
	require.NoError(t, s.RemoveFriend(ctx, a.ID, b.ID))
}

// failingRepo возвращает ошибку инфраструктуры на проверке существования.
type failingRepo struct {
	repo.UserRepository
	err error
}

func (r *failingRepo) Exists(context.Context, int64) (bool, error) { return false, r.err }

func TestRemoveFriend_PropagatesStorageError(t *testing.T) {
	boom := errors.New("connection reset")
	s := useruc.NewService(&failingRepo{UserRepository: memory.NewUserRepository(), err: boom}, logger.Nop())

	err := s.RemoveFriend(context.Background(), 1, 2)
	require.ErrorIs(t, err, boom)
	require.NotErrorIs(t, err, repo.ErrNotFound)
}
