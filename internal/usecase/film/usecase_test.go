package film_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	domain "filmorate/internal/domain/film"
	userdomain "filmorate/internal/domain/user"
	repo "filmorate/internal/repository/interfaces"
	"filmorate/internal/repository/memory"
	filmuc "filmorate/internal/usecase/film"
	"filmorate/internal/usecase/validation"
	"filmorate/pkg/logger"
)

type fixture struct {
	users   *memory.UserRepository
	service filmuc.Service
}

func newFixture() *fixture {
	users := memory.NewUserRepository()
	films := memory.NewFilmRepository(users)
	return &fixture{
		users:   users,
		service: filmuc.NewService(films, memory.NewCatalogRepository(), logger.Nop()),
	}
}

func (fx *fixture) user(t *testing.T, login string) *userdomain.User {
	t.Helper()
	u, err := fx.users.Create(context.Background(), &userdomain.User{
		Email:    login + "@example.com",
		Login:    login,
		Name:     login,
		Birthday: time.Date(1980, time.February, 2, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return u
}

func (fx *fixture) film(t *testing.T, name string) *domain.Film {
	t.Helper()
	f, err := fx.service.Create(context.Background(), newFilm(name))
	require.NoError(t, err)
	return f
}

func newFilm(name string) *domain.Film {
	return &domain.Film{
		Name:        name,
		Description: "adipisicing",
		ReleaseDate: time.Date(1967, time.March, 25, 0, 0, 0, 0, time.UTC),
		Duration:    100,
		Mpa:         domain.Mpa{ID: 1},
	}
}

func TestCreate_ResolvesCatalog(t *testing.T) {
	fx := newFixture()
	f := newFilm("nisi eiusmod")
	f.Mpa = domain.Mpa{ID: 4}
	f.Genres = []domain.Genre{{ID: 2}, {ID: 1}, {ID: 2}}

	created, err := fx.service.Create(context.Background(), f)
	require.NoError(t, err)
	require.Equal(t, int64(1), created.ID)
	require.Equal(t, domain.Mpa{ID: 4, Name: "R"}, created.Mpa)
	require.Equal(t, []domain.Genre{{ID: 1, Name: "Комедия"}, {ID: 2, Name: "Драма"}}, created.Genres)
}

func TestCreate_UnknownCatalogEntry(t *testing.T) {
	fx := newFixture()

	f := newFilm("bad mpa")
	f.Mpa = domain.Mpa{ID: 99}
	_, err := fx.service.Create(context.Background(), f)
	var nf *repo.NotFoundError
	require.ErrorAs(t, err, &nf)
	require.Equal(t, repo.EntityMpa, nf.Entity)

	f = newFilm("bad genre")
	f.Genres = []domain.Genre{{ID: 1}, {ID: 77}}
	_, err = fx.service.Create(context.Background(), f)
	require.ErrorAs(t, err, &nf)
	require.Equal(t, repo.EntityGenre, nf.Entity)
}

func TestCreate_FieldErrorsBeforeCatalog(t *testing.T) {
	fx := newFixture()
	f := newFilm("")
	f.Mpa = domain.Mpa{ID: 99}

	_, err := fx.service.Create(context.Background(), f)
	require.ErrorIs(t, err, validation.ErrValidation)
	require.EqualError(t, err, validation.MsgNameBlank)
}

func TestCreate_DescriptionCheckedFirst(t *testing.T) {
	fx := newFixture()
	f := newFilm("film")
	f.Description = strings.Repeat("x", 201)
	f.ReleaseDate = time.Date(1890, time.March, 25, 0, 0, 0, 0, time.UTC)

	_, err := fx.service.Create(context.Background(), f)
	require.EqualError(t, err, validation.MsgDescriptionTooLong)
}

func TestUpdate_UnknownFilm(t *testing.T) {
	fx := newFixture()
	f := newFilm("film")
	f.ID = 9999

	_, err := fx.service.Update(context.Background(), f)
	require.ErrorIs(t, err, repo.ErrNotFound)
}

func TestMostPopular(t *testing.T) {
	ctx := context.Background()
	fx := newFixture()
	u1 := fx.user(t, "u1")
	u2 := fx.user(t, "u2")
	u3 := fx.user(t, "u3")

	a := fx.film(t, "A")
	b := fx.film(t, "B")
	c := fx.film(t, "C")

	require.NoError(t, fx.service.Like(ctx, c.ID, u1.ID))
	require.NoError(t, fx.service.Like(ctx, c.ID, u2.ID))
	require.NoError(t, fx.service.Like(ctx, c.ID, u3.ID))
	require.NoError(t, fx.service.Like(ctx, a.ID, u1.ID))

	top, err := fx.service.MostPopular(ctx, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	require.Equal(t, c.ID, top[0].ID)
	require.Equal(t, 3, top[0].Rate())
	require.Equal(t, a.ID, top[1].ID)

	all, err := fx.service.MostPopular(ctx, filmuc.DefaultPopularCount)
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, b.ID, all[2].ID)
}

func TestMostPopular_RejectsNonPositiveCount(t *testing.T) {
	fx := newFixture()

	for _, count := range []int{0, -1} {
		_, err := fx.service.MostPopular(context.Background(), count)
		require.ErrorIs(t, err, validation.ErrValidation)
		require.EqualError(t, err, validation.MsgCountNotPositive)
	}
}

func TestLikeAndUnlike(t *testing.T) {
	ctx := context.Background()
	fx := newFixture()
	u := fx.user(t, "fan")
	f := fx.film(t, "film")

	require.NoError(t, fx.service.Like(ctx, f.ID, u.ID))
	require.NoError(t, fx.service.Like(ctx, f.ID, u.ID))

	got, err := fx.service.GetByID(ctx, f.ID)
	require.NoError(t, err)
	require.Equal(t, 1, got.Rate())

	require.ErrorIs(t, fx.service.Like(ctx, f.ID, 500), repo.ErrNotFound)
	require.ErrorIs(t, fx.service.Unlike(ctx, 500, u.ID), repo.ErrNotFound)

	// снятие лайка несуществующего пользователя ничего не делает
	require.NoError(t, fx.service.Unlike(ctx, f.ID, 500))
	require.NoError(t, fx.service.Unlike(ctx, f.ID, u.ID))

	got, err = fx.service.GetByID(ctx, f.ID)
	require.NoError(t, err)
	require.Zero(t, got.Rate())
}
