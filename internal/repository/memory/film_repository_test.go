package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	domain "filmorate/internal/domain/film"
	repo "filmorate/internal/repository/interfaces"
	"filmorate/internal/repository/memory"
)

func newFilm(name string) *domain.Film {
	return &domain.Film{
		Name:        name,
		Description: "description of " + name,
		ReleaseDate: time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC),
		Duration:    100,
		Mpa:         domain.Mpa{ID: 1, Name: "G"},
	}
}

type filmFixture struct {
	users *memory.UserRepository
	films *memory.FilmRepository
}

func newFilmFixture() *filmFixture {
	users := memory.NewUserRepository()
	return &filmFixture{users: users, films: memory.NewFilmRepository(users)}
}

func (f *filmFixture) film(t *testing.T, name string) *domain.Film {
	t.Helper()
	created, err := f.films.Create(context.Background(), newFilm(name))
	require.NoError(t, err)
	return created
}

func TestFilmRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	fx := newFilmFixture()

	in := newFilm("Matrix")
	in.Genres = []domain.Genre{{ID: 6, Name: "Боевик"}, {ID: 4, Name: "Триллер"}, {ID: 6, Name: "Боевик"}}

	created, err := fx.films.Create(ctx, in)
	require.NoError(t, err)
	require.Equal(t, int64(1), created.ID)
	require.Equal(t, []domain.Genre{{ID: 4, Name: "Триллер"}, {ID: 6, Name: "Боевик"}}, created.Genres)
	require.Zero(t, created.Rate())

	got, err := fx.films.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "Matrix", got.Name)

	_, err = fx.films.GetByID(ctx, 42)
	require.ErrorIs(t, err, repo.ErrNotFound)
}

func TestFilmRepository_UpdateUnknownID(t *testing.T) {
	fx := newFilmFixture()
	fx.film(t, "first")

	f := newFilm("never created")
	f.ID = 99
	_, err := fx.films.Update(context.Background(), f)
	require.ErrorIs(t, err, repo.ErrNotFound)
}

func TestFilmRepository_UpdateKeepsLikes(t *testing.T) {
	ctx := context.Background()
	fx := newFilmFixture()
	u, err := fx.users.Create(ctx, newUser("fan"))
	require.NoError(t, err)
	f := fx.film(t, "old name")
	require.NoError(t, fx.films.AddLike(ctx, f.ID, u.ID))

	upd := newFilm("new name")
	upd.ID = f.ID
	got, err := fx.films.Update(ctx, upd)
	require.NoError(t, err)
	require.Equal(t, "new name", got.Name)
	require.True(t, got.IsLikedBy(u.ID))
}

func TestFilmRepository_LikeIsIdempotent(t *testing.T) {
	ctx := context.Background()
	fx := newFilmFixture()
	u, err := fx.users.Create(ctx, newUser("fan"))
	require.NoError(t, err)
	f := fx.film(t, "film")

	require.NoError(t, fx.films.AddLike(ctx, f.ID, u.ID))
	require.NoError(t, fx.films.AddLike(ctx, f.ID, u.ID))

	got, err := fx.films.GetByID(ctx, f.ID)
	require.NoError(t, err)
	require.Equal(t, 1, got.Rate())
	require.Equal(t, []int64{u.ID}, got.LikeIDs())
}

func TestFilmRepository_LikeRequiresFilmAndUser(t *testing.T) {
	ctx := context.Background()
	fx := newFilmFixture()
	u, err := fx.users.Create(ctx, newUser("fan"))
	require.NoError(t, err)
	f := fx.film(t, "film")

	var nf *repo.NotFoundError

	err = fx.films.AddLike(ctx, 100, u.ID)
	require.ErrorAs(t, err, &nf)
	require.Equal(t, repo.EntityFilm, nf.Entity)

	err = fx.films.AddLike(ctx, f.ID, 100)
	require.ErrorAs(t, err, &nf)
	require.Equal(t, repo.EntityUser, nf.Entity)
}

func TestFilmRepository_RemoveLike(t *testing.T) {
	ctx := context.Background()
	fx := newFilmFixture()
	u, err := fx.users.Create(ctx, newUser("fan"))
	require.NoError(t, err)
	f := fx.film(t, "film")
	require.NoError(t, fx.films.AddLike(ctx, f.ID, u.ID))

	require.NoError(t, fx.films.RemoveLike(ctx, f.ID, u.ID))
	require.NoError(t, fx.films.RemoveLike(ctx, f.ID, u.ID)) // повторное снятие ничего не делает

	got, err := fx.films.GetByID(ctx, f.ID)
	require.NoError(t, err)
	require.Zero(t, got.Rate())

	err = fx.films.RemoveLike(ctx, 100, u.ID)
	require.ErrorIs(t, err, repo.ErrNotFound)
}

func TestFilmRepository_MostPopular(t *testing.T) {
	ctx := context.Background()
	fx := newFilmFixture()
	u1, err := fx.users.Create(ctx, newUser("u1"))
	require.NoError(t, err)
	u2, err := fx.users.Create(ctx, newUser("u2"))
	require.NoError(t, err)

	none := fx.film(t, "no likes")
	two := fx.film(t, "two likes")
	one := fx.film(t, "one like")

	require.NoError(t, fx.films.AddLike(ctx, two.ID, u1.ID))
	require.NoError(t, fx.films.AddLike(ctx, two.ID, u2.ID))
	require.NoError(t, fx.films.AddLike(ctx, one.ID, u1.ID))

	top, err := fx.films.MostPopular(ctx, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	require.Equal(t, two.ID, top[0].ID)
	require.Equal(t, one.ID, top[1].ID)

	all, err := fx.films.MostPopular(ctx, 10)
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, none.ID, all[2].ID)
}

func TestFilmRepository_MostPopularTiesByID(t *testing.T) {
	fx := newFilmFixture()
	a := fx.film(t, "a")
	b := fx.film(t, "b")
	c := fx.film(t, "c")

	top, err := fx.films.MostPopular(context.Background(), 0)
	require.NoError(t, err)
	require.Equal(t, []int64{a.ID, b.ID, c.ID}, []int64{top[0].ID, top[1].ID, top[2].ID})
}

func TestCatalogRepository_Lookup(t *testing.T) {
	ctx := context.Background()
	c := memory.NewCatalogRepository()

	genres, err := c.ListGenres(ctx)
	require.NoError(t, err)
	require.Len(t, genres, len(domain.DefaultGenres))

	mpa, err := c.MpaByID(ctx, 3)
	require.NoError(t, err)
	require.Equal(t, "PG-13", mpa.Name)

	_, err = c.GenreByID(ctx, 999)
	require.ErrorIs(t, err, repo.ErrNotFound)
	_, err = c.MpaByID(ctx, 0)
	require.ErrorIs(t, err, repo.ErrNotFound)
}
