//go:build integration
// +build integration

package postgres_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	appcfg "filmorate/internal/config"
	"filmorate/internal/database"
	filmdomain "filmorate/internal/domain/film"
	userdomain "filmorate/internal/domain/user"
	repo "filmorate/internal/repository/interfaces"
	"filmorate/internal/repository/postgres"
	"filmorate/pkg/logger"
)

// openTestDB подключается к тестовой БД (TEST_DB_NAME), применяет миграции и очищает таблицы.
func openTestDB(t *testing.T) *database.DB {
	t.Helper()

	rootDir, err := findProjectRoot()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(rootDir))

	cfg, err := appcfg.Load()
	require.NoError(t, err)
	if testDB := os.Getenv("TEST_DB_NAME"); testDB != "" {
		cfg.Database.DBName = testDB
	}

	db, err := database.NewConnection(&cfg.Database, cfg.AppEnv, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	// мигратор работает поверх того же соединения, поэтому не закрываем его
	migrator, err := database.NewMigrator(db)
	require.NoError(t, err)
	if err := migrator.Up(); err != nil && !errors.Is(err, database.ErrNoChange) {
		t.Fatalf("migrate: %v", err)
	}

	require.NoError(t, db.Exec("TRUNCATE TABLE film_likes, friendships, film_genres, films, users RESTART IDENTITY CASCADE").Error)
	return db
}

func findProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}

func newUser(login string) *userdomain.User {
	return &userdomain.User{
		Email:    login + "@example.com",
		Login:    login,
		Name:     login,
		Birthday: time.Date(1991, time.April, 12, 0, 0, 0, 0, time.UTC),
	}
}

func newFilm(name string, mpaID int64, genreIDs ...int64) *filmdomain.Film {
	f := &filmdomain.Film{
		Name:        name,
		Description: "about " + name,
		ReleaseDate: time.Date(2001, time.September, 1, 0, 0, 0, 0, time.UTC),
		Duration:    120,
		Mpa:         filmdomain.Mpa{ID: mpaID},
	}
	for _, id := range genreIDs {
		f.Genres = append(f.Genres, filmdomain.Genre{ID: id})
	}
	return f
}

func TestUserRepository_Postgres(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	users := postgres.NewUserRepository(db.DB)

	a, err := users.Create(ctx, newUser("a"))
	require.NoError(t, err)
	require.Equal(t, int64(1), a.ID)
	b, err := users.Create(ctx, newUser("b"))
	require.NoError(t, err)
	c, err := users.Create(ctx, newUser("c"))
	require.NoError(t, err)

	require.NoError(t, users.AddFriend(ctx, a.ID, c.ID))
	require.NoError(t, users.AddFriend(ctx, a.ID, c.ID))
	require.NoError(t, users.AddFriend(ctx, b.ID, c.ID))

	got, err := users.GetByID(ctx, c.ID)
	require.NoError(t, err)
	require.Equal(t, []int64{a.ID, b.ID}, got.FriendIDs())

	common, err := users.MutualFriends(ctx, a.ID, b.ID)
	require.NoError(t, err)
	require.Len(t, common, 1)
	require.Equal(t, c.ID, common[0].ID)

	require.ErrorIs(t, users.AddFriend(ctx, a.ID, 100), repo.ErrNotFound)

	upd := newUser("a2")
	upd.ID = a.ID
	updated, err := users.Update(ctx, upd)
	require.NoError(t, err)
	require.Equal(t, "a2", updated.Login)
	require.True(t, updated.HasFriend(c.ID))

	ghost := newUser("ghost")
	ghost.ID = 999
	_, err = users.Update(ctx, ghost)
	require.ErrorIs(t, err, repo.ErrNotFound)

	require.NoError(t, users.RemoveFriend(ctx, c.ID, a.ID))
	friends, err := users.Friends(ctx, a.ID)
	require.NoError(t, err)
	require.Empty(t, friends)
}

func TestFilmRepository_Postgres(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	users := postgres.NewUserRepository(db.DB)
	films := postgres.NewFilmRepository(db.DB)

	u1, err := users.Create(ctx, newUser("u1"))
	require.NoError(t, err)
	u2, err := users.Create(ctx, newUser("u2"))
	require.NoError(t, err)

	first, err := films.Create(ctx, newFilm("first", 1, 2, 1, 2))
	require.NoError(t, err)
	require.Equal(t, "G", first.Mpa.Name)
	require.Equal(t, []filmdomain.Genre{{ID: 1, Name: "Комедия"}, {ID: 2, Name: "Драма"}}, first.Genres)

	second, err := films.Create(ctx, newFilm("second", 4))
	require.NoError(t, err)

	_, err = films.Create(ctx, newFilm("bad genre", 1, 42))
	require.ErrorIs(t, err, repo.ErrNotFound)

	require.NoError(t, films.AddLike(ctx, second.ID, u1.ID))
	require.NoError(t, films.AddLike(ctx, second.ID, u1.ID))
	require.NoError(t, films.AddLike(ctx, second.ID, u2.ID))
	require.ErrorIs(t, films.AddLike(ctx, second.ID, 100), repo.ErrNotFound)
	require.ErrorIs(t, films.AddLike(ctx, 100, u1.ID), repo.ErrNotFound)

	top, err := films.MostPopular(ctx, 10)
	require.NoError(t, err)
	require.Len(t, top, 2)
	require.Equal(t, second.ID, top[0].ID)
	require.Equal(t, 2, top[0].Rate())
	require.Equal(t, first.ID, top[1].ID)

	upd := newFilm("second v2", 5, 6)
	upd.ID = second.ID
	updated, err := films.Update(ctx, upd)
	require.NoError(t, err)
	require.Equal(t, "NC-17", updated.Mpa.Name)
	require.Equal(t, 2, updated.Rate())

	require.NoError(t, films.RemoveLike(ctx, second.ID, u1.ID))
	require.NoError(t, films.RemoveLike(ctx, second.ID, 100))
	got, err := films.GetByID(ctx, second.ID)
	require.NoError(t, err)
	require.Equal(t, []int64{u2.ID}, got.LikeIDs())
}

func TestCatalogRepository_Postgres(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	catalog := postgres.NewCatalogRepository(db.DB)

	mpa, err := catalog.ListMpa(ctx)
	require.NoError(t, err)
	require.Len(t, mpa, len(filmdomain.DefaultMpa))

	genre, err := catalog.GenreByID(ctx, 3)
	require.NoError(t, err)
	require.Equal(t, "Мультфильм", genre.Name)

	_, err = catalog.MpaByID(ctx, 77)
	require.ErrorIs(t, err, repo.ErrNotFound)
}

func TestRepositories_Postgres_LongTextFields(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	users := postgres.NewUserRepository(db.DB)
	films := postgres.NewFilmRepository(db.DB)

	long := strings.Repeat("ж", 300)

	u := newUser("longname")
	u.Name = long
	u.Email = strings.Repeat("e", 280) + "@example.com"
	created, err := users.Create(ctx, u)
	require.NoError(t, err)
	require.Equal(t, long, created.Name)

	created.Login = strings.Repeat("l", 300)
	updated, err := users.Update(ctx, created)
	require.NoError(t, err)
	require.Equal(t, created.Login, updated.Login)

	f := newFilm(long, 1)
	f.Description = strings.Repeat("д", 200)
	film, err := films.Create(ctx, f)
	require.NoError(t, err)
	require.Equal(t, long, film.Name)
	require.Equal(t, f.Description, film.Description)
}

func TestMigrator_Status_Postgres(t *testing.T) {
	db := openTestDB(t)

	migrator, err := database.NewMigrator(db)
	require.NoError(t, err)

	st, err := migrator.Status(context.Background())
	require.NoError(t, err)
	require.Equal(t, uint(3), st.Version)
	require.False(t, st.Dirty)
	require.Equal(t, int64(len(filmdomain.DefaultMpa)), st.Catalog["mpa"])
	require.Equal(t, int64(len(filmdomain.DefaultGenres)), st.Catalog["genres"])
}
