package postgres

import (
	"time"

	filmdomain "filmorate/internal/domain/film"
	userdomain "filmorate/internal/domain/user"
)

// ORM-модели повторяют схему из internal/database/migrations
// и маппятся в доменные модели функциями toDomain/fromDomain.

type pgMpa struct {
	ID   int64  `gorm:"column:id;primaryKey"`
	Name string `gorm:"column:name;type:varchar(16);not null"`
}

func (pgMpa) TableName() string { return "mpa" }

type pgGenre struct {
	ID   int64  `gorm:"column:id;primaryKey"`
	Name string `gorm:"column:name;type:varchar(64);not null"`
}

func (pgGenre) TableName() string { return "genres" }

type pgFilm struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Name        string    `gorm:"column:name;type:text;not null"`
	Description string    `gorm:"column:description;type:varchar(200);not null"`
	ReleaseDate time.Time `gorm:"column:release_date;type:date;not null"`
	Duration    int       `gorm:"column:duration;not null"`
	MpaID       int64     `gorm:"column:mpa_id;not null"`
	Mpa         pgMpa     `gorm:"foreignKey:MpaID"`
	Genres      []pgGenre `gorm:"many2many:film_genres;joinForeignKey:FilmID;joinReferences:GenreID"`
}

func (pgFilm) TableName() string { return "films" }

type pgFilmGenre struct {
	FilmID  int64 `gorm:"column:film_id;primaryKey"`
	GenreID int64 `gorm:"column:genre_id;primaryKey"`
}

func (pgFilmGenre) TableName() string { return "film_genres" }

type pgFilmLike struct {
	FilmID int64 `gorm:"column:film_id;primaryKey"`
	UserID int64 `gorm:"column:user_id;primaryKey"`
}

func (pgFilmLike) TableName() string { return "film_likes" }

type pgUser struct {
	ID       int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Email    string    `gorm:"column:email;type:text;not null"`
	Login    string    `gorm:"column:login;type:text;not null"`
	Name     string    `gorm:"column:name;type:text;not null"`
	Birthday time.Time `gorm:"column:birthday;type:date;not null"`
}

func (pgUser) TableName() string { return "users" }

// pgFriendship хранит одну сторону дружбы, вторая сторона лежит отдельной строкой.
type pgFriendship struct {
	UserID   int64 `gorm:"column:user_id;primaryKey"`
	FriendID int64 `gorm:"column:friend_id;primaryKey"`
}

func (pgFriendship) TableName() string { return "friendships" }

func (m *pgFilm) toDomain(likes []int64) *filmdomain.Film {
	f := &filmdomain.Film{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		ReleaseDate: toDate(m.ReleaseDate),
		Duration:    m.Duration,
		Mpa:         filmdomain.Mpa{ID: m.Mpa.ID, Name: m.Mpa.Name},
		Genres:      make([]filmdomain.Genre, 0, len(m.Genres)),
		LikedBy:     make(map[int64]struct{}, len(likes)),
	}
	for _, g := range m.Genres {
		f.Genres = append(f.Genres, filmdomain.Genre{ID: g.ID, Name: g.Name})
	}
	f.Genres = filmdomain.NormalizeGenres(f.Genres)
	for _, id := range likes {
		f.LikedBy[id] = struct{}{}
	}
	return f
}

func filmFromDomain(f *filmdomain.Film) *pgFilm {
	return &pgFilm{
		ID:          f.ID,
		Name:        f.Name,
		Description: f.Description,
		ReleaseDate: toDate(f.ReleaseDate),
		Duration:    f.Duration,
		MpaID:       f.Mpa.ID,
	}
}

func (m *pgUser) toDomain(friends []int64) *userdomain.User {
	u := &userdomain.User{
		ID:       m.ID,
		Email:    m.Email,
		Login:    m.Login,
		Name:     m.Name,
		Birthday: toDate(m.Birthday),
		Friends:  make(map[int64]struct{}, len(friends)),
	}
	for _, id := range friends {
		u.Friends[id] = struct{}{}
	}
	return u
}

func userFromDomain(u *userdomain.User) *pgUser {
	return &pgUser{
		ID:       u.ID,
		Email:    u.Email,
		Login:    u.Login,
		Name:     u.Name,
		Birthday: toDate(u.Birthday),
	}
}

// toDate приводит значение к календарной дате в UTC, как в доменной модели.
func toDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
